package cli

import (
	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedule  service.ScheduleService
	Postpones service.PostponeService
	Settings  service.SettingsService
	Tasks     service.TaskService
	Recurring service.RecurringService

	// UserID identifies the local user; a single database can hold several.
	UserID string

	// IsInteractive reports whether stdout is a terminal. Non-interactive
	// invocations of view commands emit JSON instead of styled output.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "daybook" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "daybook",
		Short: "Personal capacity planner and daily scheduler",
	}

	root.AddCommand(
		newPlanCmd(app),
		newTodayCmd(app),
		newTaskCmd(app),
		newPostponeCmd(app),
		newDoTodayCmd(app),
		newMoveCmd(app),
		newSettingsCmd(app),
		newRecurringCmd(app),
	)

	return root
}
