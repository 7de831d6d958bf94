package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/cli/formatter"
)

func newPostponeCmd(app *App) *cobra.Command {
	var from, to, reason string
	var pin bool

	cmd := &cobra.Command{
		Use:   "postpone <task-id>",
		Short: "Push a task to a later date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseDateFlag(from)
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag(to)
			if err != nil {
				return err
			}

			event, err := app.Postpones.Postpone(context.Background(), app.UserID, args[0], fromDate, toDate, reason, pin)
			if err != nil {
				return err
			}

			verb := "Postponed"
			if event.Pinned {
				verb = "Pinned"
			}
			fmt.Printf("%s %s to %s\n", verb, formatter.TruncID(event.TaskID), formatter.RelativeDate(event.ToDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Date the task moves away from (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "Date the task moves to (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reason, "reason", "", "Free-form reason")
	cmd.Flags().BoolVar(&pin, "pin", false, "Pin the task to the target date")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newDoTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "do-today <task-id>",
		Short: "Pin a task onto today's plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := app.Postpones.DoToday(context.Background(), app.UserID, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Pinned %s to today\n", formatter.TruncID(event.TaskID))
			return nil
		},
	}
}
