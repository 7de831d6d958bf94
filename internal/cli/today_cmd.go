package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/cli/formatter"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show what to work on today",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Schedule.TodayView(context.Background(), app.UserID, time.Now())
			if err != nil {
				return err
			}

			if !app.interactive() {
				return printJSON(resp)
			}
			fmt.Println(formatter.FormatToday(resp))
			return nil
		},
	}
}
