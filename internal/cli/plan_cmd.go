package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	var days int
	var date string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the schedule, annotated with staleness when a saved plan exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			resp, err := app.Schedule.GetSchedule(context.Background(), app.UserID, from, days)
			if err != nil {
				return err
			}

			if !app.interactive() {
				return printJSON(resp)
			}
			fmt.Println(formatter.FormatSchedule(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show")
	cmd.Flags().StringVar(&date, "date", "", "Start date (YYYY-MM-DD, default today)")

	cmd.AddCommand(newPlanSaveCmd(app))
	return cmd
}

func newPlanSaveCmd(app *App) *cobra.Command {
	var days int
	var date string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Regenerate the plan from the live task set and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			resp, err := app.Schedule.GeneratePlan(context.Background(), app.UserID, from, days)
			if err != nil {
				return err
			}

			if !app.interactive() {
				return printJSON(resp)
			}
			fmt.Println(formatter.FormatSchedule(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show")
	cmd.Flags().StringVar(&date, "date", "", "Start date (YYYY-MM-DD, default today)")
	return cmd
}
