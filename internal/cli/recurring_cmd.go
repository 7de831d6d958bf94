package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/cli/formatter"
	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/scheduler"
)

func newRecurringCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring tasks",
	}
	cmd.AddCommand(
		newRecurringAddCmd(app),
		newRecurringListCmd(app),
		newRecurringRmCmd(app),
		newRecurringSyncCmd(app),
	)
	return cmd
}

func newRecurringAddCmd(app *App) *cobra.Command {
	var spec, importance, urgency, energy, startClock, endClock string
	var duration int
	var fixed bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a recurring task definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.RecurringTask{
				UserID:      app.UserID,
				Title:       args[0],
				Spec:        spec,
				DurationMin: duration,
				IsFixedTime: fixed,
			}

			var err error
			if r.Importance, err = parsePriorityFlag(importance, domain.PriorityMedium); err != nil {
				return err
			}
			if r.Urgency, err = parsePriorityFlag(urgency, domain.PriorityMedium); err != nil {
				return err
			}
			if r.Energy, err = parseEnergyFlag(energy, domain.EnergyLow); err != nil {
				return err
			}
			if fixed {
				if r.StartMin, err = domain.ParseClock(startClock); err != nil {
					return err
				}
				if r.EndMin, err = domain.ParseClock(endClock); err != nil {
					return err
				}
			}

			if err := app.Recurring.Create(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&spec, "spec", "", `Cron expression, e.g. "0 9 * * 1-5" or "@weekly"`)
	cmd.Flags().IntVar(&duration, "duration", 0, "Minutes of work per occurrence")
	cmd.Flags().StringVar(&importance, "importance", "", "Importance: low|medium|high|urgent")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Urgency: low|medium|high|urgent")
	cmd.Flags().StringVar(&energy, "energy", "", "Energy level: low|high")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "Occurrences are fixed-time meetings")
	cmd.Flags().StringVar(&startClock, "start", "", "Meeting start (HH:MM)")
	cmd.Flags().StringVar(&endClock, "end", "", "Meeting end (HH:MM)")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

func newRecurringListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring task definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := app.Recurring.List(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return printJSON(defs)
			}
			for _, r := range defs {
				line := fmt.Sprintf("%s %s  %s",
					formatter.TruncID(r.ID),
					formatter.Bold(r.Title),
					formatter.Dim(r.Spec),
				)
				if r.IsFixedTime {
					line += "  " + formatter.StylePurple.Render(
						fmt.Sprintf("%s–%s", domain.FormatClock(r.StartMin), domain.FormatClock(r.EndMin)))
				} else {
					line += "  " + formatter.StyleBlue.Render(fmt.Sprintf("(%s)", formatter.FormatMinutes(r.DurationMin)))
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newRecurringRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recurring task definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Recurring.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newRecurringSyncCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Materialize upcoming occurrences as tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Recurring.Sync(context.Background(), app.UserID, time.Now(), days)
			if err != nil {
				return err
			}
			fmt.Printf("Created %d task(s)\n", created)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", scheduler.DefaultHorizonDays, "Days ahead to materialize")
	return cmd
}
