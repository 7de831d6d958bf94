package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/cli/formatter"
	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/service"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show schedule settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return printJSON(s)
			}
			fmt.Println(formatter.FormatSettings(s))
			return nil
		},
	}
	cmd.AddCommand(newSettingsSetCmd(app))
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var buffer float64
	var breakAfter int
	var dayFlags []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change schedule settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			patch := service.SettingsPatch{}
			if cmd.Flags().Changed("buffer") {
				patch.BufferHours = &buffer
			}
			if cmd.Flags().Changed("break-after") {
				patch.BreakAfterTaskMin = &breakAfter
			}

			if len(dayFlags) > 0 {
				current, err := app.Settings.Get(ctx, app.UserID)
				if err != nil {
					return err
				}
				days := current.Days
				for _, spec := range dayFlags {
					if err := applyDaySpec(&days, spec); err != nil {
						return err
					}
				}
				patch.Days = &days
			}

			updated, err := app.Settings.Update(ctx, app.UserID, patch)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return printJSON(updated)
			}
			fmt.Println(formatter.FormatSettings(updated))
			return nil
		},
	}

	cmd.Flags().Float64Var(&buffer, "buffer", 0, "Daily buffer in hours")
	cmd.Flags().IntVar(&breakAfter, "break-after", 0, "Minutes of break after each task")
	cmd.Flags().StringArrayVar(&dayFlags, "day", nil,
		`Working hours per weekday, e.g. "mon=09:00-17:00" or "sun=off" (repeatable)`)

	return cmd
}

var weekdayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

// applyDaySpec parses "mon=09:00-17:00" or "sun=off" into the days array.
func applyDaySpec(days *[7]domain.WorkdayHours, spec string) error {
	name, value, ok := strings.Cut(spec, "=")
	if !ok {
		return fmt.Errorf("invalid day spec %q, expected weekday=HH:MM-HH:MM or weekday=off", spec)
	}
	idx, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown weekday %q", name)
	}

	if strings.EqualFold(value, "off") {
		days[idx].Enabled = false
		return nil
	}

	startStr, endStr, ok := strings.Cut(value, "-")
	if !ok {
		return fmt.Errorf("invalid hours %q, expected HH:MM-HH:MM", value)
	}
	startMin, err := domain.ParseClock(startStr)
	if err != nil {
		return err
	}
	endMin, err := domain.ParseClock(endStr)
	if err != nil {
		return err
	}
	days[idx].Enabled = true
	days[idx].StartMin = startMin
	days[idx].EndMin = endMin
	return nil
}
