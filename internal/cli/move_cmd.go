package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/domain"
)

func newMoveCmd(app *App) *cobra.Command {
	var from, to, startClock, endClock string

	cmd := &cobra.Command{
		Use:   "move <block-id>",
		Short: "Move an auto time block within the saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseDateFlag(from)
			if err != nil {
				return err
			}
			toDate := fromDate
			if to != "" {
				if toDate, err = parseDateFlag(to); err != nil {
					return err
				}
			}
			startMin, err := domain.ParseClock(startClock)
			if err != nil {
				return err
			}
			endMin, err := domain.ParseClock(endClock)
			if err != nil {
				return err
			}

			err = app.Schedule.MoveTimeBlock(context.Background(), app.UserID, args[0], fromDate, toDate, startMin, endMin)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Date the block is on (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "Target date (YYYY-MM-DD, default same day)")
	cmd.Flags().StringVar(&startClock, "start", "", "New start (HH:MM)")
	cmd.Flags().StringVar(&endClock, "end", "", "New end (HH:MM)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
