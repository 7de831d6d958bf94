package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhittle/daybook/internal/cli/formatter"
	"github.com/jwhittle/daybook/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskRmCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var estimate int
	var due, importance, urgency, energy, parent string
	var meeting bool
	var date, startClock, endClock string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task or a fixed-time meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{
				UserID:       app.UserID,
				Title:        args[0],
				EstimatedMin: estimate,
			}

			var err error
			if t.Importance, err = parsePriorityFlag(importance, domain.PriorityMedium); err != nil {
				return err
			}
			if t.Urgency, err = parsePriorityFlag(urgency, domain.PriorityMedium); err != nil {
				return err
			}
			if t.Energy, err = parseEnergyFlag(energy, domain.EnergyLow); err != nil {
				return err
			}
			if due != "" {
				d, err := parseDateFlag(due)
				if err != nil {
					return err
				}
				t.DueDate = &d
			}
			if parent != "" {
				t.ParentID = &parent
			}

			if meeting {
				day, err := parseDateFlag(date)
				if err != nil {
					return err
				}
				startMin, err := domain.ParseClock(startClock)
				if err != nil {
					return err
				}
				endMin, err := domain.ParseClock(endClock)
				if err != nil {
					return err
				}
				start := day.Add(time.Duration(startMin) * time.Minute)
				end := day.Add(time.Duration(endMin) * time.Minute)
				t.IsFixedTime = true
				t.StartTime = &start
				t.EndTime = &end
				t.EstimatedMin = endMin - startMin
			}

			if err := app.Tasks.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes of work")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&importance, "importance", "", "Importance: low|medium|high|urgent")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Urgency: low|medium|high|urgent")
	cmd.Flags().StringVar(&energy, "energy", "", "Energy level: low|high")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id (creates a subtask)")
	cmd.Flags().BoolVar(&meeting, "meeting", false, "Create a fixed-time meeting")
	cmd.Flags().StringVar(&date, "date", "", "Meeting date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&startClock, "start", "", "Meeting start (HH:MM)")
	cmd.Flags().StringVar(&endClock, "end", "", "Meeting end (HH:MM)")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListActive(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return printJSON(tasks)
			}
			fmt.Println(formatter.FormatTaskList(tasks))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, due, importance, urgency, energy string
	var estimate, progress int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Tasks.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("estimate") {
				t.EstimatedMin = estimate
			}
			if cmd.Flags().Changed("progress") {
				t.Progress = progress
				if progress > 0 && t.Status == domain.TaskTodo {
					t.Status = domain.TaskInProgress
				}
			}
			if cmd.Flags().Changed("due") {
				if due == "" {
					t.DueDate = nil
				} else {
					d, err := parseDateFlag(due)
					if err != nil {
						return err
					}
					t.DueDate = &d
				}
			}
			if cmd.Flags().Changed("importance") {
				if t.Importance, err = parsePriorityFlag(importance, t.Importance); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("urgency") {
				if t.Urgency, err = parsePriorityFlag(urgency, t.Urgency); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("energy") {
				if t.Energy, err = parseEnergyFlag(energy, t.Energy); err != nil {
					return err
				}
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes of work")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage [0,100]")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&importance, "importance", "", "Importance: low|medium|high|urgent")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Urgency: low|medium|high|urgent")
	cmd.Flags().StringVar(&energy, "energy", "", "Energy level: low|high")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.MarkDone(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Done %s\n", args[0])
			return nil
		},
	}
}

func newTaskRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
