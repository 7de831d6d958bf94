package contract

import "github.com/jwhittle/daybook/internal/scheduler"

type TodayTask struct {
	TaskID       string  `json:"task_id"`
	Title        string  `json:"title"`
	AllocatedMin int     `json:"allocated_minutes"`
	TotalMin     int     `json:"total_minutes"`
	Ratio        float64 `json:"ratio"`
}

// TodayTasksResponse answers "what should I work on today".
type TodayTasksResponse struct {
	Date     string      `json:"date"`
	Tasks    []TodayTask `json:"tasks"`
	Top3IDs  []string    `json:"top3_ids"`
	Overflow bool        `json:"overflow"`
}

// MapTodayView converts the projector output to its wire shape.
func MapTodayView(view scheduler.TodayView) *TodayTasksResponse {
	resp := &TodayTasksResponse{
		Date:     view.Date.Format(DateLayout),
		Tasks:    []TodayTask{},
		Top3IDs:  view.Top3IDs,
		Overflow: view.Overflow,
	}
	if resp.Top3IDs == nil {
		resp.Top3IDs = []string{}
	}
	for _, t := range view.Tasks {
		resp.Tasks = append(resp.Tasks, TodayTask{
			TaskID:       t.TaskID,
			Title:        t.Title,
			AllocatedMin: t.AllocatedMin,
			TotalMin:     t.TotalMin,
			Ratio:        t.Ratio,
		})
	}
	return resp
}
