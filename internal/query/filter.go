// Package query holds the pure filter and sort engines applied to task
// sequences before projection.
package query

import (
	"time"

	"taskboard/internal/model"
)

type FilterType string

const (
	FilterAll            FilterType = "all"
	FilterDueToday       FilterType = "due-today"
	FilterDueWithin3Days FilterType = "due-within-3-days"
	FilterOverdue        FilterType = "overdue"
	FilterLabel          FilterType = "label"
	FilterHasLabels      FilterType = "has-labels"
	FilterPriority       FilterType = "priority"
)

// TaskFilter describes the active filter predicate. Labels are keyed by name
// only; label ids are display data.
type TaskFilter struct {
	Type       FilterType
	LabelNames []string
	Priorities []model.Priority
}

// Filter returns the tasks matching the predicate, input order preserved.
// Date windows compare day-truncated due dates against day-truncated now.
// An unknown filter type returns the input unchanged.
func Filter(tasks []model.Task, f TaskFilter, now time.Time) []model.Task {
	switch f.Type {
	case FilterDueToday:
		today := dateOnly(now)
		return keep(tasks, func(t *model.Task) bool {
			return t.DueDate != nil && dateOnly(*t.DueDate).Equal(today)
		})
	case FilterDueWithin3Days:
		today := dateOnly(now)
		limit := today.AddDate(0, 0, 3)
		return keep(tasks, func(t *model.Task) bool {
			if t.DueDate == nil {
				return false
			}
			day := dateOnly(*t.DueDate)
			return !day.Before(today) && !day.After(limit)
		})
	case FilterOverdue:
		today := dateOnly(now)
		return keep(tasks, func(t *model.Task) bool {
			return t.DueDate != nil && dateOnly(*t.DueDate).Before(today)
		})
	case FilterLabel:
		if len(f.LabelNames) == 0 {
			// No selection behaves as no filter.
			return copyTasks(tasks)
		}
		names := make(map[string]bool, len(f.LabelNames))
		for _, n := range f.LabelNames {
			names[n] = true
		}
		return keep(tasks, func(t *model.Task) bool {
			for _, l := range t.Labels {
				if names[l.Name] {
					return true
				}
			}
			return false
		})
	case FilterHasLabels:
		return keep(tasks, func(t *model.Task) bool {
			return len(t.Labels) > 0
		})
	case FilterPriority:
		if len(f.Priorities) == 0 {
			return copyTasks(tasks)
		}
		selected := make(map[model.Priority]bool, len(f.Priorities))
		for _, p := range f.Priorities {
			selected[p] = true
		}
		return keep(tasks, func(t *model.Task) bool {
			return t.Priority.Valid() && selected[t.Priority]
		})
	default:
		// FilterAll and unknown types are identity.
		return copyTasks(tasks)
	}
}

func keep(tasks []model.Task, pred func(*model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if pred(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

func copyTasks(tasks []model.Task) []model.Task {
	return append([]model.Task(nil), tasks...)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
