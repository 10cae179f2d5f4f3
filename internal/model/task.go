package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	Priority        Priority         `json:"priority,omitempty"`
	Labels          []Label          `json:"labels,omitempty"`
	SubTasks        []SubTask        `json:"sub_tasks,omitempty"`
	Files           []FileAttachment `json:"files,omitempty"`
	Recurrence      *Recurrence      `json:"recurrence,omitempty"`
	RecurrenceID    *uuid.UUID       `json:"recurrence_id,omitempty"`
	OccurrenceCount int              `json:"occurrence_count,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// IsRecurring reports whether the task carries an enabled recurrence rule.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil && t.Recurrence.Enabled
}

// Touch returns a copy of the task with a refreshed update stamp.
func (t Task) Touch(now time.Time) Task {
	t.UpdatedAt = now
	return t
}

func (t Task) Clone() Task {
	out := t
	out.Labels = append([]Label(nil), t.Labels...)
	out.SubTasks = append([]SubTask(nil), t.SubTasks...)
	out.Files = append([]FileAttachment(nil), t.Files...)
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		out.CompletedAt = &done
	}
	if t.Recurrence != nil {
		rec := t.Recurrence.Clone()
		out.Recurrence = &rec
	}
	if t.RecurrenceID != nil {
		rid := *t.RecurrenceID
		out.RecurrenceID = &rid
	}
	return out
}
