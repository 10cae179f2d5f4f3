package model

import (
	"github.com/google/uuid"
)

// DeletionState marks columns that the UI has trashed but not yet purged.
type DeletionState string

const (
	ColumnActive            DeletionState = "active"
	ColumnMarkedForDeletion DeletionState = "marked_for_deletion"
	ColumnDeleted           DeletionState = "deleted"
)

type Column struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Tasks         []Task        `json:"tasks"`
	Color         string        `json:"color,omitempty"`
	DeletionState DeletionState `json:"deletion_state,omitempty"`
}

// TaskIndex returns the position of the task in the column, or -1.
func (c *Column) TaskIndex(taskID uuid.UUID) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func (c Column) Clone() Column {
	out := c
	out.Tasks = make([]Task, len(c.Tasks))
	for i := range c.Tasks {
		out.Tasks[i] = c.Tasks[i].Clone()
	}
	return out
}
