package model

import (
	"github.com/google/uuid"
)

// Label is stored denormalized on each task. Labels sharing a name are
// treated as the same label by filters regardless of id.
type Label struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color,omitempty"`
}
