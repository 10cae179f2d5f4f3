package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Columns   []Column  `json:"columns"`
	Labels    []Label   `json:"labels,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TerminalColumnID returns the id of the board's rightmost column, which
// carries the implicit "completed" semantics. Returns uuid.Nil for a board
// without columns.
func (b *Board) TerminalColumnID() uuid.UUID {
	if len(b.Columns) == 0 {
		return uuid.Nil
	}
	return b.Columns[len(b.Columns)-1].ID
}

// IsTerminalColumn reports whether the given column is the board's rightmost.
func (b *Board) IsTerminalColumn(columnID uuid.UUID) bool {
	return columnID != uuid.Nil && b.TerminalColumnID() == columnID
}

// ColumnIndex returns the position of the column in the board, or -1.
func (b *Board) ColumnIndex(columnID uuid.UUID) int {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

// Touch returns a copy of the board with a refreshed update stamp.
func (b Board) Touch(now time.Time) Board {
	b.UpdatedAt = now
	return b
}

func (b Board) Clone() Board {
	out := b
	out.Columns = make([]Column, len(b.Columns))
	for i := range b.Columns {
		out.Columns[i] = b.Columns[i].Clone()
	}
	out.Labels = append([]Label(nil), b.Labels...)
	return out
}
