package state

import (
	"github.com/google/uuid"

	"taskboard/internal/model"
)

// State is the whole board tree plus the current-board pointer. Commands
// never mutate a State in place; Apply returns a fresh snapshot.
type State struct {
	Boards         []model.Board `json:"boards"`
	CurrentBoardID uuid.UUID     `json:"current_board_id"`
}

func (s State) Clone() State {
	out := s
	out.Boards = make([]model.Board, len(s.Boards))
	for i := range s.Boards {
		out.Boards[i] = s.Boards[i].Clone()
	}
	return out
}

// BoardIndex returns the position of the board in the collection, or -1.
func (s *State) BoardIndex(boardID uuid.UUID) int {
	for i := range s.Boards {
		if s.Boards[i].ID == boardID {
			return i
		}
	}
	return -1
}

// CurrentBoard returns a pointer to the current board, or nil when no board
// is selected.
func (s *State) CurrentBoard() *model.Board {
	if i := s.BoardIndex(s.CurrentBoardID); i >= 0 {
		return &s.Boards[i]
	}
	return nil
}

// FindColumn locates a column across all boards, returning the owning board
// and the column, or nils when absent.
func (s *State) FindColumn(columnID uuid.UUID) (*model.Board, *model.Column) {
	for i := range s.Boards {
		b := &s.Boards[i]
		for j := range b.Columns {
			if b.Columns[j].ID == columnID {
				return b, &b.Columns[j]
			}
		}
	}
	return nil, nil
}

// FindTask locates a task across all boards and columns.
func (s *State) FindTask(taskID uuid.UUID) (*model.Board, *model.Column, *model.Task) {
	for i := range s.Boards {
		b := &s.Boards[i]
		for j := range b.Columns {
			col := &b.Columns[j]
			for k := range col.Tasks {
				if col.Tasks[k].ID == taskID {
					return b, col, &col.Tasks[k]
				}
			}
		}
	}
	return nil, nil, nil
}

// TaskCount sums the task sequences of every column on the board.
func TaskCount(b *model.Board) int {
	total := 0
	for i := range b.Columns {
		total += len(b.Columns[i].Tasks)
	}
	return total
}
