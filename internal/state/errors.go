package state

import "errors"

var (
	// ErrBoardNotFound is returned when a referenced board does not exist.
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound is returned when a referenced column does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrTaskNotFound is returned when a referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSubTaskNotFound is returned when a referenced sub-task does not exist.
	ErrSubTaskNotFound = errors.New("sub-task not found")

	// ErrBlankTitle is returned by create and update commands whose title is
	// empty after trimming.
	ErrBlankTitle = errors.New("title must not be blank")
)
