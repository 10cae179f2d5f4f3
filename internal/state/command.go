package state

import (
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Command is the closed set of board mutations. The processor switches
// exhaustively over the concrete types below.
type Command interface {
	isCommand()
}

type CreateBoard struct {
	Title string
}

type SetCurrentBoard struct {
	BoardID uuid.UUID
}

type UpdateBoard struct {
	BoardID uuid.UUID
	Patch   BoardPatch
}

type DeleteBoard struct {
	BoardID uuid.UUID
}

type CreateColumn struct {
	BoardID uuid.UUID
	Title   string
	Color   string
}

type UpdateColumn struct {
	ColumnID uuid.UUID
	Patch    ColumnPatch
}

type DeleteColumn struct {
	ColumnID uuid.UUID
}

type CreateTask struct {
	ColumnID uuid.UUID
	Fields   TaskFields
}

type UpdateTask struct {
	TaskID uuid.UUID
	Patch  TaskPatch
}

type DeleteTask struct {
	TaskID   uuid.UUID
	ColumnID uuid.UUID
}

// MoveTask relocates a task between columns (or within one) and applies the
// completion side effects of entering or leaving the terminal column.
type MoveTask struct {
	TaskID         uuid.UUID
	SourceColumnID uuid.UUID
	TargetColumnID uuid.UUID
	TargetIndex    int
}

// ClearCompletedTasks empties the current board's terminal column, keeping
// recurring tasks so they can roll forward.
type ClearCompletedTasks struct{}

type AddSubTask struct {
	TaskID uuid.UUID
	Title  string
}

type ToggleSubTask struct {
	TaskID    uuid.UUID
	SubTaskID uuid.UUID
}

type DeleteSubTask struct {
	TaskID    uuid.UUID
	SubTaskID uuid.UUID
}

type ImportBoards struct {
	Boards     []model.Board
	ReplaceAll bool
}

// CheckOverdueRecurringTasks is the periodic maintenance sweep: overdue,
// uncompleted recurring tasks outside the leftmost column are relocated to
// the leftmost column. Idempotent.
type CheckOverdueRecurringTasks struct{}

// BoardPatch carries partial board fields; nil means "leave unchanged".
type BoardPatch struct {
	Title  *string
	Labels *[]model.Label
}

// ColumnPatch carries partial column fields; nil means "leave unchanged".
type ColumnPatch struct {
	Title         *string
	Color         *string
	DeletionState *model.DeletionState
}

// TaskFields are the caller-supplied fields of a new task.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.Priority
	Labels      []model.Label
	Files       []model.FileAttachment
	Recurrence  *model.Recurrence
}

// TaskPatch carries partial task fields; nil means "leave unchanged". The
// Clear flags reset the corresponding nullable field.
type TaskPatch struct {
	Title           *string
	Description     *string
	DueDate         *time.Time
	ClearDueDate    bool
	Priority        *model.Priority
	Labels          *[]model.Label
	Files           *[]model.FileAttachment
	Recurrence      *model.Recurrence
	ClearRecurrence bool
}

func (CreateBoard) isCommand()                {}
func (SetCurrentBoard) isCommand()            {}
func (UpdateBoard) isCommand()                {}
func (DeleteBoard) isCommand()                {}
func (CreateColumn) isCommand()               {}
func (UpdateColumn) isCommand()               {}
func (DeleteColumn) isCommand()               {}
func (CreateTask) isCommand()                 {}
func (UpdateTask) isCommand()                 {}
func (DeleteTask) isCommand()                 {}
func (MoveTask) isCommand()                   {}
func (ClearCompletedTasks) isCommand()        {}
func (AddSubTask) isCommand()                 {}
func (ToggleSubTask) isCommand()              {}
func (DeleteSubTask) isCommand()              {}
func (ImportBoards) isCommand()               {}
func (CheckOverdueRecurringTasks) isCommand() {}
