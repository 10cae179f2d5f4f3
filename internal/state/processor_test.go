package state_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

var baseTime = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

// seqIDs yields deterministic, strictly increasing uuids.
func seqIDs() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
	}
}

func newTestProcessor() *state.Processor {
	return state.NewProcessor(func() time.Time { return baseTime }, seqIDs())
}

// boardWithTasks builds a board through the processor and creates the given
// task titles in its first column.
func boardWithTasks(t *testing.T, p *state.Processor, titles ...string) (state.State, model.Board) {
	t.Helper()

	st, err := p.Apply(state.State{}, state.CreateBoard{Title: "Work"})
	require.NoError(t, err)
	board := st.Boards[0]

	for _, title := range titles {
		st, err = p.Apply(st, state.CreateTask{
			ColumnID: board.Columns[0].ID,
			Fields:   state.TaskFields{Title: title},
		})
		require.NoError(t, err)
	}
	return st, st.Boards[0]
}

// assertCompletionInvariant checks that completed tasks live only in the
// terminal column.
func assertCompletionInvariant(t *testing.T, st state.State) {
	t.Helper()
	for _, b := range st.Boards {
		terminal := b.TerminalColumnID()
		for _, col := range b.Columns {
			for _, task := range col.Tasks {
				if task.CompletedAt != nil {
					assert.Equal(t, terminal, col.ID,
						"completed task %q outside terminal column", task.Title)
				}
			}
		}
	}
}

func TestCreateBoard_DefaultColumnsAndCurrent(t *testing.T) {
	p := newTestProcessor()

	st, err := p.Apply(state.State{}, state.CreateBoard{Title: "Work"})

	assert.NoError(t, err)
	require.Len(t, st.Boards, 1)
	board := st.Boards[0]
	require.Len(t, board.Columns, 3)
	assert.Equal(t, "To Do", board.Columns[0].Title)
	assert.Equal(t, "In Progress", board.Columns[1].Title)
	assert.Equal(t, "Complete", board.Columns[2].Title)
	assert.Equal(t, board.ID, st.CurrentBoardID)
	assert.True(t, board.IsTerminalColumn(board.Columns[2].ID))
}

func TestCreateBoard_BlankTitle(t *testing.T) {
	p := newTestProcessor()

	st, err := p.Apply(state.State{}, state.CreateBoard{Title: "   "})

	assert.ErrorIs(t, err, state.ErrBlankTitle)
	assert.Empty(t, st.Boards)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a", "b")

	before := st.Clone()
	_, err := p.Apply(st, state.MoveTask{
		TaskID:         board.Columns[0].Tasks[0].ID,
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[2].ID,
		TargetIndex:    0,
	})

	assert.NoError(t, err)
	assert.Equal(t, before, st)
}

func TestSetCurrentBoard_NotFound(t *testing.T) {
	p := newTestProcessor()
	st, _ := boardWithTasks(t, p)

	next, err := p.Apply(st, state.SetCurrentBoard{BoardID: uuid.New()})

	assert.ErrorIs(t, err, state.ErrBoardNotFound)
	assert.Equal(t, st, next)
}

func TestDeleteBoard_CurrentFallsBackToFirst(t *testing.T) {
	p := newTestProcessor()
	st, _ := boardWithTasks(t, p)
	st, err := p.Apply(st, state.CreateBoard{Title: "Second"})
	require.NoError(t, err)

	first, second := st.Boards[0], st.Boards[1]
	assert.Equal(t, second.ID, st.CurrentBoardID)

	st, err = p.Apply(st, state.DeleteBoard{BoardID: second.ID})

	assert.NoError(t, err)
	require.Len(t, st.Boards, 1)
	assert.Equal(t, first.ID, st.Boards[0].ID)
	assert.Equal(t, first.ID, st.CurrentBoardID)
}

func TestDeleteBoard_LastBoardClearsCurrent(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	st, err := p.Apply(st, state.DeleteBoard{BoardID: board.ID})

	assert.NoError(t, err)
	assert.Empty(t, st.Boards)
	assert.Equal(t, uuid.Nil, st.CurrentBoardID)
}

func TestCreateTask_AppendsAtEnd(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "first", "second")

	tasks := st.Boards[0].Columns[0].Tasks
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, model.PriorityNone, tasks[0].Priority)
	assert.Equal(t, board.ID, st.CurrentBoardID)
}

func TestCreateTask_RecurrenceAssignsRecurrenceID(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	st, err := p.Apply(st, state.CreateTask{
		ColumnID: board.Columns[0].ID,
		Fields: state.TaskFields{
			Title:      "standup notes",
			Recurrence: &model.Recurrence{Enabled: true, Pattern: model.RecurrenceDaily, Interval: 1},
		},
	})

	assert.NoError(t, err)
	task := st.Boards[0].Columns[0].Tasks[0]
	assert.NotNil(t, task.RecurrenceID)
	assert.Equal(t, 1, task.OccurrenceCount)
}

func TestMoveTask_IntoTerminalSetsCompletedAt(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "ship it")
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err := p.Apply(st, state.MoveTask{
		TaskID:         task.ID,
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[2].ID,
		TargetIndex:    0,
	})

	assert.NoError(t, err)
	moved := st.Boards[0].Columns[2].Tasks[0]
	require.NotNil(t, moved.CompletedAt)
	assert.Equal(t, baseTime, *moved.CompletedAt)
	assert.Empty(t, st.Boards[0].Columns[0].Tasks)
	assertCompletionInvariant(t, st)
}

func TestMoveTask_OutOfTerminalClearsCompletedAt(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "ship it")
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err := p.Apply(st, state.MoveTask{
		TaskID:         task.ID,
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[2].ID,
		TargetIndex:    0,
	})
	require.NoError(t, err)

	st, err = p.Apply(st, state.MoveTask{
		TaskID:         task.ID,
		SourceColumnID: board.Columns[2].ID,
		TargetColumnID: board.Columns[1].ID,
		TargetIndex:    0,
	})

	assert.NoError(t, err)
	moved := st.Boards[0].Columns[1].Tasks[0]
	assert.Nil(t, moved.CompletedAt)
	assertCompletionInvariant(t, st)
}

func TestMoveTask_SameColumnReorderUsesPostRemovalIndex(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a", "b", "c")
	colID := board.Columns[0].ID
	taskA := st.Boards[0].Columns[0].Tasks[0]

	st, err := p.Apply(st, state.MoveTask{
		TaskID:         taskA.ID,
		SourceColumnID: colID,
		TargetColumnID: colID,
		TargetIndex:    2,
	})

	assert.NoError(t, err)
	tasks := st.Boards[0].Columns[0].Tasks
	require.Len(t, tasks, 3)
	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, "c", tasks[1].Title)
	assert.Equal(t, "a", tasks[2].Title)
}

func TestMoveTask_NoOpReorderKeepsSequence(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a", "b", "c")
	colID := board.Columns[0].ID
	taskB := st.Boards[0].Columns[0].Tasks[1]
	before := st.Boards[0].Columns[0].Tasks

	st, err := p.Apply(st, state.MoveTask{
		TaskID:         taskB.ID,
		SourceColumnID: colID,
		TargetColumnID: colID,
		TargetIndex:    1,
	})

	assert.NoError(t, err)
	after := st.Boards[0].Columns[0].Tasks
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Title, after[i].Title)
	}
}

func TestMoveTask_ClampsTargetIndex(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a")
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err := p.Apply(st, state.MoveTask{
		TaskID:         task.ID,
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[1].ID,
		TargetIndex:    99,
	})

	assert.NoError(t, err)
	assert.Len(t, st.Boards[0].Columns[1].Tasks, 1)
}

func TestMoveTask_ConservesTaskCount(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a", "b", "c", "d")
	before := state.TaskCount(&st.Boards[0])

	moves := []state.MoveTask{
		{TaskID: st.Boards[0].Columns[0].Tasks[0].ID, SourceColumnID: board.Columns[0].ID, TargetColumnID: board.Columns[1].ID, TargetIndex: 0},
		{TaskID: st.Boards[0].Columns[0].Tasks[1].ID, SourceColumnID: board.Columns[0].ID, TargetColumnID: board.Columns[2].ID, TargetIndex: 5},
		{TaskID: st.Boards[0].Columns[0].Tasks[2].ID, SourceColumnID: board.Columns[0].ID, TargetColumnID: board.Columns[0].ID, TargetIndex: 0},
	}
	for _, m := range moves {
		var err error
		st, err = p.Apply(st, m)
		require.NoError(t, err)
		assert.Equal(t, before, state.TaskCount(&st.Boards[0]))
	}
	assertCompletionInvariant(t, st)
}

func TestMoveTask_TaskNotFound(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a")

	next, err := p.Apply(st, state.MoveTask{
		TaskID:         uuid.New(),
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[1].ID,
	})

	assert.ErrorIs(t, err, state.ErrTaskNotFound)
	assert.Equal(t, st, next)
}

func TestMoveTask_RecurrenceRollsForward(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	due := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC) // a Friday
	st, err := p.Apply(st, state.CreateTask{
		ColumnID: board.Columns[0].ID,
		Fields: state.TaskFields{
			Title:   "weekly review",
			DueDate: &due,
			Recurrence: &model.Recurrence{
				Enabled:    true,
				Pattern:    model.RecurrenceWeekly,
				Interval:   1,
				DaysOfWeek: []int{5},
			},
		},
	})
	require.NoError(t, err)
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err = p.Apply(st, state.MoveTask{
		TaskID:         task.ID,
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[2].ID,
		TargetIndex:    0,
	})

	assert.NoError(t, err)
	rolled := st.Boards[0].Columns[2].Tasks[0]
	assert.Nil(t, rolled.CompletedAt)
	require.NotNil(t, rolled.DueDate)
	assert.Equal(t, time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC), *rolled.DueDate)
	assert.Equal(t, 2, rolled.OccurrenceCount)
}

func TestMoveTask_RecurrenceExhaustedStaysCompleted(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	due := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	st, err := p.Apply(st, state.CreateTask{
		ColumnID: board.Columns[0].ID,
		Fields: state.TaskFields{
			Title:   "once only",
			DueDate: &due,
			Recurrence: &model.Recurrence{
				Enabled:        true,
				Pattern:        model.RecurrenceDaily,
				Interval:       1,
				MaxOccurrences: 1,
			},
		},
	})
	require.NoError(t, err)
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err = p.Apply(st, state.MoveTask{
		TaskID:         task.ID,
		SourceColumnID: board.Columns[0].ID,
		TargetColumnID: board.Columns[2].ID,
		TargetIndex:    0,
	})

	assert.NoError(t, err)
	done := st.Boards[0].Columns[2].Tasks[0]
	assert.NotNil(t, done.CompletedAt)
	assert.Equal(t, due, *done.DueDate)
	assert.Equal(t, 1, done.OccurrenceCount)
}

func TestUpdateTask_MergesPatch(t *testing.T) {
	p := newTestProcessor()
	st, _ := boardWithTasks(t, p, "draft")
	task := st.Boards[0].Columns[0].Tasks[0]

	title := "final"
	priority := model.PriorityHigh
	st, err := p.Apply(st, state.UpdateTask{
		TaskID: task.ID,
		Patch:  state.TaskPatch{Title: &title, Priority: &priority},
	})

	assert.NoError(t, err)
	updated := st.Boards[0].Columns[0].Tasks[0]
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
	assert.Equal(t, baseTime, updated.UpdatedAt)
}

func TestUpdateTask_ClearDueDate(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	due := baseTime.AddDate(0, 0, 2)
	st, err := p.Apply(st, state.CreateTask{
		ColumnID: board.Columns[0].ID,
		Fields:   state.TaskFields{Title: "dated", DueDate: &due},
	})
	require.NoError(t, err)
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err = p.Apply(st, state.UpdateTask{
		TaskID: task.ID,
		Patch:  state.TaskPatch{ClearDueDate: true},
	})

	assert.NoError(t, err)
	assert.Nil(t, st.Boards[0].Columns[0].Tasks[0].DueDate)
}

func TestDeleteColumn_RemovesTasks(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p, "a", "b")

	st, err := p.Apply(st, state.DeleteColumn{ColumnID: board.Columns[0].ID})

	assert.NoError(t, err)
	require.Len(t, st.Boards[0].Columns, 2)
	assert.Equal(t, 0, state.TaskCount(&st.Boards[0]))
}

func TestClearCompletedTasks_KeepsRecurring(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)
	terminal := board.Columns[2].ID

	st, err := p.Apply(st, state.CreateTask{
		ColumnID: terminal,
		Fields: state.TaskFields{
			Title:      "recurring",
			Recurrence: &model.Recurrence{Enabled: true, Pattern: model.RecurrenceDaily, Interval: 1},
		},
	})
	require.NoError(t, err)
	st, err = p.Apply(st, state.CreateTask{
		ColumnID: terminal,
		Fields:   state.TaskFields{Title: "one-off"},
	})
	require.NoError(t, err)

	st, err = p.Apply(st, state.ClearCompletedTasks{})

	assert.NoError(t, err)
	tasks := st.Boards[0].Columns[2].Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "recurring", tasks[0].Title)
}

func TestSubTask_AddToggleDelete(t *testing.T) {
	p := newTestProcessor()
	st, _ := boardWithTasks(t, p, "parent")
	task := st.Boards[0].Columns[0].Tasks[0]

	st, err := p.Apply(st, state.AddSubTask{TaskID: task.ID, Title: "step one"})
	require.NoError(t, err)
	sub := st.Boards[0].Columns[0].Tasks[0].SubTasks[0]
	assert.False(t, sub.Completed)

	st, err = p.Apply(st, state.ToggleSubTask{TaskID: task.ID, SubTaskID: sub.ID})
	require.NoError(t, err)
	assert.True(t, st.Boards[0].Columns[0].Tasks[0].SubTasks[0].Completed)

	st, err = p.Apply(st, state.DeleteSubTask{TaskID: task.ID, SubTaskID: sub.ID})
	require.NoError(t, err)
	assert.Empty(t, st.Boards[0].Columns[0].Tasks[0].SubTasks)

	_, err = p.Apply(st, state.ToggleSubTask{TaskID: task.ID, SubTaskID: sub.ID})
	assert.ErrorIs(t, err, state.ErrSubTaskNotFound)
}

func TestImportBoards_AppendReassignsCollidingIDs(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	imported := board.Clone()
	imported.Title = "Imported"
	st, err := p.Apply(st, state.ImportBoards{Boards: []model.Board{imported}})

	assert.NoError(t, err)
	require.Len(t, st.Boards, 2)
	assert.NotEqual(t, st.Boards[0].ID, st.Boards[1].ID)
	assert.Equal(t, "Imported", st.Boards[1].Title)
	// Append mode keeps the existing current board.
	assert.Equal(t, board.ID, st.CurrentBoardID)
}

func TestImportBoards_ReplaceAllSelectsFirstImport(t *testing.T) {
	p := newTestProcessor()
	st, _ := boardWithTasks(t, p)

	incoming := model.Board{ID: uuid.New(), Title: "Fresh", Columns: []model.Column{}}
	st, err := p.Apply(st, state.ImportBoards{Boards: []model.Board{incoming}, ReplaceAll: true})

	assert.NoError(t, err)
	require.Len(t, st.Boards, 1)
	assert.Equal(t, incoming.ID, st.Boards[0].ID)
	assert.Equal(t, incoming.ID, st.CurrentBoardID)
}

func TestCheckOverdueRecurringTasks_RelocatesAndIsIdempotent(t *testing.T) {
	p := newTestProcessor()
	st, board := boardWithTasks(t, p)

	overdue := baseTime.AddDate(0, 0, -3)
	st, err := p.Apply(st, state.CreateTask{
		ColumnID: board.Columns[1].ID,
		Fields: state.TaskFields{
			Title:      "missed",
			DueDate:    &overdue,
			Recurrence: &model.Recurrence{Enabled: true, Pattern: model.RecurrenceDaily, Interval: 1},
		},
	})
	require.NoError(t, err)
	st, err = p.Apply(st, state.CreateTask{
		ColumnID: board.Columns[1].ID,
		Fields:   state.TaskFields{Title: "non-recurring", DueDate: &overdue},
	})
	require.NoError(t, err)

	st, err = p.Apply(st, state.CheckOverdueRecurringTasks{})
	require.NoError(t, err)

	leftmost := st.Boards[0].Columns[0].Tasks
	require.Len(t, leftmost, 1)
	assert.Equal(t, "missed", leftmost[0].Title)
	assert.Len(t, st.Boards[0].Columns[1].Tasks, 1)

	// Running the sweep again changes nothing.
	again, err := p.Apply(st, state.CheckOverdueRecurringTasks{})
	require.NoError(t, err)
	assert.Equal(t, st.Boards, again.Boards)
}
