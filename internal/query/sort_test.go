package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
	"taskboard/internal/query"
)

func taskAt(title string, createdOffset int) model.Task {
	return model.Task{Title: title, CreatedAt: now.Add(time.Duration(createdOffset) * time.Minute)}
}

func TestSort_ManualPreservesOrder(t *testing.T) {
	tasks := []model.Task{taskAt("c", 0), taskAt("a", 1), taskAt("b", 2)}

	got := query.Sort(tasks, query.SortManual)

	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].Title)
	assert.Equal(t, "a", got[1].Title)
	assert.Equal(t, "b", got[2].Title)
}

func TestSort_Title(t *testing.T) {
	tasks := []model.Task{taskAt("banana", 0), taskAt("Apple", 1), taskAt("cherry", 2)}

	got := query.Sort(tasks, query.SortTitle)

	assert.Equal(t, "Apple", got[0].Title)
	assert.Equal(t, "banana", got[1].Title)
	assert.Equal(t, "cherry", got[2].Title)
}

func TestSort_CreatedAtNewestFirst(t *testing.T) {
	tasks := []model.Task{taskAt("old", 0), taskAt("new", 10), taskAt("mid", 5)}

	got := query.Sort(tasks, query.SortCreatedAt)

	assert.Equal(t, "new", got[0].Title)
	assert.Equal(t, "mid", got[1].Title)
	assert.Equal(t, "old", got[2].Title)
}

func TestSort_DueDateNilLast(t *testing.T) {
	tasks := []model.Task{
		dueTask("undated-1", nil),
		dueTask("later", days(5)),
		dueTask("soon", days(1)),
		dueTask("undated-2", nil),
	}

	got := query.Sort(tasks, query.SortDueDate)

	require.Len(t, got, 4)
	assert.Equal(t, "soon", got[0].Title)
	assert.Equal(t, "later", got[1].Title)
	// Undated tasks keep their relative order at the end.
	assert.Equal(t, "undated-1", got[2].Title)
	assert.Equal(t, "undated-2", got[3].Title)
}

func TestSort_PriorityMostUrgentFirst(t *testing.T) {
	tasks := []model.Task{
		{Title: "low", Priority: model.PriorityLow},
		{Title: "critical", Priority: model.PriorityCritical},
		{Title: "medium", Priority: model.PriorityMedium},
	}

	got := query.Sort(tasks, query.SortPriority)

	assert.Equal(t, "critical", got[0].Title)
	assert.Equal(t, "medium", got[1].Title)
	assert.Equal(t, "low", got[2].Title)
}

func TestSort_PriorityTieBreaksByCreatedAtDesc(t *testing.T) {
	older := taskAt("older", 0)
	newer := taskAt("newer", 10)
	older.Priority = model.PriorityHigh
	newer.Priority = model.PriorityHigh

	got := query.Sort([]model.Task{older, newer}, query.SortPriority)

	assert.Equal(t, "newer", got[0].Title)
	assert.Equal(t, "older", got[1].Title)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := []model.Task{taskAt("b", 0), taskAt("a", 1)}

	_ = query.Sort(tasks, query.SortTitle)

	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, "a", tasks[1].Title)
}
