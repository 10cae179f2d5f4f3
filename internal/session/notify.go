package session

import (
	log "github.com/sirupsen/logrus"

	"taskboard/internal/state"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(kind, message string) {
	logger := n.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger.WithField("kind", kind).Info(message)
}

// describe maps a command to its notification. Selection changes, imports
// and maintenance sweeps are not announced.
func describe(cmd state.Command) (kind, message string, ok bool) {
	switch cmd.(type) {
	case state.CreateBoard:
		return "board.created", "Board created", true
	case state.UpdateBoard:
		return "board.updated", "Board updated", true
	case state.DeleteBoard:
		return "board.deleted", "Board deleted", true
	case state.CreateColumn:
		return "column.created", "Column created", true
	case state.UpdateColumn:
		return "column.updated", "Column updated", true
	case state.DeleteColumn:
		return "column.deleted", "Column deleted", true
	case state.CreateTask:
		return "task.created", "Task created", true
	case state.UpdateTask:
		return "task.updated", "Task updated", true
	case state.DeleteTask:
		return "task.deleted", "Task deleted", true
	case state.MoveTask:
		return "task.moved", "Task moved", true
	case state.ClearCompletedTasks:
		return "task.cleared", "Completed tasks cleared", true
	case state.AddSubTask:
		return "subtask.created", "Sub-task added", true
	case state.ToggleSubTask:
		return "subtask.updated", "Sub-task toggled", true
	case state.DeleteSubTask:
		return "subtask.deleted", "Sub-task deleted", true
	}
	return "", "", false
}
