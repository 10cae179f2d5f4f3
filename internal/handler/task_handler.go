package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/session"
	"taskboard/internal/state"
)

type TaskHandler struct {
	session *session.Session
}

func NewTaskHandler(sess *session.Session) *TaskHandler {
	return &TaskHandler{session: sess}
}

type CreateTaskRequest struct {
	ColumnID    string                 `json:"column_id" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	DueDate     *time.Time             `json:"due_date"`
	Priority    string                 `json:"priority"`
	Labels      []model.Label          `json:"labels"`
	Files       []model.FileAttachment `json:"files"`
	Recurrence  *model.Recurrence      `json:"recurrence"`
}

type UpdateTaskRequest struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	DueDate         *time.Time              `json:"due_date"`
	ClearDueDate    bool                    `json:"clear_due_date"`
	Priority        *string                 `json:"priority"`
	Labels          *[]model.Label          `json:"labels"`
	Files           *[]model.FileAttachment `json:"files"`
	Recurrence      *model.Recurrence       `json:"recurrence"`
	ClearRecurrence bool                    `json:"clear_recurrence"`
}

type MoveTaskRequest struct {
	SourceColumnID string `json:"source_column_id" binding:"required"`
	TargetColumnID string `json:"target_column_id" binding:"required"`
	TargetIndex    int    `json:"target_index"`
}

func parsePriority(raw string) (model.Priority, bool) {
	if raw == "" {
		return model.PriorityNone, true
	}
	p := model.Priority(raw)
	return p, p.Valid()
}

// Create appends a task to the end of the column's sequence.
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}
	priority, ok := parsePriority(req.Priority)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	cmd := state.CreateTask{
		ColumnID: columnID,
		Fields: state.TaskFields{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Priority:    priority,
			Labels:      req.Labels,
			Files:       req.Files,
			Recurrence:  req.Recurrence,
		},
	}
	st, err := h.session.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	_, col := st.FindColumn(columnID)
	c.JSON(http.StatusCreated, col.Tasks[len(col.Tasks)-1])
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := state.TaskPatch{
		Title:           req.Title,
		Description:     req.Description,
		DueDate:         req.DueDate,
		ClearDueDate:    req.ClearDueDate,
		Labels:          req.Labels,
		Files:           req.Files,
		Recurrence:      req.Recurrence,
		ClearRecurrence: req.ClearRecurrence,
	}
	if req.Priority != nil {
		priority, ok := parsePriority(*req.Priority)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		patch.Priority = &priority
	}

	st, err := h.session.Dispatch(c.Request.Context(), state.UpdateTask{TaskID: taskID, Patch: patch})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	_, _, task := st.FindTask(taskID)
	c.JSON(http.StatusOK, task)
}

// Delete removes the task from the named column. The column id comes from
// the query string because deletion addresses the owning sequence.
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}
	columnID, err := uuid.Parse(c.Query("column_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if _, err := h.session.Dispatch(c.Request.Context(), state.DeleteTask{TaskID: taskID, ColumnID: columnID}); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move relocates a task between columns; moving into or out of the terminal
// column toggles completion, with recurring tasks rolling forward.
func (h *TaskHandler) Move(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	sourceID, err := uuid.Parse(req.SourceColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}
	targetID, err := uuid.Parse(req.TargetColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	cmd := state.MoveTask{
		TaskID:         taskID,
		SourceColumnID: sourceID,
		TargetColumnID: targetID,
		TargetIndex:    req.TargetIndex,
	}
	st, err := h.session.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	_, _, task := st.FindTask(taskID)
	c.JSON(http.StatusOK, task)
}
