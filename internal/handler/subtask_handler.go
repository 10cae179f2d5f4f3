package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/session"
	"taskboard/internal/state"
)

type SubTaskHandler struct {
	session *session.Session
}

func NewSubTaskHandler(sess *session.Session) *SubTaskHandler {
	return &SubTaskHandler{session: sess}
}

type AddSubTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *SubTaskHandler) Add(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req AddSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	st, err := h.session.Dispatch(c.Request.Context(), state.AddSubTask{TaskID: taskID, Title: req.Title})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	_, _, task := st.FindTask(taskID)
	c.JSON(http.StatusCreated, task.SubTasks[len(task.SubTasks)-1])
}

func (h *SubTaskHandler) Toggle(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}
	subTaskID, err := uuid.Parse(c.Param("subtask_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sub-task ID format"})
		return
	}

	st, err := h.session.Dispatch(c.Request.Context(), state.ToggleSubTask{TaskID: taskID, SubTaskID: subTaskID})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	_, _, task := st.FindTask(taskID)
	c.JSON(http.StatusOK, task)
}

func (h *SubTaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}
	subTaskID, err := uuid.Parse(c.Param("subtask_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sub-task ID format"})
		return
	}

	if _, err := h.session.Dispatch(c.Request.Context(), state.DeleteSubTask{TaskID: taskID, SubTaskID: subTaskID}); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
