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

type BoardHandler struct {
	session *session.Session
}

func NewBoardHandler(sess *session.Session) *BoardHandler {
	return &BoardHandler{session: sess}
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateBoardRequest struct {
	Title  *string        `json:"title"`
	Labels *[]model.Label `json:"labels"`
}

type BoardSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Columns   int    `json:"columns"`
	Tasks     int    `json:"tasks"`
	Current   bool   `json:"current"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func summarize(b *model.Board, currentID uuid.UUID) BoardSummary {
	return BoardSummary{
		ID:        b.ID.String(),
		Title:     b.Title,
		Columns:   len(b.Columns),
		Tasks:     state.TaskCount(b),
		Current:   b.ID == currentID,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

// Create creates a board with the three default columns and makes it current.
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	st, err := h.session.Dispatch(c.Request.Context(), state.CreateBoard{Title: req.Title})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	board := st.CurrentBoard()
	if board == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) GetAll(c *gin.Context) {
	st := h.session.Snapshot()

	response := make([]BoardSummary, len(st.Boards))
	for i := range st.Boards {
		response[i] = summarize(&st.Boards[i], st.CurrentBoardID)
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	st := h.session.Snapshot()
	i := st.BoardIndex(boardID)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}
	c.JSON(http.StatusOK, st.Boards[i])
}

// GetCurrent returns the currently selected board.
func (h *BoardHandler) GetCurrent(c *gin.Context) {
	st := h.session.Snapshot()
	board := st.CurrentBoard()
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No current board"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// SetCurrent switches the current-board pointer.
func (h *BoardHandler) SetCurrent(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if _, err := h.session.Dispatch(c.Request.Context(), state.SetCurrentBoard{BoardID: boardID}); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) Update(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cmd := state.UpdateBoard{
		BoardID: boardID,
		Patch: state.BoardPatch{
			Title:  req.Title,
			Labels: req.Labels,
		},
	}
	st, err := h.session.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, st.Boards[st.BoardIndex(boardID)])
}

func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if _, err := h.session.Dispatch(c.Request.Context(), state.DeleteBoard{BoardID: boardID}); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCompleted empties the current board's terminal column, keeping
// recurring tasks.
func (h *BoardHandler) ClearCompleted(c *gin.Context) {
	st, err := h.session.Dispatch(c.Request.Context(), state.ClearCompletedTasks{})
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, st.CurrentBoard())
}
