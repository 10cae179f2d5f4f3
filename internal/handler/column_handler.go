package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/session"
	"taskboard/internal/state"
)

type ColumnHandler struct {
	session *session.Session
}

func NewColumnHandler(sess *session.Session) *ColumnHandler {
	return &ColumnHandler{session: sess}
}

type CreateColumnRequest struct {
	BoardID string `json:"board_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Color   string `json:"color"`
}

type UpdateColumnRequest struct {
	Title         *string `json:"title"`
	Color         *string `json:"color"`
	DeletionState *string `json:"deletion_state"`
}

// Create appends an empty column to the board.
func (h *ColumnHandler) Create(c *gin.Context) {
	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	cmd := state.CreateColumn{BoardID: boardID, Title: req.Title, Color: req.Color}
	st, err := h.session.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	board := st.Boards[st.BoardIndex(boardID)]
	c.JSON(http.StatusCreated, board.Columns[len(board.Columns)-1])
}

func (h *ColumnHandler) Update(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := state.ColumnPatch{Title: req.Title, Color: req.Color}
	if req.DeletionState != nil {
		ds := model.DeletionState(*req.DeletionState)
		switch ds {
		case model.ColumnActive, model.ColumnMarkedForDeletion, model.ColumnDeleted:
			patch.DeletionState = &ds
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deletion state"})
			return
		}
	}

	st, err := h.session.Dispatch(c.Request.Context(), state.UpdateColumn{ColumnID: columnID, Patch: patch})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	_, col := st.FindColumn(columnID)
	c.JSON(http.StatusOK, col)
}

// Delete removes the column and, implicitly, all its tasks.
func (h *ColumnHandler) Delete(c *gin.Context) {
	columnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if _, err := h.session.Dispatch(c.Request.Context(), state.DeleteColumn{ColumnID: columnID}); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
