package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/session"
)

type LabelHandler struct {
	session *session.Session
}

func NewLabelHandler(sess *session.Session) *LabelHandler {
	return &LabelHandler{session: sess}
}

// GetByBoardID lists the distinct labels in use on a board, deduplicated by
// name since filters key labels by name.
func (h *LabelHandler) GetByBoardID(c *gin.Context) {
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

	board := &st.Boards[i]
	seen := make(map[string]bool)
	labels := make([]model.Label, 0)
	collect := func(ls []model.Label) {
		for _, l := range ls {
			if !seen[l.Name] {
				seen[l.Name] = true
				labels = append(labels, l)
			}
		}
	}

	collect(board.Labels)
	for j := range board.Columns {
		for k := range board.Columns[j].Tasks {
			collect(board.Columns[j].Tasks[k].Labels)
		}
	}
	c.JSON(http.StatusOK, labels)
}
