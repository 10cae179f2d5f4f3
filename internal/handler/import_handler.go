package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/session"
	"taskboard/internal/state"
)

type ImportHandler struct {
	session *session.Session
}

func NewImportHandler(sess *session.Session) *ImportHandler {
	return &ImportHandler{session: sess}
}

type ImportBoardsRequest struct {
	Boards     []model.Board `json:"boards" binding:"required"`
	ReplaceAll bool          `json:"replace_all"`
}

type ExportResponse struct {
	Boards         []model.Board `json:"boards"`
	CurrentBoardID string        `json:"current_board_id,omitempty"`
}

// Import merges or replaces the board collection. In append mode colliding
// board ids are reassigned so existing boards are never overwritten.
func (h *ImportHandler) Import(c *gin.Context) {
	var req ImportBoardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cmd := state.ImportBoards{Boards: req.Boards, ReplaceAll: req.ReplaceAll}
	st, err := h.session.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	response := make([]BoardSummary, len(st.Boards))
	for i := range st.Boards {
		response[i] = summarize(&st.Boards[i], st.CurrentBoardID)
	}
	c.JSON(http.StatusOK, response)
}

// Export returns the full serialized collection, the persisted snapshot
// shape.
func (h *ImportHandler) Export(c *gin.Context) {
	st := h.session.Snapshot()

	resp := ExportResponse{Boards: st.Boards}
	if st.CurrentBoardID != uuid.Nil {
		resp.CurrentBoardID = st.CurrentBoardID.String()
	}
	c.JSON(http.StatusOK, resp)
}
