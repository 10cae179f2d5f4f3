package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/query"
	"taskboard/internal/session"
	"taskboard/internal/state"
	"taskboard/internal/view"
)

type ViewHandler struct {
	session *session.Session
	now     func() time.Time
}

func NewViewHandler(sess *session.Session) *ViewHandler {
	return &ViewHandler{session: sess, now: time.Now}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Table serves the board flattened into filtered, sorted rows.
// Query params: filter, labels (comma-separated names), priorities
// (comma-separated), sort.
func (h *ViewHandler) Table(c *gin.Context) {
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

	filter := query.TaskFilter{
		Type:       query.FilterType(c.DefaultQuery("filter", string(query.FilterAll))),
		LabelNames: splitParam(c.Query("labels")),
	}
	for _, raw := range splitParam(c.Query("priorities")) {
		p := model.Priority(raw)
		if !p.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		filter.Priorities = append(filter.Priorities, p)
	}
	key := query.SortKey(c.DefaultQuery("sort", string(query.SortManual)))

	rows := view.Table(st.Boards[i], filter, key, h.now())
	c.JSON(http.StatusOK, rows)
}

// Calendar serves tasks grouped by due day over [start, end), recurring
// tasks expanded into virtual occurrences. Query params: start, end
// (RFC 3339 or 2006-01-02).
func (h *ViewHandler) Calendar(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}
	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date must precede end date"})
		return
	}

	st := h.session.Snapshot()
	i := st.BoardIndex(boardID)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	c.JSON(http.StatusOK, view.Calendar(st.Boards[i], start, end))
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// MaintenanceHandler exposes the overdue-recurring sweep for manual runs;
// the session also schedules it on a timer.
type MaintenanceHandler struct {
	session *session.Session
}

func NewMaintenanceHandler(sess *session.Session) *MaintenanceHandler {
	return &MaintenanceHandler{session: sess}
}

func (h *MaintenanceHandler) Sweep(c *gin.Context) {
	if _, err := h.session.Dispatch(c.Request.Context(), state.CheckOverdueRecurringTasks{}); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
