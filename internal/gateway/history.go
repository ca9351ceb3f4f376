package gateway

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bardlex/minegate/internal/database/postgres"
	"github.com/bardlex/minegate/pkg/errors"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// HistoryResponse is the body of GET /history
type HistoryResponse struct {
	Sessions []*postgres.SessionRecord `json:"sessions"`
}

// ListHistory handles GET /history
func (h *Handler) ListHistory(c *gin.Context) {
	const op = "list_history"

	limit, err := queryInt(c, op, "limit", defaultHistoryLimit, 1)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	offset, err := queryInt(c, op, "offset", 0, 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	sessions, err := h.history.ListSessions(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, errors.Wrap(err, errors.ErrorTypeStorage, op, "session history is unavailable"))
		return
	}
	if sessions == nil {
		sessions = []*postgres.SessionRecord{}
	}

	c.JSON(http.StatusOK, HistoryResponse{Sessions: sessions})
}

// GetHistory handles GET /history/:session_id
func (h *Handler) GetHistory(c *gin.Context) {
	const op = "get_history"

	sessionID := c.Param("session_id")
	if err := checkIdentifier(op, sessionID); err != nil {
		h.respondError(c, err)
		return
	}

	rec, err := h.history.GetSession(c.Request.Context(), sessionID)
	if stderrors.Is(err, postgres.ErrSessionNotFound) {
		h.respondError(c, errors.Wrap(err, errors.ErrorTypeNotFound, op, "session not found in history"))
		return
	}
	if err != nil {
		h.respondError(c, errors.Wrap(err, errors.ErrorTypeStorage, op, "session history is unavailable"))
		return
	}

	c.JSON(http.StatusOK, rec)
}

// queryInt parses an optional integer query parameter no smaller than floor
func queryInt(c *gin.Context, op, name string, def, floor int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < floor {
		return 0, errors.New(errors.ErrorTypeValidation, op,
			name+": must be an integer greater than or equal to "+strconv.Itoa(floor))
	}
	return n, nil
}
