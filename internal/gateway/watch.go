package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	watchWriteWait = 10 * time.Second

	// Application close codes carry the HTTP status of the failure: 4000+status
	closeCodeBase = 4000
)

// WatchStatus handles GET /mine/:session_id/watch. It streams StatusView
// frames whenever the status changes and closes once mining stops, a
// solution is found or the client goes away.
func (h *Handler) WatchStatus(c *gin.Context) {
	const op = "watch_status"

	sessionID := c.Param("session_id")
	if err := checkIdentifier(op, sessionID); err != nil {
		h.respondError(c, err)
		return
	}

	h.watches.Add(1)
	defer h.watches.Done()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already answered with an HTTP error
		h.logger.WithContext(c.Request.Context()).WithError(err).Info("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// The request context of a hijacked connection ends only with the server
	reqCtx := c.Request.Context()
	ctx, cancel := context.WithCancel(reqCtx)
	defer cancel()

	// The reader only notices client disconnects and close frames
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger := h.logger.WithContext(ctx).WithSession(sessionID)
	logger.Debug("watch started")

	ticker := time.NewTicker(h.watchInterval)
	defer ticker.Stop()

	var last []byte
	for {
		view, err := h.fetchStatus(ctx, sessionID)
		if err != nil {
			if ctx.Err() != nil {
				goingAway(reqCtx, conn)
				return
			}
			status, body := errorResponse(err)
			logger.WithError(err).Info("watch stopped by error", "status", status)
			h.writeFrame(conn, body)
			closeWatch(conn, closeCodeBase+status, body.Code)
			return
		}

		payload, err := json.Marshal(view)
		if err != nil {
			closeWatch(conn, websocket.CloseInternalServerErr, "encoding failed")
			return
		}
		if !bytes.Equal(payload, last) {
			if err := writeMessage(conn, payload); err != nil {
				return
			}
			last = payload
		}

		if view.Finished() {
			logger.Debug("watch finished", "solution_found", view.SolutionFound)
			closeWatch(conn, websocket.CloseNormalClosure, "mining finished")
			return
		}

		select {
		case <-ctx.Done():
			goingAway(reqCtx, conn)
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := writeMessage(conn, payload); err != nil {
		h.logger.WithError(err).Debug("watch frame not delivered")
	}
}

func writeMessage(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(watchWriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// goingAway tells the client the server is shutting down. A watch ended by
// the client itself gets no close frame.
func goingAway(reqCtx context.Context, conn *websocket.Conn) {
	if reqCtx.Err() != nil {
		closeWatch(conn, websocket.CloseGoingAway, "server shutting down")
	}
}

func closeWatch(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(watchWriteWait))
}
