package logsHandler

import (
	"github.com/gofiber/websocket/v2"
	"time"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// handleLogStream pushes every log entry to the viewer until either side
// hangs up. Anything the viewer sends is discarded.
func (h *LogsHandler) handleLogStream(c *websocket.Conn) {
	entries, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	h.log.Info("Live log viewer connected")
	defer h.log.Info("Live log viewer disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Errorf("Live log websocket error: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				return
			}
			if err := c.WriteJSON(entry); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
