package http

import (
	"net/http"
	"time"

	"github.com/Mephistophillis/UnityCourseTracker/internal/events"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: 3 * time.Second,
}

var (
	writeWait    = 10 * time.Second
	pongWait     = 30 * time.Second
	pingInterval = pongWait * 9 / 10
)

// ProgressSocketHandler streams progress events to open roster views
type ProgressSocketHandler struct {
	hub    *events.Hub
	logger *zap.Logger
}

func NewProgressSocketHandler(Hub *events.Hub, Logger *zap.Logger) *ProgressSocketHandler {
	return &ProgressSocketHandler{Hub, Logger}
}

// HandleSubscribe upgrade the connection and push events until either side
// goes away, a ping/pong heartbeat reaps dead peers
func (psh *ProgressSocketHandler) HandleSubscribe(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	id, ch, err := psh.hub.Subscribe()
	if err != nil {
		conn.Close()
		return err
	}
	psh.logger.Debug("Progress subscriber connected", zap.String("subscriber.id", id))

	go psh.writeRoutine(conn, id, ch)
	go psh.readRoutine(conn, id)
	return nil
}

func (psh *ProgressSocketHandler) writeRoutine(conn *websocket.Conn, id string, ch <-chan events.ProgressEvent) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		psh.hub.Unsubscribe(id)
		conn.Close()
	}()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readRoutine drains client frames, the subscription is one-way and the read
// side only exists to notice the peer closing
func (psh *ProgressSocketHandler) readRoutine(conn *websocket.Conn, id string) {
	defer func() {
		psh.hub.Unsubscribe(id)
		conn.Close()
	}()
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			psh.logger.Debug("Progress subscriber disconnected", zap.String("subscriber.id", id))
			return
		}
	}
}
