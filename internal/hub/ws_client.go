package hub

import (
	"log"
	"sync"
	"time"

	"hostelcare/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBufferSize = 64
)

// WebSocketClient implements Client over a gorilla websocket connection.
// The connection is push-only; anything the browser sends is discarded.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.PushEvent

	closeOnce sync.Once
}

func NewWebSocketClient(userID string, conn *websocket.Conn, hub *ManagerService) *WebSocketClient {
	return &WebSocketClient{
		UserID: userID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.PushEvent, sendBufferSize),
	}
}

func (c *WebSocketClient) GetUserID() string                        { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.PushEvent { return c.Send }

func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes Send, which makes writePump close the connection.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN: Websocket of user %s closed: %v", c.UserID, err)
			}
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				log.Printf("WARN: Failed to push %s event to user %s: %v", event.Type, c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
