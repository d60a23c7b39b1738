package handler

import (
	"net/http"

	"hostelcare/backend/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades an authenticated request and registers the
// connection with the hub.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID, _ := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}

	client := hub.NewWebSocketClient(userID, conn, h.Hub)
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}
	client.Run()
}
