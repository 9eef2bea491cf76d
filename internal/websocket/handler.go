package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs binds an upgraded connection to the hub and gateway. It blocks
// until the connection closes.
func ServeWs(hub *Hub, gateway *ChatGateway, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		UserID:  userID,
		Send:    make(chan []byte, 256),
		Gateway: gateway,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
