// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws, the push-only notification socket.
// The hub fans Redis pub/sub payloads out to every socket a user holds.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()

		// Set by AuthRequired on the upgrade request
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"live notifications unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// Greet with the current unread count so clients can badge immediately.
		unread, cerr := s.notificationService.UnreadCount(ctx, userID)
		if cerr != nil {
			unread = 0
		}
		welcome, merr := json.Marshal(fiber.Map{
			"type":         "connected",
			"user_id":      userID,
			"unread_count": unread,
		})
		if merr == nil {
			client.TrySend(welcome)
		}

		// Write pump in a goroutine; the read pump blocks in the handler
		// goroutine and only processes control frames.
		go client.WritePump()
		client.ReadPump()
	})
}
