/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file contains the WebSocket upgrade handler: connection upgrade and
starting the client read/write loops. Rate limiting runs as route middleware
before this handler; identity and room placement happen afterwards over
events, not at upgrade time.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"relaychat/internal/app/chat"
	"relaychat/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc that upgrades the request and
// hands the connection to the chat hub.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Hub, conn)

		go client.WritePump()

		logx.Info("WebSocket connection established")

		client.ReadPump()
	}
}
