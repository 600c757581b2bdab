package api

import (
	"net/http"

	"files-manager/internal/websocket"

	"go.uber.org/zap"
)

// ServeWsHandler upgrades an authenticated request to a websocket that
// receives the user's file events. Browsers cannot set headers on the
// upgrade request, so the token may also come in the query string.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	userID, err := s.sessions.Resolve(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(s.wsHub, conn, userID, token)
	if !s.wsHub.Add(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
