package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-progression/realtime"
	"github.com/Dosada05/tournament-progression/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub          *realtime.Hub
	competitions services.CompetitionService
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *realtime.Hub, cs services.CompetitionService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		competitions: cs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs subscribes the client to /ws/competitions/{competitionID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.competitions.GetCompetition(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Warn("websocket upgrade failed", slog.Int("competition_id", competitionID), slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: realtime.CompetitionRoom(competitionID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
