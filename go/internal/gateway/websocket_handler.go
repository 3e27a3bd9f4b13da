package gateway

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler accepts WebSocket upgrade requests for season
// live-update subscriptions.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleSeasonConnection upgrades a request to a WebSocket subscribed to
// one season's events. Requires a season_id query parameter; user_id is
// optional and only used for targeted broadcasts.
func (h *WebSocketHandler) HandleSeasonConnection(w http.ResponseWriter, r *http.Request) {
	seasonIDStr := r.URL.Query().Get("season_id")
	if seasonIDStr == "" {
		http.Error(w, "season_id is required", http.StatusBadRequest)
		return
	}

	seasonID, err := uuid.Parse(seasonIDStr)
	if err != nil {
		http.Error(w, "invalid season_id format", http.StatusBadRequest)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "anonymous"
	}

	if err := h.connectionManager.UpgradeConnection(w, r, userID, seasonID); err != nil {
		log.Error().
			Err(err).
			Str("season_id", seasonID.String()).
			Str("user_id", userID).
			Msg("failed to upgrade WebSocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}
}

// HandleConnectionStats reports active connection counts.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	total, seasons := h.connectionManager.GetConnectionStats()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"total_connections":%d,"active_seasons":%d}`, total, seasons)
}

// RegisterRoutes registers WebSocket routes on an HTTP mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/season", h.HandleSeasonConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
