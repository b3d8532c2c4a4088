package api

import (
	"net/http"
	"time"

	game "laneglide-server/src"

	"github.com/go-chi/chi/v5"
)

// HealthStatus represents the overall health of the system.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
	HealthDown     HealthStatus = "down"
)

// MetricsResponse is the payload for GET /metrics.
type MetricsResponse struct {
	Status          HealthStatus `json:"status"`
	Time            time.Time    `json:"time"`
	UptimeSeconds   float64      `json:"uptime_seconds"`
	WebSocketStatus string       `json:"websocket_status"`
	ActiveSessions  int          `json:"active_sessions"`
	GamesStarted    int          `json:"games_started"`
	GamesFinished   int          `json:"games_finished"`
	BestScore       float64      `json:"best_score"` // best seen since boot
}

// MetricsHandler exposes runtime counters from the game server.
type MetricsHandler struct {
	cfg        Config
	gameServer *game.GameServer
}

func NewMetricsHandler(cfg Config, gameServer *game.GameServer) *MetricsHandler {
	return &MetricsHandler{cfg: cfg, gameServer: gameServer}
}

// Routes registers the metrics route.
func (h *MetricsHandler) Routes(r chi.Router) {
	r.Get("/metrics", h.Get)
}

// Get GET /metrics
func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats := h.gameServer.SnapshotStats()

	status := HealthHealthy
	wsStatus := "running"
	if stats.ActiveSessions == 0 && stats.GamesStarted == 0 && stats.UptimeSeconds > 300 {
		// No traffic since boot; worth surfacing but not an outage.
		status = HealthDegraded
		wsStatus = "idle"
	}

	writeJSON(w, http.StatusOK, MetricsResponse{
		Status:          status,
		Time:            time.Now(),
		UptimeSeconds:   stats.UptimeSeconds,
		WebSocketStatus: wsStatus,
		ActiveSessions:  stats.ActiveSessions,
		GamesStarted:    stats.GamesStarted,
		GamesFinished:   stats.GamesFinished,
		BestScore:       stats.BestScore,
	})
}
