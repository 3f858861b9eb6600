package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arena-server/config"
	"arena-server/server"
)

// HealthStatus represents the overall health of the simulation server.
type HealthStatus string

const (
	HealthOk       HealthStatus = "ok"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// MetricsResponse is the complete metrics payload.
type MetricsResponse struct {
	Timestamp         time.Time              `json:"timestamp"`
	Health            HealthStatus           `json:"health"`
	HealthDescription string                 `json:"health_description"`
	ServerUptimeSec   int64                  `json:"server_uptime_sec"`
	TickHz            int                    `json:"tick_hz"`
	Simulation        server.MetricsSnapshot `json:"simulation"`
}

// configView is the read-only projection of the effective startup
// configuration. Runtime reconfiguration is deliberately unsupported.
type configView struct {
	Addr          string  `json:"addr"`
	TickHz        int     `json:"tickHz"`
	MoveSpeed     float64 `json:"moveSpeed"`
	HalfExtent    float64 `json:"halfExtent"`
	InputQueueCap int     `json:"inputQueueCap"`
	SendBuffer    int     `json:"sendBuffer"`
	StaticDir     string  `json:"staticDir,omitempty"`
}

// MetricsHandler reports runtime metrics and effective configuration.
type MetricsHandler struct {
	cfg   config.Config
	arena *server.ArenaServer

	// Player-count thresholds for health status.
	warningPlayerThreshold  int64
	criticalPlayerThreshold int64
}

// NewMetricsHandler creates a metrics handler with default thresholds.
func NewMetricsHandler(cfg config.Config, arena *server.ArenaServer) *MetricsHandler {
	return &MetricsHandler{
		cfg:                     cfg,
		arena:                   arena,
		warningPlayerThreshold:  800,
		criticalPlayerThreshold: 950,
	}
}

// GetMetrics handles GET /api/v1/metrics.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	status := h.arena.Status()

	health, desc := h.assessHealth(status)
	resp := MetricsResponse{
		Timestamp:         time.Now().UTC(),
		Health:            health,
		HealthDescription: desc,
		ServerUptimeSec:   status.UptimeSec,
		TickHz:            status.TickHz,
		Simulation:        status.Metrics,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// GetConfig handles GET /api/v1/config.
func (h *MetricsHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	view := configView{
		Addr:          h.cfg.Addr,
		TickHz:        h.cfg.TickHz,
		MoveSpeed:     h.cfg.MoveSpeed,
		HalfExtent:    h.cfg.HalfExtent,
		InputQueueCap: h.cfg.InputQueueCap,
		SendBuffer:    h.cfg.SendBuffer,
		StaticDir:     h.cfg.StaticDir,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(view)
}

// assessHealth derives a coarse status from player load and tick timing.
func (h *MetricsHandler) assessHealth(status server.Status) (HealthStatus, string) {
	m := status.Metrics
	tickBudgetMs := 1000.0 / float64(status.TickHz)

	switch {
	case m.ActivePlayers >= h.criticalPlayerThreshold:
		return HealthCritical, fmt.Sprintf("player count %d at critical capacity", m.ActivePlayers)
	case m.AvgTickMs > tickBudgetMs:
		return HealthCritical, fmt.Sprintf("average tick %.2fms exceeds the %.0fms budget", m.AvgTickMs, tickBudgetMs)
	case m.ActivePlayers >= h.warningPlayerThreshold:
		return HealthWarning, fmt.Sprintf("player count %d approaching capacity", m.ActivePlayers)
	case m.AvgTickMs > tickBudgetMs/2:
		return HealthWarning, fmt.Sprintf("average tick %.2fms above half the budget", m.AvgTickMs)
	default:
		return HealthOk, "nominal"
	}
}
