package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks connectivity to a backing service
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check requests
type HealthHandler struct {
	db        Pinger
	cache     Pinger
	poolStats func() any
}

// NewHealthHandler creates a new health handler. cache and poolStats may be nil.
func NewHealthHandler(db Pinger, cache Pinger, poolStats func() any) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		poolStats: poolStats,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
	Uptime  string            `json:"uptime,omitempty"`
	Pool    any               `json:"pool,omitempty"`
}

// Version is reported by the health endpoints
var Version = "dev"

var startTime = time.Now()

// GetHealth handles GET /health
func GetHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Uptime:  time.Since(startTime).String(),
		Checks:  map[string]string{},
	})
}

// GetLiveness handles GET /health/live
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// GetReadiness handles GET /health/ready. Only the database gates readiness;
// documents post without the account cache.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "database not ready")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// GetHealthDetailed handles GET /health/detailed
func (h *HealthHandler) GetHealthDetailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"api": "healthy"}
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "unhealthy: " + err.Error()
			if status == "ok" {
				status = "degraded"
			}
		} else {
			checks["cache"] = "healthy"
		}
	}

	resp := HealthResponse{
		Status:  status,
		Version: Version,
		Uptime:  time.Since(startTime).String(),
		Checks:  checks,
	}
	if h.poolStats != nil {
		resp.Pool = h.poolStats()
	}

	respondWithJSON(w, httpStatus, resp)
}
