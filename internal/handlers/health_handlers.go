package handlers

import (
	"context"
	"net/http"
	"time"

	"planit/internal/repositories"
	"planit/internal/services"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	store   repositories.ProfileStore
	assets  services.AssetStore
	backend string
	version string
	started time.Time
}

// NewHealthHandlers creates a new health handlers instance. assets may be nil
// when uploads run in mock mode.
func NewHealthHandlers(store repositories.ProfileStore, assets services.AssetStore, backend, version string) *HealthHandlers {
	return &HealthHandlers{
		store:   store,
		assets:  assets,
		backend: backend,
		version: version,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

func (h *HealthHandlers) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Planit API is running")
}

// HealthCheck reports liveness only.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status("healthy"))
}

// ReadinessCheck pings the profile store and the object store.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	health := h.status("ready")
	health.Services = map[string]string{}

	if err := h.store.Ping(ctx); err != nil {
		c.Logger().Warnf("%s store not ready: %v", h.backend, err)
		health.Services[h.backend] = "unhealthy"
		health.Status = "not ready"
	} else {
		health.Services[h.backend] = "healthy"
	}

	switch {
	case h.assets == nil:
		health.Services["storage"] = "mock"
	case h.assets.Ping(ctx) != nil:
		health.Services["storage"] = "unhealthy"
		health.Status = "not ready"
	default:
		health.Services["storage"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status != "ready" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) status(status string) *HealthStatus {
	return &HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Version:   h.version,
	}
}
