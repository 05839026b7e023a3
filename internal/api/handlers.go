// Package api holds the HTTP handlers and the versioned route tables.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/service"
)

// Clock returns the current time.
type Clock func() time.Time

// HealthHandler reports liveness.
type HealthHandler struct {
	now Clock
}

// NewHealthHandler creates a health handler. A nil clock means time.Now.
func NewHealthHandler(now Clock) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Get handles GET /health.
func (h *HealthHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, service.BuildHealthResponse(h.now()))
}

// VersionHandler reports the running application version.
type VersionHandler struct {
	version string
}

// NewVersionHandler creates a version handler for the given version string.
func NewVersionHandler(version string) *VersionHandler {
	return &VersionHandler{version: version}
}

// Get handles GET /version.
func (h *VersionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, service.BuildVersionResponse(h.version))
}

// Handlers groups every handler a route table needs.
type Handlers struct {
	Health  *HealthHandler
	Version *VersionHandler
}

// NewHandlers wires the handlers for one application instance.
func NewHandlers(version string, now Clock) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(now),
		Version: NewVersionHandler(version),
	}
}
