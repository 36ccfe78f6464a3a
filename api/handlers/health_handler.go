package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// BackendChecker reports whether the extraction backend can be run
type BackendChecker interface {
	Available() error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	backend BackendChecker
	binary  string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend BackendChecker, binary string) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		binary:  binary,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Backend string `json:"backend"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Backend: h.binary,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.backend.Available(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
