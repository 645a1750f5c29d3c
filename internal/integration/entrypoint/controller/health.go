package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthChecker
	cache    HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil checker reports its dependency as disabled.
func NewHealthController(database, cache HealthChecker) *HealthController {
	return &HealthController{
		database: database,
		cache:    cache,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  probe(h.database, "connected"),
		Cache:     probe(h.cache, "connected"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func probe(check HealthChecker, up string) string {
	switch {
	case check == nil:
		return "disabled"
	case check():
		return up
	default:
		return "disconnected"
	}
}
