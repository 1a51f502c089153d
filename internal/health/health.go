package health

import (
	"context"
	"net/http"
	"time"

	"halal-atlas/backend/internal/db"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports service and database status.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthChecker pings the database with a bounded timeout.
type HealthChecker struct {
	database *db.Database
	timeout  time.Duration
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(database *db.Database, timeout time.Duration) *HealthChecker {
	return &HealthChecker{database: database, timeout: timeout}
}

// Handler serves the health endpoint
func (h *HealthChecker) Handler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.database.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
