package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentflow/backend/internal/infrastructure/logger"
	"github.com/rentflow/backend/internal/infrastructure/persistence"
	"github.com/rentflow/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// DatabaseChecker reports database liveness and pool statistics
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	Stats() (persistence.ConnectionStats, error)
}

// SchedulerStatus reports whether the generation scheduler is running
type SchedulerStatus interface {
	IsRunning() bool
}

// HealthHandler serves the health endpoint
type HealthHandler struct {
	BaseHandler
	db        DatabaseChecker
	scheduler SchedulerStatus
	name      string
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler. scheduler may be nil.
func NewHealthHandler(db DatabaseChecker, scheduler SchedulerStatus, name, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		scheduler: scheduler,
		name:      name,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
// @name HandlerHealthResponse
type HealthResponse struct {
	Status           string                       `json:"status" example:"healthy"`
	Name             string                       `json:"name" example:"rentflow"`
	Version          string                       `json:"version" example:"1.0.0"`
	GoVersion        string                       `json:"go_version" example:"go1.25.5"`
	Uptime           string                       `json:"uptime" example:"1h30m45s"`
	Database         string                       `json:"database" example:"up"`
	DatabaseStats    *persistence.ConnectionStats `json:"database_stats,omitempty"`
	SchedulerRunning *bool                        `json:"scheduler_running,omitempty"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Reports database connectivity, pool statistics and scheduler state
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Database:  "up",
	}
	if h.scheduler != nil {
		running := h.scheduler.IsRunning()
		resp.SchedulerRunning = &running
	}

	status := http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Health check database ping failed", zap.Error(err))
			resp.Status = "unhealthy"
			resp.Database = "down"
			status = http.StatusServiceUnavailable
		} else if stats, err := h.db.Stats(); err == nil {
			resp.DatabaseStats = &stats
		}
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
