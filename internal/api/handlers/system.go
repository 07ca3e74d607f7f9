package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/services"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	cfg       *config.Config
	container *services.ServiceContainer
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(cfg *config.Config, container *services.ServiceContainer) *SystemHandler {
	return &SystemHandler{
		cfg:       cfg,
		container: container,
	}
}

// @Summary Get system stats
// @Description Get runtime statistics plus the per-region spatial matching counters
// @Tags system
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /system/stats [get]
func (h *SystemHandler) GetStats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"worker_id":       h.cfg.WorkerID,
			"uptime_seconds":  int64(h.container.Stats.Uptime().Seconds()),
			"scans":           h.container.Stats.Scans(),
			"regions":         h.container.Regions.Count(),
			"connected_users": h.container.Users.Count(),
			"per_region":      h.container.Stats.Snapshot(),
			"memory_mb":       m.Alloc / 1024 / 1024,
			"goroutines":      runtime.NumGoroutine(),
			"go_version":      runtime.Version(),
		},
		"timestamp": time.Now().Unix(),
	})
}
