package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/services/messaging"
)

type HealthHandler struct {
	cfg       *config.Config
	messaging *messaging.Service
}

func NewHealthHandler(cfg *config.Config, messagingSvc *messaging.Service) *HealthHandler {
	return &HealthHandler{cfg: cfg, messaging: messagingSvc}
}

type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	WorkerID      string `json:"worker_id" example:"alerter-1"`
	NatsConnected bool   `json:"nats_connected" example:"true"`
}

type WorkerInfoResponse struct {
	WorkerID     string   `json:"worker_id" example:"alerter-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"1.0.0"`
	Capabilities []string `json:"capabilities"`
}

// @Summary Health check
// @Description Check if the alerter is healthy and connected to its delivery sink
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		WorkerID:      h.cfg.WorkerID,
		NatsConnected: h.messaging.IsConnected(),
	})
}

// @Summary Worker information
// @Description Get basic worker information and capabilities
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} WorkerInfoResponse
// @Router / [get]
func (h *HealthHandler) WorkerInfo(c *gin.Context) {
	c.JSON(http.StatusOK, WorkerInfoResponse{
		WorkerID: h.cfg.WorkerID,
		Status:   "running",
		Version:  h.cfg.Version,
		Capabilities: []string{
			"incident_matching",
			"notification_dedup",
			"incident_push",
		},
	})
}
