package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/metrics"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services"
	"roadwatch-go/internal/services/regions"
)

// IncidentHandler accepts user-submitted incidents: they are assigned to a
// region, recorded, and pushed immediately to every user within range.
type IncidentHandler struct {
	cfg       *config.Config
	container *services.ServiceContainer
}

func NewIncidentHandler(cfg *config.Config, container *services.ServiceContainer) *IncidentHandler {
	return &IncidentHandler{cfg: cfg, container: container}
}

type CreateIncidentRequest struct {
	Category     string   `json:"category" binding:"required" example:"ACCIDENT"`
	Severity     string   `json:"severity" example:"HIGH"`
	Description  string   `json:"description" binding:"required" example:"Multi-vehicle collision, right lane blocked"`
	DelayMinutes float64  `json:"delay_minutes" example:"15"`
	Latitude     *float64 `json:"latitude" binding:"required" example:"-26.1438"`
	Longitude    *float64 `json:"longitude" binding:"required" example:"28.0406"`
}

type CreateIncidentResponse struct {
	Incident      models.Incident `json:"incident"`
	Region        string          `json:"region"`
	NotifiedUsers int             `json:"notified_users"`
}

// @Summary Create incident
// @Description Submit a new incident. It is assigned to the nearest region and pushed to users within range.
// @Tags incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident"
// @Success 201 {object} CreateIncidentResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /incidents [post]
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident := h.buildIncident(req)
	coord := incident.Coordinate()
	if !coord.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete coordinate"})
		return
	}

	region, ok := h.container.Users.NearestRegion(coord, h.cfg.RegionAssignRadiusKm)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no region within range of incident"})
		return
	}
	h.container.Stats.RecordAssignment(region)

	h.recordAndPush(c, region, incident)
}

// @Summary Add incident to region
// @Description Add an incident directly to a named region. Unknown names are rejected.
// @Tags incidents
// @Accept json
// @Produce json
// @Param name path string true "Region name"
// @Param incident body CreateIncidentRequest true "Incident"
// @Success 201 {object} CreateIncidentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /regions/{name}/incidents [post]
func (h *IncidentHandler) AddRegionIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.recordAndPush(c, c.Param("name"), h.buildIncident(req))
}

func (h *IncidentHandler) buildIncident(req CreateIncidentRequest) models.Incident {
	return models.Incident{
		ID:           uuid.NewString(),
		Category:     models.IncidentCategory(req.Category),
		Severity:     models.IncidentSeverity(req.Severity),
		DelayMinutes: req.DelayMinutes,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Source:       "user",
	}
}

// recordAndPush appends the incident to the region and runs the immediate
// push path. The push does not consult the scan's delivery state, so a user
// near both the incident and its region may hear about it twice; that is
// the documented behavior of the two paths.
func (h *IncidentHandler) recordAndPush(c *gin.Context, region string, incident models.Incident) {
	if err := h.container.Regions.AddIncident(region, incident); err != nil {
		if errors.Is(err, regions.ErrUnknownRegion) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown region", "region": region})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.container.Stats.RecordIngest(region, 1)
	metrics.IncidentsIngestedTotal.WithLabelValues(region).Inc()

	notified := h.container.Matcher.PushIncident(incident, func(userID string, inc models.Incident) {
		payload := models.IncidentPush{Location: region, Incident: inc}
		if err := h.container.Messaging.NotifyUser(userID, payload); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to push incident")
		}
	})
	h.container.Stats.RecordPush(region, notified)
	metrics.PushDeliveriesTotal.Add(float64(notified))

	c.JSON(http.StatusCreated, CreateIncidentResponse{
		Incident:      incident,
		Region:        region,
		NotifiedUsers: notified,
	})
}
