package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/ingest"
	"roadwatch-go/internal/services/regions"
)

// RegionHandler serves reads of the fixed region catalog and the traffic
// snapshot ingestion endpoint.
type RegionHandler struct {
	regions *regions.Service
	ingest  *ingest.Service
}

func NewRegionHandler(regionSvc *regions.Service, ingestSvc *ingest.Service) *RegionHandler {
	return &RegionHandler{regions: regionSvc, ingest: ingestSvc}
}

type RegionSummary struct {
	Name          string            `json:"name"`
	Coordinates   models.Coordinate `json:"coordinates"`
	IncidentCount int               `json:"incident_count"`
}

// @Summary List regions
// @Description List the fixed region catalog with current incident counts
// @Tags regions
// @Accept json
// @Produce json
// @Success 200 {array} RegionSummary
// @Router /regions [get]
func (h *RegionHandler) ListRegions(c *gin.Context) {
	views := h.regions.Snapshot()
	out := make([]RegionSummary, 0, len(views))
	for _, r := range views {
		out = append(out, RegionSummary{
			Name:          r.Name,
			Coordinates:   r.Coordinates,
			IncidentCount: len(r.Incidents),
		})
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get region
// @Description Get one region with its current incident list
// @Tags regions
// @Accept json
// @Produce json
// @Param name path string true "Region name"
// @Success 200 {object} regions.Region
// @Failure 404 {object} map[string]string
// @Router /regions/{name} [get]
func (h *RegionHandler) GetRegion(c *gin.Context) {
	name := c.Param("name")
	region, ok := h.regions.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown region", "region": name})
		return
	}
	c.JSON(http.StatusOK, region)
}

type ReplaceTrafficResponse struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// @Summary Replace traffic snapshot
// @Description Apply an authoritative per-region incident snapshot. Entries naming unknown regions are skipped.
// @Tags traffic
// @Accept json
// @Produce json
// @Param snapshot body []models.RegionSnapshot true "Snapshot entries"
// @Success 202 {object} ReplaceTrafficResponse
// @Failure 400 {object} map[string]string
// @Router /traffic [put]
func (h *RegionHandler) ReplaceTraffic(c *gin.Context) {
	var snapshot []models.RegionSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, skipped := h.ingest.Apply(snapshot)
	c.JSON(http.StatusAccepted, ReplaceTrafficResponse{Applied: applied, Skipped: skipped})
}
