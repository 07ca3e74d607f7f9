package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadwatch-go/internal/metrics"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/users"
)

// UserHandler exposes the connection lifecycle hooks: connect, disconnect
// and location reports.
type UserHandler struct {
	users *users.Service
}

func NewUserHandler(userSvc *users.Service) *UserHandler {
	return &UserHandler{users: userSvc}
}

type ConnectRequest struct {
	UserID    string   `json:"user_id" binding:"required" example:"conn-8f2c"`
	Latitude  *float64 `json:"latitude" example:"-26.1076"`
	Longitude *float64 `json:"longitude" example:"28.0567"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required" example:"-26.1076"`
	Longitude *float64 `json:"longitude" binding:"required" example:"28.0567"`
}

// @Summary Register user
// @Description Register a connected user, optionally with an initial location. Re-registering an id resets its delivery state.
// @Tags users
// @Accept json
// @Produce json
// @Param user body ConnectRequest true "User"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.users.Add(req.UserID, models.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude})
	metrics.ConnectedUsers.Set(float64(h.users.Count()))

	c.JSON(http.StatusCreated, gin.H{"user_id": req.UserID})
}

// @Summary Remove user
// @Description Remove a connected user. Removing an unknown id succeeds.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Success 204 "removed"
// @Router /users/{id} [delete]
func (h *UserHandler) Disconnect(c *gin.Context) {
	h.users.Remove(c.Param("id"))
	metrics.ConnectedUsers.Set(float64(h.users.Count()))

	c.Status(http.StatusNoContent)
}

// @Summary Update user location
// @Description Update a user's last reported coordinates. Delivery state is preserved. Unknown ids are ignored.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param location body LocationRequest true "Location"
// @Success 204 "updated"
// @Failure 400 {object} map[string]string
// @Router /users/{id}/location [put]
func (h *UserHandler) UpdateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.users.UpdateLocation(c.Param("id"), models.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude})

	c.Status(http.StatusNoContent)
}
