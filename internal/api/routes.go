package api

import (
	"github.com/gin-gonic/gin"

	"roadwatch-go/internal/metrics"
)

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.WorkerInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	regions := s.router.Group("/regions")
	{
		regions.GET("", s.regionHandler.ListRegions)
		regions.GET("/:name", s.regionHandler.GetRegion)
		regions.POST("/:name/incidents", s.incidentHandler.AddRegionIncident)
	}

	s.router.POST("/incidents", s.incidentHandler.CreateIncident)
	s.router.PUT("/traffic", s.regionHandler.ReplaceTraffic)

	users := s.router.Group("/users")
	{
		users.POST("", s.userHandler.Connect)
		users.DELETE("/:id", s.userHandler.Disconnect)
		users.PUT("/:id/location", s.userHandler.UpdateLocation)
	}

	system := s.router.Group("/system")
	{
		system.GET("/stats", s.systemHandler.GetStats)
	}

	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
