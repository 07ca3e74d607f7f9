package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/api/handlers"
	"roadwatch-go/internal/config"
	"roadwatch-go/internal/services"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server

	healthHandler   *handlers.HealthHandler
	regionHandler   *handlers.RegionHandler
	incidentHandler *handlers.IncidentHandler
	userHandler     *handlers.UserHandler
	systemHandler   *handlers.SystemHandler
}

func NewServer(cfg *config.Config, container *services.ServiceContainer) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	return &Server{
		config:          cfg,
		router:          router,
		healthHandler:   handlers.NewHealthHandler(cfg, container.Messaging),
		regionHandler:   handlers.NewRegionHandler(container.Regions, container.Ingest),
		incidentHandler: handlers.NewIncidentHandler(cfg, container),
		userHandler:     handlers.NewUserHandler(container.Users),
		systemHandler:   handlers.NewSystemHandler(cfg, container),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()

	s.setupRoutes()

	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	return nil
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting Roadwatch Alerter API")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Stopping Roadwatch Alerter API")
	return s.server.Shutdown(ctx)
}
