package services

import (
	"context"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/services/ingest"
	"roadwatch-go/internal/services/matching"
	"roadwatch-go/internal/services/messaging"
	"roadwatch-go/internal/services/regions"
	"roadwatch-go/internal/services/scanner"
	"roadwatch-go/internal/services/stats"
	"roadwatch-go/internal/services/users"
)

// ServiceContainer holds all services
type ServiceContainer struct {
	Config    *config.Config
	Stats     *stats.Service
	Regions   *regions.Service
	Users     *users.Service
	Matcher   *matching.Service
	Messaging *messaging.Service
	Scanner   *scanner.Service
	Ingest    *ingest.Service
}

// NewServiceContainer creates a new service container
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	statsSvc := stats.NewService()
	regionSvc := regions.NewService(cfg.Regions)
	userSvc := users.NewService(regionSvc)
	matcher := matching.NewService(regionSvc, userSvc, cfg.NearbyRadiusKm)

	messagingSvc, err := messaging.NewService(cfg)
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		Config:    cfg,
		Stats:     statsSvc,
		Regions:   regionSvc,
		Users:     userSvc,
		Matcher:   matcher,
		Messaging: messagingSvc,
		Scanner:   scanner.NewService(cfg, matcher, messagingSvc, statsSvc),
		Ingest:    ingest.NewService(cfg, regionSvc, statsSvc),
	}, nil
}

// Start launches the background loops.
func (sc *ServiceContainer) Start(ctx context.Context) {
	sc.Scanner.Start(ctx)
	sc.Ingest.Start(ctx)
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	if sc.Ingest != nil {
		if err := sc.Ingest.Shutdown(ctx); err != nil {
			return err
		}
	}

	if sc.Scanner != nil {
		if err := sc.Scanner.Shutdown(ctx); err != nil {
			return err
		}
	}

	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}
