package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/matching"
	"roadwatch-go/internal/services/regions"
	"roadwatch-go/internal/services/stats"
	"roadwatch-go/internal/services/users"
)

type stubPublisher struct {
	mu       sync.Mutex
	subjects []string
	failing  map[string]bool
}

func (p *stubPublisher) Publish(subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing[subject] {
		return errors.New("connection lost")
	}
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *stubPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}

func newFixture(pub *stubPublisher) (*regions.Service, *users.Service, *Service, *stats.Service) {
	cfg := &config.Config{
		NotifySubjectPrefix: "notifications",
		ScanInterval:        5 * time.Millisecond,
	}
	regionSvc := regions.NewService([]regions.Definition{
		{Name: "Sandton", Latitude: -26.1076, Longitude: 28.0567},
	})
	userSvc := users.NewService(regionSvc)
	matcher := matching.NewService(regionSvc, userSvc, 5)
	statsSvc := stats.NewService()
	return regionSvc, userSvc, NewService(cfg, matcher, pub, statsSvc), statsSvc
}

func sandtonCrash() []models.RegionSnapshot {
	return []models.RegionSnapshot{{
		Location:  "Sandton",
		Incidents: []models.Incident{{Category: models.CategoryAccident, Description: "crash"}},
	}}
}

func TestRunScan_PublishesPerUserSubject(t *testing.T) {
	pub := &stubPublisher{}
	regionSvc, userSvc, svc, statsSvc := newFixture(pub)

	userSvc.Add("u1", models.NewCoordinate(-26.1076, 28.0567))
	regionSvc.ReplaceIncidents(sandtonCrash())

	svc.runScan()

	got := pub.published()
	if len(got) != 1 || got[0] != "notifications.u1" {
		t.Errorf("expected publish on notifications.u1, got %v", got)
	}
	if statsSvc.Scans() != 1 {
		t.Errorf("expected 1 recorded scan, got %d", statsSvc.Scans())
	}
	if statsSvc.Snapshot()["Sandton"].NotificationsSent != 1 {
		t.Errorf("expected 1 recorded notification for Sandton")
	}
}

func TestRunScan_ContinuesAfterPublishFailure(t *testing.T) {
	pub := &stubPublisher{failing: map[string]bool{"notifications.u1": true}}
	regionSvc, userSvc, svc, _ := newFixture(pub)

	userSvc.Add("u1", models.NewCoordinate(-26.1076, 28.0567))
	userSvc.Add("u2", models.NewCoordinate(-26.1080, 28.0570))
	regionSvc.ReplaceIncidents(sandtonCrash())

	svc.runScan()

	got := pub.published()
	if len(got) != 1 || got[0] != "notifications.u2" {
		t.Errorf("expected the failed send to be skipped and the rest delivered, got %v", got)
	}
}

func TestStartShutdown_DeliversOnTicks(t *testing.T) {
	pub := &stubPublisher{}
	regionSvc, userSvc, svc, _ := newFixture(pub)

	userSvc.Add("u1", models.NewCoordinate(-26.1076, 28.0567))
	regionSvc.ReplaceIncidents(sandtonCrash())

	svc.Start(context.Background())
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if len(pub.published()) == 0 {
		t.Errorf("expected at least one publish from the scan loop")
	}
}

func TestShutdown_WithoutStart(t *testing.T) {
	pub := &stubPublisher{}
	_, _, svc, _ := newFixture(pub)

	if err := svc.Shutdown(context.Background()); err != nil {
		t.Errorf("expected shutdown before start to be a no-op, got %v", err)
	}
}
