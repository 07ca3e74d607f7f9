package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/geo"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/regions"
	"roadwatch-go/internal/services/stats"
)

func newFixture(feedURL string) (*Service, *regions.Service, *stats.Service) {
	cfg := &config.Config{
		TrafficFeedURL:       feedURL,
		TrafficPollInterval:  5 * time.Millisecond,
		TrafficFeedTimeout:   time.Second,
		RegionAssignRadiusKm: geo.RegionAssignKm,
	}
	regionSvc := regions.NewService([]regions.Definition{
		{Name: "Sandton", Latitude: -26.1076, Longitude: 28.0567},
	})
	statsSvc := stats.NewService()
	return NewService(cfg, regionSvc, statsSvc), regionSvc, statsSvc
}

func TestApply_RecordsAndSkips(t *testing.T) {
	svc, regionSvc, statsSvc := newFixture("")

	applied, skipped := svc.Apply([]models.RegionSnapshot{
		{Location: "Sandton", Incidents: []models.Incident{{Description: "a"}, {Description: "b"}}},
		{Location: "Nowhere", Incidents: []models.Incident{{Description: "c"}}},
	})

	if applied != 1 || skipped != 1 {
		t.Errorf("expected applied=1 skipped=1, got %d and %d", applied, skipped)
	}

	r, _ := regionSvc.Get("Sandton")
	if len(r.Incidents) != 2 {
		t.Errorf("expected 2 incidents applied, got %d", len(r.Incidents))
	}
	if statsSvc.Snapshot()["Sandton"].IncidentsIngested != 2 {
		t.Errorf("expected ingest stats recorded")
	}
}

func TestPoll_AppliesFeedSnapshot(t *testing.T) {
	snapshot := []models.RegionSnapshot{
		{Location: "Sandton", Incidents: []models.Incident{{Category: models.CategoryCongestion, Description: "heavy traffic"}}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(snapshot)
	}))
	defer server.Close()

	svc, regionSvc, _ := newFixture(server.URL)

	if err := svc.poll(context.Background()); err != nil {
		t.Fatalf("poll failed: %v", err)
	}

	r, _ := regionSvc.Get("Sandton")
	if len(r.Incidents) != 1 || r.Incidents[0].Description != "heavy traffic" {
		t.Errorf("expected feed snapshot applied, got %+v", r.Incidents)
	}
}

func TestPoll_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc, regionSvc, _ := newFixture(server.URL)

	if err := svc.poll(context.Background()); err == nil {
		t.Errorf("expected error for non-200 feed response")
	}

	r, _ := regionSvc.Get("Sandton")
	if len(r.Incidents) != 0 {
		t.Errorf("expected catalog untouched after failed poll")
	}
}

func TestFeedURL_BoundingBoxParams(t *testing.T) {
	svc, _, _ := newFixture("http://feed.example/traffic")

	u, err := url.Parse(svc.feedURL())
	if err != nil {
		t.Fatalf("feedURL produced an unparseable URL: %v", err)
	}

	q := u.Query()
	for _, key := range []string{"min_lat", "min_lon", "max_lat", "max_lon"} {
		if q.Get(key) == "" {
			t.Errorf("expected %s query parameter, got %q", key, u.String())
		}
	}
}

func TestStart_DisabledWithoutURL(t *testing.T) {
	svc, _, _ := newFixture("")

	if svc.Enabled() {
		t.Fatalf("expected poller to be disabled without a feed URL")
	}

	// Start must be a no-op and Shutdown safe to call regardless.
	svc.Start(context.Background())
	if err := svc.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
