package regions

import (
	"errors"
	"testing"

	"roadwatch-go/internal/models"
)

func testCatalog() *Service {
	return NewService([]Definition{
		{Name: "San Francisco", Latitude: 37.7749, Longitude: -122.4194},
		{Name: "Oakland", Latitude: 37.8044, Longitude: -122.2712},
	})
}

func TestNewService_FixedCatalog(t *testing.T) {
	s := testCatalog()

	if s.Count() != 2 {
		t.Fatalf("expected 2 regions, got %d", s.Count())
	}

	r, ok := s.Get("San Francisco")
	if !ok {
		t.Fatal("expected San Francisco to exist")
	}
	lat, lon := r.Coordinates.LatLon()
	if lat != 37.7749 || lon != -122.4194 {
		t.Errorf("unexpected coordinates %f,%f", lat, lon)
	}
	if len(r.Incidents) != 0 {
		t.Errorf("expected empty incident list at startup, got %d", len(r.Incidents))
	}
}

func TestAddIncident(t *testing.T) {
	s := testCatalog()
	incident := models.Incident{Category: models.CategoryAccident, Description: "pileup"}

	if err := s.AddIncident("San Francisco", incident); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := s.Get("San Francisco")
	if len(r.Incidents) != 1 || !r.Incidents[0].Equal(incident) {
		t.Errorf("expected the added incident, got %+v", r.Incidents)
	}
}

func TestAddIncident_UnknownRegion(t *testing.T) {
	s := testCatalog()

	err := s.AddIncident("Nowhere", models.Incident{Description: "lost"})
	if !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestReplaceIncidents_ReplacesWholesale(t *testing.T) {
	s := testCatalog()

	first := []models.Incident{
		{Category: models.CategoryAccident, Description: "a"},
		{Category: models.CategoryRoadwork, Description: "b"},
	}
	second := []models.Incident{
		{Category: models.CategoryCongestion, Description: "c"},
	}

	s.ReplaceIncidents([]models.RegionSnapshot{{Location: "San Francisco", Incidents: first}})
	s.ReplaceIncidents([]models.RegionSnapshot{{Location: "San Francisco", Incidents: second}})

	r, _ := s.Get("San Francisco")
	if !models.IncidentsEqual(r.Incidents, second) {
		t.Errorf("expected wholesale replacement, got %+v", r.Incidents)
	}
}

func TestReplaceIncidents_SkipsUnknownRegion(t *testing.T) {
	s := testCatalog()

	applied, skipped := s.ReplaceIncidents([]models.RegionSnapshot{
		{Location: "San Francisco", Incidents: []models.Incident{{Description: "a"}}},
		{Location: "Nowhere", Incidents: []models.Incident{{Description: "b"}}},
	})

	if applied != 1 || skipped != 1 {
		t.Errorf("expected applied=1 skipped=1, got %d and %d", applied, skipped)
	}

	r, _ := s.Get("San Francisco")
	if len(r.Incidents) != 1 {
		t.Errorf("expected San Francisco updated, got %d incidents", len(r.Incidents))
	}
	if s.Has("Nowhere") {
		t.Errorf("expected no region to be created for unknown snapshot entries")
	}
	if s.Count() != 2 {
		t.Errorf("expected catalog size unchanged, got %d", s.Count())
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := testCatalog()
	s.ReplaceIncidents([]models.RegionSnapshot{
		{Location: "Oakland", Incidents: []models.Incident{{Description: "a"}}},
	})

	r, _ := s.Get("Oakland")
	r.Incidents[0].Description = "mutated"

	again, _ := s.Get("Oakland")
	if again.Incidents[0].Description != "a" {
		t.Errorf("expected Get to hand out copies, registry was mutated")
	}
}
