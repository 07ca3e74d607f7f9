package regions

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/models"
)

// ErrUnknownRegion is returned when an incident is added against a name
// outside the fixed region set. This is the only hard failure in the
// matching core; every other bad reference degrades to a no-op.
var ErrUnknownRegion = errors.New("unknown region")

// Definition is one entry of the static region catalog.
type Definition struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Region is a read-only view of a catalog entry. Incident slices handed out
// are copies; callers can hold them across scans.
type Region struct {
	Name        string            `json:"name"`
	Coordinates models.Coordinate `json:"coordinates"`
	Incidents   []models.Incident `json:"incidents"`
}

type region struct {
	name        string
	coordinates models.Coordinate
	incidents   []models.Incident
}

// Service is the fixed region catalog: built once at startup, names never
// added or removed afterwards. Incident lists are the only mutable part.
type Service struct {
	mu      sync.RWMutex
	regions map[string]*region
	order   []string
}

// NewService builds the catalog from the configured definitions. Duplicate
// names keep the first definition.
func NewService(defs []Definition) *Service {
	s := &Service{
		regions: make(map[string]*region, len(defs)),
	}
	for _, def := range defs {
		if _, exists := s.regions[def.Name]; exists {
			log.Warn().Str("region", def.Name).Msg("Duplicate region definition ignored")
			continue
		}
		s.regions[def.Name] = &region{
			name:        def.Name,
			coordinates: models.NewCoordinate(def.Latitude, def.Longitude),
		}
		s.order = append(s.order, def.Name)
	}

	log.Info().Int("regions", len(s.order)).Msg("Region catalog initialized")
	return s
}

// AddIncident appends an incident to the named region's list. Unlike
// snapshot ingestion, a bad name here is a hard error the caller must
// handle.
func (s *Service) AddIncident(name string, incident models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.regions[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	r.incidents = append(r.incidents, incident)
	return nil
}

// ReplaceIncidents applies an authoritative snapshot: each matching
// region's incident list is replaced wholesale, never merged. Entries
// naming regions outside the fixed set are dropped with a log line; batch
// ingestion stays resilient to upstream region-name drift. Returns how
// many entries were applied and how many were skipped.
func (s *Service) ReplaceIncidents(snapshot []models.RegionSnapshot) (applied, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range snapshot {
		r, ok := s.regions[entry.Location]
		if !ok {
			log.Warn().Str("location", entry.Location).Msg("Snapshot entry for unknown region skipped")
			skipped++
			continue
		}
		r.incidents = append([]models.Incident(nil), entry.Incidents...)
		applied++
	}
	return applied, skipped
}

// Has reports whether the name is part of the fixed region set.
func (s *Service) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.regions[name]
	return ok
}

// Get returns a copy of the named region.
func (s *Service) Get(name string) (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.regions[name]
	if !ok {
		return Region{}, false
	}
	return r.view(), true
}

// Snapshot returns copies of every region in catalog construction order.
// The order is what makes nearest-region tie-breaking deterministic.
func (s *Service) Snapshot() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Region, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.regions[name].view())
	}
	return out
}

// Names returns the fixed region names in construction order.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Count returns the catalog size.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (r *region) view() Region {
	return Region{
		Name:        r.name,
		Coordinates: r.coordinates,
		Incidents:   append([]models.Incident(nil), r.incidents...),
	}
}
