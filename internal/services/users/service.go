package users

import (
	"sync"

	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/geo"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/regions"
)

// View is a copied snapshot of one connected user, safe to read while the
// registry keeps mutating underneath.
type View struct {
	ID            string
	Coordinates   models.Coordinate
	LastDelivered map[string][]models.Incident
}

type user struct {
	id            string
	coordinates   models.Coordinate
	lastDelivered map[string][]models.Incident
}

// Service tracks connected users keyed by connection id. A user lives
// exactly as long as its connection: a reconnecting client is a new user
// with empty delivery state.
type Service struct {
	mu      sync.RWMutex
	users   map[string]*user
	regions *regions.Service
}

// NewService creates the user registry. The region catalog is needed for
// nearest-region assignment.
func NewService(regionSvc *regions.Service) *Service {
	return &Service{
		users:   make(map[string]*user),
		regions: regionSvc,
	}
}

// Add registers a user, overwriting any prior entry for the same id. The
// delivery state starts empty either way.
func (s *Service) Add(userID string, coordinates models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[userID] = &user{
		id:            userID,
		coordinates:   coordinates,
		lastDelivered: make(map[string][]models.Incident),
	}
	log.Debug().Str("user_id", userID).Int("connected", len(s.users)).Msg("User connected")
}

// Remove drops a user. Removing an unknown id is a no-op, not an error: a
// disconnect racing a late location update must never crash the loop.
func (s *Service) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	log.Debug().Str("user_id", userID).Int("connected", len(s.users)).Msg("User disconnected")
}

// UpdateLocation replaces the user's coordinates only. Delivery state is
// untouched, so a pure location update never causes re-notification.
// Unknown ids are ignored.
func (s *Service) UpdateLocation(userID string, coordinates models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return
	}
	u.coordinates = coordinates
}

// UpdateDelivered records what was last sent to a user for a region; the
// scan diffs against this on its next pass. Unknown ids are ignored.
func (s *Service) UpdateDelivered(userID, regionName string, incidents []models.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return
	}
	u.lastDelivered[regionName] = append([]models.Incident(nil), incidents...)
}

// Snapshot returns copies of all connected users.
func (s *Service) Snapshot() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]View, 0, len(s.users))
	for _, u := range s.users {
		delivered := make(map[string][]models.Incident, len(u.lastDelivered))
		for name, incidents := range u.lastDelivered {
			delivered[name] = append([]models.Incident(nil), incidents...)
		}
		out = append(out, View{
			ID:            u.id,
			Coordinates:   u.coordinates,
			LastDelivered: delivered,
		})
	}
	return out
}

// Count returns the number of connected users.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// NearestRegion assigns an arbitrary point to the closest fixed region, or
// reports no match when the closest one is beyond thresholdKm. Ties keep
// the first minimum in catalog order. Incomplete coordinates match nothing.
func (s *Service) NearestRegion(coordinates models.Coordinate, thresholdKm float64) (string, bool) {
	if !coordinates.Complete() {
		return "", false
	}

	best := ""
	bestDist := 0.0
	for _, r := range s.regions.Snapshot() {
		d := geo.DistanceKm(coordinates, r.Coordinates)
		if best == "" || d < bestDist {
			best = r.Name
			bestDist = d
		}
	}
	if best == "" || bestDist > thresholdKm {
		return "", false
	}
	return best, true
}
