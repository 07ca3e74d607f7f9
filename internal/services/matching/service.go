package matching

import (
	"sync"

	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/geo"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/regions"
	"roadwatch-go/internal/services/users"
)

// PushFunc delivers a single user-submitted incident to one user. Sends are
// fire-and-forget; the matcher keeps fanning out regardless of what the
// function does.
type PushFunc func(userID string, incident models.Incident)

// Service is the notification matcher. It owns no registry state of its
// own: it reads the region catalog and the user registry, decides who gets
// told what, and records deliveries back into the user registry.
//
// Two delivery paths share the registries:
//
//   - Scan: the periodic diff pass. Emits only when a nearby region's
//     incidents differ from what the user last received.
//   - PushIncident: immediate radius fan-out for a single new incident.
//     Deliberately independent of the diff state, so the same incident can
//     reach a user once per path. That duplication is accepted behavior.
type Service struct {
	regions  *regions.Service
	users    *users.Service
	nearbyKm float64

	// A scan reads lastDelivered, diffs, then commits. Serializing scans
	// keeps that read-modify-write from interleaving with itself.
	scanMu sync.Mutex
}

// NewService creates a matcher over the given registries. nearbyKm is the
// user-to-region and user-to-incident matching radius.
func NewService(regionSvc *regions.Service, userSvc *users.Service, nearbyKm float64) *Service {
	if nearbyKm <= 0 {
		nearbyKm = geo.DefaultNearbyKm
	}
	return &Service{
		regions:  regionSvc,
		users:    userSvc,
		nearbyKm: nearbyKm,
	}
}

// Scan runs one diff pass over every (user, region) pair and returns the
// notifications to deliver. Delivery state is committed per emission, so a
// second scan with nothing changed returns nothing.
func (s *Service) Scan() []models.Notification {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	regionViews := s.regions.Snapshot()

	var out []models.Notification
	for _, u := range s.users.Snapshot() {
		if !u.Coordinates.Complete() {
			continue
		}
		for _, r := range regionViews {
			if !geo.IsNearby(u.Coordinates, r.Coordinates, s.nearbyKm) {
				continue
			}
			if len(r.Incidents) == 0 {
				continue
			}
			if models.IncidentsEqual(r.Incidents, u.LastDelivered[r.Name]) {
				continue
			}

			s.users.UpdateDelivered(u.ID, r.Name, r.Incidents)
			out = append(out, models.Notification{
				UserID: u.ID,
				Payload: models.NotificationPayload{
					Location:  r.Name,
					Incidents: r.Incidents,
				},
			})
		}
	}

	if len(out) > 0 {
		log.Debug().Int("notifications", len(out)).Msg("Scan emitted notifications")
	}
	return out
}

// PushIncident fans a single incident out to every user within range of the
// incident's own coordinate and returns how many were reached. The diff
// state is neither consulted nor updated. An incident without a complete
// coordinate matches nobody.
func (s *Service) PushIncident(incident models.Incident, deliver PushFunc) int {
	origin := incident.Coordinate()
	if !origin.Complete() {
		return 0
	}

	matched := 0
	for _, u := range s.users.Snapshot() {
		if !geo.IsNearby(u.Coordinates, origin, s.nearbyKm) {
			continue
		}
		deliver(u.ID, incident)
		matched++
	}

	log.Debug().
		Str("incident_id", incident.ID).
		Int("users", matched).
		Msg("Incident pushed to nearby users")
	return matched
}

// NearbyRadiusKm returns the configured matching radius.
func (s *Service) NearbyRadiusKm() float64 {
	return s.nearbyKm
}
