package stats

import (
	"sync"
	"time"
)

// RegionStats accumulates per-region counters for the spatial stats
// tracker.
type RegionStats struct {
	IncidentsIngested int64 `json:"incidents_ingested"`
	NotificationsSent int64 `json:"notifications_sent"`
	PushesDelivered   int64 `json:"pushes_delivered"`
	RegionAssignments int64 `json:"region_assignments"`
}

// Service tracks how much matching work each region generates. It is a
// passive observer: the matcher, scanner and API record into it and the
// stats endpoint reads it back out.
type Service struct {
	mu        sync.RWMutex
	perRegion map[string]*RegionStats
	scans     int64
	startedAt time.Time
}

func NewService() *Service {
	return &Service{
		perRegion: make(map[string]*RegionStats),
		startedAt: time.Now(),
	}
}

func (s *Service) regionLocked(name string) *RegionStats {
	r, ok := s.perRegion[name]
	if !ok {
		r = &RegionStats{}
		s.perRegion[name] = r
	}
	return r
}

// RecordIngest counts incidents accepted into a region, from either the
// snapshot feed or user submissions.
func (s *Service) RecordIngest(region string, incidents int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regionLocked(region).IncidentsIngested += int64(incidents)
}

// RecordNotification counts one scan-path notification for a region.
func (s *Service) RecordNotification(region string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regionLocked(region).NotificationsSent++
}

// RecordPush counts push-path deliveries attributed to a region.
func (s *Service) RecordPush(region string, users int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regionLocked(region).PushesDelivered += int64(users)
}

// RecordAssignment counts one nearest-region assignment.
func (s *Service) RecordAssignment(region string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regionLocked(region).RegionAssignments++
}

// RecordScan counts one completed diff pass.
func (s *Service) RecordScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++
}

// Snapshot returns a copy of all per-region counters.
func (s *Service) Snapshot() map[string]RegionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]RegionStats, len(s.perRegion))
	for name, r := range s.perRegion {
		out[name] = *r
	}
	return out
}

// Scans returns the number of completed scans.
func (s *Service) Scans() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scans
}

// Uptime returns how long the tracker has been running.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.startedAt)
}
