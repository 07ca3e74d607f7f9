package stats

import "testing"

func TestCountersAccumulate(t *testing.T) {
	s := NewService()

	s.RecordIngest("Sandton", 3)
	s.RecordIngest("Sandton", 2)
	s.RecordNotification("Sandton")
	s.RecordPush("Sandton", 4)
	s.RecordAssignment("Sandton")
	s.RecordScan()
	s.RecordScan()

	got := s.Snapshot()["Sandton"]
	if got.IncidentsIngested != 5 {
		t.Errorf("expected 5 ingested, got %d", got.IncidentsIngested)
	}
	if got.NotificationsSent != 1 {
		t.Errorf("expected 1 notification, got %d", got.NotificationsSent)
	}
	if got.PushesDelivered != 4 {
		t.Errorf("expected 4 pushes, got %d", got.PushesDelivered)
	}
	if got.RegionAssignments != 1 {
		t.Errorf("expected 1 assignment, got %d", got.RegionAssignments)
	}
	if s.Scans() != 2 {
		t.Errorf("expected 2 scans, got %d", s.Scans())
	}
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	s := NewService()
	s.RecordNotification("Sandton")

	snap := s.Snapshot()
	snap["Sandton"] = RegionStats{NotificationsSent: 99}

	if s.Snapshot()["Sandton"].NotificationsSent != 1 {
		t.Errorf("expected snapshot mutation not to affect the tracker")
	}
}
