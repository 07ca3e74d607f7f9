package models

import (
	"math"
	"testing"
)

func TestCoordinateComplete(t *testing.T) {
	lat, lon := -26.1438, 28.0406
	nan := math.NaN()

	tests := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"both present", NewCoordinate(lat, lon), true},
		{"empty", Coordinate{}, false},
		{"missing longitude", Coordinate{Latitude: &lat}, false},
		{"missing latitude", Coordinate{Longitude: &lon}, false},
		{"NaN latitude", Coordinate{Latitude: &nan, Longitude: &lon}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coord.Complete(); got != tt.want {
				t.Errorf("Complete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIncidentsEqual(t *testing.T) {
	a := Incident{Category: CategoryAccident, Description: "crash"}
	b := Incident{Category: CategoryRoadwork, Description: "lane closure"}

	if !IncidentsEqual([]Incident{a, b}, []Incident{a, b}) {
		t.Errorf("expected identical lists to be equal")
	}
	if IncidentsEqual([]Incident{a, b}, []Incident{b, a}) {
		t.Errorf("expected order to matter")
	}
	if IncidentsEqual([]Incident{a}, []Incident{a, b}) {
		t.Errorf("expected different lengths to differ")
	}
	if !IncidentsEqual(nil, nil) {
		t.Errorf("expected two empty lists to be equal")
	}
}

func TestIncidentEqual_Coordinates(t *testing.T) {
	lat1, lon1 := 37.7749, -122.4194
	lat2 := 37.7750

	with := Incident{Description: "crash", Latitude: &lat1, Longitude: &lon1}
	same := Incident{Description: "crash", Latitude: ptr(37.7749), Longitude: ptr(-122.4194)}
	moved := Incident{Description: "crash", Latitude: &lat2, Longitude: &lon1}
	without := Incident{Description: "crash"}

	if !with.Equal(same) {
		t.Errorf("expected equal incidents with equal coordinate values")
	}
	if with.Equal(moved) {
		t.Errorf("expected differing latitudes to break equality")
	}
	if with.Equal(without) {
		t.Errorf("expected present vs absent coordinate to break equality")
	}
}

func ptr(v float64) *float64 {
	return &v
}
