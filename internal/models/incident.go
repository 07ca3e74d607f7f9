package models

import (
	"math"
)

// IncidentCategory represents the kind of traffic event being reported
type IncidentCategory string

const (
	CategoryAccident   IncidentCategory = "ACCIDENT"
	CategoryRoadwork   IncidentCategory = "ROADWORK"
	CategoryCongestion IncidentCategory = "CONGESTION"
	CategoryHazard     IncidentCategory = "HAZARD"
	CategoryPolice     IncidentCategory = "POLICE"
	CategoryWeather    IncidentCategory = "WEATHER"
)

// IncidentSeverity represents how disruptive an incident is
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "LOW"
	SeverityMedium   IncidentSeverity = "MEDIUM"
	SeverityHigh     IncidentSeverity = "HIGH"
	SeverityCritical IncidentSeverity = "CRITICAL"
)

// Coordinate is a pair of decimal-degree values. Either component may be
// absent; an incomplete coordinate fails every proximity test instead of
// defaulting to zero.
type Coordinate struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// NewCoordinate builds a complete coordinate from literal values.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Latitude: &lat, Longitude: &lon}
}

// Complete reports whether both components are present and numeric.
func (c Coordinate) Complete() bool {
	if c.Latitude == nil || c.Longitude == nil {
		return false
	}
	if math.IsNaN(*c.Latitude) || math.IsInf(*c.Latitude, 0) {
		return false
	}
	if math.IsNaN(*c.Longitude) || math.IsInf(*c.Longitude, 0) {
		return false
	}
	return true
}

// LatLon returns the raw components. Only meaningful when Complete.
func (c Coordinate) LatLon() (float64, float64) {
	var lat, lon float64
	if c.Latitude != nil {
		lat = *c.Latitude
	}
	if c.Longitude != nil {
		lon = *c.Longitude
	}
	return lat, lon
}

// Incident is a single traffic event. The matcher treats it as an opaque,
// structurally comparable payload: the fields stay flat so ordered
// element-wise comparison is well-defined regardless of which upstream
// source produced the record. User-submitted incidents additionally carry
// their own coordinate.
type Incident struct {
	ID           string           `json:"id,omitempty"`
	Category     IncidentCategory `json:"category"`
	Severity     IncidentSeverity `json:"severity,omitempty"`
	DelayMinutes float64          `json:"delay_minutes,omitempty"`
	Description  string           `json:"description"`
	Latitude     *float64         `json:"latitude,omitempty"`
	Longitude    *float64         `json:"longitude,omitempty"`
	Source       string           `json:"source,omitempty"`
}

// Coordinate returns the incident's own position, which may be incomplete
// for feed-sourced incidents that only carry a region name.
func (i Incident) Coordinate() Coordinate {
	return Coordinate{Latitude: i.Latitude, Longitude: i.Longitude}
}

// Equal compares two incidents by value, dereferencing the optional
// coordinate components.
func (i Incident) Equal(other Incident) bool {
	if i.ID != other.ID ||
		i.Category != other.Category ||
		i.Severity != other.Severity ||
		i.DelayMinutes != other.DelayMinutes ||
		i.Description != other.Description ||
		i.Source != other.Source {
		return false
	}
	return floatPtrEqual(i.Latitude, other.Latitude) &&
		floatPtrEqual(i.Longitude, other.Longitude)
}

// IncidentsEqual reports whether two incident lists hold the same elements
// in the same order.
func IncidentsEqual(a, b []Incident) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(b[idx]) {
			return false
		}
	}
	return true
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// RegionSnapshot is one entry of the ingestion collaborator's batch: the
// authoritative incident list for a named region.
type RegionSnapshot struct {
	Location  string     `json:"location"`
	Incidents []Incident `json:"incidents"`
}
