package geo

import (
	"math"

	"roadwatch-go/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for all distance
// calculations in the matching layer (kilometres).
const EarthRadiusKm = 6371.0

// DefaultNearbyKm is the user-to-region / user-to-incident matching radius.
const DefaultNearbyKm = 5.0

// RegionAssignKm is the clustering radius for assigning an arbitrary point
// to its nearest fixed region.
const RegionAssignKm = 20.0

// DistanceKm returns the great-circle (haversine) distance between two
// complete coordinates in kilometres. Symmetric; 0 for identical points.
func DistanceKm(a, b models.Coordinate) float64 {
	lat1, lon1 := a.LatLon()
	lat2, lon2 := b.LatLon()

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// IsNearby reports whether two points are within thresholdKm of each other.
// The boundary is inclusive. Any incomplete coordinate fails closed: the
// answer is "not nearby", never an error.
func IsNearby(a, b models.Coordinate, thresholdKm float64) bool {
	if !a.Complete() || !b.Complete() {
		return false
	}
	return DistanceKm(a, b) <= thresholdKm
}

// BoundingBox is an axis-aligned lat/lon rectangle, used by the ingestion
// collaborator to scope feed queries around a region centre.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoxAround returns a bounding box extending radiusKm from the centre in
// each direction. The longitude span widens with latitude; at the poles the
// box degenerates to the full longitude range.
func BoxAround(centre models.Coordinate, radiusKm float64) BoundingBox {
	lat, lon := centre.LatLon()

	dLat := (radiusKm / EarthRadiusKm) * 180 / math.Pi

	cosLat := math.Cos(lat * math.Pi / 180)
	dLon := 180.0
	if cosLat > 1e-9 {
		dLon = dLat / cosLat
	}

	return BoundingBox{
		MinLat: lat - dLat,
		MinLon: lon - dLon,
		MaxLat: lat + dLat,
		MaxLon: lon + dLon,
	}
}

// Contains reports whether a complete coordinate falls inside the box.
func (b BoundingBox) Contains(c models.Coordinate) bool {
	if !c.Complete() {
		return false
	}
	lat, lon := c.LatLon()
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
