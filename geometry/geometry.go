// Package geometry holds the small-area math used to query and rank
// building footprints. All of it is planar or small-angle: results are
// good enough for building-sized shapes around a 100 m radius and are
// undefined near the poles.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"solar-leads/models"
)

// EarthRadiusMeters is the WGS84 equatorial radius.
const EarthRadiusMeters = 6378137.0

var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// BoundsFromCenter returns the square box of half-side radiusMeters around
// center. The longitude delta is stretched by 1/cos(latitude).
func BoundsFromCenter(center models.LatLng, radiusMeters float64) models.Bounds {
	deltaLat := (radiusMeters / EarthRadiusMeters) * (180 / math.Pi)
	deltaLng := deltaLat / math.Cos(center.Latitude*math.Pi/180)

	return models.Bounds{
		North: center.Latitude + deltaLat,
		South: center.Latitude - deltaLat,
		East:  center.Longitude + deltaLng,
		West:  center.Longitude - deltaLng,
	}
}

// DiagonalMeters is the great-circle distance between the south-west and
// north-east corners of b.
func DiagonalMeters(b models.Bounds) float64 {
	sw := s2.LatLngFromDegrees(b.South, b.West)
	ne := s2.LatLngFromDegrees(b.North, b.East)
	return sw.Distance(ne).Radians() * EarthRadiusMeters
}

// Centroid is the arithmetic mean of the outer ring's vertices. It is not
// area weighted.
func Centroid(feature *geojson.Feature) (models.LatLng, error) {
	ring, err := outerRing(feature)
	if err != nil {
		return models.LatLng{}, err
	}

	var sumX, sumY float64
	for _, p := range ring {
		sumX += p[0]
		sumY += p[1]
	}
	n := float64(len(ring))

	return models.LatLng{Longitude: sumX / n, Latitude: sumY / n}, nil
}

// Area applies the shoelace formula to the outer ring in raw degrees. The
// value is only meaningful for ranking footprints against each other.
func Area(feature *geojson.Feature) (float64, error) {
	ring, err := outerRing(feature)
	if err != nil {
		return 0, err
	}

	var area float64
	for i := 0; i < len(ring)-1; i++ {
		p1, p2 := ring[i], ring[i+1]
		area += p1[0]*p2[1] - p2[0]*p1[1]
	}
	if !ring.Closed() {
		p1, p2 := ring[len(ring)-1], ring[0]
		area += p1[0]*p2[1] - p2[0]*p1[1]
	}

	return math.Abs(area) / 2, nil
}

func outerRing(feature *geojson.Feature) (orb.Ring, error) {
	if feature == nil || feature.Geometry == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedGeometry)
	}
	polygon, ok := feature.Geometry.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, feature.Geometry.GeoJSONType())
	}
	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return nil, fmt.Errorf("%w: empty polygon", ErrUnsupportedGeometry)
	}
	return polygon[0], nil
}
