package models

// LatLng is a WGS84 point in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Bounds is a lat/lng rectangle. North > South and East > West; boxes
// crossing the antimeridian are not represented.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// LatLngBox is the sw/ne corner form used by the Solar API.
type LatLngBox struct {
	SW LatLng `json:"sw"`
	NE LatLng `json:"ne"`
}

func (b Bounds) Center() LatLng {
	return LatLng{
		Latitude:  (b.North + b.South) / 2,
		Longitude: (b.East + b.West) / 2,
	}
}
