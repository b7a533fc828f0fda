package overpass

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Response is the JSON output of the Overpass interpreter.
type Response struct {
	Version   float64   `json:"version"`
	Generator string    `json:"generator"`
	Remark    string    `json:"remark,omitempty"`
	Elements  []Element `json:"elements"`
}

// Element is a node, way or relation as returned by "out geom".
type Element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Lat      float64           `json:"lat,omitempty"`
	Lon      float64           `json:"lon,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
	Geometry []Coordinate      `json:"geometry,omitempty"`
	Members  []Member          `json:"members,omitempty"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Member struct {
	Type     string       `json:"type"`
	Ref      int64        `json:"ref"`
	Role     string       `json:"role"`
	Geometry []Coordinate `json:"geometry,omitempty"`
}

// FeatureCollection converts the elements. Closed ways become polygons,
// open ways line strings, nodes points and relations multipolygons built
// from their closed outer members. Elements with no usable geometry are
// dropped.
func (r *Response) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, el := range r.Elements {
		geometry := el.geometry()
		if geometry == nil {
			continue
		}
		f := geojson.NewFeature(geometry)
		f.ID = fmt.Sprintf("%s/%d", el.Type, el.ID)
		for k, v := range el.Tags {
			f.Properties[k] = v
		}
		f.Properties["id"] = f.ID
		fc.Append(f)
	}
	return fc
}

func (el *Element) geometry() orb.Geometry {
	switch el.Type {
	case "node":
		return orb.Point{el.Lon, el.Lat}
	case "way":
		return lineOrPolygon(el.Geometry)
	case "relation":
		var mp orb.MultiPolygon
		for _, m := range el.Members {
			if m.Role != "outer" {
				continue
			}
			if ring, ok := closedRing(m.Geometry); ok {
				mp = append(mp, orb.Polygon{ring})
			}
		}
		if len(mp) == 0 {
			return nil
		}
		return mp
	}
	return nil
}

func lineOrPolygon(coords []Coordinate) orb.Geometry {
	if ring, ok := closedRing(coords); ok {
		return orb.Polygon{ring}
	}
	if len(coords) < 2 {
		return nil
	}
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c.Lon, c.Lat}
	}
	return ls
}

func closedRing(coords []Coordinate) (orb.Ring, bool) {
	if len(coords) < 4 || coords[0] != coords[len(coords)-1] {
		return nil, false
	}
	ring := make(orb.Ring, len(coords))
	for i, c := range coords {
		ring[i] = orb.Point{c.Lon, c.Lat}
	}
	return ring, true
}
