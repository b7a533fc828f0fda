package overpass

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"solar-leads/models"
)

// MOCK_BUILDINGS is the number of footprints the mock places in bounds.
const MOCK_BUILDINGS = 6

// OverpassApiClientMock lays out a row of rectangular buildings of
// increasing size inside the requested bounds.
type OverpassApiClientMock struct {
}

func NewOverpassApiClientMock() *OverpassApiClientMock {
	return &OverpassApiClientMock{}
}

func (c *OverpassApiClientMock) GetBuildingsInBounds(ctx context.Context, bounds models.Bounds) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	width := (bounds.East - bounds.West) / float64(MOCK_BUILDINGS*2)
	height := (bounds.North - bounds.South) / 4
	south := bounds.South + height

	for i := 0; i < MOCK_BUILDINGS; i++ {
		west := bounds.West + float64(2*i)*width
		top := south + height*float64(i+1)/float64(MOCK_BUILDINGS)
		ring := orb.Ring{
			{west, south}, {west + width, south}, {west + width, top}, {west, top}, {west, south},
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.ID = fmt.Sprintf("way/%d", 1000+i)
		f.Properties["id"] = f.ID
		f.Properties["building"] = "house"
		fc.Append(f)
	}
	return fc, nil
}
