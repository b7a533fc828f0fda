package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"solar-leads/models"
)

// PlotArea renders an HTML chart of the search box corners and the ranked
// footprint centroids. Centroids are labelled by rank, starting at 1.
func PlotArea(w io.Writer, bounds models.Bounds, footprints []models.BuildingFootprint) error {
	corners := []opts.GeoData{
		{Name: "SW", Value: []float64{bounds.West, bounds.South}},
		{Name: "NW", Value: []float64{bounds.West, bounds.North}},
		{Name: "NE", Value: []float64{bounds.East, bounds.North}},
		{Name: "SE", Value: []float64{bounds.East, bounds.South}},
	}

	centroids := make([]opts.GeoData, 0, len(footprints))
	for i, fp := range footprints {
		centroids = append(centroids, opts.GeoData{
			Name:  fmt.Sprintf("%d", i+1),
			Value: []float64{fp.Centroid.Longitude, fp.Centroid.Latitude, fp.Area},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Area Search",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("BoundingBox", types.ChartScatter, corners,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)
	geo.AddSeries("Buildings", types.ChartScatter, centroids,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
