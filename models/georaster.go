package models

import "fmt"

// GeoRaster holds the pixel values of one downloaded data layer.
// Every band has Width*Height values, row-major.
type GeoRaster struct {
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Rasters [][]float64 `json:"rasters"`
	Bounds  Bounds      `json:"bounds"`
}

// Validate checks that every band matches the raster dimensions.
func (g *GeoRaster) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", g.Width, g.Height)
	}
	for i, band := range g.Rasters {
		if len(band) != g.Width*g.Height {
			return fmt.Errorf("band %d has %d values, want %d", i, len(band), g.Width*g.Height)
		}
	}
	return nil
}

// LayerID names a Solar API data layer.
type LayerID string

const (
	LayerMask        LayerID = "mask"
	LayerDSM         LayerID = "dsm"
	LayerAnnualFlux  LayerID = "annualFlux"
	LayerMonthlyFlux LayerID = "monthlyFlux"
	LayerRGB         LayerID = "rgb"
	LayerHourlyShade LayerID = "hourlyShade"
)

// AllLayers lists every layer id in download order.
var AllLayers = []LayerID{
	LayerMask, LayerDSM, LayerAnnualFlux, LayerMonthlyFlux, LayerRGB, LayerHourlyShade,
}

func ParseLayerID(s string) (LayerID, error) {
	for _, id := range AllLayers {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown layer: %s", s)
}

// LayerSet holds the decoded rasters of a data layers request. Layers that
// were not requested stay nil. HourlyShade has one raster per month.
type LayerSet struct {
	Mask        *GeoRaster   `json:"mask,omitempty"`
	DSM         *GeoRaster   `json:"dsm,omitempty"`
	AnnualFlux  *GeoRaster   `json:"annualFlux,omitempty"`
	MonthlyFlux *GeoRaster   `json:"monthlyFlux,omitempty"`
	RGB         *GeoRaster   `json:"rgb,omitempty"`
	HourlyShade []*GeoRaster `json:"hourlyShade,omitempty"`
}

// Raster returns the single raster stored for id. HourlyShade is not a
// single raster and must be read from the field directly.
func (l *LayerSet) Raster(id LayerID) *GeoRaster {
	switch id {
	case LayerMask:
		return l.Mask
	case LayerDSM:
		return l.DSM
	case LayerAnnualFlux:
		return l.AnnualFlux
	case LayerMonthlyFlux:
		return l.MonthlyFlux
	case LayerRGB:
		return l.RGB
	}
	return nil
}

// Set stores a single raster under id.
func (l *LayerSet) Set(id LayerID, raster *GeoRaster) {
	switch id {
	case LayerMask:
		l.Mask = raster
	case LayerDSM:
		l.DSM = raster
	case LayerAnnualFlux:
		l.AnnualFlux = raster
	case LayerMonthlyFlux:
		l.MonthlyFlux = raster
	case LayerRGB:
		l.RGB = raster
	}
}
