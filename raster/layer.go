package raster

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"solar-leads/models"
)

var (
	ErrMissingLayer     = errors.New("missing layer data")
	ErrUnsupportedLayer = errors.New("unsupported layer")
)

const (
	AnnualFluxMax  = 1800
	MonthlyFluxMax = 200
	MonthsPerYear  = 12
	HoursPerDay    = 24
)

// Legend describes the palette of a layer for display.
type Legend struct {
	Colors []string `json:"colors"`
	Min    string   `json:"min"`
	Max    string   `json:"max"`
}

// RenderOptions are the user controls of a layer render. Month and Day
// are only read by the hourly shade layer; Month is 0-based, Day 1-based.
type RenderOptions struct {
	ShowRoofOnly bool
	Month        int
	Day          int
}

// Layer is a renderable data layer.
type Layer struct {
	ID      models.LayerID
	Bounds  models.Bounds
	Palette *Legend
	render  func(opts RenderOptions) ([]*image.RGBA, error)
}

// Render produces the layer's images: one for mask, dsm, rgb and annual
// flux, twelve for monthly flux (one per month) and twenty four for hourly
// shade (one per hour of the selected day).
func (l *Layer) Render(opts RenderOptions) ([]*image.RGBA, error) {
	return l.render(opts)
}

// GetLayer builds the layer id out of the downloaded layers. Every layer is
// placed using the mask's bounds, so the mask is always required.
func GetLayer(id models.LayerID, layers *models.LayerSet) (*Layer, error) {
	if layers == nil || layers.Mask == nil {
		return nil, fmt.Errorf("%w: %s needs the mask layer", ErrMissingLayer, id)
	}
	mask := layers.Mask

	roofMask := func(opts RenderOptions) *models.GeoRaster {
		if opts.ShowRoofOnly {
			return mask
		}
		return nil
	}

	switch id {
	case models.LayerMask:
		return &Layer{
			ID:      id,
			Bounds:  mask.Bounds,
			Palette: &Legend{Colors: BinaryPalette, Min: "No roof", Max: "Roof"},
			render: func(opts RenderOptions) ([]*image.RGBA, error) {
				return single(RenderPalette(PaletteOptions{
					Data:   mask,
					Mask:   roofMask(opts),
					Colors: BinaryPalette,
					Min:    0,
					Max:    1,
				}))
			},
		}, nil

	case models.LayerDSM:
		data, err := requireRaster(id, layers.DSM)
		if err != nil {
			return nil, err
		}
		min, max, err := bandRange(data)
		if err != nil {
			return nil, err
		}
		return &Layer{
			ID:     id,
			Bounds: mask.Bounds,
			Palette: &Legend{
				Colors: RainbowPalette,
				Min:    fmt.Sprintf("%.1f m", min),
				Max:    fmt.Sprintf("%.1f m", max),
			},
			render: func(opts RenderOptions) ([]*image.RGBA, error) {
				return single(RenderPalette(PaletteOptions{
					Data:   data,
					Mask:   roofMask(opts),
					Colors: RainbowPalette,
					Min:    min,
					Max:    max,
				}))
			},
		}, nil

	case models.LayerRGB:
		data, err := requireRaster(id, layers.RGB)
		if err != nil {
			return nil, err
		}
		return &Layer{
			ID:     id,
			Bounds: mask.Bounds,
			render: func(opts RenderOptions) ([]*image.RGBA, error) {
				return single(RenderRGB(data, roofMask(opts)))
			},
		}, nil

	case models.LayerAnnualFlux:
		data, err := requireRaster(id, layers.AnnualFlux)
		if err != nil {
			return nil, err
		}
		return &Layer{
			ID:      id,
			Bounds:  mask.Bounds,
			Palette: &Legend{Colors: IronPalette, Min: "Shady", Max: "Sunny"},
			render: func(opts RenderOptions) ([]*image.RGBA, error) {
				return single(RenderPalette(PaletteOptions{
					Data:   data,
					Mask:   roofMask(opts),
					Colors: IronPalette,
					Min:    0,
					Max:    AnnualFluxMax,
				}))
			},
		}, nil

	case models.LayerMonthlyFlux:
		data, err := requireRaster(id, layers.MonthlyFlux)
		if err != nil {
			return nil, err
		}
		return &Layer{
			ID:      id,
			Bounds:  mask.Bounds,
			Palette: &Legend{Colors: IronPalette, Min: "Shady", Max: "Sunny"},
			render: func(opts RenderOptions) ([]*image.RGBA, error) {
				images := make([]*image.RGBA, 0, MonthsPerYear)
				for month := 0; month < MonthsPerYear; month++ {
					img, err := RenderPalette(PaletteOptions{
						Data:   data,
						Mask:   roofMask(opts),
						Colors: IronPalette,
						Min:    0,
						Max:    MonthlyFluxMax,
						Index:  month,
					})
					if err != nil {
						return nil, fmt.Errorf("month %d: %w", month, err)
					}
					images = append(images, img)
				}
				return images, nil
			},
		}, nil

	case models.LayerHourlyShade:
		if len(layers.HourlyShade) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingLayer, id)
		}
		months := layers.HourlyShade
		return &Layer{
			ID:      id,
			Bounds:  mask.Bounds,
			Palette: &Legend{Colors: SunlightPalette, Min: "Shade", Max: "Sun"},
			render: func(opts RenderOptions) ([]*image.RGBA, error) {
				return renderHourlyShade(months, roofMask(opts), opts.Month, opts.Day)
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayer, id)
}

// renderHourlyShade renders the 24 hours of one day. Each band of a month
// raster is an hour; each value packs one bit per day of the month.
func renderHourlyShade(months []*models.GeoRaster, mask *models.GeoRaster, month, day int) ([]*image.RGBA, error) {
	if month < 0 || month >= len(months) || months[month] == nil {
		return nil, fmt.Errorf("%w: hourly shade month %d", ErrMissingLayer, month)
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: hourly shade day %d", ErrUnsupportedLayer, day)
	}
	data := months[month]
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if len(data.Rasters) < HoursPerDay {
		return nil, fmt.Errorf("%w: hourly shade month %d has %d bands", ErrMissingLayer, month, len(data.Rasters))
	}

	bit := int64(1) << (day - 1)
	images := make([]*image.RGBA, 0, HoursPerDay)
	for hour := 0; hour < HoursPerDay; hour++ {
		values := make([]float64, len(data.Rasters[hour]))
		for i, x := range data.Rasters[hour] {
			values[i] = float64(int64(x) & bit)
		}
		img, err := RenderPalette(PaletteOptions{
			Data: &models.GeoRaster{
				Width:   data.Width,
				Height:  data.Height,
				Rasters: [][]float64{values},
				Bounds:  data.Bounds,
			},
			Mask:   mask,
			Colors: SunlightPalette,
			Min:    0,
			Max:    1,
		})
		if err != nil {
			return nil, fmt.Errorf("hour %d: %w", hour, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// bandRange returns the extremes of the first band, found by sorting a copy.
func bandRange(data *models.GeoRaster) (float64, float64, error) {
	if len(data.Rasters) == 0 || len(data.Rasters[0]) == 0 {
		return 0, 0, fmt.Errorf("%w: empty band", ErrMissingLayer)
	}
	sorted := append([]float64(nil), data.Rasters[0]...)
	sort.Float64s(sorted)
	return sorted[0], sorted[len(sorted)-1], nil
}

func requireRaster(id models.LayerID, data *models.GeoRaster) (*models.GeoRaster, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingLayer, id)
	}
	return data, nil
}

func single(img *image.RGBA, err error) ([]*image.RGBA, error) {
	if err != nil {
		return nil, err
	}
	return []*image.RGBA{img}, nil
}
