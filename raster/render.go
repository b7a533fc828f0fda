package raster

import (
	"fmt"
	"image"
	"math"

	"solar-leads/models"
)

// PaletteOptions describes a single-band false color render.
type PaletteOptions struct {
	Data   *models.GeoRaster
	Mask   *models.GeoRaster
	Colors []string
	Min    float64
	Max    float64
	// Index selects the band of Data.
	Index int
}

// RenderPalette colors band Index of Data through the palette. Pixels
// whose mask value is 0 or NaN are fully transparent. When a mask is given the
// output takes the mask's size and Data is sampled nearest-neighbour.
func RenderPalette(opts PaletteOptions) (*image.RGBA, error) {
	if opts.Data == nil {
		return nil, fmt.Errorf("%w: no data raster", ErrMissingLayer)
	}
	if err := opts.Data.Validate(); err != nil {
		return nil, err
	}
	if opts.Index < 0 || opts.Index >= len(opts.Data.Rasters) {
		return nil, fmt.Errorf("%w: band %d of %d", ErrMissingLayer, opts.Index, len(opts.Data.Rasters))
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = []string{"000000", "ffffff"}
	}
	palette, err := NewPalette(colors)
	if err != nil {
		return nil, err
	}

	band := opts.Data.Rasters[opts.Index]
	return compose(opts.Data, opts.Mask, func(i int) (r, g, b, a uint8) {
		c := palette[PaletteIndex(band[i], opts.Min, opts.Max, len(palette))]
		return c.R, c.G, c.B, 0xff
	})
}

// RenderRGB composes the first three bands as red, green and blue. A fourth
// band, when present and no mask is given, is used as alpha.
func RenderRGB(rgb *models.GeoRaster, mask *models.GeoRaster) (*image.RGBA, error) {
	if rgb == nil {
		return nil, fmt.Errorf("%w: no rgb raster", ErrMissingLayer)
	}
	if err := rgb.Validate(); err != nil {
		return nil, err
	}
	if len(rgb.Rasters) < 3 {
		return nil, fmt.Errorf("%w: rgb raster has %d bands", ErrMissingLayer, len(rgb.Rasters))
	}

	hasAlpha := len(rgb.Rasters) > 3
	return compose(rgb, mask, func(i int) (r, g, b, a uint8) {
		a = 0xff
		if hasAlpha && mask == nil {
			a = channel(rgb.Rasters[3][i])
		}
		return channel(rgb.Rasters[0][i]), channel(rgb.Rasters[1][i]), channel(rgb.Rasters[2][i]), a
	})
}

// compose walks the output grid and writes the pixel of the matching
// source index, leaving masked-out pixels transparent.
func compose(src, mask *models.GeoRaster, pixel func(i int) (r, g, b, a uint8)) (*image.RGBA, error) {
	width, height := src.Width, src.Height
	if mask != nil {
		if err := mask.Validate(); err != nil {
			return nil, fmt.Errorf("mask: %w", err)
		}
		if len(mask.Rasters) == 0 {
			return nil, fmt.Errorf("%w: mask has no bands", ErrMissingLayer)
		}
		width, height = mask.Width, mask.Height
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dw := float64(src.Width) / float64(width)
	dh := float64(src.Height) / float64(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask != nil && masked(mask.Rasters[0][y*width+x]) {
				continue
			}
			srcIdx := int(float64(y)*dh)*src.Width + int(float64(x)*dw)
			r, g, b, a := pixel(srcIdx)
			off := img.PixOffset(x, y)
			// image.RGBA is alpha-premultiplied
			img.Pix[off+0] = premultiply(r, a)
			img.Pix[off+1] = premultiply(g, a)
			img.Pix[off+2] = premultiply(b, a)
			img.Pix[off+3] = a
		}
	}
	return img, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 255)))
}

func premultiply(c, a uint8) uint8 {
	if a == 0xff {
		return c
	}
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

// masked reports whether a mask value hides its pixel. NaN is nodata.
func masked(v float64) bool {
	return v == 0 || math.IsNaN(v)
}
