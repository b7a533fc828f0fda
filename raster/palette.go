// Package raster turns decoded Solar API data layers into RGBA images for
// map overlays.
package raster

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// PaletteSize is the number of interpolated entries of every palette.
const PaletteSize = 256

var (
	BinaryPalette   = []string{"212121", "B3E5FC"}
	RainbowPalette  = []string{"3949AB", "2196F3", "00B8D4", "4CAF50", "FFEB3B", "FF9800", "F44336"}
	IronPalette     = []string{"00000A", "91009C", "E64616", "FEB400", "FFFFF6"}
	SunlightPalette = []string{"212121", "FFCA28"}
)

// NewPalette expands the hex colors into PaletteSize entries, linearly
// interpolating between neighbouring colors.
func NewPalette(hexColors []string) ([]color.RGBA, error) {
	if len(hexColors) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	stops := make([]color.RGBA, len(hexColors))
	for i, h := range hexColors {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}

	palette := make([]color.RGBA, PaletteSize)
	step := float64(len(stops)-1) / float64(PaletteSize-1)
	for i := range palette {
		index := float64(i) * step
		lower := int(math.Floor(index))
		upper := int(math.Ceil(index))
		t := index - float64(lower)
		palette[i] = color.RGBA{
			R: lerp(stops[lower].R, stops[upper].R, t),
			G: lerp(stops[lower].G, stops[upper].G, t),
			B: lerp(stops[lower].B, stops[upper].B, t),
			A: 0xff,
		}
	}
	return palette, nil
}

// ParseHexColor parses "RRGGBB", with or without a leading '#'.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// PaletteIndex maps x onto [0, size-1] after normalizing it against
// [min, max]. A degenerate range maps everything to 0.
func PaletteIndex(x, min, max float64, size int) int {
	t := normalize(x, min, max)
	return int(math.Round(t * float64(size-1)))
}

func normalize(x, min, max float64) float64 {
	if max == min || math.IsNaN(x) {
		return 0
	}
	return clamp((x-min)/(max-min), 0, 1)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func lerp(x, y uint8, t float64) uint8 {
	return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
}
