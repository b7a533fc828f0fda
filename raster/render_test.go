package raster

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-leads/models"
)

func filled(w, h int, bands ...float64) *models.GeoRaster {
	g := &models.GeoRaster{Width: w, Height: h}
	for _, v := range bands {
		band := make([]float64, w*h)
		for i := range band {
			band[i] = v
		}
		g.Rasters = append(g.Rasters, band)
	}
	return g
}

func ramp(w, h int, max float64) *models.GeoRaster {
	band := make([]float64, w*h)
	for i := range band {
		band[i] = max * float64(i) / float64(len(band)-1)
	}
	return &models.GeoRaster{Width: w, Height: h, Rasters: [][]float64{band}}
}

func TestNewPalette(t *testing.T) {
	palette, err := NewPalette(BinaryPalette)
	require.NoError(t, err)
	require.Len(t, palette, PaletteSize)

	assert.Equal(t, color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}, palette[0])
	assert.Equal(t, color.RGBA{R: 0xB3, G: 0xE5, B: 0xFC, A: 0xff}, palette[PaletteSize-1])

	_, err = NewPalette([]string{"zzzzzz"})
	assert.Error(t, err)
	_, err = NewPalette(nil)
	assert.Error(t, err)
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		x, min, max float64
		want        int
	}{
		{0, 0, 1, 0},
		{1, 0, 1, 255},
		{0.5, 0, 1, 128},
		{-10, 0, 1, 0},
		{5000, 0, 1800, 255},
		{900, 0, 1800, 128},
		{7, 7, 7, 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, PaletteIndex(test.x, test.min, test.max, PaletteSize), "x=%v", test.x)
	}
}

func TestRenderPalette_Idempotent(t *testing.T) {
	data := ramp(8, 5, 1800)
	opts := PaletteOptions{Data: data, Colors: IronPalette, Min: 0, Max: 1800}

	first, err := RenderPalette(opts)
	require.NoError(t, err)
	second, err := RenderPalette(opts)
	require.NoError(t, err)

	assert.Equal(t, first.Pix, second.Pix)
	assert.Equal(t, first.Rect, second.Rect)
}

func TestRenderPalette_Mask(t *testing.T) {
	data := ramp(4, 4, 1)
	mask := filled(4, 4, 1)
	for i := 0; i < 16; i += 2 {
		mask.Rasters[0][i] = 0
	}

	img, err := RenderPalette(PaletteOptions{Data: data, Mask: mask, Colors: SunlightPalette, Min: 0, Max: 1})
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := img.RGBAAt(x, y)
			if mask.Rasters[0][y*4+x] == 0 {
				assert.Equal(t, color.RGBA{}, c, "pixel %d,%d", x, y)
			} else {
				assert.Equal(t, uint8(0xff), c.A, "pixel %d,%d", x, y)
			}
		}
	}
}

func TestRenderPalette_NaNMask(t *testing.T) {
	mask := filled(2, 2, 1)
	mask.Rasters[0][1] = math.NaN()

	img, err := RenderPalette(PaletteOptions{Data: filled(2, 2, 1), Mask: mask, Colors: BinaryPalette, Min: 0, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 0))
	assert.Equal(t, uint8(0xff), img.RGBAAt(0, 0).A)

	img, err = RenderRGB(filled(2, 2, 10, 20, 30), mask)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.RGBAAt(0, 0))
}

func TestRenderPalette_MaskResamples(t *testing.T) {
	data := ramp(2, 2, 1)
	mask := filled(4, 4, 1)

	img, err := RenderPalette(PaletteOptions{Data: data, Mask: mask, Colors: BinaryPalette, Min: 0, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, img.Rect.Dx())
	assert.Equal(t, 4, img.Rect.Dy())

	// bottom-right quadrant samples the last data pixel (value 1)
	assert.Equal(t, color.RGBA{R: 0xB3, G: 0xE5, B: 0xFC, A: 0xff}, img.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}, img.RGBAAt(0, 0))
}

func TestRenderPalette_Errors(t *testing.T) {
	_, err := RenderPalette(PaletteOptions{})
	assert.ErrorIs(t, err, ErrMissingLayer)

	_, err = RenderPalette(PaletteOptions{Data: filled(2, 2, 1), Index: 3})
	assert.ErrorIs(t, err, ErrMissingLayer)

	bad := &models.GeoRaster{Width: 2, Height: 2, Rasters: [][]float64{{1, 2, 3}}}
	_, err = RenderPalette(PaletteOptions{Data: bad})
	assert.Error(t, err)
}

func TestRenderRGB(t *testing.T) {
	rgb := filled(2, 2, 10, 20, 300)

	img, err := RenderRGB(rgb, nil)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 255, A: 255}, img.RGBAAt(1, 1))

	mask := filled(2, 2, 1)
	mask.Rasters[0][0] = 0
	img, err = RenderRGB(rgb, mask)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 255, A: 255}, img.RGBAAt(1, 0))

	_, err = RenderRGB(filled(2, 2, 1, 2), nil)
	assert.ErrorIs(t, err, ErrMissingLayer)
}

func TestRenderRGB_AlphaBand(t *testing.T) {
	rgba := filled(1, 1, 200, 100, 50, 0)
	img, err := RenderRGB(rgba, nil)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
}
