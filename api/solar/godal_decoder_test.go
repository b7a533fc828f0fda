package solar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	utmWidth  = 100
	utmHeight = 50
)

// writeUTMTiff writes a two band Float64 GeoTIFF with 10m pixels whose top
// left corner sits at easting 500000 / northing 4650000 in UTM zone 16N.
// epsg == 0 leaves the raster without a spatial reference.
func writeUTMTiff(t *testing.T, epsg int) string {
	t.Helper()
	registerDrivers.Do(godal.RegisterAll)

	path := filepath.Join(t.TempDir(), "layer.tif")
	ds, err := godal.Create(godal.GTiff, path, 2, godal.Float64, utmWidth, utmHeight)
	require.NoError(t, err)

	require.NoError(t, ds.SetGeoTransform([6]float64{500000, 10, 0, 4650000, 0, -10}))
	if epsg != 0 {
		sr, err := godal.NewSpatialRefFromEPSG(epsg)
		require.NoError(t, err)
		defer sr.Close()
		require.NoError(t, ds.SetSpatialRef(sr))
	}

	for i, band := range ds.Bands() {
		buf := make([]float64, utmWidth*utmHeight)
		for j := range buf {
			buf[j] = float64(i + 1)
		}
		require.NoError(t, band.Write(0, 0, buf, utmWidth, utmHeight))
	}
	require.NoError(t, ds.Close())
	return path
}

func assertUTMRaster(t *testing.T, path string) {
	t.Helper()
	decoder := NewGodalDecoder()

	raster, err := decoder.DecodeFile(path)
	require.NoError(t, err)

	assert.Equal(t, utmWidth, raster.Width)
	assert.Equal(t, utmHeight, raster.Height)
	require.Len(t, raster.Rasters, 2)
	for i, band := range raster.Rasters {
		require.Len(t, band, utmWidth*utmHeight)
		assert.Equal(t, float64(i+1), band[0])
		assert.Equal(t, float64(i+1), band[len(band)-1])
	}

	assert.InDelta(t, 42.00201, raster.Bounds.North, 1e-4)
	assert.InDelta(t, 41.99751, raster.Bounds.South, 1e-4)
	assert.InDelta(t, -86.98792, raster.Bounds.East, 1e-4)
	assert.InDelta(t, -87.0, raster.Bounds.West, 1e-4)
}

func TestGodalDecoder_DecodeFile_ReprojectsToWGS84(t *testing.T) {
	assertUTMRaster(t, writeUTMTiff(t, 32616))
}

func TestGodalDecoder_Decode_Bytes(t *testing.T) {
	data, err := os.ReadFile(writeUTMTiff(t, 32616))
	require.NoError(t, err)

	decoder := &GodalDecoder{TempDir: t.TempDir()}
	raster, err := decoder.Decode(data)
	require.NoError(t, err)
	assert.Len(t, raster.Rasters, 2)
	assert.InDelta(t, -87.0, raster.Bounds.West, 1e-4)
	assert.InDelta(t, 42.00201, raster.Bounds.North, 1e-4)

	leftovers, err := os.ReadDir(decoder.TempDir)
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestGodalDecoder_DecodeFile_RejectsMissingSpatialReference(t *testing.T) {
	decoder := NewGodalDecoder()

	_, err := decoder.DecodeFile(writeUTMTiff(t, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spatial reference")
}
