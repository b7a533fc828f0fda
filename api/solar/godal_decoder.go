package solar

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/mdobak/go-xerrors"

	"solar-leads/models"
)

const WGS84_PROJ4 = "+proj=longlat +datum=WGS84 +no_defs"

var registerDrivers sync.Once

// GodalDecoder decodes GeoTIFFs with GDAL and reprojects their bounding box
// to WGS84 lat/lng.
type GodalDecoder struct {
	// TempDir holds the scratch files GDAL reads from. Empty means os.TempDir.
	TempDir string
}

func NewGodalDecoder() *GodalDecoder {
	return &GodalDecoder{}
}

func (d *GodalDecoder) Decode(data []byte) (*models.GeoRaster, error) {
	f, err := os.CreateTemp(d.TempDir, "layer-*.tif")
	if err != nil {
		return nil, xerrors.New(fmt.Errorf("failed to create scratch file: %w", err))
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, xerrors.New(fmt.Errorf("failed to write scratch file: %w", err))
	}
	if err := f.Close(); err != nil {
		return nil, xerrors.New(err)
	}
	return d.DecodeFile(f.Name())
}

// DecodeFile reads every band of the GeoTIFF at path.
func (d *GodalDecoder) DecodeFile(path string) (*models.GeoRaster, error) {
	registerDrivers.Do(godal.RegisterAll)

	ds, err := godal.Open(path, godal.RasterOnly())
	if err != nil {
		return nil, xerrors.New(fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer ds.Close()

	structure := ds.Structure()
	width, height := structure.SizeX, structure.SizeY

	bands := ds.Bands()
	rasters := make([][]float64, len(bands))
	for i, band := range bands {
		buf := make([]float64, width*height)
		if err := band.Read(0, 0, buf, width, height); err != nil {
			return nil, xerrors.New(fmt.Errorf("failed to read band %d: %w", i+1, err))
		}
		rasters[i] = buf
	}

	bounds, err := datasetBounds(ds, width, height)
	if err != nil {
		return nil, err
	}

	return &models.GeoRaster{
		Width:   width,
		Height:  height,
		Rasters: rasters,
		Bounds:  bounds,
	}, nil
}

// datasetBounds projects the dataset's corners to lat/lng.
func datasetBounds(ds *godal.Dataset, width, height int) (models.Bounds, error) {
	gt, err := ds.GeoTransform()
	if err != nil {
		return models.Bounds{}, xerrors.New(fmt.Errorf("failed to read geotransform: %w", err))
	}

	x0, y0 := gt[0], gt[3]
	x1 := gt[0] + float64(width)*gt[1] + float64(height)*gt[2]
	y1 := gt[3] + float64(width)*gt[4] + float64(height)*gt[5]
	xs := []float64{math.Min(x0, x1), math.Max(x0, x1)}
	ys := []float64{math.Min(y0, y1), math.Max(y0, y1)}

	if ds.Projection() == "" {
		return models.Bounds{}, xerrors.New(fmt.Errorf("dataset has no spatial reference"))
	}
	if err := toWGS84(ds, xs, ys); err != nil {
		return models.Bounds{}, err
	}

	return models.Bounds{
		North: ys[1],
		South: ys[0],
		East:  xs[1],
		West:  xs[0],
	}, nil
}

func toWGS84(ds *godal.Dataset, xs, ys []float64) error {
	src := ds.SpatialRef()
	defer src.Close()

	wgs84, err := godal.NewSpatialRefFromProj4(WGS84_PROJ4)
	if err != nil {
		return xerrors.New(fmt.Errorf("failed to create wgs84 reference: %w", err))
	}
	defer wgs84.Close()

	trn, err := godal.NewTransform(src, wgs84)
	if err != nil {
		return xerrors.New(fmt.Errorf("failed to create transform: %w", err))
	}
	defer trn.Close()

	if err := trn.TransformEx(xs, ys, nil, nil); err != nil {
		return xerrors.New(fmt.Errorf("failed to reproject bounds: %w", err))
	}
	return nil
}
