package services

import (
	"sort"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"solar-leads/geometry"
	"solar-leads/models"
)

// RankFootprints derives centroid and area for every feature, largest area
// first, keeping at most limit. Features whose geometry cannot be measured
// are logged and left out. The computed values are also stored in each
// measured feature's properties.
func RankFootprints(fc *geojson.FeatureCollection, limit int, logger *zap.Logger) []models.BuildingFootprint {
	if fc == nil {
		return nil
	}

	footprints := make([]models.BuildingFootprint, 0, len(fc.Features))
	for _, f := range fc.Features {
		centroid, err := geometry.Centroid(f)
		if err != nil {
			logger.Warn("skipping footprint", zap.Any("id", featureID(f)), zap.Error(err))
			continue
		}
		area, err := geometry.Area(f)
		if err != nil {
			logger.Warn("skipping footprint", zap.Any("id", featureID(f)), zap.Error(err))
			continue
		}

		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		f.Properties["centroid"] = centroid
		f.Properties["area"] = area

		footprints = append(footprints, models.BuildingFootprint{
			Feature:  f,
			Area:     area,
			Centroid: centroid,
		})
	}

	sort.SliceStable(footprints, func(i, j int) bool {
		return footprints[i].Area > footprints[j].Area
	})
	if limit >= 0 && len(footprints) > limit {
		footprints = footprints[:limit]
	}
	return footprints
}

func featureID(f *geojson.Feature) interface{} {
	if f == nil {
		return nil
	}
	return f.ID
}
