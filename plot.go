package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solar-leads/config"
	"solar-leads/geometry"
	"solar-leads/models"
	services "solar-leads/service"
	"solar-leads/util"
)

var (
	plotFootprints string
	plotLatitude   float64
	plotLongitude  float64
	plotOut        string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the ranked footprints of a saved GeoJSON area",
	Args:  cobra.NoArgs,
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().StringVar(&plotFootprints, "footprints", "", "GeoJSON FeatureCollection of building footprints")
	plotCmd.Flags().Float64Var(&plotLatitude, "lat", 0, "search center latitude")
	plotCmd.Flags().Float64Var(&plotLongitude, "lon", 0, "search center longitude")
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "area_plot.html", "output HTML file")
	plotCmd.MarkFlagRequired("footprints")
}

func runPlot(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	center := models.LatLng{Latitude: plotLatitude, Longitude: plotLongitude}
	n, err := plotArea(plotFootprints, center, plotOut, logger)
	if err != nil {
		return err
	}
	logger.Info("area plot generated", zap.String("file", plotOut), zap.Int("buildings", n))
	return nil
}

// plotArea ranks the footprints in path the way an area search does and
// writes the chart to out. It returns the number of ranked buildings.
func plotArea(path string, center models.LatLng, out string, logger *zap.Logger) (int, error) {
	fc, err := util.ReadFeatureCollectionFromJSON(path)
	if err != nil {
		return 0, err
	}
	ranked := services.RankFootprints(fc, config.MAX_RANKED_BUILDINGS, logger)

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("failed to create %q: %w", out, err)
	}
	defer f.Close()

	bounds := geometry.BoundsFromCenter(center, config.AREA_RADIUS_METERS)
	if err := util.PlotArea(f, bounds, ranked); err != nil {
		return 0, err
	}
	return len(ranked), f.Close()
}
