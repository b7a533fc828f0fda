package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solar-leads/api/solar"
	"solar-leads/models"
	"solar-leads/raster"
)

var (
	renderLayer    string
	renderMask     string
	renderData     []string
	renderOut      string
	renderRoofOnly bool
	renderMonth    int
	renderDay      int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render local data layer GeoTIFFs to PNG",
	Long: `Render data layer GeoTIFFs downloaded from the Solar API to PNG files.

Every layer needs the mask. hourlyShade takes one --data file per month,
in month order; the other layers take a single --data file.

Examples:
  solar-leads render --layer mask --mask mask.tif
  solar-leads render --layer annualFlux --mask mask.tif --data annualFlux.tif --roof-only
  solar-leads render --layer hourlyShade --mask mask.tif --data jan.tif,...,dec.tif --month 5 --day 21`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderLayer, "layer", "l", string(models.LayerMask), "layer id (mask, dsm, rgb, annualFlux, monthlyFlux, hourlyShade)")
	renderCmd.Flags().StringVar(&renderMask, "mask", "", "mask GeoTIFF")
	renderCmd.Flags().StringSliceVar(&renderData, "data", nil, "layer GeoTIFF(s)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "output directory")
	renderCmd.Flags().BoolVar(&renderRoofOnly, "roof-only", false, "hide pixels outside the roof mask")
	renderCmd.Flags().IntVar(&renderMonth, "month", 0, "hourly shade month, 0-based")
	renderCmd.Flags().IntVar(&renderDay, "day", 1, "hourly shade day of month, 1-based")
	renderCmd.MarkFlagRequired("mask")
}

func runRender(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	id, err := models.ParseLayerID(renderLayer)
	if err != nil {
		return err
	}
	layers, err := decodeLayers(solar.NewGodalDecoder(), id, renderMask, renderData)
	if err != nil {
		return err
	}

	layer, err := raster.GetLayer(id, layers)
	if err != nil {
		return err
	}
	images, err := layer.Render(raster.RenderOptions{ShowRoofOnly: renderRoofOnly, Month: renderMonth, Day: renderDay})
	if err != nil {
		return err
	}
	paths, err := raster.WritePNGs(renderOut, id, images)
	if err != nil {
		return err
	}

	logger.Info("rendered layer", zap.String("layer", string(id)), zap.Strings("files", paths))
	return nil
}

type fileDecoder interface {
	DecodeFile(path string) (*models.GeoRaster, error)
}

func decodeLayers(decoder fileDecoder, id models.LayerID, maskPath string, dataPaths []string) (*models.LayerSet, error) {
	mask, err := decoder.DecodeFile(maskPath)
	if err != nil {
		return nil, fmt.Errorf("mask: %w", err)
	}
	layers := &models.LayerSet{Mask: mask}

	switch {
	case id == models.LayerMask:
	case id == models.LayerHourlyShade:
		for i, path := range dataPaths {
			month, err := decoder.DecodeFile(path)
			if err != nil {
				return nil, fmt.Errorf("month %d: %w", i, err)
			}
			layers.HourlyShade = append(layers.HourlyShade, month)
		}
	case len(dataPaths) != 1:
		return nil, fmt.Errorf("%s needs exactly one --data file, got %d", id, len(dataPaths))
	default:
		data, err := decoder.DecodeFile(dataPaths[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		layers.Set(id, data)
	}
	return layers, nil
}
