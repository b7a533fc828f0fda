package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"solar-leads/models"
	"solar-leads/raster"
)

type SolarInsightsService interface {
	GetBuildingInsights(ctx context.Context, point models.LatLng) (*models.BuildingInsights, error)
	RenderLayer(ctx context.Context, center models.LatLng, id models.LayerID, opts raster.RenderOptions, frame int) ([]byte, error)
}

type SolarHandler struct {
	service SolarInsightsService
	logger  *zap.Logger
}

func NewSolarHandler(service SolarInsightsService, logger *zap.Logger) *SolarHandler {
	return &SolarHandler{service: service, logger: logger.Named("SolarHandler")}
}

// GetSolarDetails handles
// GET /api/solar-details?location.latitude=..&location.longitude=..
func (h *SolarHandler) GetSolarDetails(w http.ResponseWriter, r *http.Request) {
	point, err := parseLatLng(r.URL.Query(), LATITUDE_QUERY_ARG, LONGITUDE_QUERY_ARG)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	insights, err := h.service.GetBuildingInsights(r.Context(), point)
	if err != nil {
		h.logger.Error("failed to get building insights", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, insights, h.logger)
}

// GetLayerImage handles GET /api/layer-image, returning one rendered frame
// of a data layer as PNG. month is 0-based, day 1-based; frame selects the
// month of monthlyFlux or the hour of hourlyShade.
func (h *SolarHandler) GetLayerImage(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	center, err := parseLatLng(vals, LATITUDE_QUERY_ARG, LONGITUDE_QUERY_ARG)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	id, err := models.ParseLayerID(vals.Get(LAYER_QUERY_ARG))
	if err != nil {
		writeBadRequest(w, &invalidArgError{name: LAYER_QUERY_ARG})
		return
	}

	opts, frame, err := parseRenderOptions(vals)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	img, err := h.service.RenderLayer(r.Context(), center, id, opts, frame)
	if errors.Is(err, raster.ErrUnsupportedLayer) {
		writeBadRequest(w, err)
		return
	}
	if err != nil {
		h.logger.Error("failed to render layer", zap.String("layer", string(id)), zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.logger.Warn("failed to write image", zap.Error(err))
	}
}

func parseRenderOptions(vals url.Values) (raster.RenderOptions, int, error) {
	var opts raster.RenderOptions
	var err error
	if opts.ShowRoofOnly, err = parseOptionalBool(vals, SHOW_ROOF_ONLY_QUERY_ARG); err != nil {
		return opts, 0, err
	}
	if opts.Month, err = parseOptionalInt(vals, MONTH_QUERY_ARG, 0); err != nil {
		return opts, 0, err
	}
	if opts.Day, err = parseOptionalInt(vals, DAY_QUERY_ARG, 1); err != nil {
		return opts, 0, err
	}
	frame, err := parseOptionalInt(vals, FRAME_QUERY_ARG, 0)
	return opts, frame, err
}
