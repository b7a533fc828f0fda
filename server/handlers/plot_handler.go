package handlers

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"solar-leads/api/overpass"
	"solar-leads/config"
	"solar-leads/geometry"
	services "solar-leads/service"
	"solar-leads/util"
)

// AreaPlotHandler serves a debug chart of an area search.
type AreaPlotHandler struct {
	footprints overpass.OverpassAPI
	logger     *zap.Logger
}

func NewAreaPlotHandler(footprints overpass.OverpassAPI, logger *zap.Logger) *AreaPlotHandler {
	return &AreaPlotHandler{footprints: footprints, logger: logger.Named("AreaPlotHandler")}
}

// GetAreaPlot handles
// GET /v1/area/plot?location.latitude=..&location.longitude=..
func (h *AreaPlotHandler) GetAreaPlot(w http.ResponseWriter, r *http.Request) {
	center, err := parseLatLng(r.URL.Query(), LATITUDE_QUERY_ARG, LONGITUDE_QUERY_ARG)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	bounds := geometry.BoundsFromCenter(center, config.AREA_RADIUS_METERS)
	fc, err := h.footprints.GetBuildingsInBounds(r.Context(), bounds)
	if err != nil {
		h.logger.Error("failed to fetch footprints", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	ranked := services.RankFootprints(fc, config.MAX_RANKED_BUILDINGS, h.logger)

	var buf bytes.Buffer
	if err := util.PlotArea(&buf, bounds, ranked); err != nil {
		h.logger.Error("failed to plot area", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
