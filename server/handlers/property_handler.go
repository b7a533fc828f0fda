package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"solar-leads/dao/redis"
	"solar-leads/models"
)

type PropertyLookupService interface {
	GetPropertyDetails(ctx context.Context, address models.StreetAddress) (*models.AddressResponse, error)
	GetNearbyBuildings(ctx context.Context, center models.LatLng, radiusMeters float64) ([]redis.IndexedBuilding, error)
}

type PropertyHandler struct {
	service PropertyLookupService
	logger  *zap.Logger
}

func NewPropertyHandler(service PropertyLookupService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{service: service, logger: logger.Named("PropertyHandler")}
}

// GetPropertyDetails handles
// GET /api/property-details?address.line1=..&address.line2=..
func (h *PropertyHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	address := models.StreetAddress{
		Line1: strings.TrimSpace(vals.Get(ADDRESS_LINE1_QUERY_ARG)),
		Line2: strings.TrimSpace(vals.Get(ADDRESS_LINE2_QUERY_ARG)),
	}
	if address.Line1 == "" {
		writeBadRequest(w, &invalidArgError{name: ADDRESS_LINE1_QUERY_ARG})
		return
	}

	details, err := h.service.GetPropertyDetails(r.Context(), address)
	if err != nil {
		h.logger.Error("failed to get property details", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, details, h.logger)
}

// GetBuildingsNearby handles GET /v1/buildings/nearby?lat=..&lon=..&radius=..
// radius is in meters and optional.
func (h *PropertyHandler) GetBuildingsNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	center, err := parseLatLng(vals, LAT_QUERY_ARG, LON_QUERY_ARG)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var radius float64
	if vals.Get(RADIUS_QUERY_ARG) != "" {
		if radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	buildings, err := h.service.GetNearbyBuildings(r.Context(), center, radius)
	if err != nil {
		h.logger.Error("failed to load nearby buildings", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	if buildings == nil {
		buildings = []redis.IndexedBuilding{}
	}
	writeJSON(w, http.StatusOK, buildings, h.logger)
}
