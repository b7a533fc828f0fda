package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"solar-leads/config"
	"solar-leads/models"
)

const (
	LATITUDE_QUERY_ARG       = "location.latitude"
	LONGITUDE_QUERY_ARG      = "location.longitude"
	LAT_QUERY_ARG            = "lat"
	LON_QUERY_ARG            = "lon"
	RADIUS_QUERY_ARG         = "radius"
	LAYER_QUERY_ARG          = "layer"
	SHOW_ROOF_ONLY_QUERY_ARG = "showRoofOnly"
	MONTH_QUERY_ARG          = "month"
	DAY_QUERY_ARG            = "day"
	FRAME_QUERY_ARG          = "frame"
	ADDRESS_LINE1_QUERY_ARG  = "address.line1"
	ADDRESS_LINE2_QUERY_ARG  = "address.line2"
)

const INTERNAL_ERROR_MESSAGE = "Something went wrong"

type invalidArgError struct {
	name string
}

func (e *invalidArgError) Error() string { return "Invalid argument " + e.name }

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	v, err := strconv.ParseFloat(vals.Get(name), 64)
	if err != nil {
		return 0, &invalidArgError{name: name}
	}
	return v, nil
}

// parseLatLng reads a WGS84 point from two required query args.
func parseLatLng(vals url.Values, latName, lonName string) (models.LatLng, error) {
	lat, err := parseArgFloat64(vals, latName)
	if err != nil || lat < -90 || lat > 90 {
		return models.LatLng{}, &invalidArgError{name: latName}
	}
	lon, err := parseArgFloat64(vals, lonName)
	if err != nil || lon < -180 || lon > 180 {
		return models.LatLng{}, &invalidArgError{name: lonName}
	}
	return models.LatLng{Latitude: lat, Longitude: lon}, nil
}

func parseOptionalInt(vals url.Values, name string, def int) (int, error) {
	s := vals.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &invalidArgError{name: name}
	}
	return v, nil
}

func parseOptionalBool(vals url.Values, name string) (bool, error) {
	s := vals.Get(name)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, &invalidArgError{name: name}
	}
	return v, nil
}

// userFromRequest returns the user set by the auth proxy.
func userFromRequest(r *http.Request) string {
	if user := strings.TrimSpace(r.Header.Get(config.USER_HEADER)); user != "" {
		return user
	}
	return config.ANONYMOUS_USER
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", zap.Error(err))
	}
}

func writeInternalError(w http.ResponseWriter, logger *zap.Logger) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": INTERNAL_ERROR_MESSAGE}, logger)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// Ping handles GET /ping
func Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"pong"}`+"\n")
}
