package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"solar-leads/server/handlers"
)

type AreaSolarHandler interface {
	GetAreaSolarDetails(w http.ResponseWriter, r *http.Request)
	GetAreaSummary(w http.ResponseWriter, r *http.Request)
	DeleteAreaSummary(w http.ResponseWriter, r *http.Request)
	ListAreaSummaries(w http.ResponseWriter, r *http.Request)
}

type SolarHandler interface {
	GetSolarDetails(w http.ResponseWriter, r *http.Request)
	GetLayerImage(w http.ResponseWriter, r *http.Request)
}

type PropertyHandler interface {
	GetPropertyDetails(w http.ResponseWriter, r *http.Request)
	GetBuildingsNearby(w http.ResponseWriter, r *http.Request)
}

type AreaPlotHandler interface {
	GetAreaPlot(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	areaSolarHandler AreaSolarHandler
	solarHandler     SolarHandler
	propertyHandler  PropertyHandler
	areaPlotHandler  AreaPlotHandler
	metricsHandler   http.Handler
	router           *mux.Router
	logger           *zap.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	areaSolarHandler AreaSolarHandler,
	solarHandler SolarHandler,
	propertyHandler PropertyHandler,
	areaPlotHandler AreaPlotHandler,
	metricsHandler http.Handler,
	router *mux.Router,
	logger *zap.Logger) *Router {
	return &Router{
		areaSolarHandler: areaSolarHandler,
		solarHandler:     solarHandler,
		propertyHandler:  propertyHandler,
		areaPlotHandler:  areaPlotHandler,
		metricsHandler:   metricsHandler,
		router:           router,
		logger:           logger.Named("Router"),
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.logRequests)

	// expects ?location.latitude={float}&location.longitude={float}
	r.router.HandleFunc("/api/area-solar-details", r.areaSolarHandler.GetAreaSolarDetails).Methods("GET")
	r.router.HandleFunc("/api/area-solar-details/summary", r.areaSolarHandler.GetAreaSummary).Methods("GET")
	r.router.HandleFunc("/api/area-solar-details/summary", r.areaSolarHandler.DeleteAreaSummary).Methods("DELETE")
	r.router.HandleFunc("/api/area-solar-details/summaries", r.areaSolarHandler.ListAreaSummaries).Methods("GET")
	r.router.HandleFunc("/api/solar-details", r.solarHandler.GetSolarDetails).Methods("GET")
	// expects the location plus ?layer={id}[&showRoofOnly&month&day&frame]
	r.router.HandleFunc("/api/layer-image", r.solarHandler.GetLayerImage).Methods("GET")
	// expects ?address.line1={string}&address.line2={string}
	r.router.HandleFunc("/api/property-details", r.propertyHandler.GetPropertyDetails).Methods("GET")

	// expects ?lat={float}&lon={float}[&radius={meters}]
	r.router.HandleFunc("/v1/buildings/nearby", r.propertyHandler.GetBuildingsNearby).Methods("GET")
	r.router.HandleFunc("/v1/area/plot", r.areaPlotHandler.GetAreaPlot).Methods("GET")

	r.router.Handle("/metrics", r.metricsHandler).Methods("GET")
	r.router.HandleFunc("/ping", handlers.Ping).Methods("GET")
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		r.logger.Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// statusRecorder keeps the response status and passes flushes through so
// streamed responses still reach the client line by line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
