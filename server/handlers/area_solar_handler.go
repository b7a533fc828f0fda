package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"solar-leads/dao/redis"
	"solar-leads/models"
)

const NDJSON_CONTENT_TYPE = "application/x-ndjson; charset=utf-8"

type AreaInsightsStreamer interface {
	StreamAreaInsights(ctx context.Context, center models.LatLng, userID string) (<-chan models.StreamChunk, error)
}

type SummaryStore interface {
	GetSummary(ctx context.Context, userID string) (string, error)
	ListSummaryUsers(ctx context.Context) ([]string, error)
	DeleteSummary(ctx context.Context, userID string) error
}

type AreaSolarHandler struct {
	streamer  AreaInsightsStreamer
	summaries SummaryStore
	logger    *zap.Logger
}

func NewAreaSolarHandler(streamer AreaInsightsStreamer, summaries SummaryStore, logger *zap.Logger) *AreaSolarHandler {
	return &AreaSolarHandler{
		streamer:  streamer,
		summaries: summaries,
		logger:    logger.Named("AreaSolarHandler"),
	}
}

// GetAreaSolarDetails handles
// GET /api/area-solar-details?location.latitude=..&location.longitude=..
//
// The response is newline-delimited JSON: the layers+features record, then
// one building insight per line. Each line is flushed as soon as it is
// written and the response ends when the run does. A failure before the
// first line is a 500 with no partial stream.
func (h *AreaSolarHandler) GetAreaSolarDetails(w http.ResponseWriter, r *http.Request) {
	center, err := parseLatLng(r.URL.Query(), LATITUDE_QUERY_ARG, LONGITUDE_QUERY_ARG)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	chunks, err := h.streamer.StreamAreaInsights(ctx, center, userFromRequest(r))
	if err != nil {
		h.logger.Error("area search failed", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}

	w.Header().Set("Content-Type", NDJSON_CONTENT_TYPE)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if err := streamChunks(w, chunks); err != nil {
		h.logger.Info("client went away, cancelling area search", zap.Error(err))
		cancel()
		for range chunks {
		}
	}
}

func streamChunks(w http.ResponseWriter, chunks <-chan models.StreamChunk) error {
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for chunk := range chunks {
		if err := enc.Encode(chunk); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	return nil
}

// GetAreaSummary handles GET /api/area-solar-details/summary, returning
// the CSV summary of the user's last completed area search.
func (h *AreaSolarHandler) GetAreaSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaries.GetSummary(r.Context(), userFromRequest(r))
	if errors.Is(err, redis.ErrSummaryNotFound) {
		http.Error(w, "No summary for user", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load summary", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, summary); err != nil {
		h.logger.Warn("failed to write summary", zap.Error(err))
	}
}

// DeleteAreaSummary handles DELETE /api/area-solar-details/summary.
func (h *AreaSolarHandler) DeleteAreaSummary(w http.ResponseWriter, r *http.Request) {
	err := h.summaries.DeleteSummary(r.Context(), userFromRequest(r))
	if errors.Is(err, redis.ErrSummaryNotFound) {
		http.Error(w, "No summary for user", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to delete summary", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAreaSummaries handles GET /api/area-solar-details/summaries.
func (h *AreaSolarHandler) ListAreaSummaries(w http.ResponseWriter, r *http.Request) {
	users, err := h.summaries.ListSummaryUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list summaries", zap.Error(err))
		writeInternalError(w, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"users": users}, h.logger)
}
