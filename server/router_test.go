package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockHandlers answers every route with its own name.
type mockHandlers struct{}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

func (h *mockHandlers) GetAreaSolarDetails(w http.ResponseWriter, r *http.Request) {
	w.(http.Flusher).Flush()
	reply("area")(w, r)
}
func (h *mockHandlers) GetAreaSummary(w http.ResponseWriter, r *http.Request) { reply("summary")(w, r) }
func (h *mockHandlers) DeleteAreaSummary(w http.ResponseWriter, r *http.Request) {
	reply("delete summary")(w, r)
}
func (h *mockHandlers) ListAreaSummaries(w http.ResponseWriter, r *http.Request) {
	reply("summaries")(w, r)
}
func (h *mockHandlers) GetSolarDetails(w http.ResponseWriter, r *http.Request) { reply("solar")(w, r) }
func (h *mockHandlers) GetLayerImage(w http.ResponseWriter, r *http.Request) { reply("image")(w, r) }
func (h *mockHandlers) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	reply("property")(w, r)
}
func (h *mockHandlers) GetBuildingsNearby(w http.ResponseWriter, r *http.Request) {
	reply("nearby")(w, r)
}
func (h *mockHandlers) GetAreaPlot(w http.ResponseWriter, r *http.Request) { reply("plot")(w, r) }

func newTestRouter(t *testing.T) *mux.Router {
	h := &mockHandlers{}
	router := mux.NewRouter()
	appRouter := NewRouter(h, h, h, h, reply("metrics"), router, zaptest.NewLogger(t))
	appRouter.RegisterRoutes()
	return router
}

func TestRouter_RegisterRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{"Area Solar Details", "GET", "/api/area-solar-details", http.StatusOK, "area"},
		{"Area Summary", "GET", "/api/area-solar-details/summary", http.StatusOK, "summary"},
		{"Delete Area Summary", "DELETE", "/api/area-solar-details/summary", http.StatusOK, "delete summary"},
		{"Area Summaries", "GET", "/api/area-solar-details/summaries", http.StatusOK, "summaries"},
		{"Solar Details", "GET", "/api/solar-details", http.StatusOK, "solar"},
		{"Layer Image", "GET", "/api/layer-image", http.StatusOK, "image"},
		{"Property Details", "GET", "/api/property-details", http.StatusOK, "property"},
		{"Buildings Nearby", "GET", "/v1/buildings/nearby", http.StatusOK, "nearby"},
		{"Area Plot", "GET", "/v1/area/plot", http.StatusOK, "plot"},
		{"Metrics", "GET", "/metrics", http.StatusOK, "metrics"},
		{"Ping Route", "GET", "/ping", http.StatusOK, `{"status":"pong"}` + "\n"},
		{"Wrong Method", "POST", "/api/solar-details", http.StatusMethodNotAllowed, ""},
		{"Invalid Route", "GET", "/invalid", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, test.statusCode, rr.Code)
			if test.response != "" {
				assert.Equal(t, test.response, rr.Body.String())
			}
		})
	}
}

func TestRouter_PassesFlushesThrough(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/area-solar-details", nil))

	assert.True(t, rr.Flushed)
}

func TestSolarHttpServer_ServeAndShutdown(t *testing.T) {
	logger := zaptest.NewLogger(t)
	h := &mockHandlers{}
	muxRouter := mux.NewRouter()
	router := NewRouter(h, h, h, h, reply("metrics"), muxRouter, logger)
	router.RegisterRoutes()
	srv := NewSolarHttpServer(router, muxRouter, "127.0.0.1:0", time.Second, logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"pong"}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
