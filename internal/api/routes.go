package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/geohash/internal/metrics"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Handler serves the geohash HTTP API.
type Handler struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler creates a Handler that logs with log and records request metrics.
func NewHandler(log *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{log: log, metrics: metrics}
}

// Register mounts the API routes on router.
func (h *Handler) Register(router *mux.Router) {
	router.Use(h.instrument)

	router.HandleFunc("/encode", h.Encode).Methods(http.MethodGet)
	router.HandleFunc("/encode_int", h.EncodeInt).Methods(http.MethodGet)
	router.HandleFunc("/decode/{hash}", h.Decode).Methods(http.MethodGet)
	router.HandleFunc("/decode_int/{hash:[0-9]+}", h.DecodeInt).Methods(http.MethodGet)
	router.HandleFunc("/neighbor/{hash}", h.Neighbor).Methods(http.MethodGet)
	router.HandleFunc("/neighbor_int/{hash:[0-9]+}", h.NeighborInt).Methods(http.MethodGet)
	router.HandleFunc("/neighbors/{hash}", h.Neighbors).Methods(http.MethodGet)
	router.HandleFunc("/neighbors_int/{hash:[0-9]+}", h.NeighborsInt).Methods(http.MethodGet)
	router.HandleFunc("/bboxes", h.BBoxes).Methods(http.MethodGet)
	router.HandleFunc("/bboxes_int", h.BBoxesInt).Methods(http.MethodGet)
}

// NewRouter returns a router with the API routes registered.
func NewRouter(log *slog.Logger, metrics *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()
	NewHandler(log, metrics).Register(router)
	return router
}

// WithCORS adds CORS support for browser clients of the API.
func WithCORS(next http.Handler) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(next)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records the route template, status code and duration of every request.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		h.metrics.RequestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
		h.metrics.APIRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		h.log.DebugContext(r.Context(), "Request served", "route", route, "status", rec.status)
	})
}
