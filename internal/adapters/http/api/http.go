// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/tourplot/internal/adapters/repository"
	"github.com/okian/tourplot/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Records returns the validated dataset.
	Records(ctx context.Context) ([]model.RaceRecord, error)
	// Refresh refetches the dataset.
	Refresh(ctx context.Context) (repository.Snapshot, error)

	RenderPage(ctx context.Context, w io.Writer) error
	RenderSVG(ctx context.Context, w io.Writer) error
	RenderPNG(ctx context.Context, w io.Writer) error
}

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	chartHandler   *ChartHandler
	datasetHandler *DatasetHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		chartHandler:   NewChartHandler(deps),
		datasetHandler: NewDatasetHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/chart.svg", MetricsMiddleware(s.chartHandler.HandleSVG, "chart_svg"))
	mux.HandleFunc("/chart.png", MetricsMiddleware(s.chartHandler.HandlePNG, "chart_png"))
	mux.HandleFunc("/data.json", MetricsMiddleware(s.datasetHandler.HandleData, "data"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.datasetHandler.HandleRefresh, "refresh"))
	// Catch-all last; the handler rejects anything but "/".
	mux.HandleFunc("/", MetricsMiddleware(s.chartHandler.HandlePage, "page"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isRead reports whether r is a GET or HEAD request.
func isRead(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}
