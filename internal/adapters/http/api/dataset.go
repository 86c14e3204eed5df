package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/tourplot/internal/adapters/repository"
	"github.com/okian/tourplot/internal/domain/model"
)

// DatasetDependencies exposes the validated records and forced refetches.
type DatasetDependencies interface {
	Records(ctx context.Context) ([]model.RaceRecord, error)
	Refresh(ctx context.Context) (repository.Snapshot, error)
}

// DatasetHandler serves the dataset routes.
type DatasetHandler struct {
	deps DatasetDependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps DatasetDependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

// HandleData handles GET /data.json.
func (h *DatasetHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	recs, err := h.deps.Records(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

type refreshResponse struct {
	Snapshot  string `json:"snapshot"`
	Source    string `json:"source"`
	Records   int    `json:"records"`
	FetchedAt string `json:"fetched_at"`
}

// HandleRefresh handles POST /refresh.
func (h *DatasetHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Snapshot:  snap.ID,
		Source:    snap.Source,
		Records:   len(snap.Records),
		FetchedAt: snap.FetchedAt.UTC().Format(time.RFC3339),
	})
}
