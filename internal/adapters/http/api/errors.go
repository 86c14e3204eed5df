package api

import (
	"errors"
	"net/http"

	"github.com/okian/tourplot/internal/adapters/dataset"
	service "github.com/okian/tourplot/internal/app"
	"github.com/okian/tourplot/internal/domain/chart"
)

// Error codes returned in the JSON error body.
const (
	codeEmptyDataset = "empty_dataset"
	codeUpstream     = "upstream_error"
	codeInternal     = "internal_error"
)

// classify maps a service error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, dataset.ErrEmpty), errors.Is(err, chart.ErrEmptyDataset):
		return http.StatusServiceUnavailable, codeEmptyDataset
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, codeUpstream
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
