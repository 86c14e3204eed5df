package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
)

// Content types served by the chart routes.
const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeSVG  = "image/svg+xml"
	contentTypePNG  = "image/png"
)

// ChartDependencies renders the chart in each output format.
type ChartDependencies interface {
	RenderPage(ctx context.Context, w io.Writer) error
	RenderSVG(ctx context.Context, w io.Writer) error
	RenderPNG(ctx context.Context, w io.Writer) error
}

// ChartHandler serves the rendered chart.
type ChartHandler struct {
	deps ChartDependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

// HandlePage handles GET / with the interactive HTML page.
func (h *ChartHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, contentTypeHTML, h.deps.RenderPage)
}

// HandleSVG handles GET /chart.svg.
func (h *ChartHandler) HandleSVG(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, contentTypeSVG, h.deps.RenderSVG)
}

// HandlePNG handles GET /chart.png.
func (h *ChartHandler) HandlePNG(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, contentTypePNG, h.deps.RenderPNG)
}

// serve renders into a buffer first so a failed render never leaves a
// half-written body behind a 200.
func (h *ChartHandler) serve(w http.ResponseWriter, r *http.Request, contentType string, render func(context.Context, io.Writer) error) {
	if !isRead(r) {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := render(r.Context(), &buf); err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}
