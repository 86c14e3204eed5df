package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/tourplot/pkg/metrics"
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		durationMs := float64(time.Since(start).Milliseconds())
		code := strconv.Itoa(sw.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, durationMs)

		if sw.status >= http.StatusBadRequest {
			kind, severity := classifyStatus(sw.status)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, kind)
			metrics.RecordErrorByType(kind, severity)
			metrics.RecordErrorLatency("http", kind, durationMs)
		}
	}
}

// classifyStatus maps an error status to an error kind and severity label.
func classifyStatus(status int) (string, string) {
	switch {
	case status == http.StatusBadGateway:
		return "upstream", "medium"
	case status == http.StatusServiceUnavailable:
		return "unavailable", "medium"
	case status >= http.StatusInternalServerError:
		return "server_error", "high"
	case status == http.StatusNotFound:
		return "not_found", "low"
	case status >= http.StatusBadRequest:
		return "client_error", "low"
	default:
		return "unknown", "low"
	}
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.wroteHeader {
		return
	}
	sw.wroteHeader = true
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}
