package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/userhub/userhub/internal/handler/dto"
	"github.com/userhub/userhub/internal/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestCollectMetrics_Success(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	handler := CollectMetrics(rec, metrics.EndpointGetUser, discardLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/user/id/1", nil))

	if got := rec.EndpointRequests(metrics.EndpointGetUser); got != 1 {
		t.Errorf("endpoint counter = %d, want 1", got)
	}
	if got := rec.Requests(); got != 1 {
		t.Errorf("global counter = %d, want 1", got)
	}
	if got := rec.Errors(); got != 0 {
		t.Errorf("error counter = %d, want 0", got)
	}
	if got := rec.EndpointObservations(metrics.EndpointGetUser); got != 1 {
		t.Errorf("observations = %d, want 1", got)
	}
}

func TestCollectMetrics_Failure(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	handler := CollectMetrics(rec, metrics.EndpointGetUser, discardLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/user/id/365", nil))

	if got := rec.Errors(); got != 1 {
		t.Errorf("error counter = %d, want 1", got)
	}
	// The latency histogram observes failures too.
	if got := rec.EndpointObservations(metrics.EndpointGetUser); got != 1 {
		t.Errorf("observations = %d, want 1", got)
	}
}

func TestCollectMetrics_UnknownEndpoint(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	invoked := false
	handler := CollectMetrics(rec, metrics.Endpoint("unassigned"), discardLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			invoked = true
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/user/id/1", nil))

	if invoked {
		t.Error("handler must not run for an unregistered endpoint")
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Exception != "InvalidMetricsConfigurationException" {
		t.Errorf("unexpected exception: %s", body.Exception)
	}
	if body.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected statusCode: %d", body.StatusCode)
	}
}
