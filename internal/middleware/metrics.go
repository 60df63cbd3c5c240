package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/userhub/userhub/internal/handler/dto"
	"github.com/userhub/userhub/internal/metrics"
)

// CollectMetrics returns per-route middleware that records the endpoint's
// request counter and latency histogram plus the global request and error
// counters. The duration is observed on every exit, success or failure.
//
// A route wired with an endpoint the recorder does not know is a
// configuration defect; main validates the full endpoint table at startup,
// and this guard turns anything that slips past it into a 500 instead of
// invoking the handler unmeasured.
func CollectMetrics(rec metrics.Recorder, endpoint metrics.Endpoint, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := rec.IncRequest(endpoint); err != nil {
				logger.Error("metrics misconfiguration",
					slog.String("endpoint", string(endpoint)),
					slog.String("path", r.URL.Path),
				)
				writeMetricsConfigError(w)
				return
			}

			start := time.Now()
			wrapped := wrapResponseWriter(w)

			defer func() {
				rec.ObserveDuration(endpoint, time.Since(start))
			}()

			next.ServeHTTP(wrapped, r)

			if wrapped.status >= 400 {
				rec.IncError()
			}
		})
	}
}

func writeMetricsConfigError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(
		http.StatusInternalServerError,
		"InvalidMetricsConfigurationException",
		metrics.ErrInvalidConfiguration.Error(),
	))
}
