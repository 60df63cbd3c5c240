package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// endpointHelp maps each endpoint to the human-readable fragment used in
// metric help strings.
var endpointHelp = map[Endpoint]string{
	EndpointCheckNameAvailability: "check name availability",
	EndpointAddUser:               "add user",
	EndpointGetUser:               "get user",
	EndpointUpdateUser:            "update user",
	EndpointDeleteUser:            "delete user",
}

// PrometheusRecorder implements Recorder on top of a Prometheus registry.
// Every known endpoint gets its own counter and histogram, registered once
// at construction time.
type PrometheusRecorder struct {
	requestCount prometheus.Counter
	errorCount   prometheus.Counter

	endpointRequests  map[Endpoint]prometheus.Counter
	endpointDurations map[Endpoint]prometheus.Histogram
}

// NewPrometheus builds a PrometheusRecorder with all endpoint collectors
// registered against reg.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	r := &PrometheusRecorder{
		requestCount: factory.NewCounter(prometheus.CounterOpts{
			Name: "request_count",
			Help: "Total number of requests to user service",
		}),
		errorCount: factory.NewCounter(prometheus.CounterOpts{
			Name: "error_count",
			Help: "Total number of errors from user service",
		}),
		endpointRequests:  make(map[Endpoint]prometheus.Counter, len(endpointHelp)),
		endpointDurations: make(map[Endpoint]prometheus.Histogram, len(endpointHelp)),
	}

	for _, endpoint := range Endpoints() {
		r.endpointRequests[endpoint] = factory.NewCounter(prometheus.CounterOpts{
			Name: string(endpoint) + "_request_count",
			Help: "Total number of requests to " + endpointHelp[endpoint],
		})
		r.endpointDurations[endpoint] = factory.NewHistogram(prometheus.HistogramOpts{
			Name: string(endpoint) + "_request_histogram",
			Help: "Histogram showing request time for " + endpointHelp[endpoint],
		})
	}

	return r
}

// Known reports whether the endpoint has registered collectors.
func (r *PrometheusRecorder) Known(endpoint Endpoint) bool {
	_, ok := r.endpointRequests[endpoint]
	return ok
}

// IncRequest increments the endpoint and global request counters.
func (r *PrometheusRecorder) IncRequest(endpoint Endpoint) error {
	counter, ok := r.endpointRequests[endpoint]
	if !ok {
		return ErrInvalidConfiguration
	}
	counter.Inc()
	r.requestCount.Inc()
	return nil
}

// IncError increments the global error counter.
func (r *PrometheusRecorder) IncError() {
	r.errorCount.Inc()
}

// ObserveDuration records the handling latency for the endpoint.
func (r *PrometheusRecorder) ObserveDuration(endpoint Endpoint, duration time.Duration) {
	if histogram, ok := r.endpointDurations[endpoint]; ok {
		histogram.Observe(duration.Seconds())
	}
}
