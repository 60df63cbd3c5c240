// Package metrics provides lightweight hooks for instrumentation.
package metrics

import (
	"errors"
	"fmt"
	"time"
)

// Endpoint identifies an instrumented HTTP endpoint. Each endpoint owns a
// dedicated request counter and latency histogram.
type Endpoint string

const (
	EndpointCheckNameAvailability Endpoint = "name_availability"
	EndpointAddUser               Endpoint = "add_user"
	EndpointGetUser               Endpoint = "get_user"
	EndpointUpdateUser            Endpoint = "update_user"
	EndpointDeleteUser            Endpoint = "delete_user"
)

// Endpoints returns every endpoint a Recorder is expected to know about.
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointCheckNameAvailability,
		EndpointAddUser,
		EndpointGetUser,
		EndpointUpdateUser,
		EndpointDeleteUser,
	}
}

// ErrInvalidConfiguration reports a request flowing through an endpoint the
// recorder has no counters for. This is a wiring defect, not a client error.
var ErrInvalidConfiguration = errors.New("endpoint is not labeled properly for measuring metrics")

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Known reports whether the endpoint is registered with the recorder.
	Known(endpoint Endpoint) bool

	// IncRequest increments the endpoint's request counter and the global
	// request counter. Returns ErrInvalidConfiguration for an unknown endpoint.
	IncRequest(endpoint Endpoint) error

	// IncError increments the global error counter.
	IncError()

	// ObserveDuration records the handling latency for the endpoint.
	// Unknown endpoints are ignored.
	ObserveDuration(endpoint Endpoint, duration time.Duration)
}

// ValidateEndpoints checks at startup that every routed endpoint is
// registered with the recorder, so a mislabeled route fails the boot
// instead of every request.
func ValidateEndpoints(rec Recorder, endpoints ...Endpoint) error {
	for _, e := range endpoints {
		if !rec.Known(e) {
			return fmt.Errorf("%w: %q", ErrInvalidConfiguration, e)
		}
	}
	return nil
}
