package metrics

import (
	"sync"
	"time"
)

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu sync.Mutex

	requests uint64
	errors   uint64

	endpointRequests  map[Endpoint]uint64
	endpointDurations map[Endpoint][]time.Duration
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	r := &InMemoryRecorder{
		endpointRequests:  make(map[Endpoint]uint64),
		endpointDurations: make(map[Endpoint][]time.Duration),
	}
	for _, endpoint := range Endpoints() {
		r.endpointRequests[endpoint] = 0
	}
	return r
}

// Known reports whether the endpoint is registered.
func (r *InMemoryRecorder) Known(endpoint Endpoint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.endpointRequests[endpoint]
	return ok
}

// IncRequest increments the endpoint and global request counters.
func (r *InMemoryRecorder) IncRequest(endpoint Endpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.endpointRequests[endpoint]; !ok {
		return ErrInvalidConfiguration
	}
	r.endpointRequests[endpoint]++
	r.requests++
	return nil
}

// IncError increments the global error counter.
func (r *InMemoryRecorder) IncError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors++
}

// ObserveDuration records the handling latency for the endpoint.
func (r *InMemoryRecorder) ObserveDuration(endpoint Endpoint, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.endpointRequests[endpoint]; ok {
		r.endpointDurations[endpoint] = append(r.endpointDurations[endpoint], duration)
	}
}

// Requests returns the global request count.
func (r *InMemoryRecorder) Requests() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests
}

// Errors returns the global error count.
func (r *InMemoryRecorder) Errors() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// EndpointRequests returns the request count for one endpoint.
func (r *InMemoryRecorder) EndpointRequests(endpoint Endpoint) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.endpointRequests[endpoint]
}

// EndpointObservations returns the number of latency observations for one endpoint.
func (r *InMemoryRecorder) EndpointObservations(endpoint Endpoint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.endpointDurations[endpoint])
}
