package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestInMemoryRecorder_Counts(t *testing.T) {
	rec := NewInMemory()

	if err := rec.IncRequest(EndpointAddUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rec.IncRequest(EndpointAddUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rec.IncRequest(EndpointDeleteUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.IncError()
	rec.ObserveDuration(EndpointAddUser, 5*time.Millisecond)

	if got := rec.EndpointRequests(EndpointAddUser); got != 2 {
		t.Errorf("add_user requests = %d, want 2", got)
	}
	if got := rec.EndpointRequests(EndpointDeleteUser); got != 1 {
		t.Errorf("delete_user requests = %d, want 1", got)
	}
	if got := rec.Requests(); got != 3 {
		t.Errorf("global requests = %d, want 3", got)
	}
	if got := rec.Errors(); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
	if got := rec.EndpointObservations(EndpointAddUser); got != 1 {
		t.Errorf("observations = %d, want 1", got)
	}
}

func TestInMemoryRecorder_UnknownEndpoint(t *testing.T) {
	rec := NewInMemory()

	err := rec.IncRequest(Endpoint("unassigned"))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestValidateEndpoints(t *testing.T) {
	rec := NewInMemory()

	if err := ValidateEndpoints(rec, Endpoints()...); err != nil {
		t.Errorf("expected all known endpoints to validate, got %v", err)
	}

	err := ValidateEndpoints(rec, EndpointAddUser, Endpoint("unassigned"))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestPrometheusRecorder_RegistersAllCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	rec := NewPrometheus(registry)

	for _, endpoint := range Endpoints() {
		if !rec.Known(endpoint) {
			t.Errorf("endpoint %q not registered", endpoint)
		}
		if err := rec.IncRequest(endpoint); err != nil {
			t.Errorf("IncRequest(%q): %v", endpoint, err)
		}
		rec.ObserveDuration(endpoint, time.Millisecond)
	}
	rec.IncError()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	got := make(map[string]bool, len(families))
	for _, mf := range families {
		got[mf.GetName()] = true
	}

	want := []string{
		"request_count",
		"error_count",
		"name_availability_request_count",
		"add_user_request_count",
		"get_user_request_count",
		"update_user_request_count",
		"delete_user_request_count",
		"name_availability_request_histogram",
		"add_user_request_histogram",
		"get_user_request_histogram",
		"update_user_request_histogram",
		"delete_user_request_histogram",
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("metric %q missing from exposition", name)
		}
	}
}

func TestPrometheusRecorder_UnknownEndpoint(t *testing.T) {
	rec := NewPrometheus(prometheus.NewRegistry())

	err := rec.IncRequest(Endpoint("unassigned"))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
	if rec.Known(Endpoint("unassigned")) {
		t.Error("unassigned endpoint must not be known")
	}
}
