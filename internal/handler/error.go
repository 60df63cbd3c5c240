package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/userhub/userhub/internal/metrics"
	"github.com/userhub/userhub/internal/service"
)

// Error-kind names rendered in the "exception" field of error bodies.
// The generic 500 deliberately carries no internal error name.
const (
	kindUserNotFound         = "UserNotFoundException"
	kindDuplicateUsername    = "DuplicateUsernameException"
	kindInvalidMetricsConfig = "InvalidMetricsConfigurationException"
	kindInvalidRequest       = "InvalidRequestException"
	kindInternal             = "InternalServerError"
)

// respondError maps a failure from the service layer to the uniform error
// body. Every endpoint funnels its failures through here so that all error
// responses share one shape and one status mapping.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, kindUserNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, kindDuplicateUsername, err.Error())
	case errors.Is(err, metrics.ErrInvalidConfiguration):
		writeError(w, http.StatusInternalServerError, kindInvalidMetricsConfig, err.Error())
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, kindInternal, "an unexpected error occurred")
	}
}
