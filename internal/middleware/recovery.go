package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/userhub/userhub/internal/handler/dto"
)

// Recoverer is a middleware that recovers from panics.
// It logs the panic and renders the uniform 500 error body without leaking
// the panic value to the client.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.Any("panic", rvr),
						slog.String("stack", string(debug.Stack())),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(
						http.StatusInternalServerError,
						"InternalServerError",
						"an unexpected error occurred",
					))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
