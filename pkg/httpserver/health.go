package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/viewkit/pkg/logger"
)

// Check reports whether a dependency of the server is usable.
type Check func(ctx context.Context) error

// Ready answers 200 "READY" when every check passes and 503 "NOT_READY"
// otherwise. Without checks it acts as a liveness probe answering "ALIVE".
func Ready(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
