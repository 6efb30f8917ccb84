package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

// withLogging writes one access line per request. Client errors are logged
// at warn level and server errors at error level.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		log := logger.FromRequest(r)
		event := log.Info()
		switch {
		case rw.status >= http.StatusInternalServerError:
			event = log.Error()
		case rw.status >= http.StatusBadRequest:
			event = log.Warn()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode()).
			Int("size", rw.size).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}
