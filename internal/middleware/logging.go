package middleware

import (
	"net/http"
	"time"

	"cat-photo-album/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// statusWriter envuelve el ResponseWriter para capturar el status code,
// que http.ResponseWriter no expone después de WriteHeader.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger loguea cada request con método, ruta, status y duración.
// Usa el request id que setea chi/middleware.RequestID.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			log.Info("request", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     sw.status,
				"duration":   time.Since(start).String(),
				"request_id": chimw.GetReqID(r.Context()),
			})
		})
	}
}
