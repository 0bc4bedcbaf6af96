package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"crud-collections-api/internal/platform/logger"
)

// RequestLogger es chi/middleware.RequestLogger con nuestro logger detrás.
// Tiene que ir después de chimw.RequestID; chimw.Recoverer reporta los panics
// a través de la misma entrada.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&logFormatter{log: log})
}

type logFormatter struct {
	log logger.Logger
}

func (f *logFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &logEntry{
		log: f.log.With(map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote_ip":  r.RemoteAddr,
			"request_id": chimw.GetReqID(r.Context()),
		}),
	}
}

type logEntry struct {
	log logger.Logger
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	fields := map[string]any{
		"status":      status,
		"bytes":       bytes,
		"duration_ms": elapsed.Milliseconds(),
	}

	switch {
	case status >= 500:
		e.log.Error("request", fields)
	case status >= 400:
		e.log.Warn("request", fields)
	default:
		e.log.Info("request", fields)
	}
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.log.Error("panic recovered", map[string]any{
		"panic": fmt.Sprint(v),
		"stack": string(stack),
	})
}
