package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover es chi/middleware.Recoverer con cuerpo JSON: el 500 que escribe
// Recoverer sale como {"error":"internal error"}, igual que el resto.
func Recover(next http.Handler) http.Handler {
	rec := chimw.Recoverer(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
	})
}

type jsonErrorWriter struct {
	http.ResponseWriter
}

// WriteHeader completa solo los 500 que nadie formateó (sin Content-Type).
func (w *jsonErrorWriter) WriteHeader(status int) {
	if status != http.StatusInternalServerError || w.Header().Get("Content-Type") != "" {
		w.ResponseWriter.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.ResponseWriter.WriteHeader(status)
	_, _ = w.ResponseWriter.Write([]byte(`{"error":"internal error"}` + "\n"))
}
