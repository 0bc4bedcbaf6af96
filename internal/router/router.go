package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "crud-collections-api/internal/adapters/storage/memory"
	"crud-collections-api/internal/docs"
	"crud-collections-api/internal/domain/resources"
	"crud-collections-api/internal/middleware"
	"crud-collections-api/internal/platform/logger"
	"crud-collections-api/internal/ports/docstore"
)

type Options struct {
	// Opcional: si es nil se usa el store in-memory (modo dev / tests).
	Store docstore.Store

	Logger logger.Logger

	// Vacío => CORS permisivo ("*").
	CORSAllowedOrigins []string

	// Opcional: si viene, aplica rate limit por IP.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	store := opts.Store
	if store == nil {
		log.Warn("no document store configured, using in-memory store", nil)
		store = mem.NewDocumentRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warn("store not ready", map[string]any{"error": err.Error()})
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	kinds := resources.Kinds()

	docs.Register(kinds)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Un mismo handler genérico por recurso
	for _, k := range kinds {
		resources.RegisterRoutes(r, resources.NewService(k, store), log)
	}

	return r
}
