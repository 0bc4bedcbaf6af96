package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	memstore "crud-collections-api/internal/adapters/storage/memory"
	mongostore "crud-collections-api/internal/adapters/storage/mongo"
	pgstore "crud-collections-api/internal/adapters/storage/postgres"
	"crud-collections-api/internal/middleware"
	"crud-collections-api/internal/platform/config"
	"crud-collections-api/internal/platform/logger"
	"crud-collections-api/internal/ports/docstore"
	"crud-collections-api/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Sin config todavía: LOG_LEVEL / LOG_FORMAT / APP_NAME
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Error("cannot open document store", map[string]any{
			"driver": cfg.Store.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer store.Close(context.Background())

	opts := router.Options{
		Store:              store,
		Logger:             log,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}
	if cfg.Server.RateLimitRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
		stop := make(chan struct{})
		defer close(stop)
		go rl.Run(stop)
		opts.RateLimiter = rl
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting server", map[string]any{
		"addr":  srv.Addr,
		"store": cfg.Store.Driver,
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (docstore.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongostore.Open(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return mongostore.NewDocumentsRepo(client, cfg.MongoDatabase), nil
	case config.DriverPostgres:
		db, err := pgstore.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return pgstore.NewDocumentsRepo(db), nil
	case config.DriverMemory:
		return memstore.NewDocumentRepo(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
