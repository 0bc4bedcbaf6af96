package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func clearLegacyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")
}

// Load trabaja sobre todo el entorno; un CRUDAPI_* del shell no tiene que
// contaminar los tests.
func clearPrefixedEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, envPrefix) {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearLegacyEnv(t)
	clearPrefixedEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load with an empty environment: %v", err)
	}

	if cfg.Server.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr())
	}
	if cfg.Store.Driver != DriverMemory {
		t.Fatalf("expected in-memory store by default, got %+v", cfg.Store)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected permissive CORS by default, got %v", cfg.Server.CORSAllowedOrigins)
	}
}

func TestLoad_MongoURISelectsMongo(t *testing.T) {
	clearLegacyEnv(t)
	clearPrefixedEnv(t)
	t.Setenv("CRUDAPI_STORE__MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != DriverMongo || cfg.Store.MongoDatabase != "mydatabase" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
}

func TestLoad_ExplicitDriverWins(t *testing.T) {
	clearPrefixedEnv(t)
	t.Setenv("DB_DSN", "postgres://u:p@localhost/db")
	t.Setenv("CRUDAPI_STORE__DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != DriverMemory || cfg.Store.PostgresDSN == "" {
		t.Fatalf("explicit driver must not be overridden: %+v", cfg.Store)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearLegacyEnv(t)
	clearPrefixedEnv(t)
	t.Setenv("CRUDAPI_SERVER__PORT", "9090")
	t.Setenv("CRUDAPI_SERVER__READ_TIMEOUT", "2s")
	t.Setenv("CRUDAPI_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CRUDAPI_SERVER__RATE_LIMIT_RPS", "2.5")
	t.Setenv("CRUDAPI_STORE__DRIVER", "memory")
	t.Setenv("CRUDAPI_LOG__FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9090" || cfg.Server.ReadTimeout != 2*time.Second {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 || cfg.Server.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Server.RateLimitRPS != 2.5 {
		t.Fatalf("unexpected rps: %v", cfg.Server.RateLimitRPS)
	}
	if cfg.Store.Driver != DriverMemory || cfg.Log.Format != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_LegacyEnv(t *testing.T) {
	clearPrefixedEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("DB_DSN", "postgres://u:p@localhost/db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Fatalf("expected PORT fallback, got %s", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverPostgres || cfg.Store.PostgresDSN == "" {
		t.Fatalf("expected DB_DSN to select postgres, got %+v", cfg.Store)
	}
}

func TestLoad_RejectsInvalidDriver(t *testing.T) {
	clearLegacyEnv(t)
	clearPrefixedEnv(t)
	t.Setenv("CRUDAPI_STORE__DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for unknown driver")
	}
}

func TestLoad_MongoRequiresURI(t *testing.T) {
	clearLegacyEnv(t)
	clearPrefixedEnv(t)
	t.Setenv("CRUDAPI_STORE__DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error without mongo uri")
	}
}
