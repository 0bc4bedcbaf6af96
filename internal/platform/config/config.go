// Package config carga la configuración desde variables de entorno
// (opcionalmente desde un .env) con koanf, y la valida al arrancar.
//
// Las variables usan el prefijo CRUDAPI_ y "__" para anidar:
//
//	CRUDAPI_SERVER__PORT=8080        -> server.port
//	CRUDAPI_STORE__DRIVER=mongo      -> store.driver
//	CRUDAPI_STORE__MONGO_URI=...     -> store.mongo_uri
//	CRUDAPI_LOG__LEVEL=debug         -> log.level
//
// PORT y DB_DSN se siguen aceptando como fallback. Sin driver explícito se
// usa mongo si hay URI, postgres si hay DSN, y si no el store in-memory (dev).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CRUDAPI_"

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App    AppConfig    `koanf:"app"`
	Server ServerConfig `koanf:"server" validate:"required"`
	Store  StoreConfig  `koanf:"store" validate:"required"`
	Log    LogConfig    `koanf:"log"`
}

type AppConfig struct {
	Name string `koanf:"name"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`

	// Lista separada por comas; "*" permite cualquier origen.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRPS <= 0 deshabilita el rate limit.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`
}

type StoreConfig struct {
	Driver        string `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
	MongoURI      string `koanf:"mongo_uri" validate:"required_if=Driver mongo"`
	MongoDatabase string `koanf:"mongo_database" validate:"required_if=Driver mongo"`
	PostgresDSN   string `koanf:"postgres_dsn" validate:"required_if=Driver postgres"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

// Default es la config base; las variables de entorno la pisan.
func Default() Config {
	return Config{
		App: AppConfig{Name: "crud-collections-api"},
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			RateLimitBurst: 4,
		},
		Store: StoreConfig{
			Driver:        DriverMemory,
			MongoDatabase: "mydatabase",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load lee el entorno y valida. No termina el proceso: el caller decide.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyLegacyEnv(&cfg, k)
	if !k.Exists("store.driver") {
		cfg.Store.Driver = inferDriver(cfg.Store)
	}
	cfg.Server.CORSAllowedOrigins = splitList(cfg.Server.CORSAllowedOrigins)
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Addr es la dirección de escucha (":8080").
func (c ServerConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// applyLegacyEnv respeta PORT y DB_DSN si no vino la variable con prefijo.
func applyLegacyEnv(cfg *Config, k *koanf.Koanf) {
	if v := os.Getenv("PORT"); v != "" && !k.Exists("server.port") {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DB_DSN"); v != "" && !k.Exists("store.postgres_dsn") {
		cfg.Store.PostgresDSN = v
	}
}

func inferDriver(s StoreConfig) string {
	switch {
	case s.MongoURI != "":
		return DriverMongo
	case s.PostgresDSN != "":
		return DriverPostgres
	default:
		return DriverMemory
	}
}

// splitList acepta tanto ["a","b"] como ["a,b"] (env trae un único string).
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
