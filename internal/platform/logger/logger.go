package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Level es un zerolog.Level acotado a los cuatro niveles que usa el servicio.
type Level zerolog.Level

const (
	Debug = Level(zerolog.DebugLevel)
	Info  = Level(zerolog.InfoLevel)
	Warn  = Level(zerolog.WarnLevel)
	Error = Level(zerolog.ErrorLevel)
)

// ParseLevel nunca falla: lo desconocido o vacío es Info, trace baja a Debug
// y fatal/panic suben a Error.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}

	lvl, err := zerolog.ParseLevel(s)
	switch {
	case err != nil, lvl == zerolog.NoLevel, lvl == zerolog.Disabled:
		return Info
	case lvl < zerolog.DebugLevel:
		return Debug
	case lvl > zerolog.ErrorLevel:
		return Error
	default:
		return Level(lvl)
	}
}

func (l Level) String() string { return zerolog.Level(l).String() }

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// ZeroLogger adapta zerolog a la interfaz Logger.
type ZeroLogger struct {
	zl zerolog.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Out por defecto es os.Stdout.
	Out io.Writer
}

func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	ctx := zerolog.New(out).Level(zerolog.Level(opts.Level)).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}

	return &ZeroLogger{zl: ctx.Logger()}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME (opcional)
func NewFromEnv() Logger {
	return New(optionsFromEnv())
}

func optionsFromEnv() Options {
	k := koanf.New(".")
	_ = k.Load(env.Provider("", ".", func(s string) string {
		switch s {
		case "LOG_LEVEL":
			return "level"
		case "LOG_FORMAT":
			return "format"
		case "APP_NAME":
			return "app"
		default:
			// el resto del entorno no nos interesa
			return ""
		}
	}), nil)

	return Options{
		Level:  ParseLevel(k.String("level")),
		Format: ParseFormat(k.String("format")),
		App:    k.String("app"),
	}
}

// Nop descarta todo. Útil en tests.
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZeroLogger{zl: l.zl.With().Fields(clean(fields)).Logger()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.log(l.zl.Debug(), msg, fields) }
func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.log(l.zl.Info(), msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.log(l.zl.Warn(), msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.log(l.zl.Error(), msg, fields) }

func (l *ZeroLogger) log(e *zerolog.Event, msg string, fields map[string]any) {
	// e es nil cuando el nivel está deshabilitado
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(clean(fields))
	}
	e.Msg(msg)
}

func clean(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
