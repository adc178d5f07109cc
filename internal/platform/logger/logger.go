package logger

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Level y Format son los de charmbracelet/log; los alias mantienen la API del paquete.
type (
	Level  = charmlog.Level
	Format = charmlog.Formatter
)

const (
	Debug = charmlog.DebugLevel
	Info  = charmlog.InfoLevel
	Warn  = charmlog.WarnLevel
	Error = charmlog.ErrorLevel

	FormatText   = charmlog.TextFormatter
	FormatJSON   = charmlog.JSONFormatter
	FormatLogfmt = charmlog.LogfmtFormatter
)

// ParseLevel acepta debug|info|warn|warning|error. Cualquier otra cosa => Info.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := charmlog.ParseLevel(s)
	if err != nil || lvl > Error {
		return Info
	}
	return lvl
}

// ParseFormat acepta text|json|logfmt. Default text.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "logfmt":
		return FormatLogfmt
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

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es os.Stdout.
	Output io.Writer
}

// charmLogger adapta charmbracelet/log a la interfaz de campos por mapa.
type charmLogger struct {
	l *charmlog.Logger
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		Level:           opts.Level,
		Formatter:       opts.Format,
	})
	if app := strings.TrimSpace(opts.App); app != "" {
		l = l.With("app", app)
	}
	return &charmLogger{l: l}
}

// NewFromEnv lee LOG_LEVEL, LOG_FORMAT y APP_NAME.
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo.
func Nop() Logger {
	return New(Options{Level: Error, Output: io.Discard})
}

type ctxKey struct{}

// WithContext guarda l en ctx (logger con los campos del request).
func WithContext(ctx context.Context, l Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext devuelve el logger del request o fallback si no hay.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	if fallback == nil {
		return Nop()
	}
	return fallback
}

func (c *charmLogger) With(fields map[string]any) Logger {
	kv := keyvals(fields)
	if len(kv) == 0 {
		return c
	}
	return &charmLogger{l: c.l.With(kv...)}
}

func (c *charmLogger) Debug(msg string, fields map[string]any) { c.l.Debug(msg, keyvals(fields)...) }
func (c *charmLogger) Info(msg string, fields map[string]any)  { c.l.Info(msg, keyvals(fields)...) }
func (c *charmLogger) Warn(msg string, fields map[string]any)  { c.l.Warn(msg, keyvals(fields)...) }
func (c *charmLogger) Error(msg string, fields map[string]any) { c.l.Error(msg, keyvals(fields)...) }

// keyvals aplana el mapa en pares ordenados por key.
func keyvals(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.TrimSpace(k) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
