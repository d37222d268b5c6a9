package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type Config struct {
	Level  string
	Format string // "text", "json" or "console"
	Output io.Writer
}

var (
	once sync.Once
	lg   *slog.Logger
)

// Init installs the process logger as the slog default. Later calls are
// ignored.
func Init(cfg Config) {
	once.Do(func() {
		lg = New(cfg)
		slog.SetDefault(lg)
	})
}

func L() *slog.Logger {
	if lg == nil {
		Init(Config{Level: "info", Format: "console"})
	}
	return lg
}

// New builds a logger without touching the default.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := ParseLevel(cfg.Level)
	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level}))
	case "text":
		return slog.New(slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(&consoleHandler{w: cfg.Output, level: level, mu: &sync.Mutex{}})
	}
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler writes one line per record, with the component attribute
// lifted into a prefix:
//
//	12:00:00 INFO  [motion] jump  grounded=true
type consoleHandler struct {
	w         io.Writer
	mu        *sync.Mutex
	level     slog.Level
	component string
	attrs     []slog.Attr
	group     string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Format(time.TimeOnly))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	b.WriteByte(' ')
	if h.component != "" {
		b.WriteString("[" + h.component + "] ")
	}
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if a.Key == "component" && h.group == "" {
			next.component = a.Value.String()
			continue
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	next.group = name
	if h.group != "" {
		next.group = h.group + "." + name
	}
	return &next
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	b.WriteString("  ")
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(a.Value.Resolve().String())
}
