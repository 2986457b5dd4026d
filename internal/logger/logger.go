package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
}

// New builds a logger writing to cfg.Output, stdout by default
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level := parseLevel(cfg.Level)
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		handler = &consoleHandler{w: cfg.Output, level: level}
	}

	return slog.New(handler)
}

// Init builds the logger and installs it as the slog default
func Init(cfg Config) *slog.Logger {
	lg := New(cfg)
	slog.SetDefault(lg)

	return lg
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler outputs one line per record:
//
//	12:00:00.000 INFO  landed  tick=143 height=0 bounces=25
//
// Attributes bound with WithAttrs are rendered once, under the group open at
// that moment; WithGroup only qualifies the attributes added after it.
type consoleHandler struct {
	w      io.Writer
	level  slog.Level
	prefix string // rendered attrs from WithAttrs
	group  string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 128)
	buf = r.Time.AppendFormat(buf, time.TimeOnly+".000")
	buf = append(buf, ' ')
	buf = append(buf, levelTag(r.Level)...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)
	buf = append(buf, h.prefix...)

	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.group, a)
		return true
	})
	buf = append(buf, '\n')

	_, err := h.w.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	prefix := []byte(h.prefix)
	for _, a := range attrs {
		prefix = appendAttr(prefix, h.group, a)
	}

	clone := *h
	clone.prefix = string(prefix)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.group = qualify(h.group, name)
	return &clone
}

var levelTags = [...]string{"DEBUG", "INFO ", "WARN ", "ERROR"}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return levelTags[3]
	case l >= slog.LevelWarn:
		return levelTags[2]
	case l >= slog.LevelInfo:
		return levelTags[1]
	}
	return levelTags[0]
}

// appendAttr writes "  group.key=value", flattening group values into dotted keys
func appendAttr(buf []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := group
		if a.Key != "" {
			inner = qualify(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			buf = appendAttr(buf, inner, ga)
		}
		return buf
	}

	buf = append(buf, "  "...)
	buf = append(buf, qualify(group, a.Key)...)
	buf = append(buf, '=')
	return fmt.Appendf(buf, "%v", a.Value.Any())
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
