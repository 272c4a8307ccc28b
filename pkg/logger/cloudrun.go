package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// CloudRunHandler writes one JSON object per record in the shape Cloud Logging
// parses from stdout: severity, message, time and a data object with attributes.
type CloudRunHandler struct {
	level slog.Leveler
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

func NewCloudRunHandler(level slog.Level) slog.Handler {
	return NewCloudRunHandlerTo(os.Stdout, level)
}

func NewCloudRunHandlerTo(out io.Writer, level slog.Leveler) *CloudRunHandler {
	return &CloudRunHandler{level: level, out: out, mu: &sync.Mutex{}}
}

func (h *CloudRunHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *CloudRunHandler) Handle(_ context.Context, r slog.Record) error {
	event := map[string]any{
		"severity": severity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		data := make(map[string]any, len(h.attrs)+r.NumAttrs())
		for _, a := range h.attrs {
			data[a.Key] = attrValue(a.Value)
		}
		r.Attrs(func(a slog.Attr) bool {
			data[h.qualify(a.Key)] = attrValue(a.Value)
			return true
		})
		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(b, '\n'))
	return err
}

func (h *CloudRunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &next
}

// WithGroup flattens groups into dotted keys; Cloud Logging has no nesting for data.
func (h *CloudRunHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.qualify(name)
	return &next
}

func (h *CloudRunHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	default:
		return v.Any()
	}
}

func severity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
