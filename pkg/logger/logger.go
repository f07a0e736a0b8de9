package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fatih/color"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Err wraps an error into the conventional slog attribute.
func Err(err error) slog.Attr {
	return slog.Any("err", err)
}

type Options struct {
	// Level reports the minimum level to log. Lower levels are discarded.
	Level slog.Leveler

	// TimeFormat is the timestamp format.
	TimeFormat string

	// NoColor strips ANSI colors from the output.
	NoColor bool
}

var DefaultOptions = &Options{
	Level:      slog.LevelDebug,
	TimeFormat: time.DateTime,
}

// Handler is a human-oriented slog.Handler: colored level tags, short
// source location, and the request ID from the context when present.
type Handler struct {
	attrs []slog.Attr
	group string
	opts  Options

	mu  *sync.Mutex
	out io.Writer
}

// NewHandler creates a Handler writing to out. A nil opts means
// DefaultOptions.
func NewHandler(out io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Handler{opts: *opts, mu: &sync.Mutex{}, out: out}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	bf := bufPool.Get().(*bytes.Buffer)
	bf.Reset()
	defer bufPool.Put(bf)

	if !r.Time.IsZero() {
		fmt.Fprint(bf, h.paint(color.Faint, r.Time.Format(h.opts.TimeFormat)), " ")
	}

	if requestID, ok := RequestIDFromContext(ctx); ok {
		fmt.Fprint(bf, h.paint(color.FgMagenta, fmt.Sprintf("%d", requestID)), " ")
	}

	fmt.Fprint(bf, h.levelTag(r.Level), " ")

	if r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(bf, "%s:%d ", filepath.Base(f.File), f.Line)
	}

	fmt.Fprint(bf, r.Message)

	for _, a := range h.attrs {
		h.writeAttr(bf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(bf, a)
		return true
	})

	fmt.Fprint(bf, "\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(bf.Bytes())
	return err
}

func (h *Handler) writeAttr(bf *bytes.Buffer, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	c := color.FgCyan
	if key == "err" || key == "error" {
		c = color.FgRed
	}
	fmt.Fprint(bf, " ", h.paint(c, key+"="), a.Value.String())
}

func (h *Handler) levelTag(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return h.paint(color.FgCyan, "DBG")
	case level < slog.LevelWarn:
		return h.paint(color.FgGreen, "INF")
	case level < slog.LevelError:
		return h.paint(color.FgYellow, "WRN")
	default:
		return h.paint(color.FgRed, "ERR")
	}
}

func (h *Handler) paint(c color.Attribute, s string) string {
	if h.opts.NoColor {
		return s
	}
	return color.New(c).Sprint(s)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	h2.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := h.clone()
	if h2.group != "" {
		h2.group += "."
	}
	h2.group += name
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		attrs: h.attrs,
		group: h.group,
		opts:  h.opts,
		mu:    h.mu,
		out:   h.out,
	}
}

var bufPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

// ContextWithRequestID tags the context with the update ID so every log
// line produced while handling that update carries it.
func ContextWithRequestID(ctx context.Context, requestID int64) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) (int64, bool) {
	requestID, ok := ctx.Value(requestIDKey).(int64)
	return requestID, ok
}
