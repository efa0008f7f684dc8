// Leveled, human-readable logging for the CLI.
//
// Implements a [slog.Handler] that writes single-line records of the form
// "LEVEL message key=value ...", with a timestamp prefix in verbose mode.
// Level labels are colorized when the stream is an interactive terminal.
// The handler is mutable after creation so the CLI can reconfigure it once
// flags are parsed; configuration is shared across clones created by
// WithAttrs and WithGroup.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
)

// Configuration shared across all clones of a handler.
type options struct {
	mu      sync.Mutex    // Serializes writes and reconfiguration.
	stream  io.Writer     // Destination stream.
	level   slog.LevelVar // Minimum level.
	colors  aurora.Aurora // Color scheme.
	verbose bool          // Whether to prefix records with a timestamp.
}

// Writes slog records as single formatted lines.
type Handler struct {
	opts  *options // Shared configuration.
	attrs string   // Preformatted attributes from WithAttrs.
	group string   // Dotted key prefix from WithGroup.
}

// Creates a handler writing to stderr at info level with colors disabled.
//
// Colors, level, and verbosity are reconfigured after flag parsing via the
// Set methods.
func NewHandler() *Handler {
	o := &options{
		stream: os.Stderr,
		colors: aurora.NewAurora(false),
	}
	o.level.Set(slog.LevelInfo)
	return &Handler{opts: o}
}

// Sets the minimum level.
func (h *Handler) SetLevel(level slog.Level) {
	h.opts.level.Set(level)
}

// Sets the destination stream.
func (h *Handler) SetStream(w io.Writer) {
	h.opts.mu.Lock()
	defer h.opts.mu.Unlock()
	h.opts.stream = w
}

// Enables or disables color output.
func (h *Handler) SetColors(enabled bool) {
	h.opts.mu.Lock()
	defer h.opts.mu.Unlock()
	h.opts.colors = aurora.NewAurora(enabled)
}

// Enables or disables the timestamp prefix.
func (h *Handler) SetVerbose(enabled bool) {
	h.opts.mu.Lock()
	defer h.opts.mu.Unlock()
	h.opts.verbose = enabled
}

// Reports whether records at the given level are emitted.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Formats and writes a single record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.opts.mu.Lock()
	defer h.opts.mu.Unlock()

	var b strings.Builder

	if h.opts.verbose && !r.Time.IsZero() {
		b.WriteString(r.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}

	b.WriteString(h.label(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, a)
		return true
	})

	b.WriteByte('\n')

	_, err := io.WriteString(h.opts.stream, b.String())
	return err
}

// Returns a clone with the given attributes preformatted into every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		clone.appendAttr(&b, a)
	}
	clone.attrs = b.String()
	return &clone
}

// Returns a clone that prefixes subsequent attribute keys with the group
// name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

// Appends one " key=value" pair, applying the group prefix.
func (h *Handler) appendAttr(b *strings.Builder, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(h.group)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

// Formats an attribute value, quoting strings that contain whitespace.
func formatValue(v slog.Value) string {
	s := v.String()
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Returns the fixed-width, optionally colorized label for a level.
func (h *Handler) label(level slog.Level) string {
	au := h.opts.colors
	switch {
	case level >= slog.LevelError:
		return au.Red("ERROR").String()
	case level >= slog.LevelWarn:
		return au.Yellow("WARN ").String()
	case level >= slog.LevelInfo:
		return au.Cyan("INFO ").String()
	default:
		return au.Faint("DEBUG").String()
	}
}
