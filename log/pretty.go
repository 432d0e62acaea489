package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles render
// through a renderer bound to the log output, so color is only emitted when
// that output is a capable terminal.
type palette struct {
	key    lipgloss.Style
	str    lipgloss.Style
	num    lipgloss.Style
	yes    lipgloss.Style
	no     lipgloss.Style
	dur    lipgloss.Style
	stamp  lipgloss.Style
	null   lipgloss.Style
	trace  lipgloss.Style
	debug  lipgloss.Style
	info   lipgloss.Style
	warn   lipgloss.Style
	failed lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:    fg("8"),
		str:    fg("6"),
		num:    fg("3"),
		yes:    fg("2"),
		no:     fg("1"),
		dur:    fg("5"),
		stamp:  fg("4"),
		null:   fg("8"),
		trace:  fg("5"),
		debug:  fg("4"),
		info:   fg("2"),
		warn:   fg("3").Bold(true),
		failed: fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.failed
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler holds the state shared by the pretty text and JSON handlers.
type prettyHandler struct {
	cfg    config
	pal    palette
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(cfg config) prettyHandler {
	return prettyHandler{
		cfg: cfg,
		pal: newPalette(cfg.output),
		mu:  &sync.Mutex{},
	}
}

func (h prettyHandler) enabled(level slog.Level) bool {
	return level >= slog.Level(h.cfg.level)
}

// withAttrs returns a copy of h that adds attrs, qualified by any open
// groups, to every record.
func (h prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	if len(h.groups) > 0 {
		attrs = []slog.Attr{{
			Key:   strings.Join(h.groups, "."),
			Value: slog.GroupValue(attrs...),
		}}
	}

	h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return h
}

func (h prettyHandler) withGroup(name string) prettyHandler {
	if name == "" {
		return h
	}

	h.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return h
}

// header returns the fixed fields of r in output order.
func (h prettyHandler) header(r slog.Record) []slog.Attr {
	fields := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		if ts := h.cfg.formatTime(r.Time); ts != "" {
			fields = append(fields, slog.String(slog.TimeKey, ts))
		}
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.cfg.caller {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	return append(fields, slog.String(slog.MessageKey, r.Message))
}

// body returns the handler and record attributes of r.
func (h prettyHandler) body(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)

	var recAttrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		recAttrs = append(recAttrs, a)

		return true
	})

	if len(h.groups) > 0 && len(recAttrs) > 0 {
		recAttrs = []slog.Attr{{
			Key:   strings.Join(h.groups, "."),
			Value: slog.GroupValue(recAttrs...),
		}}
	}

	return append(attrs, recAttrs...)
}

func (h prettyHandler) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.cfg.output.Write(buf.Bytes())

	return err
}

// prettyTextHandler writes one key=value line per record without quoting.
type prettyTextHandler struct {
	prettyHandler
}

func newPrettyTextHandler(cfg config) *prettyTextHandler {
	return &prettyTextHandler{newPrettyHandler(cfg)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		h.writeAttr(buf, "", a)
	}

	for _, a := range h.body(r) {
		h.writeAttr(buf, "", a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, key, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.pal.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyTextHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.pal.str.Render(v.String())

	case slog.KindInt64:
		return h.pal.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.pal.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.pal.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.pal.yes.Render("true")
		}

		return h.pal.no.Render("false")

	case slog.KindDuration:
		return h.pal.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.pal.stamp.Render(v.Time().Format(time.RFC3339))

	default:
		if level, ok := v.Any().(slog.Level); ok {
			return h.pal.level(level).Render(Level(level).label())
		}

		if v.Any() == nil {
			return h.pal.null.Render("<nil>")
		}

		return h.pal.str.Render(v.String())
	}
}

// prettyJSONHandler writes each record as an indented JSON object.
// Without color the output of each record is valid JSON.
type prettyJSONHandler struct {
	prettyHandler
}

func newPrettyJSONHandler(cfg config) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyHandler(cfg)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	h.writeObject(buf, append(h.header(r), h.body(r)...), 1)

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeObject(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth)
	first := true

	buf.WriteByte('{')

	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteByte('\n')
		buf.WriteString(indent)
		buf.WriteString(h.pal.key.Render(quote(a.Key)))
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			h.writeObject(buf, a.Value.Group(), depth+1)

			continue
		}

		buf.WriteString(h.renderValue(a.Value))
	}

	if !first {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth-1))
	}

	buf.WriteByte('}')
}

func (h *prettyJSONHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.pal.str.Render(quote(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.pal.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.pal.yes.Render("true")
		}

		return h.pal.no.Render("false")

	case slog.KindDuration:
		return h.pal.dur.Render(quote(v.Duration().String()))

	case slog.KindTime:
		return h.pal.stamp.Render(quote(v.Time().Format(time.RFC3339)))

	default:
		if level, ok := v.Any().(slog.Level); ok {
			return h.pal.level(level).Render(quote(Level(level).label()))
		}

		if v.Any() == nil {
			return h.pal.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return h.pal.str.Render(quote(err.Error()))
		}

		data, err := json.Marshal(v.Any())
		if err != nil {
			return h.pal.str.Render(quote(fmt.Sprint(v.Any())))
		}

		return h.pal.str.Render(string(data))
	}
}

// quote returns s as a JSON string literal.
func quote(s string) string {
	data, _ := json.Marshal(s)

	return string(data)
}
