package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected default format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Writer() != &buf {
		t.Error("logger does not write to the given writer")
	}
}

func TestLogger_Make_NilWriterDiscards(t *testing.T) {
	logger := Make(nil)

	if logger.Writer() != io.Discard {
		t.Errorf("expected io.Discard, got %T", logger.Writer())
	}

	logger.Error("dropped")
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	// None of these may panic.
	logger.Trace("trace")
	logger.Info("info", slog.String("key", "value"))
	logger.ErrorContext(t.Context(), "error")

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger reports enabled")
	}

	if logger.With(slog.Int("n", 1)).Logger != nil {
		t.Error("With on zero logger created a handler")
	}

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Error("zero logger does not report defaults")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		log     func(Logger)
		written bool
	}{
		{"trace_at_trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"trace_at_debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"debug_at_debug", LevelDebug, func(l Logger) { l.Debug("m") }, true},
		{"info_at_warn", LevelWarn, func(l Logger) { l.Info("m") }, false},
		{"warn_at_warn", LevelWarn, func(l Logger) { l.Warn("m") }, true},
		{"error_at_error", LevelError, func(l Logger) { l.Error("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if written := buf.Len() > 0; written != tt.written {
				t.Errorf("written = %v, want %v: %q", written, tt.written, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false), WithLevel(LevelTrace))
	logger.Trace("parse start", slog.Int("source_bytes", 12))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if result["msg"] != "parse start" {
		t.Errorf("expected msg=parse start, got %v", result["msg"])
	}

	if result["level"] != "TRACE" {
		t.Errorf("expected level=TRACE, got %v", result["level"])
	}

	if result["source_bytes"] != float64(12) {
		t.Errorf("expected source_bytes=12, got %v", result["source_bytes"])
	}
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false), WithTimeLayout("none"))
	logger.Warn("slow", slog.String("key", "some value"))

	got := strings.TrimSpace(buf.String())
	want := `level=WARN msg=slow key="some value"`

	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithFormat(FormatJSON), WithPretty(false))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller does not point at the test: %s", buf.String())
	}

	buf.Reset()

	Make(&buf, WithCaller(false), WithFormat(FormatJSON), WithPretty(false)).Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Errorf("caller info included when disabled: %s", buf.String())
	}
}

func TestLogger_Wrap_DoesNotMutateOriginal(t *testing.T) {
	var buf bytes.Buffer

	original := Make(&buf, WithLevel(LevelInfo))
	wrapped := original.Wrap(WithLevel(LevelDebug), WithFormat(FormatJSON))

	if original.Level() != LevelInfo || original.Format() != DefaultFormat {
		t.Error("Wrap mutated the original logger")
	}

	if wrapped.Level() != LevelDebug || wrapped.Format() != FormatJSON {
		t.Error("Wrap did not apply options")
	}

	if wrapped.Writer() != &buf {
		t.Error("Wrap did not keep the output")
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(pretty), WithTimeLayout("none"))
		logger = logger.With(slog.String("session", "abc"))
		logger.Info("evaluated", slog.Int("n", 3))

		out := buf.String()
		if !strings.Contains(out, "session=abc") || !strings.Contains(out, "n=3") {
			t.Errorf("pretty=%v: attributes missing: %q", pretty, out)
		}
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}), WithFormat(FormatJSON), WithPretty(false))

	for i := range 8 {
		wg.Go(func() {
			logger.With(slog.Int("worker", i)).Info("working")
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 8 {
		t.Errorf("expected 8 lines, got %d", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
