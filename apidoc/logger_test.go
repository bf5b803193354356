package apidoc

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		l.Debug("test message", "key", "value")
		l.Info("test message", "key", "value")
		l.Warn("test message", "key", "value")
		l.Error("test message", "key", "value")
	})

	t.Run("With returns same NopLogger", func(t *testing.T) {
		l := NopLogger{}
		if _, ok := l.With("key", "value").(NopLogger); !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("levels are forwarded", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("debug message", "key", "value")
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")

		out := buf.String()
		for _, want := range []string{"level=DEBUG", "debug message", "key=value", "level=INFO", "level=WARN", "level=ERROR"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got: %s", want, out)
			}
		}
	})

	t.Run("With adds attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler)).With("component", "differ")

		adapter.Info("hello")
		if !strings.Contains(buf.String(), "component=differ") {
			t.Errorf("expected attribute in output, got: %s", buf.String())
		}
	})
}
