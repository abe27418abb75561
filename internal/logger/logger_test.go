package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestVerboseGating(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(*Logger)
		want    string
	}{
		{"debug hidden", false, func(l *Logger) { l.Debug("hidden") }, ""},
		{"info hidden", false, func(l *Logger) { l.Info("hidden") }, ""},
		{"warn shown", false, func(l *Logger) { l.Warn("careful") }, "WARN [test] careful"},
		{"error shown", false, func(l *Logger) { l.Error("boom %d", 42) }, "ERROR [test] boom 42"},
		{"debug verbose", true, func(l *Logger) { l.Debug("details") }, "DEBUG [test] details"},
		{"info verbose", true, func(l *Logger) { l.Info("hello") }, "INFO [test] hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			verbose := tt.verbose
			l := NewWithCallback("test", func() bool { return verbose })
			l.SetOutput(&buf)

			tt.log(l)

			got := buf.String()
			if tt.want == "" {
				if got != "" {
					t.Errorf("Expected no output, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Expected output to contain %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFieldsFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithCallback("client", func() bool { return true })
	l.SetOutput(&buf)

	l.InfoWithFields("request done", []Field{F("path", "/logs"), Count(3), Duration(2 * time.Second)})
	l.ErrorWithFields("request failed", []Field{Error(errors.New("refused"))})

	out := buf.String()
	if !strings.Contains(out, "request done [path=/logs count=3 duration=2s]") {
		t.Errorf("Unexpected fields output: %q", out)
	}
	if !strings.Contains(out, "request failed [error=refused]") {
		t.Errorf("Unexpected error fields output: %q", out)
	}
}

func TestWithComponentSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	root := New("", nil)
	child := root.WithComponent("session")
	root.SetOutput(&buf)

	child.Warn("redirected")
	root.Warn("root")

	out := buf.String()
	if !strings.Contains(out, "WARN [session] redirected") {
		t.Errorf("Child logger did not follow SetOutput: %q", out)
	}
	if !strings.Contains(out, "WARN [main] root") {
		t.Errorf("Empty component should render as main: %q", out)
	}
}

func TestPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New("fmt", nil)
	l.SetOutput(&buf)

	l.Warn("score 100%")
	if !strings.Contains(buf.String(), "score 100%") {
		t.Errorf("Message without args must be written verbatim, got %q", buf.String())
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithCallback("http", func() bool { return true })
	l.SetOutput(&buf)

	_, _ = l.Writer().Write([]byte("first\nsecond\n"))

	out := buf.String()
	if strings.Count(out, "INFO [http]") != 2 {
		t.Errorf("Expected two INFO lines, got %q", out)
	}
}
