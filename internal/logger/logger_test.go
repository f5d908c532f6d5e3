package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerbosityFiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbosity(int(Info))

	SetVerbosity(int(Info))
	Infof("serving on %s", ":8080")
	Debugf("hidden %d", 1)

	out := buf.String()
	if !strings.Contains(out, "[INFO]  serving on :8080") {
		t.Fatalf("expected info line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at Info, got %q", out)
	}

	buf.Reset()
	SetVerbosity(int(Trace))
	Tracef("point %d", 7)
	if !strings.Contains(buf.String(), "[TRACE] point 7") {
		t.Fatalf("expected trace line, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Fatalf("expected caller file in output, got %q", buf.String())
	}
}

func TestSetVerbosityClamps(t *testing.T) {
	defer SetVerbosity(int(Info))
	SetVerbosity(42)
	if Verbosity() != Trace {
		t.Fatalf("expected Trace, got %d", Verbosity())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"error", Error},
		{"INFO", Info},
		{"", Info},
		{"debug", Debug},
		{" trace ", Trace},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): unexpected error: %v", test.in, err)
		}
		if got != test.want {
			t.Fatalf("ParseLevel(%q): expected %d, got %d", test.in, test.want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
