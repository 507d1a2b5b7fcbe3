package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_DebugWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("request sent", zap.String("path", "/task"))
	_ = logger.Sync()

	out := buf.String()
	if !strings.Contains(out, "request sent") || !strings.Contains(out, "/task") {
		t.Errorf("expected debug line with fields, got %q", out)
	}
	if !strings.Contains(out, "taskman") {
		t.Errorf("expected logger name in output, got %q", out)
	}
}

func TestNew_NoDebugIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Error("should not appear")
	_ = logger.Sync()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
