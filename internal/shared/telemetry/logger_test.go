package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := out
	out = buf
	t.Cleanup(func() { out = prev })
	return buf
}

func TestInfoWritesStructuredLine(t *testing.T) {
	buf := captureOutput(t)

	Info("evaluation.completed", map[string]any{
		"evaluation_id": "eval-1",
		"alignment":     63,
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected level info, got %v", entry["level"])
	}
	if entry["msg"] != "evaluation.completed" {
		t.Fatalf("expected msg evaluation.completed, got %v", entry["msg"])
	}
	if entry["evaluation_id"] != "eval-1" {
		t.Fatalf("expected evaluation_id field, got %v", entry["evaluation_id"])
	}
	if entry["ts"] == nil || entry["ts"] == "" {
		t.Fatalf("expected timestamp, got %v", entry["ts"])
	}
}

func TestErrorLevel(t *testing.T) {
	buf := captureOutput(t)

	Error("phrasing.failed", nil)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "error" {
		t.Fatalf("expected level error, got %v", entry["level"])
	}
}
