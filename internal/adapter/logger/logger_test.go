package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production")

	l.Info("Vehicle created", map[string]interface{}{"vehicle_id": 7, "action": "create"})
	l.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "Vehicle created" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["vehicle_id"] != float64(7) {
		t.Fatalf("unexpected vehicle_id: %v", entry["vehicle_id"])
	}
}

func TestDevelopmentLoggerIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "development")

	l.Debug("Calling fleet API", map[string]interface{}{"path": "/vehiculo"})

	out := buf.String()
	if !strings.Contains(out, "Calling fleet API") || !strings.Contains(out, "path=/vehiculo") {
		t.Fatalf("unexpected output: %q", out)
	}
}
