package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Level(t *testing.T) {
	if got := New("debug").GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("expected debug, got %s", got)
	}
	if got := New("nonsense").GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %s", got)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logg := New("info")
	logg.SetOutput(&buf)

	LogError(logg, "workflow", "Transition", "approve", map[string]string{"quotation_id": "q-1"}, errors.New("db"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q", buf.String())
	}
	if entry["msg"] != "db" || entry["module"] != "workflow" || entry["funcName"] != "Transition" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["data"]; !ok {
		t.Fatalf("expected data field")
	}
}
