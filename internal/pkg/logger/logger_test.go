package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestLoggerWritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf})

	log.Info("cart committed", "product_id", int64(7), "amount", 2, "error", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	if entry["message"] != "cart committed" {
		t.Fatalf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Fatalf("level = %v", entry["level"])
	}
	if entry["product_id"] != float64(7) || entry["amount"] != float64(2) {
		t.Fatalf("fields missing: %v", entry)
	}
	if entry["error"] != "boom" {
		t.Fatalf("error field = %v", entry["error"])
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatalf("caller missing: %v", entry)
	}
}

func TestLoggerDropsOddFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})

	log.Warn("odd", "dangling")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if _, ok := entry["dangling"]; ok {
		t.Fatalf("unexpected field: %v", entry)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	log.Error("shown")
	if buf.Len() == 0 {
		t.Fatal("expected error output")
	}
}

func TestWithFieldCarriesField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf}).WithField("request_id", "abc")

	log.Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["request_id"] != "abc" {
		t.Fatalf("request_id = %v", entry["request_id"])
	}
}
