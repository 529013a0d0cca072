package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerDefaults(t *testing.T) {
	log, err := NewLogger(nil)
	if err != nil {
		t.Fatalf("Expected nil config to use defaults, got: %v", err)
	}
	if log == nil {
		t.Fatal("Expected a logger")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected default config to validate, got: %v", err)
	}

	bad := &Config{Level: "loud", Format: TextFormat}
	if err := bad.Validate(); err == nil {
		t.Error("Expected invalid level to fail validation")
	}

	bad = &Config{Level: InfoLevel, Format: "xml"}
	if err := bad.Validate(); err == nil {
		t.Error("Expected invalid format to fail validation")
	}
}

func TestJSONOutputWithFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&Config{Level: DebugLevel, Format: JSONFormat, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	log.WithFields(Fields{"source": "q2.json", "parsed": 42}).Info("parsed snapshot")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["source"] != "q2.json" {
		t.Errorf("Expected source field, got %+v", entry)
	}
	if entry["msg"] != "parsed snapshot" {
		t.Errorf("Expected message, got %+v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&Config{Level: ErrorLevel, Format: TextFormat, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	log.Info("should be filtered")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at error level, got %q", buf.String())
	}

	log.Error("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("Expected error to be logged, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&Config{Level: InfoLevel, Format: JSONFormat, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	log.WithComponent("parsers").Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["component"] != "parsers" {
		t.Errorf("Expected component field, got %+v", entry)
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	if original == nil {
		t.Fatal("Expected a default global logger")
	}

	replacement, err := NewLogger(nil)
	if err != nil {
		t.Fatal(err)
	}
	SetGlobalLogger(replacement)

	if GetGlobalLogger() != replacement {
		t.Error("Expected global logger to be replaced")
	}
}
