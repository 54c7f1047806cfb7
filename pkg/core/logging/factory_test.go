package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/chatbot/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("chatbot")

	if cfg.ServiceName != "chatbot" {
		t.Errorf("ServiceName = %v, want chatbot", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  mdwlog.Level
	}{
		{"debug", mdwlog.LevelDebug},
		{"WARNING", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"", mdwlog.LevelInfo},
		{"loud", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Level: tt.level, Output: &bytes.Buffer{}})
			if logger.GetLevel() != tt.want {
				t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{ServiceName: "chatbot", Level: "info", Format: "json", Output: &buf})

	logger.Info("Module loaded", mdwlog.Fields{"module": "quote"})

	var data map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &data); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if data["logger"] != "chatbot" {
		t.Errorf("logger = %v, want chatbot", data["logger"])
	}
	if data["module"] != "quote" {
		t.Errorf("module = %v, want quote", data["module"])
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName:       "chatbot",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Warn("clash")

	for name, buf := range map[string]*bytes.Buffer{"primary": &primary, "extra": &extra} {
		if !strings.Contains(buf.String(), "[WRN] {chatbot} clash") {
			t.Errorf("%s output = %q", name, buf.String())
		}
	}
}
