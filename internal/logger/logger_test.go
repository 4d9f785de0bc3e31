package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Feature: review-studio, Property 11: Logs are structured
func TestProperty_LogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all log entries are in structured JSON format", prop.ForAll(
		func(message string, level string) bool {
			var buf bytes.Buffer
			logger := NewJSON(&buf, zapcore.DebugLevel)
			defer logger.Sync()

			switch level {
			case "debug":
				logger.Debug(message)
			case "info":
				logger.Info(message)
			case "warn":
				logger.Warn(message)
			case "error":
				logger.Error(message)
			}

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				return false
			}

			for _, key := range []string{"level", "timestamp", "message", "service"} {
				if _, ok := logEntry[key]; !ok {
					return false
				}
			}

			return logEntry["message"] == message && logEntry["level"] == level
		},
		gen.AnyString(),
		gen.OneConstOf("debug", "info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that per-item failures keep their context fields
func TestProperty_WarnLogsIncludeContext(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("warn logs include context information", prop.ForAll(
		func(url string, errorMsg string, index int) bool {
			var buf bytes.Buffer
			logger := NewJSON(&buf, zapcore.InfoLevel)
			defer logger.Sync()

			logger.Warn("Skipping image",
				zap.Int("index", index),
				zap.String("url", url),
				zap.String("error", errorMsg),
			)

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				return false
			}

			return logEntry["url"] == url &&
				logEntry["error"] == errorMsg &&
				logEntry["index"] == float64(index)
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNewJSON_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(&buf, zapcore.WarnLevel)

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info entry written at warn level: %s", buf.String())
	}
}

func TestNew_ProductionAndDevelopment(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := New(env)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", env, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
		logger.Sync()
	}
}
