package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/cli/config"
)

func TestLoggerHandler(t *testing.T) {
	t.Run("json output redacts secrets", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := config.NewLoggerForTest("debug", "json", "stdout").NewHandler(&buf)
		gt.NoError(t, err).Required()

		slog.New(h).Info("configured", "api_key", "sk-very-secret", "model", "gpt-4o")

		var entry map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
		gt.Value(t, entry["model"]).Equal("gpt-4o")
		gt.Value(t, entry["api_key"]).NotEqual("sk-very-secret")
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := config.NewLoggerForTest("warn", "json", "stdout").NewHandler(&buf)
		gt.NoError(t, err).Required()

		slog.New(h).Info("hidden")
		gt.Value(t, buf.Len()).Equal(0)
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := config.NewLoggerForTest("info", "console", "stdout").NewHandler(&buf)
		gt.NoError(t, err).Required()

		slog.New(h).Info("hello")
		gt.String(t, buf.String()).Contains("hello")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "json", "stdout").NewHandler(&bytes.Buffer{})
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stdout").NewHandler(&bytes.Buffer{})
		gt.Error(t, err).Is(config.ErrInvalidLogFormat)
	})
}

func TestLoggerConfigureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hara.log")
	closer, err := config.NewLoggerForTest("info", "json", path).Configure()
	gt.NoError(t, err).Required()
	closer()
}
