package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/inventory-keeper/internal/config"
)

func TestNewSlogLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogLogger(config.Log{Level: slog.LevelInfo, Format: config.LogFormatJSON}, &buf)

		logger.Debug("hidden")
		logger.Info("product added", "code", "MS-01")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"product added"`)
		assert.Contains(t, buf.String(), `"code":"MS-01"`)
		assert.Same(t, logger, slog.Default())
	})

	t.Run("text without a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogLogger(config.Log{Level: slog.LevelDebug}, &buf)

		logger.Debug("loading", "file", "inventory.json")

		assert.Contains(t, buf.String(), "loading")
		assert.Contains(t, buf.String(), "file=inventory.json")
		assert.NotContains(t, buf.String(), "\x1b[")
	})
}
