package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/nimbus/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Config{
		Level:  slog.LevelInfo,
		Output: &buf,
	})

	log.Debug("hidden")
	log.Info("chat completed", "voice", "abc123")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "chat completed")
	assert.Contains(t, buf.String(), "abc123")
}

func TestFile(t *testing.T) {
	var buf bytes.Buffer

	path := filepath.Join(t.TempDir(), "nimbus.log")

	log := logger.New(logger.Config{
		Level:  slog.LevelDebug,
		File:   path,
		Output: &buf,
	})

	log.With("component", "relay").Warn("speech synthesis failed", "status", 401)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &record))

	assert.Equal(t, "speech synthesis failed", record["msg"])
	assert.Equal(t, "relay", record["component"])
	assert.EqualValues(t, 401, record["status"])

	assert.Contains(t, buf.String(), "speech synthesis failed")
}
