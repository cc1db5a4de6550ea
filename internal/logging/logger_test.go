package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/movies/internal/config"
	"philcali.me/movies/internal/logging"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(config.LogConfig{Level: "warn"}, &buf)
	logger.Info("dropped")
	logger.Warn("kept", "listId", "abc")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "abc", entry["listId"])
}

func TestLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(config.LogConfig{Level: "DEBUG"}, &buf)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
