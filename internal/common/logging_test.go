package common

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithOutput_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)

	logger.Info().Str("run_id", "r1").Int("bonds", 8).Msg("Optimization finished")

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "Optimization finished", entry["message"])
	assert.Equal(t, "r1", entry["run_id"])
	assert.Equal(t, float64(8), entry["bonds"])
}

func TestLoggerWithOutput_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSilentLogger_DiscardsOutput(t *testing.T) {
	logger := NewSilentLogger()
	// must not panic or write anywhere
	logger.Error().Msg("discarded")
}

func TestParseLevel_Fallback(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("nonsense"))
	assert.Equal(t, parseLevel("warn"), parseLevel("WARNING"))
}
