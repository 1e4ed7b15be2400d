package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
)

func TestNewStampsServiceFields(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	log, err := New(
		config.LogConfig{Level: "info", Format: "json", OutputPath: out},
		config.AppConfig{Name: "psiklinik-api", Environment: "staging", Version: "1.4.0"},
	)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("product updated")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(raw, &line))
	assert.Equal(t, "product updated", line["msg"])
	assert.Equal(t, "psiklinik", line["logger"])
	assert.Equal(t, "psiklinik-api", line["service"])
	assert.Equal(t, "staging", line["env"])
	assert.Equal(t, "1.4.0", line["version"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", OutputPath: "stderr"}, config.AppConfig{})
	assert.ErrorContains(t, err, "invalid log level")
}
