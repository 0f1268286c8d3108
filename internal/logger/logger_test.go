package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDevelopmentLogsDebugText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, "")

	log.Debug("goal saved", "date", "2024-03-01")
	assert.Contains(t, buf.String(), "msg=\"goal saved\"")
	assert.Contains(t, buf.String(), "date=2024-03-01")
}

func TestNewProductionLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "")

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("quick record saved", "distance", 5.2)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "quick record saved", line["msg"])
	assert.Equal(t, 5.2, line["distance"])
}
