package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(&buf, "debug", "json")
	t.Cleanup(func() { Configure(os.Stderr, "info", "text") })

	logger.WithField("route", "GET /api/products").Debug("hit")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET /api/products", entry["route"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigureInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(&buf, "loud", "text")
	t.Cleanup(func() { Configure(os.Stderr, "info", "text") })

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "invalid log level")
}
