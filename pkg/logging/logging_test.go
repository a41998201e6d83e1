package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Config{}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewWritesLogFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.File = filepath.Join(t.TempDir(), "logs", "hk.log")

	var buf bytes.Buffer
	logger, closer, err := New(cfg, &buf)
	require.NoError(t, err)

	logger.WithField("slot", 1).Debug("opened note")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "opened note")
	assert.Contains(t, string(data), "slot=1")
	assert.Contains(t, buf.String(), "opened note")
}
