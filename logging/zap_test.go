package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"clearfatdirty/logging"
)

func TestVerboseLogsDebug(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.NewLogger(&buf, logging.LevelFor(true)).With(logging.Component("test"))
	logger.Debug("sector 0 read")

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "sector 0 read")
	assert.Contains(t, buf.String(), `"component": "test"`)
}

func TestQuietDropsDebug(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.NewLogger(&buf, logging.LevelFor(false))
	logger.Debug("sector 0 read")
	logger.Info("lock")

	assert.Empty(t, buf.String())

	logger.Warn("close failed")
	assert.Contains(t, buf.String(), "close failed")
}
