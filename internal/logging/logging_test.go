package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := SetupLogger(LogFormatText, false, &buf)
		logger.Info("hello", "key", "value")

		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := SetupLogger(LogFormatJSON, false, &buf)
		logger.Info("hello", "key", "value")

		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"key":"value"`)
	})

	t.Run("debug messages are dropped by default", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := SetupLogger(LogFormatText, false, &buf)
		logger.Debug("hidden")

		assert.Empty(t, buf.String())
	})

	t.Run("debug flag enables debug level", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		logger := SetupLogger(LogFormatText, true, &buf)
		logger.Debug("visible")

		assert.Contains(t, buf.String(), "msg=visible")
	})
}
