package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("builds a json logger", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})

		require.NoError(t, err)
		require.NotNil(t, log)
		assert.False(t, log.Core().Enabled(-1)) // debug stays off at info level
	})

	t.Run("builds a console logger on stderr", func(t *testing.T) {
		log, err := New(&Config{Level: "debug", Format: "console", Output: "stderr"})

		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(-1))
	})

	t.Run("defaults level, format and output when empty", func(t *testing.T) {
		log, err := New(&Config{})

		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(0)) // info is the default level
	})

	t.Run("rejects an unknown level", func(t *testing.T) {
		log, err := New(&Config{Level: "verbose", Format: "json"})

		assert.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "xml"})

		assert.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("writes to a file sink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")

		log, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("settlement sweep started")
		require.NoError(t, Sync(log))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "settlement sweep started")
	})
}
