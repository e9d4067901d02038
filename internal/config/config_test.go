package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "", cfg.CacheDir)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Color)
	assert.Equal(t, "1:2", cfg.Levels)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
cache_dir: /var/cache/nginx
concurrency: 8
log_level: debug
color: false
levels: "2:2"
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/cache/nginx", cfg.CacheDir)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.Color)
		assert.Equal(t, "2:2", cfg.Levels)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "cache_dir: /data/cache\n"))
		require.NoError(t, err)
		assert.Equal(t, "/data/cache", cfg.CacheDir)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.True(t, cfg.Color)
	})

	t.Run("explicit empty levels means flat cache", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "levels: \"\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "", cfg.Levels)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "cache_dir: [unterminated\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, content := range []string{
			"concurrency: -1\n",
			"log_level: loud\n",
			"levels: \"3:3\"\n",
		} {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err, content)
		}
	})
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = "/from/file"

	cfg.MergeWithFlags(nil, nil, nil, nil, nil)
	assert.Equal(t, "/from/file", cfg.CacheDir)

	dir, conc, level, noColor, levels := "/from/flag", 3, "warn", true, "1"
	cfg.MergeWithFlags(&dir, &conc, &level, &noColor, &levels)
	assert.Equal(t, "/from/flag", cfg.CacheDir)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.Color)
	assert.Equal(t, "1", cfg.Levels)
}
