package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadSettings_FromFile(t *testing.T) {
	dir := writeConfigFile(t, `
plugins:
  enabled:
    - word_count
    - entity_age
  timeout: 5s
http:
  addr: ":9000"
`)

	settings, err := LoadSettings(Options{BasePath: dir, FileName: "config", FileType: "yaml"})
	require.NoError(t, err)

	assert.Equal(t, []string{"word_count", "entity_age"}, settings.Plugins.Enabled)
	assert.Equal(t, 5*time.Second, settings.Plugins.Timeout)
	assert.Equal(t, ":9000", settings.HTTP.Addr)
}

func TestLoadSettings_DefaultsWhenFileMissing(t *testing.T) {
	settings, err := LoadSettings(Options{BasePath: t.TempDir(), FileName: "config", FileType: "yaml"})
	require.NoError(t, err)

	assert.Empty(t, settings.Plugins.Enabled)
	assert.Equal(t, 10*time.Second, settings.Plugins.Timeout)
	assert.Equal(t, ":8799", settings.HTTP.Addr)
	assert.Equal(t, "info", settings.Logging.Level)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(KeyEnabledPlugins)
	assert.False(t, ok)

	store.Set(KeyEnabledPlugins, []string{"statistics"})
	v, ok := store.Get(KeyEnabledPlugins)
	require.True(t, ok)
	assert.Equal(t, []string{"statistics"}, v)
}

func TestEnabledPlugins_ValueShapes(t *testing.T) {
	store := NewMemoryStore()

	assert.Nil(t, EnabledPlugins(nil))
	assert.Nil(t, EnabledPlugins(store))

	store.Set(KeyEnabledPlugins, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, EnabledPlugins(store))

	// YAML decoding through viper produces []any.
	store.Set(KeyEnabledPlugins, []any{"a", 7, "b"})
	assert.Equal(t, []string{"a", "b"}, EnabledPlugins(store))

	store.Set(KeyEnabledPlugins, "not-a-list")
	assert.Nil(t, EnabledPlugins(store))
}

func TestAsStore(t *testing.T) {
	dir := writeConfigFile(t, "plugins:\n  enabled: [word_count]\n")
	cfg, err := New(Options{BasePath: dir, FileName: "config", FileType: "yaml"})
	require.NoError(t, err)

	store := AsStore(cfg)
	assert.Equal(t, []string{"word_count"}, EnabledPlugins(store))

	store.Set("plugins.enabled", []string{"entity_age"})
	assert.Equal(t, []string{"entity_age"}, EnabledPlugins(store))
}
