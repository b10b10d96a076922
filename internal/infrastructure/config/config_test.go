package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join(".circles", "circles.db"), cfg.Store.Path)
	assert.Equal(t, "en", cfg.Display.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Empty(t, cfg.Taxonomy.Aliases)
}

func TestConfigDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/project", ".circles"), ConfigDir("/project"))
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/project", ".circles", "config.yaml"), ConfigFilePath("/project"))
}

func TestWriteDefault_ThenLoad(t *testing.T) {
	dir := t.TempDir()

	require.False(t, Exists(dir))
	require.NoError(t, WriteDefault(dir))
	require.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestDefaultConfigYAML_Parses(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigYAML), &cfg))
	assert.Equal(t, "en", cfg.Display.Locale)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circles init")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte("store: [unclosed"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_Aliases(t *testing.T) {
	dir := t.TempDir()
	content := `
display:
  locale: fr
taxonomy:
  aliases:
    Apéro: tasteSavor
    brainstorm: talkThink
`
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Display.Locale)
	assert.Equal(t, "info", cfg.Log.Level, "unset values keep defaults")
	assert.Equal(t, map[string]string{"Apéro": "tasteSavor", "brainstorm": "talkThink"}, cfg.Taxonomy.Aliases)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	t.Setenv("CIRCLES_DB_PATH", "/tmp/other.db")
	t.Setenv("CIRCLES_LOCALE", "FR")
	t.Setenv("CIRCLES_LOG_LEVEL", "Debug")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.Equal(t, "fr", cfg.Display.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("CIRCLES_LOCALE", "fr")

	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Display.Locale)
	assert.Equal(t, Default().Store, cfg.Store)
}

func TestDatabasePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"relative", filepath.Join(".circles", "circles.db"), filepath.Join("/project", ".circles", "circles.db")},
		{"absolute", "/var/lib/circles.db", "/var/lib/circles.db"},
		{"memory", ":memory:", ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Store: StoreConfig{Path: tt.path}}
			assert.Equal(t, tt.expected, cfg.DatabasePath("/project"))
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Log.Development = true
	cfg.Taxonomy.Aliases = map[string]string{"sportif": "moveBreathe"}

	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
