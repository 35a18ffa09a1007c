package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gaia/game"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, "out", cfg.OutDir)
		require.False(t, cfg.Compress)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("GAIA_LOG_LEVEL", "debug")
		t.Setenv("GAIA_OUT_DIR", "/tmp/gaia")
		t.Setenv("GAIA_COMPRESS", "true")
		cfg, err := Load()
		require.NoError(t, err)
		level, err := cfg.Level()
		require.NoError(t, err)
		require.Equal(t, zerolog.DebugLevel, level)
		require.Equal(t, "/tmp/gaia", cfg.OutDir)
		require.True(t, cfg.Compress)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("GAIA_LOG_LEVEL", "loud")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad boolean", func(t *testing.T) {
		t.Setenv("GAIA_COMPRESS", "maybe")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Run("no file means default rules", func(t *testing.T) {
		options, err := Config{}.Options()
		require.NoError(t, err)
		require.Equal(t, game.Options{}, options)
	})

	t.Run("options file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "options.yaml")
		content := "layout: fixed\nauction: true\nfactionVariant: more-balanced\nnoFedCheck: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		options, err := Config{OptionsFile: path}.Options()
		require.NoError(t, err)
		require.Equal(t, game.Options{
			Layout:         game.FixedLayout,
			Auction:        true,
			FactionVariant: "more-balanced",
			NoFedCheck:     true,
		}, options)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Config{OptionsFile: filepath.Join(t.TempDir(), "none.yaml")}.Options()
		require.Error(t, err)
	})

	t.Run("unsupported variants", func(t *testing.T) {
		_, err := ParseOptions([]byte("layout: spiral\n"))
		require.Error(t, err)
		_, err = ParseOptions([]byte("expansions: [spaceships]\n"))
		require.Error(t, err)
		_, err = ParseOptions([]byte("layout: [\n"))
		require.Error(t, err)
	})
}
