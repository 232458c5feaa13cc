package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReturnsZeroValueWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfigParsesPresentFile(t *testing.T) {
	dir := t.TempDir()
	contents := "zero_indexed: true\nlocale: de\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enotok.yaml"), []byte(contents), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.True(t, cfg.ZeroIndexed)
	assert.Equal(t, "de", cfg.Locale)
}

func TestResolveLocalePrefersFlagOverConfigOverDefault(t *testing.T) {
	origLocale := locale
	defer func() { locale = origLocale }()

	locale = ""
	assert.Equal(t, "en", resolveLocale(Config{}))
	assert.Equal(t, "de", resolveLocale(Config{Locale: "de"}))

	locale = "fr"
	assert.Equal(t, "fr", resolveLocale(Config{Locale: "de"}))
}
