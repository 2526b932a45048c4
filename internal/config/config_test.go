package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/polarity"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "./keywords.json", cfg.Lexicon.Path)
	assert.Equal(t, []string{"en"}, cfg.Annotate.VaderLanguages)
	assert.GreaterOrEqual(t, cfg.Annotate.Workers, 1)

	v, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, polarity.Canonical, v)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
lexicon:
  path: /data/kw.yaml
scorer:
  variant: legacy
annotate:
  workers: 3
  empty_as_null: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/kw.yaml", cfg.Lexicon.Path)
	assert.Equal(t, 3, cfg.Annotate.Workers)
	assert.True(t, cfg.Annotate.EmptyAsNull)
	assert.Equal(t, "punkt", cfg.Scorer.Splitter, "unset keys keep defaults")

	v, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, polarity.Legacy, v)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POLARITY_LEXICON", "/env/kw.json")
	t.Setenv("POLARITY_DB_PATH", "/env/out.db")
	t.Setenv("POLARITY_WORKERS", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/kw.json", cfg.Lexicon.Path)
	assert.Equal(t, "/env/out.db", cfg.Database.Path)
	assert.Equal(t, 7, cfg.Annotate.Workers)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "lexicon: ["))
		assert.Error(t, err)
	})

	t.Run("unknown variant", func(t *testing.T) {
		_, err := Load(writeConfig(t, "scorer:\n  variant: newest\n"))
		assert.ErrorContains(t, err, "scorer.variant")
	})

	t.Run("unknown splitter", func(t *testing.T) {
		_, err := Load(writeConfig(t, "scorer:\n  splitter: regex\n"))
		assert.ErrorContains(t, err, "scorer.splitter")
	})

	t.Run("zero workers", func(t *testing.T) {
		_, err := Load(writeConfig(t, "annotate:\n  workers: 0\n"))
		assert.ErrorContains(t, err, "workers")
	})

	t.Run("bad worker env", func(t *testing.T) {
		t.Setenv("POLARITY_WORKERS", "many")
		_, err := Load("")
		assert.ErrorContains(t, err, "POLARITY_WORKERS")
	})
}
