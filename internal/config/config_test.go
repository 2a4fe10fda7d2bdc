package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoutelt.yaml")
	yml := `
paths:
  landing_dir: /tmp/landing
validation:
  max_yellow_cards: 3
analysis:
  top_n: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	t.Setenv("SCOUTELT_ANALYSIS_TOP_N", "4")
	t.Setenv("SCOUTELT_VALIDATION_STRICT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/landing", cfg.Paths.LandingDir)
	// keys absent from the file keep their defaults
	assert.Equal(t, "data/scouting.db", cfg.Paths.DBPath)
	assert.Equal(t, 3, cfg.Validation.MaxYellowCards)
	assert.Equal(t, 1, cfg.Validation.MaxRedCards)
	assert.Equal(t, 4, cfg.Analysis.TopN)
	assert.True(t, cfg.Validation.Strict)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Analysis.TopN = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Validation.MaxRedCards = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [unterminated"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
