package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSizingMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSizing(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSizing(), s)
}

func TestLoadSizingPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sizing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_temp_penalty_k: 0.5\n"), 0o600))

	s, err := LoadSizing(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.MaxTempPenaltyK)
	assert.Equal(t, DefaultSizing().VerticalOilFloorMS, s.VerticalOilFloorMS)
}

func TestValidate(t *testing.T) {
	s := DefaultSizing()
	require.NoError(t, s.Validate())

	s.FrictionModel = "psychic"
	assert.Error(t, s.Validate())

	s = DefaultSizing()
	s.VerticalOilFloorMS = 2
	assert.Error(t, s.Validate())
}
