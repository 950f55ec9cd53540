package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutEnvVarReturnsDefault(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameReservation, cfg.Frame())
}

func TestLoadWithMissingFileReturnsDefault(t *testing.T) {
	t.Setenv(ConfigEnvVar, filepath.Join(t.TempDir(), "does-not-exist.toml"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameReservation, cfg.Frame())
}

func TestLoadOverridesFrameReservation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nanocc.toml")
	require.NoError(t, os.WriteFile(path, []byte("frame_reservation = 512\n"), 0o600))
	t.Setenv(ConfigEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Frame())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid toml :::"), 0o600))
	t.Setenv(ConfigEnvVar, path)

	_, err := Load()
	require.Error(t, err)
}
