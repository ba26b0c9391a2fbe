package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.Version)

	// The default scan root is the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.LibraryDir)
	assert.True(t, cfg.UISettings.TapZones)
	assert.Equal(t, 200, cfg.Turn.IdleGapMs)
	assert.Equal(t, 700, cfg.Turn.CooldownMs)
	assert.Equal(t, 150.0, cfg.Turn.WheelThreshold)
	assert.Equal(t, 250.0, cfg.Turn.TrackpadThreshold)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.LibraryDir = "/books"
	cfg.Turn.WheelThreshold = 175
	cfg.UISettings.TapZones = false

	svc := NewConfigService()
	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "/books", loaded.LibraryDir)
	assert.Equal(t, 175.0, loaded.Turn.WheelThreshold)
	assert.False(t, loaded.UISettings.TapZones)
	assert.Equal(t, cfg.Turn.CooldownMs, loaded.Turn.CooldownMs)
}

func TestLoadMissingFileFails(t *testing.T) {
	svc := NewConfigService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestToTurnConfig(t *testing.T) {
	ts := TurnSettings{
		IdleGapMs:      250,
		CooldownMs:     900,
		WheelThreshold: 120,
	}
	tc := ts.ToTurnConfig()
	assert.Equal(t, 250*time.Millisecond, tc.IdleGap)
	assert.Equal(t, 900*time.Millisecond, tc.Cooldown)
	assert.Equal(t, 120.0, tc.WheelThreshold)
	// Unset fields stay zero so the controller applies its defaults.
	assert.Zero(t, tc.TrackpadThreshold)
}
