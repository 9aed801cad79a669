package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favmoment/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		storage := t.TempDir()
		t.Setenv("FAVMOMENT_STORAGE_PATH", storage)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "favmoment", cfg.AppName)
		assert.Equal(t, config.Development, cfg.Environment)
		assert.Equal(t, config.DefaultImageName, cfg.ImageName)
		assert.False(t, cfg.ShowReset, "reset affordance is off unless enabled")
		assert.False(t, cfg.RemoveImageOnReset)
		assert.Equal(t, config.PermissionGranted, cfg.CameraPermission)
		assert.Equal(t, filepath.Join(storage, "favmoment-development.db"), cfg.DatabaseName)
		assert.Equal(t, filepath.Join(storage, "logs"), cfg.LogsDirectory)
		assert.Equal(t, 1, cfg.GetMaxOpenConns())
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("FAVMOMENT_STORAGE_PATH", t.TempDir())
		t.Setenv("FAVMOMENT_ENV", config.Test)
		t.Setenv("FAVMOMENT_SHOW_RESET", "true")
		t.Setenv("FAVMOMENT_LIBRARY_PERMISSION", config.PermissionDenied)
		t.Setenv("FAVMOMENT_DB_MAX_OPEN_CONNS", "4")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsTest())
		assert.True(t, cfg.ShowReset)
		assert.Equal(t, config.PermissionDenied, cfg.LibraryPermission)
		assert.Equal(t, 4, cfg.GetMaxOpenConns())
	})

	t.Run("reads yaml config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "favmoment.yaml")
		content := "storagepath: " + dir + "\nimagename: avatar.jpg\nshowreset: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("FAVMOMENT_CONFIG", path)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.StoragePath)
		assert.Equal(t, "avatar.jpg", cfg.ImageName)
		assert.True(t, cfg.ShowReset)
	})

	t.Run("rejects invalid environment", func(t *testing.T) {
		t.Setenv("FAVMOMENT_STORAGE_PATH", t.TempDir())
		t.Setenv("FAVMOMENT_ENV", "staging")

		_, err := config.Load()
		assert.ErrorContains(t, err, "invalid environment")
	})

	t.Run("rejects unknown permission status", func(t *testing.T) {
		t.Setenv("FAVMOMENT_STORAGE_PATH", t.TempDir())
		t.Setenv("FAVMOMENT_CAMERA_PERMISSION", "maybe")

		_, err := config.Load()
		assert.ErrorContains(t, err, "invalid camera permission")
	})

	t.Run("rejects image names with directories", func(t *testing.T) {
		t.Setenv("FAVMOMENT_STORAGE_PATH", t.TempDir())
		t.Setenv("FAVMOMENT_IMAGE_NAME", "../escape.jpg")

		_, err := config.Load()
		assert.ErrorContains(t, err, "invalid image name")
	})
}

func TestGetConfigCachesUntilReset(t *testing.T) {
	t.Setenv("FAVMOMENT_STORAGE_PATH", t.TempDir())
	config.Reset()
	t.Cleanup(config.Reset)

	first := config.GetConfig()
	assert.Same(t, first, config.GetConfig())

	config.Reset()
	assert.NotSame(t, first, config.GetConfig())
}
