package device_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favmoment/internal/config"
	"favmoment/internal/device"
	"favmoment/internal/profiles"
	"favmoment/internal/screen"
)

func TestFilePicker(t *testing.T) {
	ctx := context.Background()

	t.Run("returns file uris for configured paths", func(t *testing.T) {
		dir := t.TempDir()
		picker := &device.FilePicker{
			LibraryPath: filepath.Join(dir, "library.jpg"),
			CapturePath: filepath.Join(dir, "camera.jpg"),
		}

		result, err := picker.PickFromLibrary(ctx, screen.DefaultPickOptions)
		require.NoError(t, err)
		assert.False(t, result.Canceled)
		assert.Equal(t, profiles.FileURI(filepath.Join(dir, "library.jpg")), result.URI)

		result, err = picker.Capture(ctx, screen.DefaultPickOptions)
		require.NoError(t, err)
		assert.Equal(t, profiles.FileURI(filepath.Join(dir, "camera.jpg")), result.URI)
	})

	t.Run("resolves relative paths", func(t *testing.T) {
		picker := &device.FilePicker{LibraryPath: "photo.jpg"}

		result, err := picker.PickFromLibrary(ctx, screen.DefaultPickOptions)
		require.NoError(t, err)

		path, err := profiles.PathFromURI(result.URI)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(path))
		assert.Equal(t, "photo.jpg", filepath.Base(path))
	})

	t.Run("empty path cancels", func(t *testing.T) {
		picker := &device.FilePicker{}

		result, err := picker.Capture(ctx, screen.DefaultPickOptions)
		require.NoError(t, err)
		assert.True(t, result.Canceled)
		assert.Empty(t, result.URI)
	})
}

func TestPermissionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		CameraPermission:  config.PermissionDenied,
		LibraryPermission: config.PermissionGranted,
	}
	perms := device.PermissionsFromConfig(cfg)

	camera, err := perms.RequestCamera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, screen.StatusDenied, camera)

	library, err := perms.RequestMediaLibrary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, screen.StatusGranted, library)
}

func TestTerminalNotifier(t *testing.T) {
	var out bytes.Buffer
	notifier := &device.TerminalNotifier{Out: &out}

	notifier.Alert(screen.TitleRequirementsMissing, screen.MessageCaption)

	assert.Equal(t, "Requirements Missing: Caption is required\n", out.String())
}
