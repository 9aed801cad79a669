package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"favmoment/internal/config"
	"favmoment/internal/screen"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T, showReset bool) string {
	t.Helper()
	storage := t.TempDir()
	t.Setenv("FAVMOMENT_ENV", config.Test)
	t.Setenv("FAVMOMENT_STORAGE_PATH", storage)
	if showReset {
		t.Setenv("FAVMOMENT_SHOW_RESET", "true")
	}
	config.Reset()
	t.Cleanup(config.Reset)
	return storage
}

func TestSaveShowReset(t *testing.T) {
	storage := setupEnv(t, true)
	picked := filepath.Join(t.TempDir(), "sunset.jpg")
	require.NoError(t, os.WriteFile(picked, []byte("sunset"), 0o600))

	out, err := runCLI(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile saved yet")

	out, err = runCLI(t, "save", "--image", picked, "--caption", "Sunset")
	require.NoError(t, err)
	assert.Contains(t, out, "Caption: Sunset")

	out, err = runCLI(t, "show", "--output", "yaml")
	require.NoError(t, err)
	var view stateView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.True(t, view.HasProfile)
	assert.Equal(t, "Sunset", view.Caption)
	assert.True(t, strings.HasSuffix(view.AvatarURI, "/profile-image.jpg"))
	assert.False(t, view.CaptionEditable)
	assert.True(t, view.ShowReset)

	data, err := os.ReadFile(filepath.Join(storage, "profile-image.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("sunset"), data)

	_, err = runCLI(t, "save", "--image", picked, "--caption", "Again")
	assert.ErrorIs(t, err, screen.ErrProfileLocked)

	out, err = runCLI(t, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile reset.")

	out, err = runCLI(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile saved yet")
}

func TestSaveValidation(t *testing.T) {
	setupEnv(t, false)

	_, err := runCLI(t, "save", "--caption", "Sunset")
	assert.ErrorIs(t, err, screen.ErrValidation)

	_, err = runCLI(t, "save", "--image", "a.jpg", "--capture", "b.jpg")
	assert.ErrorContains(t, err, "either --image or --capture")
}

func TestResetDisabled(t *testing.T) {
	setupEnv(t, false)

	_, err := runCLI(t, "reset")
	assert.ErrorIs(t, err, screen.ErrResetDisabled)
	assert.ErrorContains(t, err, "FAVMOMENT_SHOW_RESET")
}

func TestShowDegradesWhenProfileCannotBeLoaded(t *testing.T) {
	storage := setupEnv(t, false)

	// A view over a dropped table makes every read of ProfileTable fail.
	db, err := gorm.Open(sqlite.Open(filepath.Join(storage, "favmoment-test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE gone (id INTEGER PRIMARY KEY, imageUrl TEXT, caption TEXT)").Error)
	require.NoError(t, db.Exec("CREATE VIEW ProfileTable AS SELECT id, imageUrl, caption FROM gone").Error)
	require.NoError(t, db.Exec("DROP TABLE gone").Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	out, err := runCLI(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile saved yet")

	picked := filepath.Join(t.TempDir(), "a.jpg")
	require.NoError(t, os.WriteFile(picked, []byte("a"), 0o600))
	_, err = runCLI(t, "save", "--image", picked, "--caption", "Sunset")
	assert.ErrorContains(t, err, "failed to load profile")
}

func TestRenderStateRejectsUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	err := renderState(&out, screen.State{}, "json")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestPromptCaption(t *testing.T) {
	var out bytes.Buffer
	caption, err := promptCaption(strings.NewReader("Golden hour\r\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "Golden hour", caption)
	assert.Equal(t, "Enter caption: ", out.String())

	caption, err = promptCaption(strings.NewReader("no newline"), &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", caption)
}
