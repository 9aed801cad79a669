package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"favmoment/internal/profiles"
)

// StorageRoot is the private storage directory used by in-memory test stores.
const StorageRoot = "/data/favmoment"

// SetupTestDB creates an empty in-memory database unique to the test.
// Uses a named in-memory database with cache=shared so every pooled
// connection sees the same tables.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sanitizedName := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupTestStore creates a profile store over a fresh in-memory database and
// an in-memory filesystem rooted at StorageRoot. The store is not initialized.
func SetupTestStore(t *testing.T, opts ...profiles.Option) (*profiles.Store, *gorm.DB, afero.Fs) {
	t.Helper()

	db := SetupTestDB(t)
	fs := afero.NewMemMapFs()
	store := profiles.NewStore(db, fs, StorageRoot, GetLogger(), opts...)
	return store, db, fs
}

// WriteTestImage writes content to path on fs and returns its file URI.
func WriteTestImage(t *testing.T, fs afero.Fs, path string, content []byte) string {
	t.Helper()

	require.NoError(t, afero.WriteFile(fs, path, content, 0o600))
	return profiles.FileURI(path)
}

// CountProfiles returns the number of rows in the profile table.
func CountProfiles(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&profiles.Profile{}).Count(&count).Error)
	return count
}

// GetLogger returns a test logger
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}
