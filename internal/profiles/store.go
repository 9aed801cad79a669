// Package profiles persists the single profile record in SQLite and owns the
// image file it references inside the private storage directory.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/karloscodes/cartridge/sqlite"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"favmoment/internal/config"
)

// Store is the local profile store. It is safe for the single-writer use the
// profile screen makes of it; it does no locking of its own.
type Store struct {
	db        *gorm.DB
	fs        afero.Fs
	root      string
	imageName string
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithImageName overrides the file name used for the relocated image.
func WithImageName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.imageName = name
		}
	}
}

// NewStore creates a store over db that keeps its image under root on fs.
func NewStore(db *gorm.DB, fs afero.Fs, root string, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		db:        db,
		fs:        fs,
		root:      filepath.Clean(root),
		imageName: config.DefaultImageName,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the private storage directory.
func (s *Store) Root() string {
	return s.root
}

// ImageURI returns the fixed URI the relocated image is stored under.
func (s *Store) ImageURI() string {
	return FileURI(s.imagePath())
}

func (s *Store) imagePath() string {
	return filepath.Join(s.root, s.imageName)
}

// Initialize ensures the private storage directory and the profile table
// exist. Existing rows are left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.fs.MkdirAll(s.root, 0o700); err != nil {
		s.logger.Error("Failed to create private storage directory", slog.String("root", s.root), slog.Any("error", err))
		return fmt.Errorf("%w: create %s: %w", ErrStorageAccess, s.root, err)
	}

	err := sqlite.PerformWrite(s.logger, s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.AutoMigrate(&Profile{})
	})
	if err != nil {
		s.logger.Error("Database initialization failed", slog.Any("error", err))
		return fmt.Errorf("%w: initialize profile table: %w", ErrStorageAccess, err)
	}

	return nil
}

// ReadProfile returns the first stored profile, or nil when none exists.
func (s *Store) ReadProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	err := s.db.WithContext(ctx).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Error retrieving first profile", slog.Any("error", err))
		return nil, fmt.Errorf("%w: read profile: %w", ErrStorageAccess, err)
	}

	s.logger.Debug("First profile found", slog.Int64("id", profile.ID))
	return &profile, nil
}

// WriteProfile inserts a new profile row with the values exactly as given.
// It appends rather than replaces: a second call leaves the first row in
// place, and ReadProfile keeps returning it.
func (s *Store) WriteProfile(ctx context.Context, imageURL, caption string) (*Profile, error) {
	if imageURL == "" || caption == "" {
		return nil, ErrInvalidProfile
	}

	profile := &Profile{ImageURL: imageURL, Caption: caption}
	err := sqlite.PerformWrite(s.logger, s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(profile).Error
	})
	if err != nil {
		s.logger.Error("Save profile failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: write profile: %w", ErrStorageAccess, err)
	}

	s.logger.Info("Profile saved", slog.Int64("id", profile.ID))
	return profile, nil
}

// ResetStore drops the profile table and re-creates it empty. The relocated
// image file is not touched; see RemoveImage.
func (s *Store) ResetStore(ctx context.Context) error {
	err := sqlite.PerformWrite(s.logger, s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Migrator().DropTable(&Profile{}); err != nil {
			return err
		}
		return tx.Migrator().CreateTable(&Profile{})
	})
	if err != nil {
		s.logger.Error("Error dropping profile table", slog.Any("error", err))
		return fmt.Errorf("%w: reset profile table: %w", ErrStorageAccess, err)
	}

	s.logger.Info("Profile table reset")
	return nil
}
