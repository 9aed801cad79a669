package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"favmoment/internal/config"
)

// DBManager wraps cartridge's sqlite.Manager for the profile database file.
type DBManager struct {
	*sqlite.Manager
	path   string
	logger *slog.Logger
}

// NewDBManager creates a new database manager using cartridge's sqlite.Manager.
func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	sqliteCfg := sqlite.Config{
		Path:         cfg.GetDatabasePath(),
		MaxOpenConns: cfg.GetMaxOpenConns(),
		MaxIdleConns: cfg.GetMaxIdleConns(),
		Logger:       logger,
		EnableWAL:    true,
		TxImmediate:  true,
		BusyTimeout:  5000,
	}

	return &DBManager{
		Manager: sqlite.NewManager(sqliteCfg),
		path:    sqliteCfg.Path,
		logger:  logger,
	}
}

// Init creates the database directory and opens the connection.
func (dm *DBManager) Init() error {
	if err := os.MkdirAll(filepath.Dir(dm.path), 0o700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	if _, err := dm.Manager.Connect(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", dm.path, err)
	}
	dm.logger.Debug("Database connected", slog.String("path", dm.path))
	return nil
}

// Path returns the database file location.
func (dm *DBManager) Path() string {
	return dm.path
}

// Close checkpoints the WAL and closes the underlying connection pool.
func (dm *DBManager) Close() error {
	db := dm.GetConnection()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	if err := dm.CheckpointWAL("FULL"); err != nil {
		dm.logger.Warn("Failed to checkpoint WAL before close", slog.Any("error", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
