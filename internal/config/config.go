// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Permission statuses accepted for the device permission settings.
const (
	PermissionGranted      = "granted"
	PermissionDenied       = "denied"
	PermissionUndetermined = "undetermined"
)

// DefaultImageName is the fixed file name of the relocated profile image.
const DefaultImageName = "profile-image.jpg"

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Profile screen settings
	ShowReset          bool `mapstructure:"showreset"`
	RemoveImageOnReset bool `mapstructure:"removeimageonreset"`

	// Device permission statuses reported to the screen controller
	CameraPermission  string `mapstructure:"camerapermission"`
	LibraryPermission string `mapstructure:"librarypermission"`

	// File paths
	StoragePath  string `mapstructure:"storagepath"`
	ImageName    string `mapstructure:"imagename"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		loaded, err := Load()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	})
	return cfg
}

// Load reads configuration from defaults, an optional YAML file named by
// FAVMOMENT_CONFIG and FAVMOMENT_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	storage := defaultStoragePath()

	v.SetDefault("appname", "favmoment")
	v.SetDefault("environment", Development)
	v.SetDefault("loglevel", string(LogLevelInfo))
	v.SetDefault("showreset", false)
	v.SetDefault("removeimageonreset", false)
	v.SetDefault("camerapermission", PermissionGranted)
	v.SetDefault("librarypermission", PermissionGranted)
	v.SetDefault("storagepath", storage)
	v.SetDefault("imagename", DefaultImageName)
	v.SetDefault("logsdir", "")
	v.SetDefault("logsmaxsizeinmb", 5)
	v.SetDefault("logsmaxbackups", 3)
	v.SetDefault("logsmaxageindays", 30)
	v.SetDefault("dbmaxopenconns", 0)
	v.SetDefault("dbmaxidleconns", 0)

	v.BindEnv("appname", "FAVMOMENT_APP_NAME")
	v.BindEnv("environment", "FAVMOMENT_ENV")
	v.BindEnv("loglevel", "FAVMOMENT_LOG_LEVEL")
	v.BindEnv("showreset", "FAVMOMENT_SHOW_RESET")
	v.BindEnv("removeimageonreset", "FAVMOMENT_REMOVE_IMAGE_ON_RESET")
	v.BindEnv("camerapermission", "FAVMOMENT_CAMERA_PERMISSION")
	v.BindEnv("librarypermission", "FAVMOMENT_LIBRARY_PERMISSION")
	v.BindEnv("storagepath", "FAVMOMENT_STORAGE_PATH")
	v.BindEnv("imagename", "FAVMOMENT_IMAGE_NAME")
	v.BindEnv("logsdir", "FAVMOMENT_LOGS_DIR")
	v.BindEnv("logsmaxsizeinmb", "FAVMOMENT_LOGS_MAX_SIZE_IN_MB")
	v.BindEnv("logsmaxbackups", "FAVMOMENT_LOGS_MAX_BACKUPS")
	v.BindEnv("logsmaxageindays", "FAVMOMENT_LOGS_MAX_AGE_IN_DAYS")
	v.BindEnv("dbmaxopenconns", "FAVMOMENT_DB_MAX_OPEN_CONNS")
	v.BindEnv("dbmaxidleconns", "FAVMOMENT_DB_MAX_IDLE_CONNS")

	if path := os.Getenv("FAVMOMENT_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Set derived values
	c.DatabaseName = c.GetDatabasePath()
	if c.LogsDirectory == "" {
		c.LogsDirectory = filepath.Join(c.StoragePath, "logs")
	}

	return c, nil
}

// defaultStoragePath resolves the private, per-user application directory.
func defaultStoragePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "storage"
	}
	return filepath.Join(base, "favmoment")
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	for name, status := range map[string]string{
		"camera":  c.CameraPermission,
		"library": c.LibraryPermission,
	} {
		switch status {
		case PermissionGranted, PermissionDenied, PermissionUndetermined:
		default:
			return fmt.Errorf("invalid %s permission: %s", name, status)
		}
	}

	if c.StoragePath == "" {
		return fmt.Errorf("storage path is required")
	}
	if c.ImageName == "" || filepath.Base(c.ImageName) != c.ImageName {
		return fmt.Errorf("invalid image name: %q", c.ImageName)
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.StoragePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetMaxOpenConns returns the MaxOpenConns value, 1 unless set via env var.
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}
	return 1
}

// GetMaxIdleConns returns the MaxIdleConns value.
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}
	return 1
}

// GetLogLevel returns the log level as a string.
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// GetLogDirectory returns the logs directory.
func (c *Config) GetLogDirectory() string {
	return c.LogsDirectory
}

// GetLogMaxSizeMB returns the max log file size in MB.
func (c *Config) GetLogMaxSizeMB() int {
	return c.LogsMaxSizeInMb
}

// GetLogMaxBackups returns the max number of log backups.
func (c *Config) GetLogMaxBackups() int {
	return c.LogsMaxBackups
}

// GetLogMaxAgeDays returns the max age in days for log files.
func (c *Config) GetLogMaxAgeDays() int {
	return c.LogsMaxAgeInDays
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
