// Package internal contains core application functionality
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"favmoment/internal/config"
	"favmoment/internal/database"
	"favmoment/internal/device"
	"favmoment/internal/logging"
	"favmoment/internal/profiles"
	"favmoment/internal/screen"
)

// Application wires configuration, logging, the profile database and the
// profile screen together.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager *database.DBManager
	Store     *profiles.Store
	Screen    *screen.Controller
}

type appOptions struct {
	fs          afero.Fs
	console     io.Writer
	picker      screen.Picker
	permissions screen.Permissions
	notifier    screen.Notifier
}

// Option customizes application construction.
type Option func(*appOptions)

// WithFilesystem sets the filesystem holding private storage.
func WithFilesystem(fs afero.Fs) Option {
	return func(o *appOptions) { o.fs = fs }
}

// WithConsole mirrors log output to w.
func WithConsole(w io.Writer) Option {
	return func(o *appOptions) { o.console = w }
}

// WithPicker sets the image picker used by the screen.
func WithPicker(p screen.Picker) Option {
	return func(o *appOptions) { o.picker = p }
}

// WithPermissions overrides the configured permission statuses.
func WithPermissions(p screen.Permissions) Option {
	return func(o *appOptions) { o.permissions = p }
}

// WithNotifier sets where alerts are shown.
func WithNotifier(n screen.Notifier) Option {
	return func(o *appOptions) { o.notifier = n }
}

// NewApp creates a new application instance from the process configuration
func NewApp(opts ...Option) (*Application, error) {
	return NewAppWithConfig(config.GetConfig(), opts...)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config, opts ...Option) (*Application, error) {
	o := &appOptions{
		fs:     afero.NewOsFs(),
		picker: &device.FilePicker{},
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := logging.NewLogger(cfg, o.console)

	if o.permissions == nil {
		o.permissions = device.PermissionsFromConfig(cfg)
	}
	if o.notifier == nil {
		o.notifier = &device.TerminalNotifier{Out: os.Stderr, Logger: logger}
	}

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := profiles.NewStore(dbManager.GetConnection(), o.fs, cfg.StoragePath, logger,
		profiles.WithImageName(cfg.ImageName))

	controller := screen.NewController(store, o.permissions, o.picker, o.notifier, logger, screen.Options{
		ShowReset:          cfg.ShowReset,
		RemoveImageOnReset: cfg.RemoveImageOnReset,
	})

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		Store:     store,
		Screen:    controller,
	}, nil
}

// Start initializes the store and loads the saved profile into the screen.
func (a *Application) Start(ctx context.Context) error {
	return a.Screen.Start(ctx)
}

// Shutdown closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- a.DBManager.Close() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
