// Package screen drives the profile screen: it checks device permissions,
// runs the image picker, validates input and maps profile store results to
// what the screen shows.
package screen

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"favmoment/internal/profiles"
)

// Options configures a Controller.
type Options struct {
	// ShowReset enables the reset affordance.
	ShowReset bool
	// RemoveImageOnReset deletes the relocated image when the profile is reset.
	RemoveImageOnReset bool
	// PickOptions are passed to the picker; zero means DefaultPickOptions.
	PickOptions PickOptions
}

// Controller holds the screen state and serializes user gestures.
type Controller struct {
	mu          sync.Mutex
	store       ProfileStore
	permissions Permissions
	picker      Picker
	notifier    Notifier
	logger      *slog.Logger
	opts        Options
	state       State
}

// NewController wires a controller to its collaborators.
func NewController(store ProfileStore, permissions Permissions, picker Picker, notifier Notifier, logger *slog.Logger, opts Options) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PickOptions == (PickOptions{}) {
		opts.PickOptions = DefaultPickOptions
	}
	return &Controller{
		store:       store,
		permissions: permissions,
		picker:      picker,
		notifier:    notifier,
		logger:      logger,
		opts:        opts,
		state:       State{resetEnabled: opts.ShowReset},
	}
}

// State returns a snapshot of the current screen state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start prepares the store and restores a saved profile, if any.
// Initialization failures are logged only; a failed read is returned and
// leaves the screen empty.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Initialize(ctx); err != nil {
		c.logger.Error("Database initialization failed", slog.Any("error", err))
	}

	profile, err := c.store.ReadProfile(ctx)
	if err != nil {
		c.logger.Error("Failed to load profile", slog.Any("error", err))
		return err
	}
	if profile == nil {
		c.logger.Debug("No saved profile")
		return nil
	}

	c.state.HasProfile = true
	c.state.AvatarURI = profile.ImageURL
	c.state.Caption = profile.Caption
	return nil
}

// OpenPicker shows the image source chooser.
func (c *Controller) OpenPicker() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PickerOpen = true
}

// ClosePicker hides the image source chooser.
func (c *Controller) ClosePicker() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PickerOpen = false
}

// ChooseImage picks an image from the media library. It reports whether a
// new avatar was set; a cancelled pick returns false and no error.
func (c *Controller) ChooseImage(ctx context.Context) (bool, error) {
	return c.acquire(ctx, "library", c.picker.PickFromLibrary)
}

// TakePhoto captures an image with the camera. It reports whether a new
// avatar was set; a cancelled capture returns false and no error.
func (c *Controller) TakePhoto(ctx context.Context) (bool, error) {
	return c.acquire(ctx, "camera", c.picker.Capture)
}

func (c *Controller) acquire(ctx context.Context, source string, pick func(context.Context, PickOptions) (PickResult, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.HasProfile {
		return false, ErrProfileLocked
	}

	if err := c.verifyPermissions(ctx); err != nil {
		return false, err
	}

	result, err := pick(ctx, c.opts.PickOptions)
	if err != nil {
		c.logger.Error("Image picker failed", slog.String("source", source), slog.Any("error", err))
		return false, fmt.Errorf("%s picker: %w", source, err)
	}
	if result.Canceled || result.URI == "" {
		c.logger.Debug("Image pick cancelled", slog.String("source", source))
		return false, nil
	}

	c.state.AvatarURI = result.URI
	c.state.PickerOpen = false
	return true, nil
}

// verifyPermissions requests camera and media library access. Either one
// being granted is enough.
func (c *Controller) verifyPermissions(ctx context.Context) error {
	camera, err := c.permissions.RequestCamera(ctx)
	if err != nil {
		return fmt.Errorf("request camera permission: %w", err)
	}
	library, err := c.permissions.RequestMediaLibrary(ctx)
	if err != nil {
		return fmt.Errorf("request media library permission: %w", err)
	}

	if camera != StatusGranted && library != StatusGranted {
		c.logger.Warn("We do not have permissions",
			slog.String("camera", string(camera)),
			slog.String("library", string(library)))
		c.notifier.Alert(TitlePermissions, MessagePermissions)
		return ErrPermissionDenied
	}
	return nil
}

// SetCaption updates the caption input. The caption is read-only once a
// profile is saved.
func (c *Controller) SetCaption(caption string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.HasProfile {
		return ErrProfileLocked
	}
	c.state.Caption = caption
	return nil
}

// Save validates the input, moves the picked image into private storage and
// writes the profile. The screen switches to the saved profile only after
// the write is acknowledged.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.HasProfile {
		return ErrProfileLocked
	}

	if msg := c.missingRequirements(); msg != "" {
		c.notifier.Alert(TitleRequirementsMissing, msg)
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	imageURI, err := c.store.RelocateImage(ctx, c.state.AvatarURI)
	if err != nil {
		c.logger.Error("Error moving image to local storage", slog.Any("error", err))
		return err
	}

	written, err := c.store.WriteProfile(ctx, imageURI, c.state.Caption)
	if err != nil {
		c.logger.Error("Save profile failed", slog.Any("error", err))
		return err
	}

	profile, err := c.store.ReadProfile(ctx)
	if err != nil {
		c.logger.Error("Failed to read back saved profile", slog.Any("error", err))
		return err
	}
	if profile == nil {
		return fmt.Errorf("%w: profile missing after save", profiles.ErrStorageAccess)
	}

	// The screen always mirrors the stored profile, which is the one a
	// relaunch restores.
	c.state.HasProfile = true
	c.state.AvatarURI = profile.ImageURL
	c.state.Caption = profile.Caption
	c.state.PickerOpen = false

	if profile.ID != written.ID {
		c.logger.Warn("Saved profile is shadowed by an existing one",
			slog.Int64("saved_id", written.ID),
			slog.Int64("stored_id", profile.ID))
		return fmt.Errorf("%w: showing stored profile %d instead of %d", ErrProfileLocked, profile.ID, written.ID)
	}
	return nil
}

func (c *Controller) missingRequirements() string {
	switch {
	case !c.state.HasAvatar() && c.state.Caption == "":
		return MessageImageAndCaption
	case !c.state.HasAvatar():
		return MessageImage
	case c.state.Caption == "":
		return MessageCaption
	default:
		return ""
	}
}

// Reset deletes the saved profile and returns the screen to its empty state.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opts.ShowReset {
		return ErrResetDisabled
	}

	if err := c.store.ResetStore(ctx); err != nil {
		c.logger.Error("Error resetting profile", slog.Any("error", err))
		return err
	}

	if c.opts.RemoveImageOnReset {
		if err := c.store.RemoveImage(ctx); err != nil {
			c.logger.Warn("Profile reset but image could not be removed", slog.Any("error", err))
		}
	}

	c.state = State{resetEnabled: c.opts.ShowReset}
	c.logger.Info("Profile reset")
	return nil
}
