package screen

import (
	"context"

	"favmoment/internal/profiles"
)

// Status is the outcome of a device permission request.
type Status string

const (
	StatusGranted      Status = "granted"
	StatusDenied       Status = "denied"
	StatusUndetermined Status = "undetermined"
)

// Permissions requests device permissions before the picker is used.
type Permissions interface {
	RequestCamera(ctx context.Context) (Status, error)
	RequestMediaLibrary(ctx context.Context) (Status, error)
}

// PickOptions are handed to the picker unchanged.
type PickOptions struct {
	ImagesOnly    bool
	AllowsEditing bool
	Aspect        [2]int
	Quality       float64
}

// DefaultPickOptions asks for an editable square crop at half quality.
var DefaultPickOptions = PickOptions{
	ImagesOnly:    true,
	AllowsEditing: true,
	Aspect:        [2]int{1, 1},
	Quality:       0.5,
}

// PickResult is what the picker returns: a temporary image URI, or a
// cancellation.
type PickResult struct {
	URI      string
	Canceled bool
}

// Picker acquires an image from the media library or the camera.
type Picker interface {
	PickFromLibrary(ctx context.Context, opts PickOptions) (PickResult, error)
	Capture(ctx context.Context, opts PickOptions) (PickResult, error)
}

// Notifier presents a blocking notice to the user.
type Notifier interface {
	Alert(title, message string)
}

// ProfileStore is the subset of the profile store the screen uses.
type ProfileStore interface {
	Initialize(ctx context.Context) error
	ReadProfile(ctx context.Context) (*profiles.Profile, error)
	WriteProfile(ctx context.Context, imageURL, caption string) (*profiles.Profile, error)
	RelocateImage(ctx context.Context, sourceURI string) (string, error)
	ResetStore(ctx context.Context) error
	RemoveImage(ctx context.Context) error
}
