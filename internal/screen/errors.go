package screen

import "errors"

// Alert titles and messages shown to the user.
const (
	TitlePermissions         = "Permissions Required"
	MessagePermissions       = "Grant Permissions first to use the app"
	TitleRequirementsMissing = "Requirements Missing"
	MessageImageAndCaption   = "Avatar image and caption is required"
	MessageImage             = "Avatar image is required"
	MessageCaption           = "Caption is required"
)

var (
	// ErrPermissionDenied is returned when neither camera nor media library
	// access was granted.
	ErrPermissionDenied = errors.New("permissions not granted")

	// ErrValidation is returned when saving without an image or a caption.
	ErrValidation = errors.New("profile requirements missing")

	// ErrProfileLocked is returned when editing a screen that already shows a
	// saved profile.
	ErrProfileLocked = errors.New("profile already saved")

	// ErrResetDisabled is returned when reset is attempted while the reset
	// affordance is turned off.
	ErrResetDisabled = errors.New("profile reset is disabled")
)
