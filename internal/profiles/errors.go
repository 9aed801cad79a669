package profiles

import "errors"

var (
	// ErrStorageAccess is returned when the database or the private storage
	// directory cannot be read or written.
	ErrStorageAccess = errors.New("storage access failed")

	// ErrImageNotFound is returned when the image to relocate does not exist.
	ErrImageNotFound = errors.New("image not found")

	// ErrSameImage is returned when asked to relocate the stored image onto itself.
	ErrSameImage = errors.New("image is already in private storage")

	// ErrInvalidImageURI is returned for URIs that are neither file:// URIs
	// nor absolute paths.
	ErrInvalidImageURI = errors.New("invalid image uri")

	// ErrInvalidProfile is returned when a profile is written without an
	// image or a caption.
	ErrInvalidProfile = errors.New("profile requires an image and a caption")
)
