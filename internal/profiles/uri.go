package profiles

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI returns the file:// URI for an absolute path.
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// PathFromURI resolves a file:// URI or an absolute path to a cleaned
// filesystem path.
func PathFromURI(uri string) (string, error) {
	if strings.HasPrefix(uri, "file:") {
		u, err := url.Parse(uri)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrInvalidImageURI, uri, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("%w: remote host %q", ErrInvalidImageURI, u.Host)
		}
		if u.Path == "" {
			return "", fmt.Errorf("%w: %s", ErrInvalidImageURI, uri)
		}
		return filepath.Clean(filepath.FromSlash(u.Path)), nil
	}

	if uri == "" || !filepath.IsAbs(uri) {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageURI, uri)
	}
	return filepath.Clean(uri), nil
}
