// Package device provides terminal stand-ins for the device services the
// profile screen depends on: the image picker, permission prompts and alerts.
package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"favmoment/internal/config"
	"favmoment/internal/profiles"
	"favmoment/internal/screen"
)

// FilePicker resolves picks from file paths supplied up front. An empty path
// behaves like the user cancelling the picker.
type FilePicker struct {
	LibraryPath string
	CapturePath string
}

// PickFromLibrary returns the library path as a file URI.
func (p *FilePicker) PickFromLibrary(ctx context.Context, _ screen.PickOptions) (screen.PickResult, error) {
	return pick(ctx, p.LibraryPath)
}

// Capture returns the capture path as a file URI.
func (p *FilePicker) Capture(ctx context.Context, _ screen.PickOptions) (screen.PickResult, error) {
	return pick(ctx, p.CapturePath)
}

func pick(ctx context.Context, path string) (screen.PickResult, error) {
	if err := ctx.Err(); err != nil {
		return screen.PickResult{}, err
	}
	if path == "" {
		return screen.PickResult{Canceled: true}, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return screen.PickResult{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	return screen.PickResult{URI: profiles.FileURI(abs)}, nil
}

// StaticPermissions answers permission requests with fixed statuses.
type StaticPermissions struct {
	Camera  screen.Status
	Library screen.Status
}

// PermissionsFromConfig reads the configured permission statuses.
func PermissionsFromConfig(cfg *config.Config) *StaticPermissions {
	return &StaticPermissions{
		Camera:  screen.Status(cfg.CameraPermission),
		Library: screen.Status(cfg.LibraryPermission),
	}
}

// RequestCamera returns the configured camera status.
func (p *StaticPermissions) RequestCamera(ctx context.Context) (screen.Status, error) {
	return p.Camera, ctx.Err()
}

// RequestMediaLibrary returns the configured media library status.
func (p *StaticPermissions) RequestMediaLibrary(ctx context.Context) (screen.Status, error) {
	return p.Library, ctx.Err()
}

// TerminalNotifier prints alerts to a writer.
type TerminalNotifier struct {
	Out    io.Writer
	Logger *slog.Logger
}

// Alert prints the notice as "title: message".
func (n *TerminalNotifier) Alert(title, message string) {
	if n.Logger != nil {
		n.Logger.Warn("Alert shown", slog.String("title", title), slog.String("message", message))
	}
	if n.Out != nil {
		fmt.Fprintf(n.Out, "%s: %s\n", title, message)
	}
}
