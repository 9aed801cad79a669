package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RelocateImage copies the image at sourceURI into private storage under the
// fixed image name, replacing any previous image, and returns its new URI.
// The source file is left in place.
func (s *Store) RelocateImage(ctx context.Context, sourceURI string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := PathFromURI(sourceURI)
	if err != nil {
		return "", err
	}
	dst := s.imagePath()
	if src == dst {
		return "", ErrSameImage
	}

	in, err := s.fs.Open(src)
	if err != nil {
		s.logger.Error("Error opening picked image", slog.String("source", src), slog.Any("error", err))
		return "", sourceError(src, err)
	}
	defer in.Close()

	if err := s.fs.MkdirAll(s.root, 0o700); err != nil {
		s.logger.Error("Error preparing private storage", slog.String("root", s.root), slog.Any("error", err))
		return "", storageError("create "+s.root, err)
	}

	tmp := filepath.Join(s.root, fmt.Sprintf(".%s.%s.tmp", s.imageName, uuid.NewString()))
	if err := s.copyFile(in, tmp); err != nil {
		_ = s.fs.Remove(tmp)
		s.logger.Error("Error moving image to local storage", slog.String("destination", dst), slog.Any("error", err))
		return "", err
	}

	if err := s.fs.Rename(tmp, dst); err != nil {
		_ = s.fs.Remove(tmp)
		s.logger.Error("Error moving image to local storage", slog.String("destination", dst), slog.Any("error", err))
		return "", storageError("rename "+tmp, err)
	}

	uri := FileURI(dst)
	s.logger.Info("Image relocated", slog.String("source", sourceURI), slog.String("uri", uri))
	return uri, nil
}

func (s *Store) copyFile(in io.Reader, path string) error {
	out, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return storageError("create "+path, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return storageError("copy to "+path, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return storageError("sync "+path, err)
	}
	if err := out.Close(); err != nil {
		return storageError("close "+path, err)
	}
	return nil
}

// RemoveImage deletes the relocated image if it exists.
func (s *Store) RemoveImage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.fs.Remove(s.imagePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("Error removing profile image", slog.String("path", s.imagePath()), slog.Any("error", err))
		return storageError("remove "+s.imagePath(), err)
	}
	return nil
}

func sourceError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrImageNotFound, path, err)
	}
	return storageError("open "+path, err)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageAccess, op, err)
}
