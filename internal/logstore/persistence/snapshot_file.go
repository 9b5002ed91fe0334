package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileSnapshotter writes the image to a single JSON file. Writes go to a
// temporary file in the same directory which is fsynced and renamed over the
// target, so a crash leaves either the old or the new image.
type FileSnapshotter struct {
	path string
}

func NewFile(path string) (*FileSnapshotter, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &FileSnapshotter{path: path}, nil
}

func (f *FileSnapshotter) Save(_ context.Context, img *Image) error {
	data, err := Encode(img)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck // already failing
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return syncDir(filepath.Dir(f.path))
}

func (f *FileSnapshotter) Load(_ context.Context) (*Image, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// Quarantine renames the image file to <path>.corrupt-<timestamp>.
func (f *FileSnapshotter) Quarantine(_ context.Context, at time.Time) (string, error) {
	dst := f.path + "." + quarantineSuffix(at)
	if err := os.Rename(f.path, dst); err != nil {
		return "", fmt.Errorf("quarantine snapshot: %w", err)
	}
	if err := syncDir(filepath.Dir(f.path)); err != nil {
		return "", err
	}
	return dst, nil
}

func (f *FileSnapshotter) Close() error {
	return nil
}

// syncDir persists the rename itself. Some platforms cannot fsync a
// directory; that is not treated as a failure.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open snapshot directory: %w", err)
	}
	defer d.Close()
	_ = d.Sync()
	return nil
}
