package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local writes uploads to a directory on disk. The default backend; the
// stored path is the absolute file path, which the admin download
// endpoint serves directly.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Local{dir: abs}, nil
}

func (u *Local) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	// objectName is minted by the caller (uuid-suffixed), never raw client
	// input, but reject separators anyway.
	if filepath.Base(objectName) != objectName {
		return "", fmt.Errorf("invalid object name %q", objectName)
	}

	dst := filepath.Join(u.dir, objectName)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dst, nil
}
