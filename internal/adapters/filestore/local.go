// Package filestore keeps uploaded media on the local filesystem and serves
// it under a public URL prefix.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for names that would escape the upload directory.
var ErrInvalidName = errors.New("invalid file name")

// Storage stores an uploaded file and returns the reference the site uses to
// display it.
type Storage interface {
	Upload(ctx context.Context, name string, r io.Reader) (publicRef string, err error)
	Remove(ctx context.Context, name string) error
}

// Local implements Storage in a directory.
type Local struct {
	dir    string
	prefix string
}

// Compile-time check that *Local satisfies Storage.
var _ Storage = (*Local)(nil)

// NewLocal stores files in dir and reports them under prefix, e.g. "/uploads".
// The directory is created if needed.
func NewLocal(dir, prefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, prefix: strings.TrimSuffix(prefix, "/")}, nil
}

// Dir returns the directory files are written to.
func (l *Local) Dir() string { return l.dir }

func (l *Local) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return filepath.Join(l.dir, name), nil
}

// Upload writes r to name. An existing file is never overwritten.
// POST: Returns prefix + "/" + name
func (l *Local) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	dst, err := l.resolve(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path.Join(l.prefix, name), nil
}

// Remove deletes name. A missing file is not an error.
func (l *Local) Remove(_ context.Context, name string) error {
	dst, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
