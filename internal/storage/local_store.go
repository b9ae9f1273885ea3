package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps uploaded files in a directory served under a URL prefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates dir if needed. urlPrefix is the public mount, e.g. "/uploads".
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes r under a fresh name with the given extension and returns its public path.
func (s *LocalStore) Save(prefix, ext string, r io.Reader) (string, error) {
	name := prefix + "-" + uuid.NewString() + strings.ToLower(ext)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes a file previously returned by Save. Paths outside the
// prefix and files that are already gone are ignored.
func (s *LocalStore) Remove(publicPath string) error {
	if !strings.HasPrefix(publicPath, s.urlPrefix+"/") {
		return nil
	}
	name := path.Base(publicPath)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}
	return nil
}
