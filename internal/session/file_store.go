package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps the token in a file named TokenKey inside dir.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a FileStore rooted at dir on fs.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, path: filepath.Join(dir, TokenKey)}
}

// Path returns the location of the token file.
func (s *FileStore) Path() string { return s.path }

// Token reads the token file.
func (s *FileStore) Token(ctx context.Context) (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoToken
	}
	return string(data), nil
}

// SetToken overwrites the token file, readable only by the owner.
func (s *FileStore) SetToken(ctx context.Context, token string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// ClearToken removes the token file. A missing file is not an error.
func (s *FileStore) ClearToken(ctx context.Context) error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
