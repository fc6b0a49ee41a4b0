package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes generated exports to the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Ensure the base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes data under the base path and returns the file's full path.
// An existing file with the same name is replaced.
func (s *LocalStorage) Save(data []byte, filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("invalid file name %q", filename)
	}

	filePath := filepath.Join(s.basePath, name)
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		// Clean up on failure
		os.Remove(tmp)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return filePath, nil
}

// Open returns a stored file for reading
func (s *LocalStorage) Open(filename string) (*os.File, error) {
	return os.Open(s.GetFullPath(filename))
}

// Delete removes a file
func (s *LocalStorage) Delete(filename string) error {
	return os.Remove(s.GetFullPath(filename))
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(filename string) bool {
	_, err := os.Stat(s.GetFullPath(filename))
	return err == nil
}

// GetFullPath returns the path a file is stored at
func (s *LocalStorage) GetFullPath(filename string) string {
	return filepath.Join(s.basePath, filepath.Base(filename))
}

// GetSize returns the size of a file in bytes
func (s *LocalStorage) GetSize(filename string) (int64, error) {
	info, err := os.Stat(s.GetFullPath(filename))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
