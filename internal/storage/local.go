// Package storage implements the local image repository on disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"artfolio/internal/validation"

	"github.com/google/uuid"
)

// LocalStore persists image bytes under a single upload directory.
// Filenames are generated so that concurrent writers never collide.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store over it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the root upload directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// UploadFilename derives a collision-resistant name for an uploaded file:
// a UTC timestamp and a short unique ID followed by the sanitized original
// name. The unique ID keeps same-second uploads of one filename apart.
func (s *LocalStore) UploadFilename(original string) string {
	return time.Now().UTC().Format("20060102150405") +
		"_" + uuid.New().String()[:8] +
		"_" + validation.SanitizeFilename(original)
}

// GeneratedFilename derives a globally unique name for a generated image.
func (s *LocalStore) GeneratedFilename(userID uint, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("generated_%d_%s.%s", userID, uuid.New().String(), ext)
}

// Save writes image bytes under the given filename and returns the absolute path.
func (s *LocalStore) Save(filename string, data []byte) (string, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return path, nil
}

// Read returns the stored bytes for the given filename.
func (s *LocalStore) Read(filename string) ([]byte, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path) // #nosec G304: path is confined to the upload dir by resolve
}

// Remove deletes the backing file. A missing file is not an error.
func (s *LocalStore) Remove(filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves a filename to its absolute on-disk path without touching the file.
func (s *LocalStore) Path(filename string) (string, error) {
	return s.resolve(filename)
}

// resolve joins the filename onto the upload dir, rejecting anything that
// would escape it.
func (s *LocalStore) resolve(filename string) (string, error) {
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}
