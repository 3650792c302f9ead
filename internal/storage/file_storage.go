package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrPathEscapesBase is returned when a name resolves outside the output directory
var ErrPathEscapesBase = errors.New("path escapes base directory")

// FileStorage stores generated report files
type FileStorage interface {
	// Save writes content under name, relative to the base directory, and returns the full path.
	Save(name string, content []byte) (string, error)

	// Resolve returns the full path for name after checking it stays inside the base directory.
	Resolve(name string) (string, error)
}

// LocalFileStorage implements FileStorage on the local filesystem
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFileStorage creates a LocalFileStorage rooted at baseDir
func NewLocalFileStorage(baseDir string, logger *zap.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
	}
}

// BaseDir returns the output directory
func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// Save writes to a temporary file and renames it into place, so a reader never
// sees a half-written report.
func (s *LocalFileStorage) Save(name string, content []byte) (string, error) {
	fullPath, err := s.Resolve(name)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error("Failed to create output directory",
			zap.String("path", dir),
			zap.Error(err))
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		s.logger.Error("Failed to move report into place",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("File saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return fullPath, nil
}

// Resolve joins name onto the base directory and rejects anything outside it
func (s *LocalFileStorage) Resolve(name string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}

	absPath := name
	if !filepath.IsAbs(name) {
		absPath = filepath.Join(absBase, name)
	}
	absPath = filepath.Clean(absPath)

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesBase, name)
	}
	return absPath, nil
}
