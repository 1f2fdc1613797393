package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes artifacts under baseDir/<category>/. File keys embed a
// uuid so concurrent uploads for the same session never collide.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(ctx context.Context, category string, sessionId uint, ext string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	fileKey := filepath.Join(dir, fmt.Sprintf("session_%d_%s%s", sessionId, uuid.NewString(), ext))

	if err := os.WriteFile(fileKey, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return fileKey, nil
}

func (s *LocalStore) Read(ctx context.Context, fileKey string) ([]byte, error) {
	return os.ReadFile(fileKey)
}
