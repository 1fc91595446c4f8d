package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalUploader copies images into a directory served by the HTTP process
// itself. It is the fallback when no object store is configured, so the
// upload endpoint keeps working in local development.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates an uploader writing into dir; returned URLs are
// baseURL + /uploads/<name>.
func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{
		dir:     dir,
		baseURL: baseURL,
	}
}

// Upload copies the file under a fresh unique name and returns its URL.
func (u *LocalUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(localPath)
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload target: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy upload: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", u.baseURL, name), nil
}
