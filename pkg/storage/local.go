package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Local stores blobs on the local filesystem under a base directory, mirroring
// the uploads/ layout served statically by the HTTP server.
type Local struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocal creates a local blob store rooted at baseDir, creating the logo and
// banner folders up front.
func NewLocal(baseDir string, logger *zap.Logger) (*Local, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, sub := range []string{FolderLogos, FolderBanners} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Local{baseDir: baseDir, logger: logger}, nil
}

// BaseDir returns the storage root, for static file serving.
func (l *Local) BaseDir() string { return l.baseDir }

func (l *Local) fullPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return filepath.Join(l.baseDir, clean), nil
}

// Put writes a blob and returns its key as the stored reference.
func (l *Local) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	p, err := l.fullPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if size > 0 {
		body = io.LimitReader(body, size)
	}
	if _, err := io.Copy(f, body); err != nil {
		os.Remove(p)
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

// Get reads a blob by key.
func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := l.fullPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	p, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// List returns the keys under a prefix folder, sorted.
func (l *Local) List(ctx context.Context, prefix string) ([]string, error) {
	dir, err := l.fullPath(prefix)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		keys = append(keys, prefix+"/"+e.Name())
	}
	sort.Strings(keys)
	return keys, nil
}
