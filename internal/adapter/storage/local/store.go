// Package local keeps uploaded objects in a directory on disk.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/strogmv/postapi/internal/port"
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Upload(ctx context.Context, key string, reader io.Reader, opts port.UploadOptions) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create object %s: %w", key, err)
	}
	if _, err := io.Copy(dst, reader); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", key, err)
	}

	meta, err := json.Marshal(struct {
		ContentType string            `json:"contentType"`
		Metadata    map[string]string `json:"metadata,omitempty"`
	}{opts.ContentType, opts.Metadata})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path+".meta.json", meta, 0o644); err != nil {
		return "", fmt.Errorf("write object %s metadata: %w", key, err)
	}
	return key, nil
}

// path rejects keys that would escape the root directory.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, key), nil
}

var _ port.FileStorage = (*Store)(nil)
