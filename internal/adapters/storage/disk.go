// Package storage provides the local-disk implementation of the blob store
// port used for uploaded paper PDFs.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"confdesk/internal/domain"
)

type diskStorage struct {
	root string
}

// NewDiskStorage returns a FileStorage that writes blobs under root. Keys are
// generated UUIDs preserving the original file extension; the original
// filename never becomes part of the storage key.
func NewDiskStorage(root string) (domain.FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &diskStorage{root: root}, nil
}

func (s *diskStorage) Save(ctx context.Context, folder, originalFilename string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalFilename)
	name := uuid.New().String() + ext
	relPath := filepath.Join(folder, name)

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage folder: %w", err)
	}

	f, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	return relPath, nil
}

func (s *diskStorage) Delete(ctx context.Context, path string) error {
	err := os.Remove(filepath.Join(s.root, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
