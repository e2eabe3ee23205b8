package domain

import (
	"context"
	"io"
)

// FileStorage is the blob store port for uploaded paper PDFs. Save generates
// a unique storage key preserving the original file extension; the original
// filename is never used as the key. The returned path identifies the blob
// for later Delete calls and for serving.
type FileStorage interface {
	Save(ctx context.Context, folder, originalFilename string, r io.Reader) (path string, err error)
	Delete(ctx context.Context, path string) error
}
