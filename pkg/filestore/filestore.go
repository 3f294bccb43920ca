// Package filestore stores uploaded binary files and resolves their public
// URLs. The interface mirrors the hosted object store the application was
// built against: save, delete, resolve-URL, nothing else.
package filestore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the referenced file does not exist.
var ErrNotFound = errors.New("filestore: file not found")

// FileRef identifies a stored file.
type FileRef struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type FileStore interface {
	// SaveFile stores the content of r under a fresh key derived from name.
	SaveFile(ctx context.Context, name, contentType string, r io.Reader) (FileRef, error)
	// DeleteFile removes the file for key. Deleting an absent key returns
	// ErrNotFound.
	DeleteFile(ctx context.Context, key string) error
	// URLOf resolves the public URL for key.
	URLOf(key string) string
}
