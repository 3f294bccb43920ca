package handler

import (
	"context"
	"errors"
	"log"

	"github.com/Ordy-97/GestionProjet/pkg/filestore"
)

// discardFile removes a stored file that no record references any more: an
// upload whose record save failed, or a replaced cover or avatar. Failures
// are logged, never propagated: the surrounding request already has its own
// outcome.
func discardFile(ctx context.Context, files filestore.FileStore, key string) {
	if key == "" {
		return
	}
	if err := files.DeleteFile(ctx, key); err != nil && !errors.Is(err, filestore.ErrNotFound) {
		log.Printf("discard file %s: %v", key, err)
	}
}
