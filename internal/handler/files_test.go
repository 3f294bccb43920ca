package handler

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Ordy-97/GestionProjet/pkg/filestore"
)

type recordingStore struct {
	deleted []string
	err     error
}

func (r *recordingStore) SaveFile(ctx context.Context, name, contentType string, rd io.Reader) (filestore.FileRef, error) {
	return filestore.FileRef{Key: "k_" + name, Name: name}, nil
}

func (r *recordingStore) DeleteFile(ctx context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	return r.err
}

func (r *recordingStore) URLOf(key string) string { return "http://x/files/" + key }

// An upload whose record never made it must be deleted again so the file
// store and the database do not drift apart.
func TestDiscardFile(t *testing.T) {
	store := &recordingStore{}
	discardFile(context.Background(), store, "abc_report.pdf")
	if len(store.deleted) != 1 || store.deleted[0] != "abc_report.pdf" {
		t.Errorf("deleted = %v", store.deleted)
	}
}

func TestDiscardFile_EmptyKey(t *testing.T) {
	store := &recordingStore{}
	discardFile(context.Background(), store, "")
	if len(store.deleted) != 0 {
		t.Error("empty key must not hit the store")
	}
}

func TestDiscardFile_SwallowsErrors(t *testing.T) {
	discardFile(context.Background(), &recordingStore{err: errors.New("store down")}, "k")
	discardFile(context.Background(), &recordingStore{err: filestore.ErrNotFound}, "k")
}
