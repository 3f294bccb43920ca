package filestore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

type flakyStore struct {
	deleteErrs []error
	deletes    int
}

func (f *flakyStore) SaveFile(ctx context.Context, name, contentType string, r io.Reader) (FileRef, error) {
	return FileRef{Key: "k_" + name, Name: name}, nil
}

func (f *flakyStore) DeleteFile(ctx context.Context, key string) error {
	err := f.deleteErrs[f.deletes]
	f.deletes++
	return err
}

func (f *flakyStore) URLOf(key string) string { return "http://x/files/" + key }

func TestWithRetry_DeleteRecoversOnce(t *testing.T) {
	inner := &flakyStore{deleteErrs: []error{errors.New("transient"), nil}}
	store := WithRetry(inner, time.Second)

	if err := store.DeleteFile(context.Background(), "k"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if inner.deletes != 2 {
		t.Errorf("deletes = %d, want 2", inner.deletes)
	}
}

func TestWithRetry_DeleteGivesUpAfterSecondFailure(t *testing.T) {
	inner := &flakyStore{deleteErrs: []error{errors.New("down"), errors.New("still down")}}
	store := WithRetry(inner, time.Second)

	if err := store.DeleteFile(context.Background(), "k"); err == nil {
		t.Fatal("expected error after two failures")
	}
	if inner.deletes != 2 {
		t.Errorf("deletes = %d, want exactly 2 (single bounded retry)", inner.deletes)
	}
}

func TestWithRetry_NotFoundIsNotRetried(t *testing.T) {
	inner := &flakyStore{deleteErrs: []error{ErrNotFound}}
	store := WithRetry(inner, time.Second)

	if err := store.DeleteFile(context.Background(), "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if inner.deletes != 1 {
		t.Errorf("deletes = %d, want 1", inner.deletes)
	}
}
