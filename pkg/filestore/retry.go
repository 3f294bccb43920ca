package filestore

import (
	"context"
	"errors"
	"io"
	"time"
)

// WithRetry wraps a FileStore so that each call runs under a per-operation
// timeout and failures are retried exactly once. The backing store makes no
// latency guarantee, so the caller always gets a bounded outcome.
func WithRetry(store FileStore, timeout time.Duration) FileStore {
	return &retryStore{store: store, timeout: timeout}
}

type retryStore struct {
	store   FileStore
	timeout time.Duration
}

func (r *retryStore) SaveFile(ctx context.Context, name, contentType string, reader io.Reader) (FileRef, error) {
	// A reader can only be consumed once, so SaveFile is not retried: the
	// single attempt still runs under the timeout.
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.store.SaveFile(opCtx, name, contentType, reader)
}

func (r *retryStore) DeleteFile(ctx context.Context, key string) error {
	err := r.once(ctx, key)
	if err == nil || errors.Is(err, ErrNotFound) || ctx.Err() != nil {
		return err
	}
	return r.once(ctx, key)
}

func (r *retryStore) once(ctx context.Context, key string) error {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.store.DeleteFile(opCtx, key)
}

func (r *retryStore) URLOf(key string) string {
	return r.store.URLOf(key)
}
