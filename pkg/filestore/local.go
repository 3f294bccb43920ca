package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores files on disk under a single directory. Keys are
// "<uuid>_<sanitized name>" so that concurrent uploads of the same file name
// never collide.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the storage directory, for static file serving.
func (l *Local) Dir() string { return l.dir }

func (l *Local) SaveFile(ctx context.Context, name, contentType string, r io.Reader) (FileRef, error) {
	if err := ctx.Err(); err != nil {
		return FileRef{}, err
	}

	key := uuid.NewString() + "_" + sanitizeName(name)
	path := filepath.Join(l.dir, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return FileRef{}, fmt.Errorf("create file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return FileRef{}, fmt.Errorf("write file: %w", err)
	}

	return FileRef{Key: key, Name: name, ContentType: contentType, Size: size}, nil
}

func (l *Local) DeleteFile(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Keys never contain path separators; reject anything that resolves
	// outside the storage dir.
	path := filepath.Join(l.dir, filepath.Base(key))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (l *Local) URLOf(key string) string {
	return l.baseURL + "/files/" + key
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
