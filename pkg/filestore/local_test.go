package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	store, err := NewLocal(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return store
}

func TestSaveAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ref, err := store.SaveFile(ctx, "report.pdf", "application/pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if ref.Size != int64(len("content")) {
		t.Errorf("size = %d, want %d", ref.Size, len("content"))
	}
	if !strings.HasSuffix(ref.Key, "_report.pdf") {
		t.Errorf("key %q does not carry the sanitized name", ref.Key)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), ref.Key))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("stored content = %q", data)
	}

	if err := store.DeleteFile(ctx, ref.Key); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), ref.Key)); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}
}

func TestDeleteFile_Absent(t *testing.T) {
	store := newTestStore(t)
	err := store.DeleteFile(context.Background(), "no-such-key")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveFile_DistinctKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a, err := store.SaveFile(ctx, "notes.txt", "text/plain", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	b, err := store.SaveFile(ctx, "notes.txt", "text/plain", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if a.Key == b.Key {
		t.Error("two uploads of the same name must get distinct keys")
	}
}

func TestURLOf(t *testing.T) {
	store := newTestStore(t)
	if got := store.URLOf("abc_img.png"); got != "http://localhost:8080/files/abc_img.png" {
		t.Errorf("URLOf = %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	if got := sanitizeName("../../etc/passwd"); strings.Contains(got, "/") {
		t.Errorf("sanitized name still contains separator: %q", got)
	}
	if got := sanitizeName("rapport final (v2).pdf"); got != "rapport-final--v2-.pdf" {
		t.Errorf("sanitizeName = %q", got)
	}
}
