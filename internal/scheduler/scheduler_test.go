package scheduler

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRemoveOldUploads(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.pdf")
	fresh := filepath.Join(dir, "fresh.pdf")
	for _, path := range []string{stale, fresh} {
		if err := os.WriteFile(path, []byte("%PDF-"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-2 * maxAge)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	s := New(dir, nil)
	if n := s.removeOldUploads(); n != 1 {
		t.Errorf("removed %d files, want 1", n)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale upload still present")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh upload was removed")
	}
}

func TestRemoveOldUploadsMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), nil)
	if n := s.removeOldUploads(); n != 0 {
		t.Errorf("removed %d files from a missing directory", n)
	}
}
