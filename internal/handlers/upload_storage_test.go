package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadRejectsOutsidePaths(t *testing.T) {
	dir := t.TempDir()

	tests := []string{
		"../etc/passwd",
		"uploads/../../etc/passwd",
		"images/photo.jpg",
	}
	for _, path := range tests {
		if err := safeDeleteUpload(dir, path); err == nil {
			t.Fatalf("expected refusal for path %q", path)
		}
	}
}

func TestSafeDeleteUploadRemovesFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(target, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload(dir, "uploads/photo.jpg"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUploadMissingFileIsNoError(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "uploads/missing.jpg"); err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
}
