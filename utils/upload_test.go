package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteScreenshotRemovesLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	if err := os.MkdirAll(filepath.Join(dir, "screenshots"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(dir, "screenshots", "TRD-000001-1.png")
	if err := os.WriteFile(target, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := DeleteScreenshot("/uploads/screenshots/TRD-000001-1.png"); err != nil {
		t.Fatalf("DeleteScreenshot: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
}

func TestDeleteScreenshotMissingLocalFile(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	if err := DeleteScreenshot("/uploads/screenshots/never-saved.png"); err == nil {
		t.Fatal("expected an error removing a file that does not exist")
	}
}
