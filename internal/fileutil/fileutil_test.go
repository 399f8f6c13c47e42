package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "data.json")

	if err := WriteFileAtomic(target, []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	if !Exists(target) {
		t.Fatal("target file missing")
	}
	if Exists(target + ".tmp") {
		t.Error("temp file left behind")
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("content = %q, want %q", data, "[]")
	}
}

func TestReadFileIfPresentMissing(t *testing.T) {
	data, err := ReadFileIfPresent(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil data for missing file, got %q", data)
	}
}
