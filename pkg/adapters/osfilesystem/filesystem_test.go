package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "note.txt")
	if err := fs.WriteFile(path, []byte("hello world")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	// Debug artifacts land in nested directories that do not exist yet.
	path := filepath.Join(dir, "frames", "sunset", "frame-0000.png")
	if err := fs.WriteFile(path, []byte("png")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected nested file to exist")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "out", "clips", "2024")
	if err := fs.MkdirAll(path); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	exists, err = fs.Exists(filepath.Join(dir, "absent.png"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected missing file to not exist")
	}
}

func TestFileSystem_Remove(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "partial.avi")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	exists, _ := fs.Exists(path)
	if exists {
		t.Error("expected file to be removed")
	}
}

func TestFileSystem_ListDir(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	// Create files out of order plus a subdirectory.
	for _, name := range []string{"c.png", "a.jpg", "b.jpeg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to seed subdirectory: %v", err)
	}

	names, err := fs.ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}

	want := []string{"a.jpg", "b.jpeg", "c.png", "sub"}
	if len(names) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("entry %d: expected %q, got %q", i, name, names[i])
		}
	}
}

func TestFileSystem_ListDirMissing(t *testing.T) {
	fs := New()

	if _, err := fs.ListDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFileSystem_FileSize(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "clip.avi")
	if err := os.WriteFile(path, make([]byte, 1234), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	size, err := fs.FileSize(path)
	if err != nil {
		t.Fatalf("FileSize failed: %v", err)
	}
	if size != 1234 {
		t.Errorf("expected size 1234, got %d", size)
	}

	if _, err := fs.FileSize(filepath.Join(dir, "absent.avi")); err == nil {
		t.Error("expected error for missing file")
	}
}
