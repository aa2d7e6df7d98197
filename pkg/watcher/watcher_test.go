package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/stillmotion/pkg/adapters/logger"
)

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func TestWatcher_ReportsSettledFile(t *testing.T) {
	dir := t.TempDir()
	settled := make(chan string, 8)

	w := New(dir, func(path string) { settled <- path }, logger.NewNoop(),
		WithSettleDelay(50*time.Millisecond),
		WithFilter(isImage),
	)
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-settled:
		if got != path {
			t.Errorf("settled path = %s, want %s", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the file to settle")
	}
}

func TestWatcher_FiltersNames(t *testing.T) {
	dir := t.TempDir()
	settled := make(chan string, 8)

	w := New(dir, func(path string) { settled <- path }, logger.NewNoop(),
		WithSettleDelay(50*time.Millisecond),
		WithFilter(isImage),
	)
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-settled:
		t.Errorf("unexpected settle for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CoalescesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	settled := make(chan string, 8)

	w := New(dir, func(path string) { settled <- path }, logger.NewNoop(),
		WithSettleDelay(100*time.Millisecond),
	)
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	// Simulate a slow copy: several writes inside the settle window.
	path := filepath.Join(dir, "slow.png")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(strings.Repeat("x", (i+1)*16)), 0o644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		time.Sleep(30 * time.Millisecond)
	}

	select {
	case <-settled:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the file to settle")
	}

	select {
	case got := <-settled:
		t.Errorf("file reported twice: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_DropsRemovedFile(t *testing.T) {
	dir := t.TempDir()
	settled := make(chan string, 8)

	w := New(dir, func(path string) { settled <- path }, logger.NewNoop(),
		WithSettleDelay(200*time.Millisecond),
	)
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "gone.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	select {
	case got := <-settled:
		t.Errorf("removed file reported: %s", got)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	w := New(t.TempDir(), func(string) {}, logger.NewNoop())
	if err := w.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), func(string) {}, logger.NewNoop())
	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("expected error for a missing directory")
	}
}
