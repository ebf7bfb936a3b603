// ABOUTME: Tests for the fsnotify settings watcher
// ABOUTME: Validates change detection, path filtering, debounce, and clean shutdown

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_DetectsChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	w.SetDebounce(20 * time.Millisecond)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`{"default_mode":"study"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return called.Load() > 0 }) {
		t.Error("expected onChange after file modification")
	}
}

func TestWatcher_DetectsCreate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	w.SetDebounce(20 * time.Millisecond)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return called.Load() > 0 }) {
		t.Error("expected onChange after file creation")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	w.SetDebounce(20 * time.Millisecond)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := called.Load(); n != 0 {
		t.Errorf("onChange called %d times for an unwatched file", n)
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	var called atomic.Int32
	w := NewWatcher([]string{path}, func() { called.Add(1) })
	w.SetDebounce(300 * time.Millisecond)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	for i := range 5 {
		if err := os.WriteFile(path, []byte{'{', byte('0' + i), '}'}, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	if !waitFor(t, func() bool { return called.Load() > 0 }) {
		t.Fatal("expected onChange after burst")
	}
	time.Sleep(400 * time.Millisecond)
	if n := called.Load(); n != 1 {
		t.Errorf("onChange called %d times; want 1 for a single burst", n)
	}
}

func TestWatcher_NoWatchableDirs(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope", "settings.json")
	w := NewWatcher([]string{missing}, func() {})
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("Start() should fail when no directory exists")
	}
	w.Stop()
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	w := NewWatcher([]string{filepath.Join(t.TempDir(), "settings.json")}, func() {})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	t.Parallel()

	w := NewWatcher([]string{"settings.json"}, func() {})
	w.Stop()
}

func TestWatcher_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher([]string{filepath.Join(t.TempDir(), "settings.json")}, func() {})
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()
	w.Stop()
}
