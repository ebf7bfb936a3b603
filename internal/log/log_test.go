// ABOUTME: Tests for the logging facade
// ABOUTME: Validates level filtering, console format, and rotating JSON file output

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// These tests mutate package state and therefore do not run in parallel.

func withConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := GetLevel()
	if err := Setup(Options{Console: &buf}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	t.Cleanup(func() {
		SetLevel(saved)
		_ = Setup(Options{})
	})
	return &buf
}

func TestSetLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}

	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestConsoleFormat(t *testing.T) {
	buf := withConsole(t)
	SetLevel(LevelDebug)

	Debug("turn %d", 1)
	Info("mode %s", "study")
	Warn("slow")
	Error("failed: %v", "boom")

	want := "[DEBUG] turn 1\n[INFO] mode study\n[WARN] slow\n[ERROR] failed: boom\n"
	if got := buf.String(); got != want {
		t.Errorf("console output:\n got %q\nwant %q", got, want)
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := withConsole(t)
	SetLevel(LevelInfo)

	Debug("hidden")
	Info("shown")

	if got := buf.String(); got != "[INFO] shown\n" {
		t.Errorf("output = %q; want only the info line", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"WARN", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.name, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFileOutput(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "cognichat.log")
	saved := GetLevel()
	t.Cleanup(func() {
		SetLevel(saved)
		_ = Setup(Options{})
	})

	if err := Setup(Options{Console: &console, File: path}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	SetLevel(LevelInfo)
	With("mode", "support").Infof("answered %s", "turn")
	if err := Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	if entry["msg"] != "answered turn" || entry["mode"] != "support" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Errorf("entry missing timestamp: %v", entry)
	}
	if !strings.Contains(console.String(), "answered turn") {
		t.Errorf("console did not receive the line: %q", console.String())
	}
}

func TestSetupUnwritableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Setup(Options{File: filepath.Join(blocker, "nested.log")}); err == nil {
		t.Error("Setup() with a path under a regular file should fail")
	}
}
