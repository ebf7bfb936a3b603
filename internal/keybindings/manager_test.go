// ABOUTME: Tests for keybindings manager
// ABOUTME: Validates key lookup, conflict detection, merge, reload, and format

package keybindings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManager_DefaultBindings(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(Defaults())

	tests := []struct {
		key    string
		action Action
	}{
		{"enter", ActionSubmit},
		{"ctrl+c", ActionQuit},
		{"esc", ActionQuit},
		{"pgup", ActionScrollUp},
		{"pgdown", ActionScrollDown},
		{"ctrl+t", ActionToggleTrace},
		{"ctrl+l", ActionClear},
		{"CTRL+C", ActionQuit},
		{"z", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := m.ActionFor(tt.key); got != tt.action {
				t.Errorf("ActionFor(%q) = %q; want %q", tt.key, got, tt.action)
			}
		})
	}
}

func TestManager_Conflicts(t *testing.T) {
	t.Parallel()

	if c := NewFromBindings(Defaults()).Conflicts(); len(c) != 0 {
		t.Fatalf("defaults should not conflict, got %+v", c)
	}

	kb := Defaults()
	kb[ActionClear] = []string{"ctrl+c"}
	m := NewFromBindings(kb)

	want := []ConflictInfo{{Key: "ctrl+c", Actions: []Action{ActionQuit, ActionClear}}}
	if diff := cmp.Diff(want, m.Conflicts()); diff != "" {
		t.Errorf("Conflicts() mismatch (-want +got):\n%s", diff)
	}
	// The first listed action wins the key.
	if got := m.ActionFor("ctrl+c"); got != ActionQuit {
		t.Errorf("ActionFor(ctrl+c) = %q; want %q", got, ActionQuit)
	}
	if !strings.Contains(m.FormatAll(), "conflict: ctrl+c") {
		t.Errorf("FormatAll should report the conflict:\n%s", m.FormatAll())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNew_MergesGlobalAndLocal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	global := filepath.Join(dir, "global.json")
	local := filepath.Join(dir, "local.json")
	writeFile(t, global, `{"quit":["ctrl+q"],"clear":["ctrl+k"]}`)
	writeFile(t, local, `{"clear":["ctrl+x"]}`)

	m, err := New(global, local)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		key    string
		action Action
	}{
		{"ctrl+q", ActionQuit},
		{"ctrl+c", ""},
		{"ctrl+x", ActionClear},
		{"ctrl+k", ""},
		{"enter", ActionSubmit},
	}
	for _, tt := range tests {
		if got := m.ActionFor(tt.key); got != tt.action {
			t.Errorf("ActionFor(%q) = %q; want %q", tt.key, got, tt.action)
		}
	}
}

func TestNew_MissingFilesUseDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	m, err := New(filepath.Join(dir, "nope.json"), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff(Defaults()[ActionQuit], m.Keys(ActionQuit)); diff != "" {
		t.Errorf("Keys(quit) mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_InvalidFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad json", `{"quit":`, "parsing keybindings"},
		{"unknown action", `{"launch":["ctrl+r"]}`, `unknown action "launch"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			writeFile(t, path, tt.content)

			_, err := New(path, "")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("New error = %v; want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestManager_Reload(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.json")
	writeFile(t, path, `{"toggle_trace":["ctrl+r"]}`)

	m, err := New(path, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.ActionFor("ctrl+r"); got != ActionToggleTrace {
		t.Fatalf("ActionFor(ctrl+r) = %q", got)
	}

	writeFile(t, path, `{"toggle_trace":["ctrl+y"]}`)
	if err := m.Reload(path, ""); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := m.ActionFor("ctrl+r"); got != "" {
		t.Errorf("old binding should be gone, got %q", got)
	}
	if got := m.ActionFor("ctrl+y"); got != ActionToggleTrace {
		t.Errorf("ActionFor(ctrl+y) = %q", got)
	}

	writeFile(t, path, `not json`)
	if err := m.Reload(path, ""); err == nil {
		t.Fatal("Reload should fail on invalid file")
	}
	if got := m.ActionFor("ctrl+y"); got != ActionToggleTrace {
		t.Errorf("failed reload must keep bindings, got %q", got)
	}
}

func TestManager_FormatAll(t *testing.T) {
	t.Parallel()
	out := NewFromBindings(Defaults()).FormatAll()

	for _, want := range []string{"Keybindings:", "ctrl+c, esc", "quit", "toggle_trace"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatAll missing %q:\n%s", want, out)
		}
	}
}
