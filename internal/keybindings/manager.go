// ABOUTME: Keybindings manager with O(1) key-to-action lookup for the interactive chat
// ABOUTME: Merges global and project JSON files over the defaults, detects conflicts, supports reload

package keybindings

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"
	"strings"
)

// Action is a chat operation a key can trigger.
type Action string

const (
	ActionSubmit      Action = "submit"
	ActionQuit        Action = "quit"
	ActionScrollUp    Action = "scroll_up"
	ActionScrollDown  Action = "scroll_down"
	ActionToggleTrace Action = "toggle_trace"
	ActionClear       Action = "clear"
)

// actions lists every action in display order.
var actions = []Action{
	ActionSubmit, ActionQuit, ActionScrollUp, ActionScrollDown, ActionToggleTrace, ActionClear,
}

// Bindings maps each action to its keys, written the way Bubble Tea
// prints them ("ctrl+c", "enter", "pgup").
type Bindings map[Action][]string

// Defaults returns the built-in bindings.
func Defaults() Bindings {
	return Bindings{
		ActionSubmit:      {"enter"},
		ActionQuit:        {"ctrl+c", "esc"},
		ActionScrollUp:    {"pgup"},
		ActionScrollDown:  {"pgdown"},
		ActionToggleTrace: {"ctrl+t"},
		ActionClear:       {"ctrl+l"},
	}
}

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []Action
}

// Manager provides O(1) key-to-action lookup from merged bindings.
type Manager struct {
	bindings Bindings
	lookup   map[string]Action
}

// New loads global then project bindings over the defaults. Missing files
// are ignored; an unreadable or invalid file is an error.
func New(globalPath, localPath string) (*Manager, error) {
	kb, err := load(globalPath, localPath)
	if err != nil {
		return nil, err
	}
	return NewFromBindings(kb), nil
}

// NewFromBindings creates a Manager from an existing set of bindings.
func NewFromBindings(kb Bindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionFor returns the action bound to key, or "" if unbound.
func (m *Manager) ActionFor(key string) Action {
	return m.lookup[strings.ToLower(key)]
}

// Keys returns the keys bound to action.
func (m *Manager) Keys(action Action) []string {
	return slices.Clone(m.bindings[action])
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	keyActions := make(map[string][]Action)
	for _, action := range actions {
		for _, k := range m.bindings[action] {
			keyActions[k] = append(keyActions[k], action)
		}
	}

	var conflicts []ConflictInfo
	for k, acts := range keyActions {
		if len(acts) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: acts})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Key < conflicts[j].Key })
	return conflicts
}

// Reload re-reads the binding files. On error the current bindings stay.
func (m *Manager) Reload(globalPath, localPath string) error {
	kb, err := load(globalPath, localPath)
	if err != nil {
		return err
	}
	m.bindings = kb
	m.buildLookup()
	return nil
}

// FormatAll returns a table of all bindings for /hotkeys display.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("Keybindings:\n")
	for _, action := range actions {
		keys := m.bindings[action]
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-16s %s\n", strings.Join(keys, ", "), action)
	}
	for _, c := range m.Conflicts() {
		fmt.Fprintf(&b, "  conflict: %s is bound to %v\n", c.Key, c.Actions)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildLookup resolves conflicts in favor of the action listed first.
func (m *Manager) buildLookup() {
	m.lookup = make(map[string]Action, len(m.bindings)*2)
	for _, action := range actions {
		for _, k := range m.bindings[action] {
			k = strings.ToLower(k)
			if _, taken := m.lookup[k]; !taken {
				m.lookup[k] = action
			}
		}
	}
}

func load(globalPath, localPath string) (Bindings, error) {
	kb := Defaults()
	for _, path := range []string{globalPath, localPath} {
		if path == "" {
			continue
		}
		overrides, err := loadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		// Project bindings take precedence.
		maps.Copy(kb, overrides)
	}
	return kb, nil
}

func loadFile(path string) (Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kb Bindings
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parsing keybindings %s: %w", path, err)
	}
	for action := range kb {
		if !slices.Contains(actions, action) {
			return nil, fmt.Errorf("keybindings %s: unknown action %q", path, action)
		}
	}
	return kb, nil
}
