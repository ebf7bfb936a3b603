// ABOUTME: Mode registry with catalog overlay, case-insensitive lookup, and fuzzy suggestions
// ABOUTME: Safe for concurrent use; reloading a catalog swaps the mode list atomically

package personality

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// ErrUnknownMode is returned when a mode id is not one of the built-in modes.
var ErrUnknownMode = errors.New("unknown mode")

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// Registry lists the available modes in declaration order.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	modes []Info
}

// NewRegistry creates a registry holding the built-in modes.
func NewRegistry() *Registry {
	return &Registry{modes: builtinModes()}
}

// NewRegistryFromFile creates a registry and applies the catalog at path.
// An empty path yields the built-in modes.
func NewRegistryFromFile(path string) (*Registry, error) {
	r := NewRegistry()
	if path == "" {
		return r, nil
	}
	c, err := LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	r.Apply(c)
	return r, nil
}

// Apply replaces the display data with c overlaid on the built-in modes.
// A nil catalog restores the built-ins.
func (r *Registry) Apply(c *Catalog) {
	modes := builtinModes()
	if c != nil {
		modes = c.overlay(modes)
	}
	r.mu.Lock()
	r.modes = modes
	r.mu.Unlock()
}

// Modes returns a copy of the mode list in declaration order.
func (r *Registry) Modes() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, len(r.modes))
	for i, info := range r.modes {
		info.Examples = append([]string(nil), info.Examples...)
		out[i] = info
	}
	return out
}

// Lookup resolves name case-insensitively. Unknown names return an error
// wrapping ErrUnknownMode that names the closest modes, if any.
func (r *Registry) Lookup(name string) (Info, error) {
	m, ok := ParseMode(name)
	if ok {
		for _, info := range r.Modes() {
			if info.ID == m {
				return info, nil
			}
		}
	}

	suggestions := r.Suggest(name)
	if len(suggestions) == 0 {
		return Info{}, fmt.Errorf("%w %q", ErrUnknownMode, name)
	}
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = string(s)
	}
	return Info{}, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownMode, name, strings.Join(names, ", "))
}

// Suggest returns up to three mode ids whose id or title fuzzily matches
// name, best match first.
func (r *Registry) Suggest(name string) []Mode {
	pattern := strings.ToLower(strings.TrimSpace(name))
	if pattern == "" {
		return nil
	}

	modes := r.Modes()
	targets := make([]string, len(modes))
	for i, info := range modes {
		targets[i] = string(info.ID) + " " + strings.ToLower(info.Title)
	}

	var out []Mode
	seen := make(map[Mode]bool)
	for _, match := range fuzzy.Find(pattern, targets) {
		id := modes[match.Index].ID
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
