// ABOUTME: YAML mode catalog that overrides titles, descriptions, and examples at startup
// ABOUTME: Only known mode ids may appear; empty fields keep the built-in values

package personality

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the on-disk overlay for the built-in modes.
type Catalog struct {
	Modes []Info `yaml:"modes"`
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Validate rejects unknown and duplicate mode ids.
func (c *Catalog) Validate() error {
	seen := make(map[Mode]bool, len(c.Modes))
	for i, info := range c.Modes {
		if info.ID == "" {
			return fmt.Errorf("mode %d: id is required", i)
		}
		if !info.ID.Known() {
			return fmt.Errorf("mode %d: %w %q", i, ErrUnknownMode, info.ID)
		}
		if seen[info.ID] {
			return fmt.Errorf("mode %d: duplicate id %q", i, info.ID)
		}
		seen[info.ID] = true
	}
	return nil
}

// overlay returns base with catalog overrides applied, keeping base order.
func (c *Catalog) overlay(base []Info) []Info {
	byID := make(map[Mode]Info, len(c.Modes))
	for _, info := range c.Modes {
		byID[info.ID] = info
	}

	out := make([]Info, len(base))
	for i, info := range base {
		out[i] = info
		o, ok := byID[info.ID]
		if !ok {
			continue
		}
		if o.Title != "" {
			out[i].Title = o.Title
		}
		if o.Description != "" {
			out[i].Description = o.Description
		}
		if len(o.Examples) > 0 {
			out[i].Examples = append([]string(nil), o.Examples...)
		}
	}
	return out
}
