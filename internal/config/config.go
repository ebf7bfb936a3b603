// ABOUTME: Settings loading with global + project config merge and validation
// ABOUTME: JSON settings; project values override global ones, CLI flags override both

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
)

// Output formats accepted by print mode.
const (
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
)

// Settings holds the merged configuration.
type Settings struct {
	DefaultMode   string            `json:"default_mode,omitempty"`
	ThinkingDelay *bool             `json:"thinking_delay,omitempty"`
	LogFile       string            `json:"log_file,omitempty"`
	LogLevel      string            `json:"log_level,omitempty"`
	Catalog       string            `json:"catalog,omitempty"`
	SaveSessions  *bool             `json:"save_sessions,omitempty"`
	OutputFormat  string            `json:"output_format,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
}

// ThinkingDelayEnabled reports whether the interactive host pauses before
// answering. Defaults to true.
func (s *Settings) ThinkingDelayEnabled() bool {
	return s.ThinkingDelay == nil || *s.ThinkingDelay
}

// SessionsEnabled reports whether transcripts are written. Defaults to true.
func (s *Settings) SessionsEnabled() bool {
	return s.SaveSessions == nil || *s.SaveSessions
}

// EffectiveOutputFormat returns OutputFormat or OutputText when unset.
func (s *Settings) EffectiveOutputFormat() string {
	if s.OutputFormat == "" {
		return OutputText
	}
	return s.OutputFormat
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	switch s.OutputFormat {
	case "", OutputText, OutputMarkdown, OutputJSON:
	default:
		return fmt.Errorf("invalid output_format %q: must be text, markdown, or json", s.OutputFormat)
	}
	switch s.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn, or error", s.LogLevel)
	}
	return nil
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	return LoadFrom(UserSettingsFile(), ProjectSettingsFile(projectRoot))
}

// LoadFrom merges the two files, expands ${VAR} references, and validates
// the result. Missing files are treated as empty.
func LoadFrom(globalPath, projectPath string) (*Settings, error) {
	global, err := loadFile(globalPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(projectPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global
	result.Env = maps.Clone(global.Env)

	if project.DefaultMode != "" {
		result.DefaultMode = project.DefaultMode
	}
	if project.ThinkingDelay != nil {
		result.ThinkingDelay = project.ThinkingDelay
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.Catalog != "" {
		result.Catalog = project.Catalog
	}
	if project.SaveSessions != nil {
		result.SaveSessions = project.SaveSessions
	}
	if project.OutputFormat != "" {
		result.OutputFormat = project.OutputFormat
	}

	if len(project.Env) > 0 {
		if result.Env == nil {
			result.Env = make(map[string]string)
		}
		maps.Copy(result.Env, project.Env)
	}

	return &result
}

// Overrides are command-line values applied after file settings.
type Overrides struct {
	Mode            string
	NoThinkingDelay bool
	NoSession       bool
	LogFile         string
	LogLevel        string
	Catalog         string
	OutputFormat    string
}

// Apply returns s with the non-zero overrides applied and revalidates.
func (s *Settings) Apply(o Overrides) (*Settings, error) {
	result := *s
	if o.Mode != "" {
		result.DefaultMode = o.Mode
	}
	if o.NoThinkingDelay {
		result.ThinkingDelay = boolPtr(false)
	}
	if o.NoSession {
		result.SaveSessions = boolPtr(false)
	}
	if o.LogFile != "" {
		result.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		result.LogLevel = o.LogLevel
	}
	if o.Catalog != "" {
		result.Catalog = o.Catalog
	}
	if o.OutputFormat != "" {
		result.OutputFormat = o.OutputFormat
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

func boolPtr(b bool) *bool { return &b }
