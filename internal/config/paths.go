// ABOUTME: Standard filesystem paths for cognichat configuration and data
// ABOUTME: Resolves ~/.cognichat/ for global and .cognichat/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".cognichat"
	projectDirName = ".cognichat"
)

// GlobalDir returns the user-global config directory (~/.cognichat/).
// COGNICHAT_HOME overrides it.
func GlobalDir() string {
	if dir := os.Getenv("COGNICHAT_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.cognichat/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// SessionsDir returns the sessions storage directory.
func SessionsDir() string {
	return filepath.Join(GlobalDir(), "sessions")
}

// UserSettingsFile returns the path to the user settings file.
func UserSettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.json")
}

// ProjectSettingsFile returns the path to the project settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "settings.json")
}

// UserKeybindingsFile returns the path to the user keybindings file.
func UserKeybindingsFile() string {
	return filepath.Join(GlobalDir(), "keybindings.json")
}

// ProjectKeybindingsFile returns the path to the project keybindings file.
func ProjectKeybindingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "keybindings.json")
}

// EnsureDir creates a directory and all parents if they don't exist.
// Uses 0o700 because sessions hold conversation text.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
