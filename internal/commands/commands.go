// ABOUTME: Slash command registry and dispatch for interactive mode
// ABOUTME: Chat commands for history, modes, output toggles, export, reload, status, and key bindings

package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mauromedda/cognichat-go/internal/personality"
)

// ErrUnavailable is returned when a command's host callback is not wired.
var ErrUnavailable = errors.New("not available")

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Execute     func(ctx *CommandContext, args string) (string, error)
}

// CommandContext provides access to app state for commands.
type CommandContext struct {
	Mode       personality.Mode
	SessionID  string
	Persistent bool
	Turns      int
	Version    string

	// SetMode switches the active mode and returns the resolved info.
	SetMode func(name string) (personality.Info, error)
	// ListModes returns the registry in declaration order.
	ListModes func() []personality.Info
	// ClearHistory drops the in-memory conversation and returns the
	// number of turns removed.
	ClearHistory func() int

	// Toggles return the new state.
	ToggleTrace func() bool
	ToggleDelay func() bool

	// All nilable; commands return ErrUnavailable when nil.
	ExitFn             func()
	ExportConversation func(path string) error
	ReloadFn           func() (string, error)
	Hotkeys            func() string
}

// Registry holds all registered slash commands.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates a registry with all core commands registered.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.registerCoreCommands()
	return r
}

// Get returns a command by name.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
// Aliases are not listed.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for name, cmd := range r.commands {
		if name != cmd.Name {
			continue
		}
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Dispatch parses a "/command args" input, looks up the command, and executes it.
// Returns the command output or an error if the command is not found.
func (r *Registry) Dispatch(ctx *CommandContext, input string) (string, error) {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return "", fmt.Errorf("not a command: %q", input)
	}

	raw := input[1:]
	parts := strings.SplitN(raw, " ", 2)
	name := strings.ToLower(parts[0])
	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	cmd, ok := r.commands[name]
	if !ok {
		return "", fmt.Errorf("unknown command: /%s (try /help)", name)
	}
	return cmd.Execute(ctx, args)
}

// IsCommand returns true if input starts with '/'.
func IsCommand(input string) bool {
	return len(input) > 0 && input[0] == '/'
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// registerCoreCommands adds all built-in slash commands to the registry.
func (r *Registry) registerCoreCommands() {
	core := []*Command{
		{
			Name:        "clear",
			Description: "Clear conversation history",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ClearHistory == nil {
					return "", fmt.Errorf("clear: %w", ErrUnavailable)
				}
				n := ctx.ClearHistory()
				return fmt.Sprintf("Conversation cleared (%d turns).", n), nil
			},
		},
		{
			Name:        "delay",
			Description: "Toggle the thinking delay",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ToggleDelay == nil {
					return "", fmt.Errorf("delay: %w", ErrUnavailable)
				}
				return "Thinking delay: " + onOff(ctx.ToggleDelay()) + ".", nil
			},
		},
		{
			Name:        "exit",
			Description: "Exit the application",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ExitFn == nil {
					return "", fmt.Errorf("exit: %w", ErrUnavailable)
				}
				ctx.ExitFn()
				return "Goodbye.", nil
			},
		},
		{
			Name:        "export",
			Description: "Export the session transcript as HTML",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if ctx.ExportConversation == nil || !ctx.Persistent {
					return "", fmt.Errorf("export: %w (sessions are not saved)", ErrUnavailable)
				}
				if args == "" {
					return "Usage: /export <path>", nil
				}
				if err := ctx.ExportConversation(args); err != nil {
					return "", fmt.Errorf("export conversation: %w", err)
				}
				return fmt.Sprintf("Exported to %s.", args), nil
			},
		},
		{
			Name:        "help",
			Description: "Show available commands",
			Execute: func(_ *CommandContext, _ string) (string, error) {
				var b strings.Builder
				b.WriteString("Available commands:\n")
				for _, cmd := range r.List() {
					fmt.Fprintf(&b, "  /%-8s %s\n", cmd.Name, cmd.Description)
				}
				return strings.TrimRight(b.String(), "\n"), nil
			},
		},
		{
			Name:        "hotkeys",
			Description: "Show key bindings",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Hotkeys == nil {
					return "", fmt.Errorf("hotkeys: %w", ErrUnavailable)
				}
				return ctx.Hotkeys(), nil
			},
		},
		{
			Name:        "mode",
			Description: "Show or change the current mode",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if args == "" {
					return fmt.Sprintf("Current mode: %s", ctx.Mode), nil
				}
				if ctx.SetMode == nil {
					return "", fmt.Errorf("mode: %w", ErrUnavailable)
				}
				info, err := ctx.SetMode(args)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Switched to %s (%s).", info.Title, info.ID), nil
			},
		},
		{
			Name:        "modes",
			Description: "List available modes",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ListModes == nil {
					return "", fmt.Errorf("modes: %w", ErrUnavailable)
				}
				var b strings.Builder
				b.WriteString("Modes:\n")
				for _, info := range ctx.ListModes() {
					marker := " "
					if info.ID == ctx.Mode {
						marker = "*"
					}
					fmt.Fprintf(&b, "%s %-10s %s\n", marker, info.ID, info.Description)
				}
				return strings.TrimRight(b.String(), "\n"), nil
			},
		},
		{
			Name:        "reload",
			Description: "Reload settings and the mode catalog",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ReloadFn == nil {
					return "", fmt.Errorf("reload: %w", ErrUnavailable)
				}
				return ctx.ReloadFn()
			},
		},
		{
			Name:        "status",
			Description: "Show session status",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				saved := "no"
				if ctx.Persistent {
					saved = "yes"
				}
				return fmt.Sprintf(
					"Session: %s\nMode:    %s\nTurns:   %d\nSaved:   %s\nVersion: %s",
					ctx.SessionID, ctx.Mode, ctx.Turns, saved, ctx.Version,
				), nil
			},
		},
		{
			Name:        "trace",
			Description: "Toggle the reasoning trace under each answer",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ToggleTrace == nil {
					return "", fmt.Errorf("trace: %w", ErrUnavailable)
				}
				return "Trace: " + onOff(ctx.ToggleTrace()) + ".", nil
			},
		},
	}
	r.commands = make(map[string]*Command, len(core)+1)
	for _, cmd := range core {
		r.commands[cmd.Name] = cmd
	}
	r.commands["quit"] = r.commands["exit"]
}
