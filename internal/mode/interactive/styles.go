// ABOUTME: Lipgloss palette for the interactive chat: header, transcript entries, input, and footer
// ABOUTME: Colors are adaptive so the same palette works on light and dark terminals

package interactive

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the chat view renders with.
type Styles struct {
	Header    lipgloss.Style
	Mode      lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Meta      lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Trace     lipgloss.Style
	Prompt    lipgloss.Style
	Spinner   lipgloss.Style
	Footer    lipgloss.Style
	Border    lipgloss.Style
}

var (
	accent  = lipgloss.AdaptiveColor{Light: "#5a4fcf", Dark: "#b4befe"}
	muted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#7f849c"}
	success = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	warning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	danger  = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
)

// DefaultStyles returns the chat palette.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Mode:      lipgloss.NewStyle().Foreground(muted),
		User:      lipgloss.NewStyle().Bold(true).Foreground(success),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Meta:      lipgloss.NewStyle().Faint(true).Italic(true),
		Notice:    lipgloss.NewStyle().Foreground(warning),
		Error:     lipgloss.NewStyle().Foreground(danger),
		Trace:     lipgloss.NewStyle().Foreground(muted),
		Prompt:    lipgloss.NewStyle().Foreground(accent),
		Spinner:   lipgloss.NewStyle().Foreground(accent),
		Footer:    lipgloss.NewStyle().Foreground(muted),
		Border:    lipgloss.NewStyle().Foreground(muted),
	}
}
