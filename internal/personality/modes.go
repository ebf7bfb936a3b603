// ABOUTME: Built-in assistant modes: identifiers, titles, descriptions, and example prompts
// ABOUTME: Unknown mode values resolve to General wherever a Mode is consumed

package personality

import "strings"

// Mode selects which response templates the synthesizer prefers.
type Mode string

const (
	General Mode = "general"
	Study   Mode = "study"
	Writing Mode = "writing"
	Support Mode = "support"
	Resume  Mode = "resume"
	Grammar Mode = "grammar"
	Travel  Mode = "travel"
	Game    Mode = "game"
	Mental  Mode = "mental"
)

// Info describes a mode for display.
type Info struct {
	ID          Mode     `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Examples    []string `json:"examples" yaml:"examples"`
}

func builtinModes() []Info {
	return []Info{
		{General, "General Assistant", "Multi-purpose AI helper for various tasks",
			[]string{"Answer questions", "Explain concepts", "Help with decisions"}},
		{Study, "Study Helper", "Educational support and learning assistance",
			[]string{"Explain topics", "Quiz preparation", "Homework help"}},
		{Writing, "Writing Assistant", "Help with writing, editing, and grammar",
			[]string{"Improve text", "Grammar check", "Creative writing"}},
		{Support, "Customer Support", "Automated customer service helper",
			[]string{"Answer FAQs", "Troubleshooting", "Product info"}},
		{Resume, "Resume Builder", "AI-powered resume creation and optimization",
			[]string{"Resume writing", "Format suggestions", "Skills optimization"}},
		{Grammar, "Grammar Corrector", "Advanced grammar and style checking",
			[]string{"Fix grammar", "Style improvements", "Clarity check"}},
		{Travel, "Travel Planner", "Plan trips and get travel recommendations",
			[]string{"Trip planning", "Destination info", "Travel tips"}},
		{Game, "Game Character Generator", "Create dialogues and characters for games",
			[]string{"Character creation", "Dialogue writing", "Story ideas"}},
		{Mental, "Mental Health Check-in", "Non-medical wellness and mood support",
			[]string{"Mood tracking", "Wellness tips", "Mindfulness"}},
	}
}

var knownModes = func() map[Mode]bool {
	m := make(map[Mode]bool)
	for _, info := range builtinModes() {
		m[info.ID] = true
	}
	return m
}()

// Known reports whether m is one of the built-in modes.
func (m Mode) Known() bool {
	return knownModes[m]
}

// Resolve returns m when it is known and General otherwise.
func (m Mode) Resolve() Mode {
	if m.Known() {
		return m
	}
	return General
}

// ParseMode resolves a user-supplied mode name case-insensitively. Unknown
// names yield General and false.
func ParseMode(name string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	if m.Known() {
		return m, true
	}
	return General, false
}
