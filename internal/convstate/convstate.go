// ABOUTME: Conversation state recomputed each turn from a history suffix and the utterance
// ABOUTME: Working memory (last 5), long-term buffer (last 10), and emotional context

package convstate

import (
	"strings"
	"time"

	"github.com/mauromedda/cognichat-go/internal/lexical"
)

// Window sizes over the caller's history.
const (
	WorkingMemorySize = 5
	LongTermSize      = 10
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation history.
type Turn struct {
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// History is the ordered, caller-owned conversation log. It never contains
// the utterance currently being answered.
type History []Turn

// Append returns h with a new turn stamped at now.
func (h History) Append(role Role, content string, now time.Time) History {
	return append(h, Turn{Content: content, Role: role, Timestamp: now})
}

// Tail returns the last n turns, or all of them when fewer exist.
func (h History) Tail(n int) History {
	if n <= 0 {
		return nil
	}
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}

// Emotion is the emotional undertone of the current utterance.
type Emotion string

const (
	Excited        Emotion = "excited"
	Frustrated     Emotion = "frustrated"
	Confused       Emotion = "confused"
	SeekingSupport Emotion = "seeking_support"
	Neutral        Emotion = "neutral"
)

// State is the derived per-turn context. It is rebuilt on every call and
// never mutated afterwards.
type State struct {
	WorkingMemory []string `json:"working_memory"`
	LongTerm      []string `json:"long_term"`
	Emotion       Emotion  `json:"emotion"`

	// RecentUserTurn is the earliest non-empty user turn inside the
	// working-memory window, empty when there is none.
	RecentUserTurn string `json:"recent_user_turn,omitempty"`
}

// HasRecentUserTurn reports whether working memory holds a prior user turn.
func (s State) HasRecentUserTurn() bool {
	return s.RecentUserTurn != ""
}

// Track derives the state for utterance given history. Only the suffix of
// history is read; neither argument is modified.
func Track(history History, utterance string) State {
	working := history.Tail(WorkingMemorySize)
	return State{
		WorkingMemory:  contents(working),
		LongTerm:       contents(history.Tail(LongTermSize)),
		Emotion:        DetectEmotion(utterance),
		RecentUserTurn: firstUserTurn(working),
	}
}

type emotionRule struct {
	emotion Emotion
	match   func(string) bool
}

// emotionRules is evaluated in order; the first match wins.
var emotionRules = []emotionRule{
	{Excited, func(s string) bool { return strings.Contains(s, "!") && strings.Contains(s, "amazing") }},
	{Frustrated, containsAny("frustrated", "annoying")},
	{Confused, containsAny("confused", "don't understand")},
	{SeekingSupport, containsAny("help", "please")},
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool { return lexical.ContainsAny(s, words...) }
}

// DetectEmotion classifies the normalized utterance; no match is Neutral.
func DetectEmotion(utterance string) Emotion {
	normalized := lexical.Normalize(utterance)
	for _, r := range emotionRules {
		if r.match(normalized) {
			return r.emotion
		}
	}
	return Neutral
}

func contents(turns History) []string {
	if len(turns) == 0 {
		return nil
	}
	out := make([]string, len(turns))
	for i, t := range turns {
		out[i] = t.Content
	}
	return out
}

func firstUserTurn(turns History) string {
	for _, t := range turns {
		if t.Role == RoleUser && t.Content != "" {
			return t.Content
		}
	}
	return ""
}
