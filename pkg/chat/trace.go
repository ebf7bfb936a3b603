// ABOUTME: Per-turn trace of intermediate classifications and the turn event type
// ABOUTME: Reasoning lines and synthesis sentence summarize how a response was chosen

package chat

import (
	"fmt"
	"strings"

	"github.com/mauromedda/cognichat-go/internal/complexity"
	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/domain"
	"github.com/mauromedda/cognichat-go/internal/intent"
	"github.com/mauromedda/cognichat-go/internal/lexical"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/sentiment"
	"github.com/mauromedda/cognichat-go/internal/strategy"
)

// Classification is the fresh, immutable result of the input classifiers.
type Classification struct {
	Domains    []domain.Domain       `json:"domains"`
	Intent     intent.Intent         `json:"intent"`
	Sentiment  sentiment.Sentiment   `json:"sentiment"`
	Complexity complexity.Complexity `json:"complexity"`
	Expertise  complexity.Expertise  `json:"expertise"`
}

// Trace records every intermediate decision behind a response.
type Trace struct {
	Mode           personality.Mode     `json:"mode"`
	Classification Classification       `json:"classification"`
	Signal         intent.Signal        `json:"signal"`
	Topics         []domain.Topic       `json:"topics,omitempty"`
	Communicative  intent.Communicative `json:"communicative_intent"`
	Score          sentiment.Score      `json:"sentiment_score"`
	State          convstate.State      `json:"state"`
	Strategy       strategy.Strategy    `json:"strategy"`
	StrategyRule   string               `json:"strategy_rule"`
	Rhetorical     strategy.Rhetorical  `json:"rhetorical_approach"`
	TemplateKeys   []string             `json:"template_keys"`
	Reasoning      []string             `json:"reasoning"`
	Synthesis      string               `json:"synthesis"`

	// Confidence is diagnostic only and set solely when the engine was
	// built WithDiagnosticConfidence.
	Confidence *float64 `json:"confidence,omitempty"`
}

// TemplateKey returns the template that decided the response.
func (t Trace) TemplateKey() string {
	if len(t.TemplateKeys) == 0 {
		return ""
	}
	return t.TemplateKeys[len(t.TemplateKeys)-1]
}

// Result is a response with its trace.
type Result struct {
	Text  string `json:"text"`
	Trace Trace  `json:"trace"`
}

// TurnEvent is published after each response.
type TurnEvent struct {
	Utterance string
	Result    Result
}

func domainNames(domains []domain.Domain) string {
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

func reasoningLines(utterance string, c Classification, comm intent.Communicative, e convstate.Emotion) []string {
	return []string{
		fmt.Sprintf("Analyzing user input: %q", lexical.Excerpt(utterance, 100)),
		"Detected knowledge domains: " + domainNames(c.Domains),
		"Primary communicative intent: " + string(comm),
		"Emotional context: " + string(e),
	}
}

func synthesisSentence(c Classification, comm intent.Communicative) string {
	return fmt.Sprintf("Based on multi-domain analysis (%s), the user's %s requires a comprehensive response "+
		"that addresses both explicit and implicit needs while maintaining contextual awareness and emotional intelligence.",
		domainNames(c.Domains), comm)
}
