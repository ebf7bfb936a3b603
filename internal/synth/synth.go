// ABOUTME: Template synthesizer turning classified input into response text
// ABOUTME: Selects template keys by rule table, then renders them with utterance variables

package synth

import (
	"strings"

	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/domain"
	"github.com/mauromedda/cognichat-go/internal/grammar"
	"github.com/mauromedda/cognichat-go/internal/intent"
	"github.com/mauromedda/cognichat-go/internal/lexical"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/sentiment"
	"github.com/mauromedda/cognichat-go/internal/strategy"
)

// ExcerptLength is the character budget of the {{.excerpt}} variable.
const ExcerptLength = 100

// Input carries every signal template selection may consult.
type Input struct {
	Mode              personality.Mode
	Utterance         string
	Intent            intent.Intent
	Sentiment         sentiment.Sentiment
	Topics            []domain.Topic
	Strategy          strategy.Strategy
	Emotion           convstate.Emotion
	HasRecentUserTurn bool
}

// Response is the rendered text and the template keys it was built from.
type Response struct {
	Keys []string
	Text string
}

// Key returns the template key that decided the response: the body of a
// long-form answer, or the single template otherwise.
func (r Response) Key() string {
	if len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[len(r.Keys)-1]
}

// Synthesizer renders responses from a template bank.
type Synthesizer struct {
	bank *Bank
}

// New returns a synthesizer over bank; nil selects the compiled-in bank.
func New(bank *Bank) *Synthesizer {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Synthesizer{bank: bank}
}

// Synthesize selects and renders the response for in. It always returns
// non-empty text: a template that is missing or fails to render falls back
// to general.default from the compiled-in bank.
func (s *Synthesizer) Synthesize(in Input) Response {
	keys := selectKeys(in)
	vars := variables(in)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		text, err := s.bank.Render(key, vars)
		if err != nil || text == "" {
			return fallback()
		}
		parts = append(parts, text)
	}
	return Response{Keys: keys, Text: strings.Join(parts, "\n\n")}
}

// Synthesize renders with the compiled-in bank.
func Synthesize(in Input) Response {
	return New(nil).Synthesize(in)
}

func fallback() Response {
	text, _ := defaultBank.Raw("general.default")
	return Response{Keys: []string{"general.default"}, Text: text}
}

func variables(in Input) map[string]string {
	vars := map[string]string{
		"utterance": in.Utterance,
		"excerpt":   lexical.Excerpt(in.Utterance, ExcerptLength),
	}
	if in.Mode.Resolve() == personality.Grammar {
		vars["issues"] = strings.Join(grammar.Detect(in.Utterance), ", ")
		vars["corrected"] = grammar.Correct(in.Utterance)
	}
	return vars
}
