// ABOUTME: Response strategy selection as an ordered rule table over classifications
// ABOUTME: Also picks the trace-only rhetorical approach from emotional context

package strategy

import (
	"strings"

	"github.com/mauromedda/cognichat-go/internal/complexity"
	"github.com/mauromedda/cognichat-go/internal/convstate"
)

// Strategy is the high-level shape of a response.
type Strategy string

const (
	TechnicalDetailed      Strategy = "technical_detailed"
	ExplanatoryProgressive Strategy = "explanatory_progressive"
	DirectInformative      Strategy = "direct_informative"
	SupportiveClarifying   Strategy = "supportive_clarifying"
	ConversationalAdaptive Strategy = "conversational_adaptive"
)

// Deep reports whether s belongs to the long-form family that bypasses
// mode-specific shallow templates.
func (s Strategy) Deep() bool {
	return s == TechnicalDetailed || s == ExplanatoryProgressive
}

// Input is everything the selector looks at.
type Input struct {
	Utterance  string
	Complexity complexity.Complexity
	Expertise  complexity.Expertise
	Emotion    convstate.Emotion
}

type rule struct {
	name     string
	strategy Strategy
	when     func(Input) bool
}

// rules is evaluated in order; the final rule always matches.
var rules = []rule{
	{"high_expert", TechnicalDetailed, func(in Input) bool {
		return in.Complexity == complexity.High && in.Expertise == complexity.Expert
	}},
	{"high_beginner", ExplanatoryProgressive, func(in Input) bool {
		return in.Complexity == complexity.High && in.Expertise == complexity.Beginner
	}},
	{"question_mark", DirectInformative, func(in Input) bool {
		return strings.Contains(in.Utterance, "?")
	}},
	{"troubled", SupportiveClarifying, func(in Input) bool {
		return in.Emotion == convstate.Frustrated || in.Emotion == convstate.Confused
	}},
	{"default", ConversationalAdaptive, func(Input) bool { return true }},
}

// Select returns the first strategy whose rule matches in.
func Select(in Input) Strategy {
	s, _ := SelectWithRule(in)
	return s
}

// SelectWithRule is Select plus the name of the rule that fired.
func SelectWithRule(in Input) (Strategy, string) {
	for _, r := range rules {
		if r.when(in) {
			return r.strategy, r.name
		}
	}
	return ConversationalAdaptive, "default"
}

// Rhetorical is the tone a response is framed in. It is reported in traces
// and does not influence template choice.
type Rhetorical string

const (
	EmpatheticSupportive      Rhetorical = "empathetic_supportive"
	EnthusiasticCollaborative Rhetorical = "enthusiastic_collaborative"
	BalancedInformative       Rhetorical = "balanced_informative"
)

// RhetoricalFor maps an emotion to its rhetorical approach.
func RhetoricalFor(e convstate.Emotion) Rhetorical {
	switch e {
	case convstate.Frustrated:
		return EmpatheticSupportive
	case convstate.Excited:
		return EnthusiasticCollaborative
	default:
		return BalancedInformative
	}
}
