// ABOUTME: Ordered per-mode template rules plus the general fallback table
// ABOUTME: First matching rule wins; the general table ends in an unconditional rule

package synth

import (
	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/domain"
	"github.com/mauromedda/cognichat-go/internal/grammar"
	"github.com/mauromedda/cognichat-go/internal/intent"
	"github.com/mauromedda/cognichat-go/internal/lexical"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/sentiment"
	"github.com/mauromedda/cognichat-go/internal/strategy"
)

// followupMaxLength is the exclusive character bound for short follow-ups.
const followupMaxLength = 20

type rule struct {
	when func(Input) bool
	keys func(Input) []string
}

func always(Input) bool { return true }

func fixed(key string) func(Input) []string {
	return func(Input) []string { return []string{key} }
}

func intentIs(want intent.Intent) func(Input) bool {
	return func(in Input) bool { return in.Intent == want }
}

func sentimentIs(want sentiment.Sentiment) func(Input) bool {
	return func(in Input) bool { return in.Sentiment == want }
}

func emotionIs(want convstate.Emotion) func(Input) bool {
	return func(in Input) bool { return in.Emotion == want }
}

// shallow is true when the strategy does not call for a long-form answer.
func shallow(in Input) bool { return !in.Strategy.Deep() }

func and(preds ...func(Input) bool) func(Input) bool {
	return func(in Input) bool {
		for _, p := range preds {
			if !p(in) {
				return false
			}
		}
		return true
	}
}

// modeRules holds the mode-specific tables. General has none and goes
// straight to generalRules.
var modeRules = map[personality.Mode][]rule{
	personality.Study: {
		{intentIs(intent.IntentQuestion), fixed("study.question")},
		{intentIs(intent.IntentHelpRequest), fixed("study.help")},
		{shallow, fixed("study.default")},
	},
	personality.Writing: {
		{intentIs(intent.IntentTaskRequest), fixed("writing.task")},
		{func(in Input) bool { return domain.HasTopic(in.Topics, domain.TopicWriting) }, fixed("writing.craft")},
		{shallow, fixed("writing.default")},
	},
	personality.Support: {
		{emotionIs(convstate.Frustrated), fixed("support.frustration")},
		{intentIs(intent.IntentProblemReport), fixed("support.issue")},
		{sentimentIs(sentiment.Negative), fixed("support.frustration")},
		{shallow, fixed("support.default")},
	},
	personality.Resume: {
		{intentIs(intent.IntentTaskRequest), fixed("resume.task")},
		{shallow, fixed("resume.default")},
	},
	personality.Grammar: {
		{func(in Input) bool { return len(grammar.Detect(in.Utterance)) > 0 }, fixed("grammar.correction")},
		{always, fixed("grammar.clean")},
	},
	personality.Travel: {
		{intentIs(intent.IntentQuestion), fixed("travel.question")},
		{shallow, fixed("travel.default")},
	},
	personality.Game: {
		{intentIs(intent.IntentTaskRequest), fixed("game.task")},
		{shallow, fixed("game.default")},
	},
	personality.Mental: {
		{sentimentIs(sentiment.Negative), fixed("mental.negative")},
		{always, fixed("mental.default")},
	},
}

var generalRules = []rule{
	{func(in Input) bool { return in.Strategy.Deep() }, deepKeys},
	{intentIs(intent.IntentGreeting), fixed("general.greeting")},
	{intentIs(intent.IntentFarewell), fixed("general.farewell")},
	{intentIs(intent.IntentQuestion), fixed("general.question")},
	{sentimentIs(sentiment.Positive), fixed("general.positive")},
	{and(
		func(in Input) bool { return in.HasRecentUserTurn },
		func(in Input) bool { return lexical.Length(in.Utterance) < followupMaxLength },
	), fixed("general.followup")},
	{func(in Input) bool { return in.Strategy == strategy.SupportiveClarifying }, fixed("general.clarify")},
	{always, fixed("general.default")},
}

type cue struct {
	key   string
	words []string
}

// deepCues picks the body of a long-form answer by lexical cue, in order.
var deepCues = []cue{
	{"deep.reasoning", []string{"why", "how", "what if"}},
	{"deep.creative", []string{"create", "write", "generate"}},
	{"deep.problem_solving", []string{"problem", "solve", "fix"}},
	{"deep.analytical", []string{"analyze", "compare", "evaluate"}},
}

// deepKeys returns the strategy lead-in followed by the cue-selected body.
func deepKeys(in Input) []string {
	lead := "deep.lead." + string(in.Strategy)
	normalized := lexical.Normalize(in.Utterance)
	for _, c := range deepCues {
		if lexical.ContainsAny(normalized, c.words...) {
			return []string{lead, c.key}
		}
	}
	if in.Strategy == strategy.TechnicalDetailed {
		return []string{lead, "deep.reasoning"}
	}
	return []string{lead, "deep.conversational"}
}

// selectKeys runs the mode table then the general table.
func selectKeys(in Input) []string {
	for _, r := range modeRules[in.Mode.Resolve()] {
		if r.when(in) {
			return r.keys(in)
		}
	}
	for _, r := range generalRules {
		if r.when(in) {
			return r.keys(in)
		}
	}
	return []string{"general.default"}
}
