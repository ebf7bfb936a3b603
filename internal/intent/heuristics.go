// ABOUTME: Ordered first-match-wins intent rules over the normalized utterance.
// ABOUTME: Question beats greeting beats help, problem, farewell, task; default general_statement.

package intent

import (
	"strings"

	"github.com/mauromedda/cognichat-go/internal/lexical"
)

// matcher inspects a normalized utterance and returns the matched keyword.
type matcher func(s string) (detail string, ok bool)

// rule pairs an intent with the test that selects it.
type rule struct {
	intent Intent
	signal string
	match  matcher
}

var (
	interrogatives   = []string{"what", "how", "why", "when", "where", "who"}
	greetingPrefixes = []string{"good morning", "good afternoon", "good evening", "hello", "hey", "hi"}
	helpKeywords     = []string{"help", "assist", "support"}
	problemKeywords  = []string{
		"problem", "issue", "error", "not working", "nothing is working",
		"isn't working", "doesn't work", "broken",
	}
	farewellPrefixes = []string{"goodbye", "bye", "see you", "thank you", "thanks", "that's all"}
	taskKeywords     = []string{"create", "make", "generate", "write"}
)

// rules is evaluated top to bottom; the first match wins. The order is a
// tie-break policy: "hi, can you help?" is a question, not a greeting.
var rules = []rule{
	{IntentQuestion, "question_mark", contains("?")},
	{IntentQuestion, "interrogative_prefix", prefixWord(interrogatives...)},
	{IntentQuestion, "request_prefix", prefix("can you")},
	{IntentGreeting, "greeting_prefix", prefixWord(greetingPrefixes...)},
	{IntentHelpRequest, "help_keyword", contains(helpKeywords...)},
	{IntentProblemReport, "problem_keyword", contains(problemKeywords...)},
	{IntentFarewell, "farewell_prefix", prefixWord(farewellPrefixes...)},
	{IntentTaskRequest, "please_prefix", prefix("please")},
	{IntentTaskRequest, "task_keyword", contains(taskKeywords...)},
}

// Classify returns the primary intent of utterance. It never fails:
// empty or unmatched input yields IntentGeneralStatement.
func Classify(utterance string) Classification {
	s := strings.TrimSpace(lexical.Normalize(utterance))
	for _, r := range rules {
		if detail, ok := r.match(s); ok {
			return Classification{
				Intent: r.intent,
				Signal: Signal{Name: r.signal, Detail: detail},
			}
		}
	}
	return Classification{Intent: IntentGeneralStatement}
}

func contains(words ...string) matcher {
	return func(s string) (string, bool) {
		for _, w := range words {
			if strings.Contains(s, w) {
				return w, true
			}
		}
		return "", false
	}
}

func prefix(words ...string) matcher {
	return func(s string) (string, bool) {
		for _, w := range words {
			if strings.HasPrefix(s, w) {
				return w, true
			}
		}
		return "", false
	}
}

func prefixWord(words ...string) matcher {
	return func(s string) (string, bool) {
		for _, w := range words {
			if lexical.HasPrefixWord(s, w) {
				return w, true
			}
		}
		return "", false
	}
}
