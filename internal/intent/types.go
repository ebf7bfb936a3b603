// ABOUTME: Intent classification types for routing user utterances to response templates.
// ABOUTME: Defines the Intent enum, Classification result, and the Signal that decided it.

package intent

import "fmt"

// Intent represents the primary purpose of a user utterance.
// Declaration order is the evaluation order of the heuristic rules.
type Intent int

const (
	IntentQuestion         Intent = iota // Explicit or interrogative question
	IntentGreeting                       // Opening salutation
	IntentHelpRequest                    // Asking for help or assistance
	IntentProblemReport                  // Reporting something broken
	IntentFarewell                       // Closing or thanks
	IntentTaskRequest                    // Asking for something to be produced
	IntentGeneralStatement               // None of the above
)

var intentNames = map[Intent]string{
	IntentQuestion:         "question",
	IntentGreeting:         "greeting",
	IntentHelpRequest:      "help_request",
	IntentProblemReport:    "problem_report",
	IntentFarewell:         "farewell",
	IntentTaskRequest:      "task_request",
	IntentGeneralStatement: "general_statement",
}

// String returns the snake_case name of the intent.
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(i))
}

// MarshalText encodes the intent by name so traces serialize readably.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Parse returns the intent with the given name.
func Parse(name string) (Intent, bool) {
	for i, n := range intentNames {
		if n == name {
			return i, true
		}
	}
	return IntentGeneralStatement, false
}

// Classification holds the result of intent classification.
type Classification struct {
	Intent Intent `json:"intent"`
	Signal Signal `json:"signal"` // The rule that fired; empty for the default
}

// Signal describes the rule that produced a classification.
type Signal struct {
	Name   string `json:"name,omitempty"`   // e.g., "question_mark", "greeting_prefix"
	Detail string `json:"detail,omitempty"` // e.g., the matched keyword
}
