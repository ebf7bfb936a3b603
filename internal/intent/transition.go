// ABOUTME: Mid-conversation intent transition detector for host-side observability.
// ABOUTME: Reports when the primary intent shifts between user turns, with reason tracking.

package intent

import "fmt"

// TransitionDetector follows the intents of consecutive user turns.
// It is not safe for concurrent use; each session owns one.
type TransitionDetector struct {
	currentIntent Intent
	started       bool
	history       []Intent
}

// NewTransitionDetector creates a detector with no observed turns.
func NewTransitionDetector() *TransitionDetector {
	return &TransitionDetector{}
}

// Transition represents a detected change of primary intent.
type Transition struct {
	From   Intent
	To     Intent
	Reason string
}

// Detect records the latest classification and reports a transition when warranted.
// Rules:
//  1. First observed turn: no transition, it sets the baseline.
//  2. Same intent as current: no transition.
//  3. general_statement: no transition (avoid flapping on filler turns).
//  4. Otherwise: transition with descriptive reason.
func (d *TransitionDetector) Detect(latest Classification) *Transition {
	if !d.started {
		d.started = true
		d.currentIntent = latest.Intent
		d.history = append(d.history, latest.Intent)
		return nil
	}

	if latest.Intent == d.currentIntent {
		return nil
	}

	if latest.Intent == IntentGeneralStatement {
		return nil
	}

	reason := fmt.Sprintf("%s -> %s", d.currentIntent, latest.Intent)
	if latest.Signal.Name != "" {
		reason += fmt.Sprintf(" (%s: %q)", latest.Signal.Name, latest.Signal.Detail)
	}

	tr := &Transition{
		From:   d.currentIntent,
		To:     latest.Intent,
		Reason: reason,
	}

	d.currentIntent = latest.Intent
	d.history = append(d.history, latest.Intent)

	return tr
}

// Current returns the current intent and whether any turn has been observed.
func (d *TransitionDetector) Current() (Intent, bool) {
	return d.currentIntent, d.started
}

// History returns the intents that started or changed the conversation, in order.
func (d *TransitionDetector) History() []Intent {
	result := make([]Intent, len(d.history))
	copy(result, d.history)
	return result
}
