// ABOUTME: Host-side helpers shared by interactive, print, and RPC modes
// ABOUTME: Welcome and apology texts, cosmetic thinking delay, and panic-safe engine calls

package mode

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mauromedda/cognichat-go/internal/lexical"
	"github.com/mauromedda/cognichat-go/internal/log"
	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// WelcomeMessage opens every new conversation.
const WelcomeMessage = "Hello! I'm your V1Q-powered AI assistant with advanced cognitive capabilities. " +
	"I can engage in deep reasoning, creative problem-solving, and multi-domain analysis just like the latest AI models. " +
	"I'm designed to understand context, think through complex problems, and provide thoughtful, comprehensive responses. " +
	"What would you like to explore together?"

// ApologyMessage replaces a response when the engine call faults.
const ApologyMessage = "I apologize for the momentary lapse in my cognitive processing. " +
	"My advanced reasoning systems are back online and ready to assist you with any complex queries or creative challenges. " +
	"Please try again."

type delayBand struct {
	over int
	base time.Duration
	span time.Duration
}

// Bands are checked in order; the last one always matches.
var delayBands = []delayBand{
	{over: 100, base: 1500 * time.Millisecond, span: 2000 * time.Millisecond},
	{over: 50, base: 1000 * time.Millisecond, span: 1500 * time.Millisecond},
	{over: -1, base: 600 * time.Millisecond, span: 1000 * time.Millisecond},
}

// ThinkingDelay returns how long a host pauses before showing an answer to
// utterance. Longer input waits longer. A nil r uses the global source.
func ThinkingDelay(utterance string, r *rand.Rand) time.Duration {
	n := lexical.Length(utterance)
	for _, b := range delayBands {
		if n > b.over {
			return b.base + jitter(b.span, r)
		}
	}
	return 0
}

func jitter(span time.Duration, r *rand.Rand) time.Duration {
	if r == nil {
		return rand.N(span)
	}
	return time.Duration(r.Int64N(int64(span)))
}

// Answer calls the engine and converts a panic into the apology text. The
// returned error is non-nil only when the call faulted.
func Answer(e *chat.Engine, utterance string, history chat.History, m chat.Mode) (res chat.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panic: %v", r)
			log.Error("answer failed: %v", err)
			res = chat.Result{Text: ApologyMessage, Trace: chat.Trace{Mode: m.Resolve()}}
		}
	}()
	return e.RespondWithTrace(utterance, history, m), nil
}
