// ABOUTME: Coarse communicative-intent label reported in reasoning traces.
// ABOUTME: questioning, requesting, opinion_seeking, or informing; first match wins.

package intent

import (
	"strings"

	"github.com/mauromedda/cognichat-go/internal/lexical"
)

// Communicative describes how the user is addressing the assistant.
type Communicative string

const (
	Questioning    Communicative = "questioning"
	Requesting     Communicative = "requesting"
	OpinionSeeking Communicative = "opinion_seeking"
	Informing      Communicative = "informing"
)

// CommunicativeOf labels utterance for the reasoning trace.
func CommunicativeOf(utterance string) Communicative {
	s := lexical.Normalize(utterance)
	switch {
	case strings.Contains(s, "?"):
		return Questioning
	case lexical.ContainsAny(s, "please", "can you"):
		return Requesting
	case lexical.ContainsAny(s, "think", "opinion"):
		return OpinionSeeking
	default:
		return Informing
	}
}
