// ABOUTME: Polarity classifier counting fixed positive and negative word lists
// ABOUTME: Case-sensitive substring containment; ties resolve to neutral

package sentiment

import "github.com/mauromedda/cognichat-go/internal/lexical"

// Sentiment is the polarity of an utterance.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

var (
	positiveWords = []string{"good", "great", "awesome", "excellent", "love", "like", "happy", "thanks"}
	negativeWords = []string{"bad", "terrible", "hate", "dislike", "sad", "angry", "frustrated", "problem"}
)

// Score holds the raw list counts behind a polarity.
type Score struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Polarity resolves the counts: the larger side wins, equal counts are neutral.
func (s Score) Polarity() Sentiment {
	switch {
	case s.Positive > s.Negative:
		return Positive
	case s.Negative > s.Positive:
		return Negative
	default:
		return Neutral
	}
}

// Measure counts how many list members occur in utterance. Matching is
// case-sensitive substring containment, so "dislike" also counts "like".
func Measure(utterance string) Score {
	return Score{
		Positive: lexical.CountContained(utterance, positiveWords),
		Negative: lexical.CountContained(utterance, negativeWords),
	}
}

// Classify returns the polarity of utterance.
func Classify(utterance string) Sentiment {
	return Measure(utterance).Polarity()
}
