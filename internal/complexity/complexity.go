// ABOUTME: Complexity tier and inferred expertise for an utterance
// ABOUTME: Length and token thresholds checked high-first; expertise counts technical terms

package complexity

import "github.com/mauromedda/cognichat-go/internal/lexical"

// Complexity is a coarse size tier of an utterance.
type Complexity string

const (
	Low    Complexity = "low"
	Medium Complexity = "medium"
	High   Complexity = "high"
)

// Expertise is the inferred skill tier of the user.
type Expertise string

const (
	Beginner Expertise = "beginner"
	Expert   Expertise = "expert"
)

// Thresholds are strict: a value must exceed them.
const (
	highLength   = 200
	highTokens   = 40
	mediumLength = 100
	mediumTokens = 20
	expertTerms  = 2
)

var technicalTerms = lexical.NewWordSet(
	"algorithm", "optimization", "methodology", "framework",
	"paradigm", "implementation", "architecture", "infrastructure",
)

// Assess returns the complexity tier of utterance. The high tier is tested
// before medium, each on character length first and token count second.
func Assess(utterance string) Complexity {
	length := lexical.Length(utterance)
	tokens := len(lexical.Tokens(utterance))
	switch {
	case length > highLength || tokens > highTokens:
		return High
	case length > mediumLength || tokens > mediumTokens:
		return Medium
	default:
		return Low
	}
}

// TechnicalTerms counts every occurrence of a technical term in utterance.
func TechnicalTerms(utterance string) int {
	return technicalTerms.Count(utterance)
}

// InferExpertise returns Expert when utterance uses more than two technical
// terms. It is a vocabulary proxy, not a skill assessment.
func InferExpertise(utterance string) Expertise {
	if TechnicalTerms(utterance) > expertTerms {
		return Expert
	}
	return Beginner
}
