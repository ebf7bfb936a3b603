// ABOUTME: Knowledge-domain classifier mapping an utterance to an ordered set of domains
// ABOUTME: Whole-word keyword tables tested in declaration order; no match yields general

package domain

import "github.com/mauromedda/cognichat-go/internal/lexical"

// Domain names a knowledge area an utterance touches.
type Domain string

const (
	ScienceTechnology Domain = "science_technology"
	ArtsHumanities    Domain = "arts_humanities"
	BusinessEconomics Domain = "business_economics"
	HealthMedicine    Domain = "health_medicine"
	EducationLearning Domain = "education_learning"
	SocialPolitical   Domain = "social_political"
	General           Domain = "general"
)

type domainRule struct {
	domain Domain
	words  *lexical.WordSet
}

// domainRules is evaluated top to bottom; report order follows this table.
var domainRules = []domainRule{
	{ScienceTechnology, lexical.NewWordSet(
		"science", "technology", "research", "data", "algorithm", "AI", "machine learning",
		"programming", "code", "software", "hardware", "innovation", "experiment", "hypothesis",
		"theory", "analysis", "compute", "digital", "cyber", "tech", "engineering", "physics",
		"chemistry", "biology", "mathematics", "statistics",
	)},
	{ArtsHumanities, lexical.NewWordSet(
		"art", "literature", "philosophy", "history", "culture", "music", "poetry", "creative",
		"aesthetic", "beauty", "meaning", "interpretation", "narrative", "story", "drama", "film",
		"design", "visual", "language", "linguistics", "anthropology", "sociology",
	)},
	{BusinessEconomics, lexical.NewWordSet(
		"business", "economy", "market", "finance", "investment", "profit", "strategy",
		"management", "leadership", "entrepreneurship", "marketing", "sales", "customer", "brand",
		"competition", "growth", "revenue", "cost", "budget", "trade", "commerce",
	)},
	{HealthMedicine, lexical.NewWordSet(
		"health", "medical", "medicine", "doctor", "patient", "treatment", "therapy", "diagnosis",
		"symptoms", "disease", "wellness", "fitness", "nutrition", "mental health", "psychology",
		"psychiatry", "pharmaceutical", "clinical", "hospital", "care",
	)},
	{EducationLearning, lexical.NewWordSet(
		"education", "learning", "teaching", "student", "school", "university", "knowledge",
		"study", "exam", "curriculum", "pedagogy", "training", "skill", "competency", "academic",
		"research", "scholarship", "degree", "certification",
	)},
	{SocialPolitical, lexical.NewWordSet(
		"social", "society", "community", "politics", "government", "policy", "law", "justice",
		"rights", "democracy", "citizenship", "public", "civil", "ethics", "moral", "values",
		"diversity", "inclusion", "equality", "freedom", "responsibility",
	)},
}

// Classify returns every domain whose keywords occur in utterance, in
// declaration order. The result is never empty: no match yields [General].
func Classify(utterance string) []Domain {
	var out []Domain
	for _, r := range domainRules {
		if r.words.Match(utterance) {
			out = append(out, r.domain)
		}
	}
	if len(out) == 0 {
		return []Domain{General}
	}
	return out
}

// All returns the classifiable domains in declaration order, excluding General.
func All() []Domain {
	out := make([]Domain, len(domainRules))
	for i, r := range domainRules {
		out[i] = r.domain
	}
	return out
}
