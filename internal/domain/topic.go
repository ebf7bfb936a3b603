// ABOUTME: Secondary topic tagger over coarse categories consulted by the template synthesizer
// ABOUTME: Same whole-word table style as the domain classifier; no match yields no topics

package domain

import "github.com/mauromedda/cognichat-go/internal/lexical"

// Topic is a coarse category used to pick mode templates.
type Topic string

const (
	TopicTechnology Topic = "technology"
	TopicEducation  Topic = "education"
	TopicWriting    Topic = "writing"
	TopicCareer     Topic = "career"
	TopicWellness   Topic = "wellness"
)

type topicRule struct {
	topic Topic
	words *lexical.WordSet
}

var topicRules = []topicRule{
	{TopicTechnology, lexical.NewWordSet("code", "coding", "programming", "software", "app", "website", "tech", "computer")},
	{TopicEducation, lexical.NewWordSet("learn", "study", "education", "school", "homework", "exam", "test")},
	{TopicWriting, lexical.NewWordSet("write", "writing", "essay", "grammar", "text", "document")},
	{TopicCareer, lexical.NewWordSet("job", "work", "career", "resume", "interview", "business")},
	{TopicWellness, lexical.NewWordSet("health", "wellness", "stress", "anxiety", "mood", "feeling")},
}

// Topics returns the matched topics in declaration order. The result may be empty.
func Topics(utterance string) []Topic {
	var out []Topic
	for _, r := range topicRules {
		if r.words.Match(utterance) {
			out = append(out, r.topic)
		}
	}
	return out
}

// HasTopic reports whether topics contains t.
func HasTopic(topics []Topic, t Topic) bool {
	for _, got := range topics {
		if got == t {
			return true
		}
	}
	return false
}
