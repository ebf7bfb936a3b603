// ABOUTME: Two-rule grammar issue detector and matching corrector for grammar mode
// ABOUTME: Flags a lowercase standalone pronoun and "your" used for "you're"

package grammar

import (
	"regexp"
	"strings"
)

// Issue messages reported by Detect.
const (
	IssueLowercaseI = "'i' should be capitalized as 'I'"
	IssueYourYoure  = "consider 'you're' instead of 'your' for contractions"
)

var (
	lowerI = regexp.MustCompile(`\bi\b`)
	upperI = regexp.MustCompile(`\bI\b`)

	contractionFixes = strings.NewReplacer(
		"your welcome", "you're welcome",
		"your here", "you're here",
	)
)

// Detect returns the issues found in text, in a fixed order. Both checks
// are case-sensitive.
func Detect(text string) []string {
	var issues []string
	if lowerI.MatchString(text) && !upperI.MatchString(text) {
		issues = append(issues, IssueLowercaseI)
	}
	if strings.Contains(text, "your welcome") || strings.Contains(text, "your here") {
		issues = append(issues, IssueYourYoure)
	}
	return issues
}

// Correct capitalizes every standalone "i" and rewrites the two
// contraction phrases. Text without issues is returned unchanged.
func Correct(text string) string {
	return contractionFixes.Replace(lowerI.ReplaceAllLiteralString(text, "I"))
}
