// ABOUTME: Lexical predicates shared by every classifier: word sets, substring lists, prefixes
// ABOUTME: Character counting and excerpting are grapheme-aware via uniseg

package lexical

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExcerptMarker is appended to text shortened by Excerpt.
const ExcerptMarker = "..."

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize lower-cases s and folds typographic apostrophes to ASCII.
// A fresh Caser is built per call because cases.Caser is stateful.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(apostrophes.Replace(s))
}

// WordSet matches a fixed list of words or phrases as whole words, case-insensitively.
type WordSet struct {
	words   []string
	pattern *regexp.Regexp
}

// NewWordSet compiles words into a single alternation bounded by \b.
// It panics on an empty list; word sets are package-level constants.
func NewWordSet(words ...string) *WordSet {
	if len(words) == 0 {
		panic("lexical: empty word set")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return &WordSet{
		words:   append([]string(nil), words...),
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Match reports whether any member occurs in s as a whole word.
func (w *WordSet) Match(s string) bool {
	return w.pattern.MatchString(s)
}

// Count returns the number of non-overlapping member occurrences in s.
func (w *WordSet) Count(s string) int {
	return len(w.pattern.FindAllStringIndex(s, -1))
}

// Find returns every matched occurrence in s, in order of appearance.
func (w *WordSet) Find(s string) []string {
	return w.pattern.FindAllString(s, -1)
}

// Words returns a copy of the members in declaration order.
func (w *WordSet) Words() []string {
	return append([]string(nil), w.words...)
}

// ContainsAny reports whether s contains any of subs.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CountContained returns how many members of list occur in s at least once.
// Each member counts once regardless of repetitions.
func CountContained(s string, list []string) int {
	n := 0
	for _, item := range list {
		if strings.Contains(s, item) {
			n++
		}
	}
	return n
}

// HasPrefixWord reports whether s starts with one of words followed by a
// non-word character or the end of s.
func HasPrefixWord(s string, words ...string) bool {
	for _, w := range words {
		if !strings.HasPrefix(s, w) {
			continue
		}
		rest := s[len(w):]
		if rest == "" || !isWordByte(rest[0]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Tokens splits s into whitespace-separated tokens.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// Length returns the number of user-perceived characters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Excerpt returns s unchanged when it has at most n characters; otherwise
// its first n characters followed by ExcerptMarker.
func Excerpt(s string, n int) string {
	if n < 0 {
		n = 0
	}
	g := uniseg.NewGraphemes(s)
	count := 0
	for g.Next() {
		if count == n {
			from, _ := g.Positions()
			return s[:from] + ExcerptMarker
		}
		count++
	}
	return s
}
