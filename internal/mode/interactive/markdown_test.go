// ABOUTME: Tests for the cached glamour markdown renderer
// ABOUTME: Uses the notty style so output is free of escape sequences

package interactive

import (
	"strings"
	"testing"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRenderer("notty")

	if got := r.Render("", 40); got != "" {
		t.Errorf("Render(\"\") = %q; want empty", got)
	}

	// notty is glamour's ASCII style: emphasis markers stay, the paragraph
	// is indented, and the blank lines around it are trimmed.
	out := r.Render("Here is **bold** advice.", 40)
	if strings.TrimSpace(out) != "Here is **bold** advice." {
		t.Errorf("Render() = %q; want the paragraph text", out)
	}
	if strings.HasSuffix(out, "\n") || strings.HasPrefix(out, "\n") {
		t.Errorf("Render() = %q; want surrounding blank lines trimmed", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Render() = %q; notty output must not carry escape sequences", out)
	}
}

func TestMarkdownRenderer_Caches(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRenderer("notty")
	first := r.Render("a *cached* answer", 30)
	second := r.Render("a *cached* answer", 30)
	if first != second {
		t.Errorf("cached render differs: %q vs %q", first, second)
	}
	if len(r.cache) != 1 || len(r.renderers) != 1 {
		t.Errorf("cache entries = %d, renderers = %d; want 1 and 1", len(r.cache), len(r.renderers))
	}

	r.Render("a *cached* answer", 50)
	if len(r.cache) != 2 || len(r.renderers) != 2 {
		t.Errorf("a new width should add one entry to each cache")
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	if cacheKey("x", 10) == cacheKey("x", 11) {
		t.Error("width must be part of the key")
	}
	if cacheKey("x", 10) == cacheKey("y", 10) {
		t.Error("content must be part of the key")
	}
}
