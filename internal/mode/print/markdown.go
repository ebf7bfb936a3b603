// ABOUTME: Markdown output for print mode, styled with glamour when stdout is a terminal
// ABOUTME: Non-terminal writers receive the raw markdown so pipes stay clean

package print

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mauromedda/cognichat-go/internal/mode"
)

type markdownFormatter struct {
	w      io.Writer
	trace  bool
	width  int
	styled bool
	doc    strings.Builder
}

func newMarkdownFormatter(cfg Config) *markdownFormatter {
	return &markdownFormatter{
		w:      cfg.Stdout,
		trace:  cfg.Trace,
		width:  cfg.Width,
		styled: isTerminal(cfg.Stdout),
	}
}

func (f *markdownFormatter) answer(a answer) {
	if f.doc.Len() > 0 {
		f.doc.WriteString("\n---\n\n")
	}
	fmt.Fprintf(&f.doc, "**You** (%s mode)\n\n", a.Result.Trace.Mode)
	for _, line := range strings.Split(a.Utterance, "\n") {
		fmt.Fprintf(&f.doc, "> %s\n", line)
	}
	f.doc.WriteString("\n**Assistant**\n\n")
	f.doc.WriteString(a.Result.Text)
	f.doc.WriteString("\n")
	if f.trace {
		f.doc.WriteString("\n```text\n")
		mode.WriteTrace(&f.doc, a.Result.Trace)
		f.doc.WriteString("```\n")
	}
}

func (f *markdownFormatter) end() error {
	md := f.doc.String()
	if f.styled {
		md = render(md, f.width)
	}
	_, err := io.WriteString(f.w, md)
	return err
}

// render styles md for the terminal. On any glamour failure the raw
// markdown is returned.
func render(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n ") + "\n"
}
