// ABOUTME: Human-readable rendering of a response trace as an aligned key/value block
// ABOUTME: Shared by print and interactive hosts; alignment uses display width

package mode

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// TraceRows returns the trace of one response as ordered key/value rows.
func TraceRows(tr chat.Trace) [][2]string {
	c := tr.Classification
	domains := make([]string, len(c.Domains))
	for i, d := range c.Domains {
		domains[i] = string(d)
	}
	topics := make([]string, len(tr.Topics))
	for i, t := range tr.Topics {
		topics[i] = string(t)
	}

	intentValue := c.Intent.String()
	if tr.Signal.Name != "" {
		intentValue += fmt.Sprintf(" (%s: %q)", tr.Signal.Name, tr.Signal.Detail)
	}

	rows := [][2]string{
		{"mode", string(tr.Mode)},
		{"domains", strings.Join(domains, ", ")},
		{"intent", intentValue},
		{"communicative", string(tr.Communicative)},
		{"sentiment", fmt.Sprintf("%s (+%d/-%d)", c.Sentiment, tr.Score.Positive, tr.Score.Negative)},
		{"complexity", string(c.Complexity)},
		{"expertise", string(c.Expertise)},
		{"emotion", string(tr.State.Emotion)},
		{"strategy", fmt.Sprintf("%s (%s)", tr.Strategy, tr.StrategyRule)},
		{"rhetorical", string(tr.Rhetorical)},
		{"templates", strings.Join(tr.TemplateKeys, " + ")},
	}
	if len(topics) > 0 {
		rows = append(rows, [2]string{"topics", strings.Join(topics, ", ")})
	}
	if tr.Confidence != nil {
		rows = append(rows, [2]string{"confidence", fmt.Sprintf("%.2f", *tr.Confidence)})
	}
	return rows
}

// WriteTrace writes the rows of tr aligned in two columns, followed by
// the reasoning lines and the synthesis sentence.
func WriteTrace(w io.Writer, tr chat.Trace) {
	rows := TraceRows(tr)
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r[0], width), r[1])
	}
	for _, line := range tr.Reasoning {
		fmt.Fprintf(w, "- %s\n", line)
	}
	if tr.Synthesis != "" {
		fmt.Fprintln(w, tr.Synthesis)
	}
}
