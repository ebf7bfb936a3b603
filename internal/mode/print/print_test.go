// ABOUTME: Tests for headless print mode covering text, markdown, JSON, batch order, and traces
// ABOUTME: Writes go to buffers so tests run in parallel without touching os.Stdout

package print

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/mauromedda/cognichat-go/pkg/chat"
)

func run(t *testing.T, cfg Config, utterances ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg.Stdout = &out
	cfg.Stderr = &errOut
	if cfg.Stdin == nil {
		cfg.Stdin = strings.NewReader("")
	}
	err := Run(context.Background(), chat.New(), cfg, utterances)
	return out.String(), errOut.String(), err
}

func TestRun_TextSingle(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, Config{}, "hi")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := chat.Respond("hi", nil, "") + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_ModeApplied(t *testing.T) {
	t.Parallel()

	u := "I'm frustrated, nothing is working"
	out, _, err := run(t, Config{Mode: "support"}, u)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := chat.Respond(u, nil, "support") + "\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_BatchFromStdinKeepsOrder(t *testing.T) {
	t.Parallel()

	lines := []string{"hi", "what is a prime number?", "thanks, this is great", "bye"}
	stdin := strings.NewReader(strings.Join([]string{lines[0], "", "  ", lines[1], lines[2], lines[3]}, "\n"))

	for _, conc := range []int{1, 8} {
		out, _, err := run(t, Config{Stdin: stdin, Concurrency: conc})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		var want []string
		for _, l := range lines {
			want = append(want, chat.Respond(l, nil, ""))
		}
		if exp := strings.Join(want, "\n\n") + "\n"; out != exp {
			t.Errorf("concurrency %d: output = %q, want %q", conc, out, exp)
		}
		stdin = strings.NewReader(strings.Join(lines, "\n"))
	}
}

func TestRun_NoInput(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, Config{Stdin: strings.NewReader("\n  \n")})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("Run() error = %v, want ErrNoInput", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := Run(ctx, chat.New(), Config{Stdout: &out, Stderr: &out}, []string{"hi", "bye"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("cancelled run wrote %q", out.String())
	}
}

func TestRun_JSONSingle(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, Config{OutputFormat: "json", Mode: "study"}, "what is recursion?")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got jsonAnswer
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not one JSON object: %q: %v", out, err)
	}
	if got.Utterance != "what is recursion?" || got.Mode != "study" {
		t.Errorf("got %+v", got)
	}
	if got.Template != "study.question" {
		t.Errorf("template_key = %q, want study.question", got.Template)
	}
	if got.Trace != nil {
		t.Error("trace should be omitted unless requested")
	}
}

func TestRun_JSONBatchWithTrace(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, Config{OutputFormat: "json", Trace: true}, "hi", "bye")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a JSON array: %q: %v", out, err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d answers, want 2", len(got))
	}
	trace, ok := got[0]["trace"].(map[string]any)
	if !ok {
		t.Fatalf("first answer has no trace: %v", got[0])
	}
	if _, ok := trace["reasoning"]; !ok {
		t.Errorf("trace lacks reasoning: %v", trace)
	}
	if got[1]["utterance"] != "bye" {
		t.Errorf("second utterance = %v, want bye", got[1]["utterance"])
	}
}

func TestRun_MarkdownRawWhenNotTerminal(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, Config{OutputFormat: "markdown", Mode: "study"}, "hi", "bye")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"**You** (study mode)", "> hi", "> bye", "**Assistant**", "\n---\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output must not contain ANSI escapes")
	}
}

func TestRun_TextTrace(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, Config{Trace: true}, "hi")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, pattern := range []string{
		`(?m)^mode\s+general$`,
		`(?m)^strategy\s+\S+ \(\w+\)$`,
		`(?m)^templates\s+general\.greeting$`,
		`(?m)^- Analyzing user input: "hi"$`,
	} {
		if !regexp.MustCompile(pattern).MatchString(out) {
			t.Errorf("trace output does not match %s:\n%s", pattern, out)
		}
	}
}
