// ABOUTME: Headless print mode answering one or many utterances with text, markdown, or JSON output
// ABOUTME: Batch inputs are answered concurrently and printed in input order

package print

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/mauromedda/cognichat-go/internal/config"
	"github.com/mauromedda/cognichat-go/internal/mode"
	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// ErrNoInput is returned when neither arguments nor stdin carry an utterance.
var ErrNoInput = errors.New("no utterance given")

// DefaultConcurrency bounds parallel answers in batch mode.
const DefaultConcurrency = 4

// Config configures print mode execution.
type Config struct {
	Mode         chat.Mode
	OutputFormat string // "text" (default), "markdown", "json"
	Trace        bool   // include the decision trace
	Concurrency  int    // 0 = DefaultConcurrency
	Width        int    // markdown wrap width; 0 = terminal width or 80
	Stdout       io.Writer
	Stderr       io.Writer
	Stdin        io.Reader
}

type answer struct {
	Utterance string
	Result    chat.Result
	Err       error
}

// Run answers utterances with engine e. With no utterances, each non-blank
// line of stdin is one utterance. Every utterance is answered independently,
// with an empty history.
func Run(ctx context.Context, e *chat.Engine, cfg Config, utterances []string) error {
	cfg = withDefaults(cfg)

	if len(utterances) == 0 {
		lines, err := readLines(cfg.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		utterances = lines
	}
	if len(utterances) == 0 {
		return ErrNoInput
	}

	answers, err := answerAll(ctx, e, cfg, utterances)
	if err != nil {
		return err
	}

	f := newFormatter(cfg)
	for _, a := range answers {
		if a.Err != nil {
			fmt.Fprintf(cfg.Stderr, "error: %v\n", a.Err)
		}
		f.answer(a)
	}
	return f.end()
}

func withDefaults(cfg Config) Config {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = config.OutputText
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Width <= 0 {
		cfg.Width = terminalWidth(cfg.Stdout)
	}
	return cfg
}

func answerAll(ctx context.Context, e *chat.Engine, cfg Config, utterances []string) ([]answer, error) {
	answers := make([]answer, len(utterances))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, u := range utterances {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := mode.Answer(e, u, nil, cfg.Mode)
			answers[i] = answer{Utterance: u, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("answering batch: %w", err)
	}
	return answers, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// formatter abstracts output formatting.
type formatter interface {
	answer(a answer)
	end() error
}

func newFormatter(cfg Config) formatter {
	switch cfg.OutputFormat {
	case config.OutputJSON:
		return &jsonFormatter{w: cfg.Stdout, trace: cfg.Trace}
	case config.OutputMarkdown:
		return newMarkdownFormatter(cfg)
	default:
		return &textFormatter{w: cfg.Stdout, trace: cfg.Trace}
	}
}

// textFormatter writes each response followed by a blank line.
type textFormatter struct {
	w     io.Writer
	trace bool
	n     int
}

func (f *textFormatter) answer(a answer) {
	if f.n > 0 {
		fmt.Fprintln(f.w)
	}
	f.n++
	fmt.Fprintln(f.w, a.Result.Text)
	if f.trace {
		fmt.Fprintln(f.w)
		mode.WriteTrace(f.w, a.Result.Trace)
	}
}

func (f *textFormatter) end() error { return nil }

type jsonAnswer struct {
	Utterance string      `json:"utterance"`
	Mode      chat.Mode   `json:"mode"`
	Text      string      `json:"text"`
	Template  string      `json:"template_key,omitempty"`
	Trace     *chat.Trace `json:"trace,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// jsonFormatter collects all answers and writes one JSON document at the
// end: an object for one answer, an array for a batch.
type jsonFormatter struct {
	w       io.Writer
	trace   bool
	answers []jsonAnswer
}

func (f *jsonFormatter) answer(a answer) {
	ja := jsonAnswer{
		Utterance: a.Utterance,
		Mode:      a.Result.Trace.Mode,
		Text:      a.Result.Text,
		Template:  a.Result.Trace.TemplateKey(),
	}
	if f.trace {
		tr := a.Result.Trace
		ja.Trace = &tr
	}
	if a.Err != nil {
		ja.Error = a.Err.Error()
	}
	f.answers = append(f.answers, ja)
}

func (f *jsonFormatter) end() error {
	var v any = f.answers
	if len(f.answers) == 1 {
		v = f.answers[0]
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
