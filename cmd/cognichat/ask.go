// ABOUTME: "ask" subcommand: answers one utterance from arguments, or one per stdin line
// ABOUTME: Output is text, markdown, or JSON; --trace appends the decision trace

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mauromedda/cognichat-go/internal/mode/print"
)

func newAskCmd(g *globalFlags) *cobra.Command {
	var (
		format      string
		trace       bool
		concurrency int
		width       int
	)

	cmd := &cobra.Command{
		Use:   "ask [utterance...]",
		Short: "Answer an utterance and exit",
		Long: "Answer the arguments, joined into one utterance. Without arguments every\n" +
			"non-blank stdin line is answered independently, in input order.",
		Example: "  cognichat ask what is a prime number\n" +
			"  cognichat ask --mode study --format json \"explain recursion\"\n" +
			"  cat questions.txt | cognichat ask --trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			g.confidence = trace
			e, err := g.setup(format)
			if err != nil {
				return err
			}
			m, err := e.defaultMode()
			if err != nil {
				return err
			}

			var utterances []string
			if len(args) > 0 {
				utterances = []string{strings.Join(args, " ")}
			}
			return print.Run(cmd.Context(), e.engine, print.Config{
				Mode:         m,
				OutputFormat: e.settings.EffectiveOutputFormat(),
				Trace:        trace,
				Concurrency:  concurrency,
				Width:        width,
				Stdout:       cmd.OutOrStdout(),
				Stderr:       cmd.ErrOrStderr(),
				Stdin:        cmd.InOrStdin(),
			}, utterances)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Include the decision trace")
	cmd.Flags().IntVar(&concurrency, "concurrency", print.DefaultConcurrency, "Parallel answers for stdin batches")
	cmd.Flags().IntVar(&width, "width", 0, "Markdown wrap width (default: terminal width)")

	return cmd
}
