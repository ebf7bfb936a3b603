// ABOUTME: "sessions" and "export" subcommands for saved session transcripts
// ABOUTME: Export renders a transcript as a standalone HTML page

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mauromedda/cognichat-go/internal/config"
	"github.com/mauromedda/cognichat-go/internal/export"
	"github.com/mauromedda/cognichat-go/internal/session"
)

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List saved sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := session.ListSessions(config.SessionsDir())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No saved sessions.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMODE\tSTARTED\tDIRECTORY")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Mode, s.Started.Local().Format(time.DateTime), s.CWD)
			}
			return tw.Flush()
		},
	}
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <session-id | file.jsonl>",
		Short: "Render a session transcript as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, id, err := readTranscript(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("session %s has no records", id)
			}

			if output == "-" {
				return writeTo(cmd.OutOrStdout(), records)
			}
			if output == "" {
				output = id + ".html"
			}
			if err := writeHTML(output, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", id, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default <id>.html, - for stdout)")
	return cmd
}

// readTranscript accepts a path to a .jsonl file or a session id under the
// sessions directory.
func readTranscript(arg string) ([]session.Record, string, error) {
	if strings.HasSuffix(arg, ".jsonl") {
		records, err := session.ReadFile(arg)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", arg, err)
		}
		return records, strings.TrimSuffix(filepath.Base(arg), ".jsonl"), nil
	}
	records, err := session.ReadRecords(config.SessionsDir(), arg)
	if err != nil {
		return nil, "", fmt.Errorf("reading session %s: %w", arg, err)
	}
	return records, arg, nil
}

func writeHTML(path string, records []session.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeTo(f, records)
}

func writeTo(w io.Writer, records []session.Record) error {
	if err := export.ExportHTML(export.FromRecords(records), w); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}
