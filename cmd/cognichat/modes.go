// ABOUTME: "modes" subcommand: lists the personality modes with titles, descriptions, and examples
// ABOUTME: Colored with fatih/color on terminals; --json prints the registry as JSON

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mauromedda/cognichat-go/internal/personality"
)

func newModesCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List available personality modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := g.setup("")
			if err != nil {
				return err
			}
			modes := e.engine.Modes()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(modes)
			}
			current, err := e.defaultMode()
			if err != nil {
				return err
			}
			writeModes(cmd.OutOrStdout(), modes, current)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the modes as JSON")
	return cmd
}

func writeModes(w io.Writer, modes []personality.Info, current personality.Mode) {
	id := color.New(color.FgCyan, color.Bold)
	title := color.New(color.Bold)
	faint := color.New(color.Faint)
	mark := color.New(color.FgGreen)

	for _, info := range modes {
		marker := "  "
		if info.ID == current {
			marker = mark.Sprint("* ")
		}
		fmt.Fprintf(w, "%s%s  %s\n", marker, id.Sprintf("%-8s", info.ID), title.Sprint(info.Title))
		fmt.Fprintf(w, "    %s\n", info.Description)
		if len(info.Examples) > 0 {
			fmt.Fprintf(w, "    %s\n", faint.Sprint(strings.Join(info.Examples, " · ")))
		}
	}
}
