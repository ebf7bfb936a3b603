// ABOUTME: "version" subcommand printing the build version, commit, and date
// ABOUTME: Values are injected at build time through -ldflags

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cognichat %s (%s) built %s\n", version, commit, date)
		},
	}
}
