// ABOUTME: "rpc" subcommand: serves the JSONL chat protocol over stdin/stdout
// ABOUTME: One conversation per process; logs go to stderr so stdout carries only responses

package main

import (
	"github.com/spf13/cobra"

	"github.com/mauromedda/cognichat-go/internal/log"
	"github.com/mauromedda/cognichat-go/internal/mode/rpc"
)

func newRPCCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rpc",
		Short: "Serve JSONL requests on stdin, one response per line on stdout",
		Long: "Methods: respond, list_modes, set_mode, get_status, reset, list_sessions.\n" +
			"Each request is {\"id\":\"...\",\"method\":\"...\",\"params\":{...}}.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Traces are only sent for requests with "trace": true.
			g.confidence = true
			e, err := g.setup("")
			if err != nil {
				return err
			}
			sess, err := g.openSession(e, "")
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			router := rpc.NewRouter()
			rpc.NewService(e.engine, sess, e.sessionsDir).Register(router)
			log.Debug("rpc: serving session %s", sess.ID)

			return rpc.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), router.Handle).Run(cmd.Context())
		},
	}
}
