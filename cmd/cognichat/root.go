// ABOUTME: Root cobra command: persistent flags shared by every subcommand and the interactive chat
// ABOUTME: Running cognichat without a subcommand opens the TUI, optionally resuming a saved session

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mauromedda/cognichat-go/internal/keybindings"
	"github.com/mauromedda/cognichat-go/internal/mode/interactive"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/session"
)

// globalFlags are the persistent flags; each maps to a settings override.
type globalFlags struct {
	mode      string
	catalog   string
	logFile   string
	logLevel  string
	verbose   bool
	noDelay   bool
	noSession bool

	// confidence is set by commands that print traces; it adds the
	// diagnostic confidence value to each trace.
	confidence bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var resume string

	cmd := &cobra.Command{
		Use:   "cognichat",
		Short: "Rule-based conversational assistant with nine personality modes",
		Long: "cognichat answers free-form messages with a deterministic, rule-based pipeline.\n" +
			"Without a subcommand it opens the interactive chat.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := g.setup("")
			if err != nil {
				return err
			}
			keyFiles := e.keyFiles()
			keys, err := keybindings.New(keyFiles[0], keyFiles[1])
			if err != nil {
				return err
			}
			sess, err := g.openSession(e, resume)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			return interactive.Run(cmd.Context(), interactive.Deps{
				Engine:      e.engine,
				Session:     sess,
				Settings:    e.settings,
				SessionsDir: e.sessionsDir,
				Reload:      e.reload,
				Version:     version,
				Keys:        keys,
				KeyFiles:    keyFiles,
			}, e.watchPaths())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.mode, "mode", "m", "", "Personality mode (general, study, writing, support, resume, grammar, travel, game, mental)")
	pf.StringVar(&g.catalog, "catalog", "", "YAML mode catalog overriding titles, descriptions, and examples")
	pf.StringVar(&g.logFile, "log-file", "", "Also write JSON logs to this file (rotated)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&g.noDelay, "no-delay", false, "Disable the cosmetic thinking delay")
	pf.BoolVar(&g.noSession, "no-session", false, "Do not save the session transcript")

	cmd.Flags().StringVarP(&resume, "resume", "r", "", "Resume a saved session by id")

	cmd.AddCommand(newAskCmd(g))
	cmd.AddCommand(newRPCCmd(g))
	cmd.AddCommand(newModesCmd(g))
	cmd.AddCommand(newSessionsCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// openSession resumes id or starts a new session in the configured mode.
// An explicit --mode switches a resumed session.
func (g *globalFlags) openSession(e *env, id string) (*session.Session, error) {
	if id == "" {
		m, err := e.defaultMode()
		if err != nil {
			return nil, err
		}
		sess, err := session.New(e.sessionsDir, m, e.cwd)
		if err != nil {
			return nil, fmt.Errorf("starting session: %w", err)
		}
		return sess, nil
	}

	if e.sessionsDir == "" {
		return nil, errors.New("cannot resume: session saving is disabled")
	}
	sess, err := session.Resume(e.sessionsDir, id)
	if err != nil {
		return nil, fmt.Errorf("resuming session %s: %w", id, err)
	}
	if g.mode != "" {
		var info personality.Info
		if info, err = e.engine.Registry().Lookup(g.mode); err == nil {
			err = sess.SetMode(info.ID)
		}
		if err != nil {
			_ = sess.Close()
			return nil, err
		}
	}
	return sess, nil
}
