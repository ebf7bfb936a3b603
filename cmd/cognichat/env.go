// ABOUTME: Shared startup for every command: settings, logging, mode registry, and engine
// ABOUTME: The engine memoizes conversation state and publishes turn events to the debug log

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/mauromedda/cognichat-go/internal/config"
	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/eventbus"
	"github.com/mauromedda/cognichat-go/internal/log"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// env is the resolved runtime of one command invocation.
type env struct {
	cwd      string
	settings *config.Settings
	engine   *chat.Engine
	// sessionsDir is empty when session saving is disabled.
	sessionsDir string
	reload      func() (*config.Settings, error)
}

func (g *globalFlags) overrides(format string) config.Overrides {
	return config.Overrides{
		Mode:            g.mode,
		NoThinkingDelay: g.noDelay,
		NoSession:       g.noSession,
		LogFile:         g.logFile,
		LogLevel:        g.logLevel,
		Catalog:         g.catalog,
		OutputFormat:    format,
	}
}

// setup loads settings with the flags applied and builds the engine.
// format is the output format override of the calling command, if any.
func (g *globalFlags) setup(format string) (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	load := func() (*config.Settings, error) {
		s, err := config.Load(cwd)
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		return s.Apply(g.overrides(format))
	}
	settings, err := load()
	if err != nil {
		return nil, err
	}

	if err := setupLogging(settings, g.verbose); err != nil {
		return nil, err
	}

	registry, err := personality.NewRegistryFromFile(settings.Catalog)
	if err != nil {
		return nil, err
	}

	opts := []chat.Option{
		chat.WithRegistry(registry),
		chat.WithStateCache(convstate.NewCache(0)),
		chat.WithEventBus(turnLogger()),
	}
	if g.confidence {
		seed := uint64(time.Now().UnixNano())
		opts = append(opts, chat.WithDiagnosticConfidence(rand.NewPCG(seed, seed>>1)))
	}

	e := &env{
		cwd:      cwd,
		settings: settings,
		engine:   chat.New(opts...),
		reload:   load,
	}
	if settings.SessionsEnabled() {
		e.sessionsDir = config.SessionsDir()
	}
	return e, nil
}

func setupLogging(s *config.Settings, verbose bool) error {
	if s.LogLevel != "" {
		l, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(l)
	}
	if verbose {
		log.SetLevel(log.LevelDebug)
	}
	if err := log.Setup(log.Options{File: s.LogFile}); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	return nil
}

func turnLogger() *eventbus.Bus[chat.TurnEvent] {
	bus := eventbus.New[chat.TurnEvent]()
	bus.OnPanic(func(err error) {
		log.Error("turn event handler: %v", err)
	})
	bus.Subscribe(func(ev chat.TurnEvent) {
		tr := ev.Result.Trace
		log.Debug("turn mode=%s intent=%s strategy=%s template=%s",
			tr.Mode, tr.Classification.Intent, tr.Strategy, tr.TemplateKey())
	})
	return bus
}

// defaultMode resolves the configured mode, offering suggestions for typos.
func (e *env) defaultMode() (personality.Mode, error) {
	if e.settings.DefaultMode == "" {
		return personality.General, nil
	}
	info, err := e.engine.Registry().Lookup(e.settings.DefaultMode)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// keyFiles are the global and project keybinding files.
func (e *env) keyFiles() []string {
	return []string{config.UserKeybindingsFile(), config.ProjectKeybindingsFile(e.cwd)}
}

// watchPaths are the files whose changes trigger a hot reload.
func (e *env) watchPaths() []string {
	paths := []string{config.UserSettingsFile(), config.ProjectSettingsFile(e.cwd)}
	paths = append(paths, e.keyFiles()...)
	if e.settings.Catalog != "" {
		paths = append(paths, e.settings.Catalog)
	}
	return paths
}
