// ABOUTME: Entry point for the interactive chat TUI
// ABOUTME: Creates the tea.Program, wires the settings watcher to hot reload, and blocks until exit

package interactive

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/cognichat-go/internal/config"
	"github.com/mauromedda/cognichat-go/internal/log"
)

// Run starts the interactive chat. Blocks until the user exits or ctx is
// cancelled. Changes to any of watchPaths trigger a settings reload.
func Run(ctx context.Context, deps Deps, watchPaths []string) error {
	p := tea.NewProgram(
		NewModel(deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)

	if deps.Reload != nil && len(watchPaths) > 0 {
		w := config.NewWatcher(watchPaths, func() { p.Send(reloadMsg{}) })
		if err := w.Start(ctx); err != nil {
			log.Warn("interactive: settings hot reload disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
