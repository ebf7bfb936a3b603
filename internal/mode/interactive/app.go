// ABOUTME: Root Bubble Tea model for the interactive chat: transcript viewport, input line, and footer
// ABOUTME: Routes submissions to the engine with a cosmetic thinking delay and dispatches slash commands

package interactive

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/cognichat-go/internal/commands"
	"github.com/mauromedda/cognichat-go/internal/config"
	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/export"
	"github.com/mauromedda/cognichat-go/internal/intent"
	"github.com/mauromedda/cognichat-go/internal/keybindings"
	"github.com/mauromedda/cognichat-go/internal/log"
	"github.com/mauromedda/cognichat-go/internal/mode"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/session"
	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// welcomeTemplateKey marks the greeting seeded into new sessions.
const welcomeTemplateKey = "welcome"

// chrome is the number of rows taken by header, separators, input, and footer.
const chrome = 5

// Deps are the external dependencies of the chat model.
type Deps struct {
	Engine   *chat.Engine
	Session  *session.Session
	Settings *config.Settings
	// SessionsDir is where the session transcript lives; used by /export.
	SessionsDir string
	// Reload re-reads settings with CLI overrides applied. Nil disables
	// /reload and hot reload.
	Reload  func() (*config.Settings, error)
	Version string
	// Rand drives the thinking delay jitter; nil uses the global source.
	Rand *rand.Rand
	Now  func() time.Time
	// MarkdownStyle is a glamour standard style; empty selects auto.
	MarkdownStyle string
	// Keys maps keys to chat actions; nil uses the defaults.
	Keys *keybindings.Manager
	// KeyFiles are the global and project keybinding files re-read by
	// /reload.
	KeyFiles []string
}

// Model is the root Bubble Tea model for the interactive chat.
type Model struct {
	deps     Deps
	styles   Styles
	markdown *MarkdownRenderer
	cmds     *commands.Registry
	detector *intent.TransitionDetector

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	entries  []entry
	thinking bool
	trace    bool
	delay    bool
	intent   string

	width, height int
	quitting      bool
}

// NewModel creates the chat model. A session without history is seeded
// with the welcome message as its first assistant turn.
func NewModel(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Settings == nil {
		deps.Settings = &config.Settings{}
	}
	if deps.Keys == nil {
		deps.Keys = keybindings.NewFromBindings(keybindings.Defaults())
	}
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Type a message, or /help for commands"
	ti.Prompt = "❯ "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 4096
	ti.Width = 76
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		deps:     deps,
		styles:   styles,
		markdown: NewMarkdownRenderer(deps.MarkdownStyle),
		cmds:     commands.NewRegistry(),
		detector: intent.NewTransitionDetector(),
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		delay:    deps.Settings.ThinkingDelayEnabled(),
		width:    80,
		height:   20 + chrome,
	}

	sess := deps.Session
	if len(sess.History) == 0 {
		if err := sess.AddAssistant(session.AssistantData{
			Content:     mode.WelcomeMessage,
			TemplateKey: welcomeTemplateKey,
		}, deps.Now()); err != nil {
			log.Warn("interactive: recording welcome: %v", err)
		}
	}
	for _, t := range sess.History {
		kind := entryAssistant
		if t.Role == convstate.RoleUser {
			kind = entryUser
		}
		m.entries = append(m.entries, entry{kind: kind, text: t.Content})
	}
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case answerMsg:
		m.thinking = false
		m.handleAnswer(msg)
		m.refresh()
		return m, nil

	case reloadMsg:
		m.notify(m.reload())
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.deps.Keys.ActionFor(msg.String()) {
		case keybindings.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case keybindings.ActionSubmit:
			return m.submit()
		case keybindings.ActionScrollUp:
			m.viewport.HalfViewUp()
			return m, nil
		case keybindings.ActionScrollDown:
			m.viewport.HalfViewDown()
			return m, nil
		case keybindings.ActionToggleTrace:
			m.trace = !m.trace
			m.notify("Trace: "+onOff(m.trace)+".", nil)
			m.refresh()
			return m, nil
		case keybindings.ActionClear:
			if m.thinking {
				return m, nil
			}
			m.notify(fmt.Sprintf("Conversation cleared (%d turns).", m.clearHistory()), nil)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders header, transcript, input line, and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sep := m.styles.Border.Render(strings.Repeat("─", max(m.width, 1)))

	input := m.input.View()
	if m.thinking {
		input = m.spinner.View() + " " + m.styles.Meta.Render("thinking...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		sep,
		m.viewport.View(),
		sep,
		input,
		m.footer(),
	)
}

func (m Model) header() string {
	const name = "cognichat"
	info := m.currentInfo()
	rest := runewidth.Truncate(info.Title+" · "+info.Description, max(m.width-len(name)-1, 1), "…")
	return m.styles.Header.Render(name) + " " + m.styles.Mode.Render(rest)
}

func (m Model) footer() string {
	sess := m.deps.Session
	parts := []string{
		"session " + shortID(sess.ID),
		fmt.Sprintf("%d turns", len(sess.History)),
	}
	if m.intent != "" {
		parts = append(parts, "intent "+m.intent)
	}
	if m.trace {
		parts = append(parts, "trace")
	}
	if !m.delay {
		parts = append(parts, "no delay")
	}
	parts = append(parts, "/help")
	line := strings.Join(parts, " · ")
	return m.styles.Footer.Render(runewidth.Truncate(line, max(m.width, 1), "…"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m Model) currentInfo() personality.Info {
	info, err := m.deps.Engine.Registry().Lookup(string(m.deps.Session.Mode))
	if err != nil {
		return personality.Info{ID: m.deps.Session.Mode, Title: string(m.deps.Session.Mode)}
	}
	return info
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.thinking {
		return m, nil
	}
	m.input.Reset()

	if commands.IsCommand(text) {
		return m.runCommand(text)
	}

	m.entries = append(m.entries, entry{kind: entryUser, text: text})
	m.thinking = true
	m.refresh()
	return m, tea.Batch(m.answerCmd(text), m.spinner.Tick)
}

// answerCmd computes the answer against a snapshot of the history. The
// thinking delay, when enabled, only postpones delivery.
func (m Model) answerCmd(utterance string) tea.Cmd {
	engine := m.deps.Engine
	history := m.deps.Session.History
	md := m.deps.Session.Mode
	compute := func() tea.Msg {
		res, err := mode.Answer(engine, utterance, history, md)
		return answerMsg{utterance: utterance, result: res, err: err}
	}
	if !m.delay {
		return compute
	}
	d := mode.ThinkingDelay(utterance, m.deps.Rand)
	return tea.Tick(d, func(time.Time) tea.Msg { return compute() })
}

func (m *Model) handleAnswer(msg answerMsg) {
	res := msg.result
	e := entry{kind: entryAssistant, text: res.Text}
	if msg.err == nil {
		e.meta = res.Trace.TemplateKey()
		if tr := m.detector.Detect(intent.Classification{
			Intent: res.Trace.Classification.Intent,
			Signal: res.Trace.Signal,
		}); tr != nil {
			log.Debug("interactive: intent transition %s", tr.Reason)
		}
		if cur, ok := m.detector.Current(); ok {
			m.intent = cur.String()
		}
		if m.trace {
			var buf bytes.Buffer
			mode.WriteTrace(&buf, res.Trace)
			e.trace = strings.TrimRight(buf.String(), "\n")
		}
	}
	m.entries = append(m.entries, e)

	now := m.deps.Now()
	sess := m.deps.Session
	if err := sess.AddUser(msg.utterance, now); err != nil {
		m.fail(fmt.Errorf("saving session: %w", err))
		return
	}
	if err := sess.AddAssistant(session.AssistantData{
		Content:     res.Text,
		TemplateKey: res.Trace.TemplateKey(),
		Strategy:    string(res.Trace.Strategy),
	}, now); err != nil {
		m.fail(fmt.Errorf("saving session: %w", err))
	}
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	var quit bool
	ctx := m.commandContext(func() { quit = true })
	out, err := m.cmds.Dispatch(ctx, input)
	if err != nil {
		m.fail(err)
	} else if out != "" {
		m.entries = append(m.entries, entry{kind: entryNotice, text: out})
	}
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	m.refresh()
	return m, nil
}

// commandContext exposes the model to slash commands. Callbacks mutate m
// and run synchronously inside Dispatch.
func (m *Model) commandContext(exit func()) *commands.CommandContext {
	sess := m.deps.Session
	registry := m.deps.Engine.Registry()
	return &commands.CommandContext{
		Mode:       sess.Mode,
		SessionID:  sess.ID,
		Persistent: sess.Persistent(),
		Turns:      len(sess.History),
		Version:    m.deps.Version,
		SetMode: func(name string) (personality.Info, error) {
			info, err := registry.Lookup(name)
			if err != nil {
				return personality.Info{}, err
			}
			if err := sess.SetMode(info.ID); err != nil {
				return personality.Info{}, fmt.Errorf("saving session: %w", err)
			}
			return info, nil
		},
		ListModes: registry.Modes,
		ClearHistory: m.clearHistory,
		ToggleTrace: func() bool {
			m.trace = !m.trace
			return m.trace
		},
		ToggleDelay: func() bool {
			m.delay = !m.delay
			return m.delay
		},
		ExitFn:             exit,
		ExportConversation: m.exportTo,
		ReloadFn:           m.reload,
		Hotkeys:            m.deps.Keys.FormatAll,
	}
}

// clearHistory drops the in-memory conversation and returns the number
// of turns removed. The transcript keeps what was already written.
func (m *Model) clearHistory() int {
	sess := m.deps.Session
	n := len(sess.History)
	sess.History = nil
	m.entries = nil
	m.detector = intent.NewTransitionDetector()
	m.intent = ""
	return n
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) exportTo(path string) error {
	records, err := session.ReadRecords(m.deps.SessionsDir, m.deps.Session.ID)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.ExportHTML(export.FromRecords(records), f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// reload re-reads settings and reapplies the mode catalog.
func (m *Model) reload() (string, error) {
	if m.deps.Reload == nil {
		return "", fmt.Errorf("reload: %w", commands.ErrUnavailable)
	}
	s, err := m.deps.Reload()
	if err != nil {
		return "", fmt.Errorf("reload settings: %w", err)
	}

	var catalog *personality.Catalog
	if s.Catalog != "" {
		if catalog, err = personality.LoadCatalog(s.Catalog); err != nil {
			return "", fmt.Errorf("reload catalog: %w", err)
		}
	}
	if len(m.deps.KeyFiles) == 2 {
		if err := m.deps.Keys.Reload(m.deps.KeyFiles[0], m.deps.KeyFiles[1]); err != nil {
			return "", fmt.Errorf("reload keybindings: %w", err)
		}
	}
	m.deps.Engine.Registry().Apply(catalog)
	m.deps.Settings = s
	m.delay = s.ThinkingDelayEnabled()
	log.Info("interactive: settings reloaded")

	msg := "Settings reloaded."
	if s.Catalog != "" {
		msg = "Settings and mode catalog reloaded."
	}
	return msg, nil
}

func (m *Model) notify(text string, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	m.entries = append(m.entries, entry{kind: entryNotice, text: text})
}

func (m *Model) fail(err error) {
	log.Warn("interactive: %v", err)
	m.entries = append(m.entries, entry{kind: entryError, text: err.Error()})
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	width := max(m.viewport.Width, 20)
	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		blocks = append(blocks, m.renderEntry(e, width))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *Model) renderEntry(e entry, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	switch e.kind {
	case entryUser:
		return m.styles.User.Render("You") + "\n" + wrap.Render(e.text)
	case entryNotice:
		return m.styles.Notice.Render(wrap.Render(e.text))
	case entryError:
		return m.styles.Error.Render(wrap.Render("error: " + e.text))
	}

	var b strings.Builder
	b.WriteString(m.styles.Assistant.Render("Assistant"))
	if e.meta != "" {
		b.WriteString(" " + m.styles.Meta.Render(e.meta))
	}
	b.WriteString("\n")
	b.WriteString(m.markdown.Render(e.text, width))
	if e.trace != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Trace.Render(e.trace))
	}
	return b.String()
}
