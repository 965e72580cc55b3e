// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/config"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/logger"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
	"github.com/abhisek/radstar/internal/screens/constellation"
	"github.com/abhisek/radstar/internal/screens/home"
	"github.com/abhisek/radstar/internal/screens/session"
	"github.com/abhisek/radstar/internal/screens/welcome"
	"github.com/abhisek/radstar/internal/ui/layout"
	"github.com/abhisek/radstar/internal/ui/theme"
)

// Options holds the dependencies of the TUI.
type Options struct {
	// Repo and Recorder are nil when the journal is disabled.
	Repo     journal.Repo
	Recorder *journal.Recorder
	Log      *logger.Logger
	// Config receives theme changes made with ctrl+t. Nil keeps them in memory.
	Config   *config.Config

	// Start is the case, depth and mode new sessions open with.
	Start session.Options

	// OpenCase skips the splash and case list and opens Start.CaseID.
	OpenCase bool
	// SkipSplash starts on the case list.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	log     *logger.Logger
	cfg     *config.Config
	width   int
	height  int
}

// newAppModel creates the model with its first screen: the splash, the case
// list, or a case opened on top of the case list.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	homeScreen := home.New(home.Deps{
		Repo:     opts.Repo,
		Recorder: opts.Recorder,
		Start:    opts.Start,
	})

	m := AppModel{log: log, cfg: opts.Config}
	switch {
	case opts.OpenCase:
		m.router = router.New(homeScreen)
		m.initCmd = m.router.Push(constellation.New(session.New(opts.Start, opts.Recorder)))
	case opts.SkipSplash:
		m.router = router.New(homeScreen)
	default:
		splash := welcome.New(func() screen.Screen { return homeScreen })
		m.router = router.New(splash)
		m.initCmd = splash.Init()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.toggleTheme()
			return m, nil
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// toggleTheme switches to the next palette and stores the choice.
func (m AppModel) toggleTheme() {
	palettes := theme.Palettes()
	next := palettes[0]
	for i, p := range palettes {
		if p.Name == theme.Current() {
			next = palettes[(i+1)%len(palettes)]
			break
		}
	}
	theme.Apply(next)
	m.log.Info("theme changed", "theme", next.Name)

	if m.cfg == nil {
		return
	}
	if err := m.cfg.Update(func(c *config.Config) { c.Theme = next.Name }); err != nil {
		m.log.Warn("theme not saved", "error", err)
	}
}

// capturing reports whether the active screen wants every key.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var status layout.HeaderStatus
	if active != nil {
		title = layout.Breadcrumb(m.router.Breadcrumb(), m.width/3)
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(),
			layout.KeyHint{Key: "Ctrl+T", Description: "Theme"},
			layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	m.log.Info("tui started",
		"case", opts.Start.CaseID,
		"depth", opts.Start.Depth.String(),
		"journal", opts.Recorder.Enabled(),
		"session", opts.Recorder.SessionID())

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		m.log.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	m.log.Info("tui stopped")
	return nil
}
