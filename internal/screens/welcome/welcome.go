package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
	"github.com/abhisek/radstar/internal/ui/components"
	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

const (
	tickInterval = 100 * time.Millisecond
	revealStep   = 300 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

// revealOrder lights the default case's nodes from the image outwards.
var revealOrder = []casebook.Node{
	casebook.NodeCentral,
	casebook.NodeTechnical,
	casebook.NodeClinical,
	casebook.NodeAnatomical,
}

type tickMsg time.Time

// WelcomeScreen draws the default case's constellation one node at a time,
// then the banner. Any key moves on to the screen built by homeFactory.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// litNodes returns how many nodes of revealOrder are lit.
func (w *WelcomeScreen) litNodes() int {
	n := int(w.elapsed/revealStep) + 1
	return min(n, len(revealOrder))
}

// splashState marks the revealed nodes visited and the newest one selected.
func (w *WelcomeScreen) splashState() viewer.ViewState {
	lit := w.litNodes()
	st := viewer.ViewState{Visited: make(map[casebook.Node]bool, lit)}
	for _, n := range revealOrder[:lit] {
		st.Visited[n] = true
	}
	if lit < len(revealOrder) {
		st.Node = revealOrder[lit-1]
	}
	return st
}

func (w *WelcomeScreen) View(width, height int) string {
	graphW, graphH := min(width-4, 64), 12
	if height < 30 {
		graphH = 8
	}
	graph := components.NewConstellation(casebook.Default(), w.splashState(), casebook.NodeNone)
	sections := []string{graph.View(graphW, graphH)}

	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Read the image. Follow the constellation.")
		count := theme.Hint.Render(fmt.Sprintf("%d teaching cases · press any key to continue", len(casebook.IDs())))
		sections = append(sections, "", RenderBanner(width, height), "", tagline, count)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
