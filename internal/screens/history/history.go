package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
	"github.com/abhisek/radstar/internal/ui/layout"
	"github.com/abhisek/radstar/internal/ui/theme"
)

// Limits for the journal reads done by the screen.
const (
	sessionLimit = 50
	eventLimit   = 200
)

type historyLoadedMsg struct {
	Sessions []journal.SessionSummary
	Events   map[string][]journal.Record // sessionID → events, oldest first
	Err      error
}

// HistoryScreen displays past viewing sessions from the journal.
type HistoryScreen struct {
	repo     journal.Repo
	sessions []journal.SessionSummary
	events   map[string][]journal.Record
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo journal.Repo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{Err: fmt.Errorf("journal is disabled")}
		}
		ctx := context.Background()

		sessions, err := repo.SessionSummaries(ctx, journal.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		recent, err := repo.Recent(ctx, journal.QueryOpts{Limit: eventLimit})
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Events: make(map[string][]journal.Record)}
		}

		// Recent is newest first; group oldest first per session.
		bySession := make(map[string][]journal.Record)
		for i := len(recent) - 1; i >= 0; i-- {
			r := recent[i]
			bySession[r.SessionID] = append(bySession[r.SessionID], r)
		}

		return historyLoadedMsg{Sessions: sessions, Events: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Open a case to start exploring!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Started.Local().Format("Jan 02, 2006 15:04")
		d := sess.Duration().Round(time.Second)
		durationStr := fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)

		caseStr := fmt.Sprintf("%d case", len(sess.Cases))
		if len(sess.Cases) != 1 {
			caseStr += "s"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s  %d node visits  %d events",
			prefix, dateStr, durationStr, caseStr, sess.NodeVisits, sess.Events)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			s.renderDetails(&b, sess, width)
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetails(b *strings.Builder, sess journal.SessionSummary, width int) {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	names := make([]string, 0, len(sess.Cases))
	for _, id := range sess.Cases {
		names = append(names, caseName(id))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Secondary).Render("    Cases: "+strings.Join(names, ", "))))
	b.WriteString("\n")

	events := s.events[sess.SessionID]
	if len(events) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			dim.Render("    No recent events for this session")))
		b.WriteString("\n")
		return
	}
	for _, e := range events {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render("    "+DescribeEvent(e.Event))))
		b.WriteString("\n")
	}
}

// DescribeEvent renders a journal event as a short sentence.
func DescribeEvent(e journal.Event) string {
	ts := e.Timestamp.Local().Format("15:04:05")
	name := caseName(e.CaseID)
	switch e.Kind {
	case journal.KindCaseOpened:
		return fmt.Sprintf("%s  opened %s", ts, name)
	case journal.KindNodeSelected:
		return fmt.Sprintf("%s  %s · %s node", ts, name, e.Node)
	case journal.KindDepthChanged:
		label := e.Detail
		if d, ok := casebook.ParseDepth(e.Detail); ok {
			label = d.Label()
		}
		return fmt.Sprintf("%s  depth → %s", ts, label)
	case journal.KindComparisonChanged:
		return fmt.Sprintf("%s  comparison → %s", ts, e.Detail)
	case journal.KindImageChanged:
		return fmt.Sprintf("%s  image → %s", ts, e.Detail)
	case journal.KindModeChanged:
		return fmt.Sprintf("%s  %s exploration", ts, e.Detail)
	}
	return fmt.Sprintf("%s  %s", ts, e.Kind)
}

func caseName(id string) string {
	if cs, err := casebook.Get(id); err == nil {
		return cs.DisplayName
	}
	return id
}
