package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
	"github.com/abhisek/radstar/internal/screens/constellation"
	"github.com/abhisek/radstar/internal/screens/history"
	"github.com/abhisek/radstar/internal/screens/session"
	"github.com/abhisek/radstar/internal/ui/components"
	"github.com/abhisek/radstar/internal/ui/layout"
)

// summaryTimeout bounds the journal read done when the screen is built.
const summaryTimeout = 2 * time.Second

// Deps are the collaborators of the home screen. Repo and Recorder may be nil
// when journaling is disabled.
type Deps struct {
	Repo     journal.Repo
	Recorder *journal.Recorder
	// Start holds the depth and mode new sessions open with. Start.CaseID
	// is preselected in the list.
	Start session.Options
}

// HomeScreen is the case selector.
type HomeScreen struct {
	deps      Deps
	filter    components.TextInput
	filtering bool
	menu      components.Menu
	caseIDs   []string // case id per menu item, "" for other items
	sessions  int
	lastCase  string
	motif     MotifVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.InputCapturer = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:   deps,
		filter: components.NewTextInput("filter cases", 40),
	}
	h.filter.Model.Blur()
	h.loadSummaries()
	h.rebuildMenu(deps.Start.CaseID)
	return h
}

// loadSummaries refreshes the stats bar and motif from the journal. Read
// errors leave the previous values in place.
func (h *HomeScreen) loadSummaries() {
	if h.deps.Repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
	defer cancel()
	summaries, err := h.deps.Repo.SessionSummaries(ctx, journal.QueryOpts{})
	if err != nil || len(summaries) == 0 {
		return
	}
	h.sessions = len(summaries)
	h.lastCase = summaries[0].LastCaseID
	h.motif = MotifReturning
	if summaries[0].NodeVisits >= len(casebook.AllNodes()) {
		h.motif = MotifComplete
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads journal stats after a case or the history screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.loadSummaries()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Cases"
}

func (h *HomeScreen) CapturingInput() bool {
	return h.filtering
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if h.filtering {
		if isKey {
			switch kmsg.String() {
			case "enter":
				h.filtering = false
				h.filter.Model.Blur()
				return h, nil
			case "esc":
				h.filtering = false
				h.filter.Reset()
				h.filter.Model.Blur()
				h.rebuildMenu(h.selectedCase())
				return h, nil
			}
		}
		var cmd tea.Cmd
		h.filter, cmd = h.filter.Update(msg)
		h.rebuildMenu(h.selectedCase())
		return h, cmd
	}

	if isKey && kmsg.String() == "/" {
		h.filtering = true
		return h, h.filter.Model.Focus()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Matches reports whether every word of a lowercase query occurs in the
// case id, display name or description.
func Matches(s casebook.Summary, query string) bool {
	haystack := s.ID + " " + strings.ToLower(s.DisplayName) + " " + strings.ToLower(s.ShortDescription)
	for _, word := range strings.Fields(query) {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}

func (h *HomeScreen) selectedCase() string {
	if h.menu.Selected >= 0 && h.menu.Selected < len(h.caseIDs) {
		return h.caseIDs[h.menu.Selected]
	}
	return ""
}

// rebuildMenu lists the cases matching the filter, keeping keep selected
// when it is still listed.
func (h *HomeScreen) rebuildMenu(keep string) {
	query := h.filter.Query()

	var items []components.MenuItem
	h.caseIDs = h.caseIDs[:0]
	for _, sum := range casebook.List() {
		if !Matches(sum, query) {
			continue
		}
		id := sum.ID
		label := sum.DisplayName
		if id == h.lastCase {
			label += "  ◂ last"
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: sum.ShortDescription,
			Action: func() tea.Cmd { return h.openCase(id) },
		})
		h.caseIDs = append(h.caseIDs, id)
	}
	if len(items) == 0 {
		items = append(items, components.MenuItem{Label: "No matching cases", Disabled: true})
		h.caseIDs = append(h.caseIDs, "")
	}

	repo := h.deps.Repo
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: repo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(repo)}
				}
			},
		},
		components.MenuItem{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	h.caseIDs = append(h.caseIDs, "", "")

	h.menu = components.NewMenu(items)
	for i, id := range h.caseIDs {
		if id != "" && id == keep {
			h.menu.Select(i)
		}
	}
}

func (h *HomeScreen) openCase(id string) tea.Cmd {
	opts := h.deps.Start
	opts.CaseID = id
	next := constellation.New(session.New(opts, h.deps.Recorder))
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height by adding
	// back header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, RenderMotif(h.motif))
	}
	sections = append(sections, renderStatsBar(len(casebook.IDs()), h.sessions, h.lastCaseName(), cw, compact))

	if h.filtering || h.filter.Value() != "" {
		sections = append(sections, renderBlock(h.filter.View(), cw))
	}
	sections = append(sections, renderBlock(h.menu.View(), cw))

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) lastCaseName() string {
	if h.lastCase == "" {
		return ""
	}
	cs, err := casebook.Get(h.lastCase)
	if err != nil {
		return h.lastCase
	}
	return cs.DisplayName
}
