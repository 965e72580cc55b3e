// Package constellation is the main case screen: the node graph beside a
// detail panel for the selected node.
package constellation

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
	"github.com/abhisek/radstar/internal/screens/imageviewer"
	"github.com/abhisek/radstar/internal/screens/session"
	"github.com/abhisek/radstar/internal/ui/components"
	"github.com/abhisek/radstar/internal/ui/layout"
	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

// scrollPage is how far pgup/pgdown move the detail panel.
const scrollPage = 5

// Screen shows one case as a constellation of four nodes.
type Screen struct {
	sess    *session.Session
	picker  *components.Picker
	caseIDs []string
	scroll  int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates the screen for the session's current case.
func New(sess *session.Session) *Screen {
	return &Screen{sess: sess}
}

func (s *Screen) Init() tea.Cmd {
	return s.sess.Record(journal.KindCaseOpened, "")
}

func (s *Screen) Title() string {
	return "Constellation"
}

func (s *Screen) HeaderStatus() layout.HeaderStatus {
	return s.sess.HeaderStatus()
}

func (s *Screen) CapturingInput() bool {
	return s.picker != nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.picker != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open case"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Node"},
		{Key: "d", Description: "Depth"},
		{Key: "g", Description: "Guided"},
		{Key: "c", Description: "Case"},
		{Key: "v", Description: "Images"},
	}
	if s.sess.Ctl.State().Mode == viewer.ModeGuided {
		hints = append(hints, layout.KeyHint{Key: "n", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.picker != nil {
		return s, s.updatePicker(kmsg)
	}
	return s, s.handleKey(kmsg)
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctl := s.sess.Ctl
	st := ctl.State()

	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		return s.selectNode(nodeForKey(key))
	case "tab", "right", "l":
		return s.selectNode(adjacentNode(st.Node, 1))
	case "shift+tab", "left", "h":
		return s.selectNode(adjacentNode(st.Node, -1))
	case "n":
		if rec := ctl.RecommendedNode(); rec != casebook.NodeNone && rec != st.Node {
			return s.selectNode(rec)
		}
	case "x":
		ctl.ClearNode()
		s.scroll = 0
	case "d":
		ctl.SetKnowledgeDepth(st.Depth.Next())
		s.scroll = 0
		return s.sess.Record(journal.KindDepthChanged, ctl.State().Depth.String())
	case "g":
		mode := viewer.ModeGuided
		if st.Mode == viewer.ModeGuided {
			mode = viewer.ModeFree
		}
		ctl.SetExplorationMode(mode)
		return s.sess.Record(journal.KindModeChanged, mode.String())
	case "c":
		s.openPicker()
	case "v", "i":
		return s.openViewer()
	case "enter":
		if st.Node == casebook.NodeCentral {
			return s.openViewer()
		}
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	case "down", "j":
		s.scroll++
	case "pgup":
		s.scroll = max(s.scroll-scrollPage, 0)
	case "pgdown":
		s.scroll += scrollPage
	case "q":
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

// selectNode toggles n and records the visit when a node ends up selected.
func (s *Screen) selectNode(n casebook.Node) tea.Cmd {
	s.scroll = 0
	if s.sess.Ctl.SelectNode(n) == casebook.NodeNone {
		return nil
	}
	return s.sess.Record(journal.KindNodeSelected, "")
}

func (s *Screen) openViewer() tea.Cmd {
	v := imageviewer.New(s.sess)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: v}
	}
}

func (s *Screen) openPicker() {
	current := s.sess.Ctl.State().CaseID
	var names []string
	s.caseIDs = s.caseIDs[:0]
	sel := 0
	for i, sum := range casebook.List() {
		if sum.ID == current {
			sel = i
		}
		s.caseIDs = append(s.caseIDs, sum.ID)
		names = append(names, sum.DisplayName)
	}
	p := components.NewPicker("Switch case", names, sel)
	s.picker = &p
}

func (s *Screen) updatePicker(msg tea.KeyMsg) tea.Cmd {
	p, _ := s.picker.Update(msg)
	if !p.Done {
		s.picker = &p
		return nil
	}
	s.picker = nil
	if p.Cancelled || p.Chosen < 0 || p.Chosen >= len(s.caseIDs) {
		return nil
	}
	id := s.caseIDs[p.Chosen]
	if id == s.sess.Ctl.State().CaseID {
		return nil
	}
	s.sess.Ctl.SelectCase(id)
	s.scroll = 0
	return s.sess.Record(journal.KindCaseOpened, "")
}

func (s *Screen) View(width, height int) string {
	ctl := s.sess.Ctl
	st := ctl.State()
	graph := components.NewConstellation(ctl.Case(), st, ctl.RecommendedNode())

	if layout.IsCompactWidth(width) {
		graphH := min(height/2, 12)
		top := graph.View(width, graphH)
		detail := s.renderDetail(width, height-graphH-1)
		return top + "\n" + detail
	}

	graphW := width * 45 / 100
	detailW := width - graphW - 1
	left := lipgloss.JoinVertical(lipgloss.Left,
		graph.View(graphW, height-2),
		"",
		components.NewExplorationBar(st.Progress, graphW-2).View(),
	)
	right := s.renderDetail(detailW, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (s *Screen) renderDetail(width, height int) string {
	if s.picker != nil {
		return components.Panel("", s.picker.View(), width, theme.Primary)
	}

	ctl := s.sess.Ctl
	st := ctl.State()
	cs := ctl.Case()
	inner := components.InnerWidth(width)

	var title, body string
	accent := theme.NodeColor(cs.Colors.Of(st.Node))
	switch st.Node {
	case casebook.NodeNone:
		title = cs.DisplayName
		body = renderOverview(cs, inner)
		accent = theme.Border
	case casebook.NodeCentral:
		title = cs.Labels.Of(casebook.NodeCentral).Title
		if title == "" {
			title = cs.DisplayName
		}
		body = renderPatient(cs, ctl.ResolveImages().Primary, inner)
	default:
		content, ok := ctl.ResolveContent()
		if !ok {
			title = components.NodeHeading(st.Node)
			body = theme.Hint.Render("No analysis for this node.")
			break
		}
		title = content.Lens.Label()
		body = renderContent(content, inner)
	}

	depthTabs := make([]string, 0, 3)
	active := 0
	for i, d := range casebook.AllDepths() {
		depthTabs = append(depthTabs, d.Label())
		if d == st.Depth {
			active = i
		}
	}
	header := components.Tabs(depthTabs, active)

	// Panel border and title take three rows, the tab row and gap two more.
	visible := max(height-5-lipgloss.Height(header), 3)
	body = components.ScrollWindow(body, &s.scroll, visible)

	return header + "\n\n" + components.Panel(title, body, width, accent)
}

func renderOverview(cs casebook.Case, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(cs.ShortDescription))
	b.WriteString("\n\n")
	for _, n := range casebook.AllNodes() {
		label := cs.Labels.Of(n)
		line := fmt.Sprintf("%s  %s", components.NodeKey(n), components.NodeHeading(n))
		if label.Title != "" {
			line += " · " + label.Title
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.NodeColor(cs.Colors.Of(n))).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Select a node to begin exploring."))
	return b.String()
}

func renderPatient(cs casebook.Case, img viewer.ImageRef, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return dim.Render(fmt.Sprintf("%-13s", label)) +
			lipgloss.NewStyle().Width(max(width-13, 10)).Foreground(theme.Text).Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Patient", cs.Patient.Patient))
	b.WriteString(row("Presentation", cs.Patient.Presentation))
	b.WriteString(row("Finding", cs.Patient.Finding))
	if cs.Patient.Note != "" {
		b.WriteString("\n")
		b.WriteString(components.RichText(cs.Patient.Note, width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if img.Available() {
		b.WriteString(theme.Strong.Render("▣ " + img.Modality + " · " + img.View))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Render("Press v to open the image viewer."))
	return b.String()
}

func renderContent(c viewer.Content, width int) string {
	var b strings.Builder
	if c.PrimaryConcept != "" {
		b.WriteString(theme.Strong.Width(width).Render(c.PrimaryConcept))
		b.WriteString("\n\n")
	}
	if c.DiscoveryInsight != "" {
		b.WriteString(components.RichText("→ "+c.DiscoveryInsight, width))
		b.WriteString("\n\n")
	}
	if c.Body == "" {
		b.WriteString(theme.Hint.Render("No text at this depth."))
	} else {
		b.WriteString(components.RichText(c.Body, width))
	}
	return b.String()
}

func nodeForKey(key string) casebook.Node {
	for _, n := range casebook.AllNodes() {
		if components.NodeKey(n) == key {
			return n
		}
	}
	return casebook.NodeNone
}

// adjacentNode steps through the nodes in key order, wrapping around.
// From the idle state it starts at the central node.
func adjacentNode(cur casebook.Node, delta int) casebook.Node {
	nodes := casebook.AllNodes()
	if cur == casebook.NodeNone {
		return nodes[0]
	}
	for i, n := range nodes {
		if n == cur {
			return nodes[(i+delta+len(nodes))%len(nodes)]
		}
	}
	return nodes[0]
}
