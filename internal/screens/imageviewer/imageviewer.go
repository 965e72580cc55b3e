// Package imageviewer is the integrated viewer: one or two image slots with
// modality and view selection, a comparison mode, and the framework text of
// the selected lens beneath them.
package imageviewer

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/imagery"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
	"github.com/abhisek/radstar/internal/screens/session"
	"github.com/abhisek/radstar/internal/ui/components"
	"github.com/abhisek/radstar/internal/ui/layout"
	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

// Screen is the image viewer for a session. It shares the session's
// controller with the constellation screen.
type Screen struct {
	sess    *session.Session
	focus   viewer.SlotID
	picker  *components.Picker
	caseIDs []string
	scroll  int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates an image viewer over sess.
func New(sess *session.Session) *Screen {
	return &Screen{sess: sess, focus: viewer.SlotPrimary}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Image Viewer"
}

func (s *Screen) HeaderStatus() layout.HeaderStatus {
	return s.sess.HeaderStatus()
}

func (s *Screen) CapturingInput() bool {
	return s.picker != nil
}

// Focus returns the slot that modality and view keys act on.
func (s *Screen) Focus() viewer.SlotID {
	return s.focus
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.picker != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Compare"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "m", Description: "Modality"},
		{Key: "←→", Description: "View"},
		{Key: "s", Description: "Compare"},
	}
	switch s.sess.Ctl.State().Comparison {
	case viewer.ComparisonCase:
		hints = append(hints,
			layout.KeyHint{Key: "p", Description: "Pick case"},
			layout.KeyHint{Key: "Tab", Description: "Slot"})
	case viewer.ComparisonSequence:
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Slot"})
	}
	return append(hints,
		layout.KeyHint{Key: "2-4", Description: "Lens"},
		layout.KeyHint{Key: "d", Description: "Depth"},
		layout.KeyHint{Key: "H", Description: "Cases"},
		layout.KeyHint{Key: "Esc", Description: "Back"})
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

	switch msg.String() {
	case "m":
		return s.cycleModality()
	case "right", "l", "]":
		return s.cycleView(1)
	case "left", "h", "[":
		return s.cycleView(-1)
	case "tab":
		if st.Comparison != viewer.ComparisonSingle {
			s.focus = 1 - s.focus
		}
	case "s":
		mode := ctl.CycleComparisonMode()
		if mode == viewer.ComparisonSingle {
			s.focus = viewer.SlotPrimary
		}
		return s.sess.Record(journal.KindComparisonChanged, mode.String())
	case "p":
		if st.Comparison == viewer.ComparisonCase {
			s.openPicker()
		}
	case "2", "3", "4":
		return s.selectLens(msg.String())
	case "d":
		ctl.SetKnowledgeDepth(st.Depth.Next())
		s.scroll = 0
		return s.sess.Record(journal.KindDepthChanged, ctl.State().Depth.String())
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	case "down", "j":
		s.scroll++
	case "q":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "H":
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
	return nil
}

func (s *Screen) slot() viewer.Slot {
	st := s.sess.Ctl.State()
	if s.focus == viewer.SlotSecondary && st.Comparison != viewer.ComparisonSingle {
		return st.Secondary
	}
	s.focus = viewer.SlotPrimary
	return st.Primary
}

func (s *Screen) cycleModality() tea.Cmd {
	sl := s.slot()
	next, ok := step(imagery.Modalities(sl.ImageSet), sl.Modality, 1)
	if !ok || next == sl.Modality {
		return nil
	}
	if !s.sess.Ctl.SetModality(s.focus, next) {
		return nil
	}
	return s.recordImage()
}

func (s *Screen) cycleView(delta int) tea.Cmd {
	sl := s.slot()
	next, ok := step(imagery.Views(sl.ImageSet, sl.Modality), sl.View, delta)
	if !ok || next == sl.View {
		return nil
	}
	if !s.sess.Ctl.SetView(s.focus, next) {
		return nil
	}
	return s.recordImage()
}

func (s *Screen) recordImage() tea.Cmd {
	sl := s.slot()
	name := "primary"
	if s.focus == viewer.SlotSecondary {
		name = "secondary"
	}
	return s.sess.Record(journal.KindImageChanged, fmt.Sprintf("%s %s/%s", name, sl.Modality, sl.View))
}

// selectLens shows the framework section for a lens key. Unlike the
// constellation, pressing the active tab again keeps it selected.
func (s *Screen) selectLens(key string) tea.Cmd {
	var target casebook.Node
	switch key {
	case "2":
		target = casebook.NodeTechnical
	case "3":
		target = casebook.NodeClinical
	case "4":
		target = casebook.NodeAnatomical
	}
	if s.sess.Ctl.State().Node == target {
		return nil
	}
	s.scroll = 0
	s.sess.Ctl.SelectNode(target)
	return s.sess.Record(journal.KindNodeSelected, "")
}

func (s *Screen) openPicker() {
	current := s.sess.Ctl.State()
	var names []string
	s.caseIDs = s.caseIDs[:0]
	sel := 0
	for _, sum := range casebook.List() {
		if sum.ID == current.CaseID {
			continue
		}
		if sum.ID == current.ComparisonCaseID {
			sel = len(names)
		}
		s.caseIDs = append(s.caseIDs, sum.ID)
		names = append(names, sum.DisplayName)
	}
	if len(names) == 0 {
		return
	}
	p := components.NewPicker("Compare with", names, sel)
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
	if !s.sess.Ctl.SetComparisonCase(s.caseIDs[p.Chosen]) {
		return nil
	}
	return s.sess.Record(journal.KindComparisonChanged, "case "+s.caseIDs[p.Chosen])
}

func (s *Screen) View(width, height int) string {
	ctl := s.sess.Ctl
	st := ctl.State()

	modes := []string{
		viewer.ComparisonSingle.Label(),
		viewer.ComparisonSequence.Label(),
		viewer.ComparisonCase.Label(),
	}
	sections := []string{components.Tabs(modes, int(st.Comparison)), ""}

	if s.picker != nil {
		sections = append(sections, components.Panel("", s.picker.View(), min(width, 60), theme.Primary))
		return strings.Join(sections, "\n")
	}

	sections = append(sections, s.renderImages(width))

	lensTabs := make([]string, 0, 3)
	active := -1
	for i, l := range casebook.AllLenses() {
		lensTabs = append(lensTabs, l.Label())
		if l.Node() == st.Node {
			active = i
		}
	}
	sections = append(sections, "", components.Tabs(lensTabs, active)+
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+st.Depth.Label()))

	used := lipgloss.Height(strings.Join(sections, "\n"))
	sections = append(sections, s.renderText(width, max(height-used-3, 3)))

	return strings.Join(sections, "\n")
}

func (s *Screen) renderImages(width int) string {
	ctl := s.sess.Ctl
	imgs := ctl.ResolveImages()
	st := ctl.State()

	primary := components.ImagePanel{
		Label:   "Primary",
		Image:   imgs.Primary,
		Focused: s.focus == viewer.SlotPrimary && imgs.Secondary != nil,
	}
	if imgs.Secondary == nil {
		return primary.View(width)
	}

	label := "Sequence"
	if st.Comparison == viewer.ComparisonCase {
		label = "Comparison"
	}
	secondary := components.ImagePanel{
		Label:   label,
		Image:   *imgs.Secondary,
		Focused: s.focus == viewer.SlotSecondary,
	}
	half := width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top, primary.View(half), secondary.View(width-half))
}

func (s *Screen) renderText(width, height int) string {
	ctl := s.sess.Ctl
	content, ok := ctl.ResolveContent()
	if !ok {
		return theme.Hint.Render("Press 2, 3 or 4 to read the technical, clinical or anatomical analysis.")
	}

	other, hasOther := ctl.ResolveComparisonContent()
	if !hasOther {
		body := components.ScrollWindow(textBody(content, components.InnerWidth(width)), &s.scroll, height)
		return components.Panel(content.CaseName, body, width, theme.Primary)
	}

	half := width / 2
	left := components.ScrollWindow(textBody(content, components.InnerWidth(half)), &s.scroll, height)
	offset := s.scroll
	right := components.ScrollWindow(textBody(other, components.InnerWidth(width-half)), &offset, height)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.Panel(content.CaseName, left, half, theme.Primary),
		components.Panel(other.CaseName, right, width-half, theme.Secondary))
}

func textBody(c viewer.Content, width int) string {
	var b strings.Builder
	if c.PrimaryConcept != "" {
		b.WriteString(theme.Strong.Width(width).Render(c.PrimaryConcept))
		b.WriteString("\n\n")
	}
	if c.Body == "" {
		b.WriteString(theme.Hint.Render("No text at this depth."))
	} else {
		b.WriteString(components.RichText(c.Body, width))
	}
	return b.String()
}

// step returns the option delta places from current, wrapping around.
// An unknown current yields the first option.
func step(options []string, current string, delta int) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	i := slices.Index(options, current)
	if i < 0 {
		return options[0], true
	}
	n := len(options)
	return options[((i+delta)%n+n)%n], true
}
