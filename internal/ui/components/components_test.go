package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A"},
		{Label: "B", Disabled: true},
		{Label: "C"},
	})
	m, _ = m.Update(key('j'))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(key('k'))
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestMenuHomeEndAndSelect(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "none", Disabled: true},
		{Label: "A"},
		{Label: "B"},
		{Label: "C", Disabled: true},
	})
	if m.Selected != 1 {
		t.Fatalf("initial Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if m.Selected != 2 {
		t.Errorf("end: Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if m.Selected != 1 {
		t.Errorf("home: Selected = %d, want 1", m.Selected)
	}
	if m.Select(3) || m.Select(9) {
		t.Error("Select accepted a disabled or missing item")
	}
	if !m.Select(2) || m.Selected != 2 {
		t.Error("Select(2) failed")
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("action not run on enter")
	}
}

func TestPicker(t *testing.T) {
	p := NewPicker("Compare with", []string{"a", "b", "c"}, 1)
	p, _ = p.Update(key('j'))
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	got, ok := p.Value()
	if !ok || got != "c" {
		t.Errorf("Value() = %q, %v", got, ok)
	}

	p = NewPicker("x", []string{"a"}, 0)
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := p.Value(); ok || !p.Cancelled {
		t.Error("esc should cancel")
	}
}

func TestProgressBarPercent(t *testing.T) {
	v := NewExplorationBar(40, 40).View()
	if !strings.Contains(v, "40%") {
		t.Errorf("progress view = %q", v)
	}
}

func TestProgressBarFitsWidth(t *testing.T) {
	for _, w := range []int{24, 40, 60} {
		v := NewExplorationBar(60, w).View()
		if got := lipgloss.Width(v); got > w {
			t.Errorf("width %d: rendered %d cells", w, got)
		}
	}
	if v := (ProgressBar{Percent: 2}).View(); lipgloss.Width(v) != 4 {
		t.Errorf("overfull bar = %q", v)
	}
}

func TestRichText(t *testing.T) {
	out := RichText("**Bold** lead\n\n• first item\n→ look here", 40)
	for _, want := range []string{"Bold", "lead", "•", "first item", "→", "look here"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**") {
		t.Errorf("markup not stripped:\n%s", out)
	}
}

func TestMarkdownStyleFollowsPalette(t *testing.T) {
	defer theme.Apply(theme.Dark)

	theme.Apply(theme.Light)
	st := markdownStyle()
	if st.BlockQuote.Color == nil || *st.BlockQuote.Color != "#B45309" {
		t.Errorf("hint color = %v, want light accent", st.BlockQuote.Color)
	}
	if st.Item.BlockPrefix != "• " || *st.BlockQuote.IndentToken != "→ " {
		t.Errorf("prefixes = %q, %q", st.Item.BlockPrefix, *st.BlockQuote.IndentToken)
	}

	theme.Apply(theme.Dark)
	if got := *markdownStyle().Emph.Color; got != "#10B981" {
		t.Errorf("dark term color = %s", got)
	}
}

func TestConstellationView(t *testing.T) {
	ctl := viewer.New("gas-bubbles-swi")
	ctl.SelectNode(casebook.NodeTechnical)

	c := NewConstellation(ctl.Case(), ctl.State(), casebook.NodeClinical)
	out := c.View(90, 16)

	for _, want := range []string{"1 CASE", "2 TECHNICAL", "3 CLINICAL", "4 ANATOMICAL", "◉", "★"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if got := len(strings.Split(out, "\n")); got != 16 {
		t.Errorf("rows = %d, want 16", got)
	}
}

func TestConstellationCompact(t *testing.T) {
	ctl := viewer.New("trauma-gas")
	out := NewConstellation(ctl.Case(), ctl.State(), casebook.NodeNone).View(20, 4)
	if len(strings.Split(out, "\n")) != 4 {
		t.Errorf("compact view should list four nodes:\n%s", out)
	}
}

func TestImagePanel(t *testing.T) {
	ctl := viewer.New("gas-bubbles-swi")
	out := ImagePanel{Label: "Primary", Image: ctl.ResolveImages().Primary}.View(70)
	if !strings.Contains(out, "[SWI]") || !strings.Contains(out, "gasbubbles_mri_swi.jpg") {
		t.Errorf("unexpected panel:\n%s", out)
	}

	ctl = viewer.New("normal-brain")
	out = ImagePanel{Label: "Primary", Image: ctl.ResolveImages().Primary}.View(70)
	if !strings.Contains(out, "[SWI]") || !strings.Contains(out, "No image available") {
		t.Errorf("missing empty-image notice:\n%s", out)
	}
}

func TestTabs(t *testing.T) {
	out := Tabs([]string{"TECHNICAL", "CLINICAL"}, 1)
	if !strings.Contains(out, "▸ CLINICAL") {
		t.Errorf("active tab not marked:\n%s", out)
	}
}
