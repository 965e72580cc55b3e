package imageviewer

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/logger"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screens/session"
	"github.com/abhisek/radstar/internal/viewer"
)

type mockRepo struct {
	events []journal.Event
}

func (m *mockRepo) Append(_ context.Context, e journal.Event) (int64, error) {
	m.events = append(m.events, e)
	return int64(len(m.events)), nil
}

func (m *mockRepo) Recent(_ context.Context, _ journal.QueryOpts) ([]journal.Record, error) {
	return nil, nil
}

func (m *mockRepo) SessionSummaries(_ context.Context, _ journal.QueryOpts) ([]journal.SessionSummary, error) {
	return nil, nil
}

func newTestViewer(caseID string) (*Screen, *mockRepo) {
	repo := &mockRepo{}
	sess := session.New(session.Options{CaseID: caseID, Depth: casebook.DepthClinicalApplication},
		journal.NewRecorder(repo, logger.Nop()))
	return New(sess), repo
}

func press(s *Screen, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "tab":
			msg = tea.KeyPressMsg{Code: tea.KeyTab}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "right":
			msg = tea.KeyPressMsg{Code: tea.KeyRight}
		case "left":
			msg = tea.KeyPressMsg{Code: tea.KeyLeft}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		_, cmd = s.Update(msg)
		if cmd != nil {
			cmd()
		}
	}
	return cmd
}

func TestModalityCycle(t *testing.T) {
	s, repo := newTestViewer("trauma-gas")

	press(s, "m")
	st := s.sess.Ctl.State()
	if st.Primary.Modality != "CT Venogram" || st.Primary.View != "Axial venogram" {
		t.Errorf("after m: %+v", st.Primary)
	}
	if len(repo.events) != 1 || repo.events[0].Kind != journal.KindImageChanged ||
		repo.events[0].Detail != "primary CT Venogram/Axial venogram" {
		t.Errorf("unexpected events %+v", repo.events)
	}

	press(s, "m")
	if got := s.sess.Ctl.State().Primary.Modality; got != "CT Head" {
		t.Errorf("modality should wrap, got %q", got)
	}
}

func TestSingleModalityIsNoop(t *testing.T) {
	s, repo := newTestViewer("gas-bubbles-swi")
	if cmd := press(s, "m"); cmd != nil {
		t.Error("cycling a single modality should not record")
	}
	if len(repo.events) != 0 {
		t.Errorf("events = %+v", repo.events)
	}
}

func TestViewCycleWraps(t *testing.T) {
	s, _ := newTestViewer("gas-bubbles-swi")

	press(s, "right")
	if got := s.sess.Ctl.State().Primary.View; got != "FLAIR" {
		t.Errorf("right from SWI = %q, want FLAIR", got)
	}
	press(s, "left", "left")
	if got := s.sess.Ctl.State().Primary.View; got != "T2" {
		t.Errorf("left twice from FLAIR = %q, want T2", got)
	}
}

func TestComparisonCycleAndFocus(t *testing.T) {
	s, repo := newTestViewer("gas-bubbles-swi")

	press(s, "tab")
	if s.Focus() != viewer.SlotPrimary {
		t.Error("tab in single view should keep primary focus")
	}

	press(s, "s")
	st := s.sess.Ctl.State()
	if st.Comparison != viewer.ComparisonSequence || st.Secondary.View != "T2" {
		t.Fatalf("after s: comparison=%v secondary=%+v", st.Comparison, st.Secondary)
	}

	press(s, "tab", "right")
	if s.Focus() != viewer.SlotSecondary {
		t.Fatal("tab should move focus to the secondary slot")
	}
	st = s.sess.Ctl.State()
	if st.Secondary.View != "SWI" || st.Primary.View != "SWI" {
		t.Errorf("right should change only the secondary slot: primary=%q secondary=%q",
			st.Primary.View, st.Secondary.View)
	}

	press(s, "s", "s")
	if s.sess.Ctl.State().Comparison != viewer.ComparisonSingle {
		t.Fatal("comparison should cycle back to single")
	}
	if s.Focus() != viewer.SlotPrimary {
		t.Error("focus should return to primary in single view")
	}

	var changes []string
	for _, e := range repo.events {
		if e.Kind == journal.KindComparisonChanged {
			changes = append(changes, e.Detail)
		}
	}
	if strings.Join(changes, ",") != "sequence,case,single" {
		t.Errorf("comparison events = %v", changes)
	}
}

func TestComparisonCasePicker(t *testing.T) {
	s, _ := newTestViewer("gas-bubbles-swi")

	press(s, "p")
	if s.CapturingInput() {
		t.Fatal("p outside case comparison should not open the picker")
	}

	press(s, "s", "s")
	st := s.sess.Ctl.State()
	if st.Comparison != viewer.ComparisonCase || st.ComparisonCaseID != "trauma-gas" {
		t.Fatalf("case comparison should auto-pick trauma-gas, got %+v", st)
	}

	press(s, "p")
	if !s.CapturingInput() {
		t.Fatal("p should open the picker")
	}
	for _, id := range s.caseIDs {
		if id == "gas-bubbles-swi" {
			t.Error("picker must not offer the current case")
		}
	}

	press(s, "j", "enter")
	st = s.sess.Ctl.State()
	if st.ComparisonCaseID != "normal-brain" {
		t.Errorf("ComparisonCaseID = %q, want normal-brain", st.ComparisonCaseID)
	}
	if st.Secondary.CaseID != "normal-brain" {
		t.Errorf("secondary slot case = %q", st.Secondary.CaseID)
	}
}

func TestLensTabs(t *testing.T) {
	s, _ := newTestViewer("trauma-gas")

	press(s, "3")
	if got := s.sess.Ctl.State().Node; got != casebook.NodeClinical {
		t.Fatalf("node = %v, want clinical", got)
	}
	if cmd := press(s, "3"); cmd != nil {
		t.Error("re-selecting the active lens should be a no-op")
	}
	if got := s.sess.Ctl.State().Node; got != casebook.NodeClinical {
		t.Errorf("lens tab should stay selected, got %v", got)
	}
}

func TestViewCaseComparisonText(t *testing.T) {
	s, _ := newTestViewer("trauma-gas")
	press(s, "s", "s", "4")

	out := s.View(140, 50)
	for _, want := range []string{"Case Comparison", "Anatomical Context", "Trauma Gas", "Gas Bubbles on SWI", "Comparison"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewWithoutLensShowsHint(t *testing.T) {
	s, _ := newTestViewer("normal-brain")
	out := s.View(100, 30)
	if !strings.Contains(out, "Press 2, 3 or 4") {
		t.Errorf("missing lens hint:\n%s", out)
	}
	if !strings.Contains(out, "No image available") {
		t.Errorf("missing empty-image notice:\n%s", out)
	}
}

func TestQuitPops(t *testing.T) {
	s, _ := newTestViewer("normal-brain")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("q should pop the viewer")
	}
}

func TestHomeKeyPopsToRoot(t *testing.T) {
	s, _ := newTestViewer("trauma-gas")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'H', Text: "H"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("H should return to the case list")
	}
}

func TestStep(t *testing.T) {
	opts := []string{"a", "b", "c"}
	tests := []struct {
		current string
		delta   int
		want    string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"zz", 1, "a"},
	}
	for _, tt := range tests {
		got, ok := step(opts, tt.current, tt.delta)
		if !ok || got != tt.want {
			t.Errorf("step(%q, %d) = %q, want %q", tt.current, tt.delta, got, tt.want)
		}
	}
	if _, ok := step(nil, "a", 1); ok {
		t.Error("step on empty options should fail")
	}
}
