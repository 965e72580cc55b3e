package constellation

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/logger"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screens/imageviewer"
	"github.com/abhisek/radstar/internal/screens/session"
	"github.com/abhisek/radstar/internal/viewer"
)

// mockRepo implements journal.Repo for testing.
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

func newTestScreen(caseID string) (*Screen, *mockRepo) {
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
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		_, cmd = s.Update(msg)
	}
	return cmd
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestInitRecordsCaseOpened(t *testing.T) {
	s, repo := newTestScreen("trauma-gas")
	run(s.Init())
	if len(repo.events) != 1 || repo.events[0].Kind != journal.KindCaseOpened || repo.events[0].CaseID != "trauma-gas" {
		t.Errorf("unexpected events %+v", repo.events)
	}
}

func TestNumberKeysSelectAndToggle(t *testing.T) {
	s, repo := newTestScreen("gas-bubbles-swi")

	run(press(s, "2"))
	st := s.sess.Ctl.State()
	if st.Node != casebook.NodeTechnical || st.Progress != viewer.ProgressStep {
		t.Errorf("after 2: node=%v progress=%d", st.Node, st.Progress)
	}
	if len(repo.events) != 1 || repo.events[0].Node != "technical" {
		t.Errorf("expected node_selected event, got %+v", repo.events)
	}

	if cmd := press(s, "2"); cmd != nil {
		t.Error("deselecting should not record")
	}
	st = s.sess.Ctl.State()
	if st.Node != casebook.NodeNone || st.Progress != viewer.ProgressStep {
		t.Errorf("after toggle: node=%v progress=%d", st.Node, st.Progress)
	}
}

func TestTabCyclesNodes(t *testing.T) {
	s, _ := newTestScreen("gas-bubbles-swi")
	press(s, "tab")
	if got := s.sess.Ctl.State().Node; got != casebook.NodeCentral {
		t.Errorf("tab from idle = %v, want central", got)
	}
	press(s, "tab", "tab", "tab", "tab")
	if got := s.sess.Ctl.State().Node; got != casebook.NodeCentral {
		t.Errorf("tab should wrap to central, got %v", got)
	}
	press(s, "h")
	if got := s.sess.Ctl.State().Node; got != casebook.NodeAnatomical {
		t.Errorf("h from central = %v, want anatomical", got)
	}
}

func TestDepthAndGuidedKeys(t *testing.T) {
	s, repo := newTestScreen("gas-bubbles-swi")

	run(press(s, "d"))
	if got := s.sess.Ctl.State().Depth; got != casebook.DepthComprehensive {
		t.Errorf("depth = %v, want comprehensive", got)
	}
	run(press(s, "g"))
	if s.sess.Ctl.State().Mode != viewer.ModeGuided {
		t.Fatal("g should enable guided mode")
	}

	run(press(s, "n"))
	if got := s.sess.Ctl.State().Node; got != casebook.NodeTechnical {
		t.Errorf("n from idle = %v, want technical", got)
	}
	run(press(s, "n"))
	if got := s.sess.Ctl.State().Node; got != casebook.NodeClinical {
		t.Errorf("n after technical = %v, want clinical", got)
	}

	kinds := make([]journal.EventKind, 0, len(repo.events))
	for _, e := range repo.events {
		kinds = append(kinds, e.Kind)
	}
	want := []journal.EventKind{journal.KindDepthChanged, journal.KindModeChanged, journal.KindNodeSelected, journal.KindNodeSelected}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, kinds[i], want[i])
		}
	}
	if repo.events[0].Detail != "comprehensive" {
		t.Errorf("depth detail = %q", repo.events[0].Detail)
	}
}

func TestCaseSwitcher(t *testing.T) {
	s, repo := newTestScreen("gas-bubbles-swi")
	press(s, "3")

	press(s, "c")
	if !s.CapturingInput() {
		t.Fatal("picker should capture input")
	}
	run(press(s, "j", "enter"))
	if s.CapturingInput() {
		t.Error("picker should close after enter")
	}

	st := s.sess.Ctl.State()
	if st.CaseID != "trauma-gas" {
		t.Errorf("CaseID = %q, want trauma-gas", st.CaseID)
	}
	if st.Node != casebook.NodeNone || st.Progress != 0 {
		t.Errorf("switching case should reset selection, got node=%v progress=%d", st.Node, st.Progress)
	}
	last := repo.events[len(repo.events)-1]
	if last.Kind != journal.KindCaseOpened || last.CaseID != "trauma-gas" {
		t.Errorf("last event = %+v", last)
	}
}

func TestCaseSwitcherCancel(t *testing.T) {
	s, _ := newTestScreen("normal-brain")
	press(s, "c", "k", "esc")
	if s.CapturingInput() {
		t.Error("esc should close the picker")
	}
	if got := s.sess.Ctl.State().CaseID; got != "normal-brain" {
		t.Errorf("CaseID = %q after cancel", got)
	}
}

func TestOpenImageViewer(t *testing.T) {
	s, _ := newTestScreen("gas-bubbles-swi")
	press(s, "1")
	msg := run(press(s, "enter"))
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*imageviewer.Screen); !ok {
		t.Errorf("pushed %T, want image viewer", push.Screen)
	}

	press(s, "1")
	if msg := run(press(s, "enter")); msg != nil {
		t.Errorf("enter on idle should do nothing, got %T", msg)
	}
	if _, ok := run(press(s, "v")).(router.PushScreenMsg); !ok {
		t.Error("v should always open the image viewer")
	}
}

func TestQuitPops(t *testing.T) {
	s, _ := newTestScreen("gas-bubbles-swi")
	if _, ok := run(press(s, "q")).(router.PopScreenMsg); !ok {
		t.Error("q should pop the screen")
	}
}

func TestViewShowsContent(t *testing.T) {
	s, _ := newTestScreen("gas-bubbles-swi")

	idle := s.View(120, 30)
	if !strings.Contains(idle, "Gas Bubbles on SWI") {
		t.Errorf("idle view missing case name:\n%s", idle)
	}

	press(s, "d", "2")
	out := s.View(120, 30)
	for _, want := range []string{"Technical Analysis", "Comprehensive Analysis", "2 TECHNICAL", "How We See It"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	press(s, "1")
	out = s.View(120, 30)
	if !strings.Contains(out, "image viewer") {
		t.Errorf("central view missing viewer hint:\n%s", out)
	}
}

func TestViewCompact(t *testing.T) {
	s, _ := newTestScreen("trauma-gas")
	press(s, "3")
	out := s.View(80, 20)
	if !strings.Contains(out, "Clinical Significance") {
		t.Errorf("compact view missing panel title:\n%s", out)
	}
}

func TestAdjacentNode(t *testing.T) {
	if got := adjacentNode(casebook.NodeNone, -1); got != casebook.NodeCentral {
		t.Errorf("idle prev = %v", got)
	}
	if got := adjacentNode(casebook.NodeAnatomical, 1); got != casebook.NodeCentral {
		t.Errorf("anatomical next = %v", got)
	}
	if got := adjacentNode(casebook.NodeTechnical, -1); got != casebook.NodeCentral {
		t.Errorf("technical prev = %v", got)
	}
}
