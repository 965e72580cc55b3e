package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/router"
	"github.com/abhisek/radstar/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

const tagline = "Follow the constellation"

func TestNodesRevealInOrder(t *testing.T) {
	w, _ := newTestWelcome()

	tests := []struct {
		ticks    int
		lit      int
		selected casebook.Node
	}{
		{0, 1, casebook.NodeCentral},
		{3, 2, casebook.NodeTechnical},
		{3, 3, casebook.NodeClinical},
		{3, 4, casebook.NodeNone},
	}
	for _, tt := range tests {
		sendTicks(w, tt.ticks)
		if got := w.litNodes(); got != tt.lit {
			t.Errorf("at %v: lit = %d, want %d", w.elapsed, got, tt.lit)
		}
		st := w.splashState()
		if st.Node != tt.selected {
			t.Errorf("at %v: selected = %v, want %v", w.elapsed, st.Node, tt.selected)
		}
		if len(st.Visited) != tt.lit {
			t.Errorf("at %v: visited = %v", w.elapsed, st.Visited)
		}
	}
}

func TestBannerAppearsAfterReveal(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(100, 40)
	if strings.Contains(view, tagline) {
		t.Error("tagline should not be visible at start")
	}
	if !strings.Contains(view, "TECHNICAL") {
		t.Errorf("constellation should be drawn from the start:\n%s", view)
	}

	sendTicks(w, 15)
	view = w.View(100, 40)
	if !strings.Contains(view, tagline) {
		t.Error("tagline should be visible after the reveal")
	}
	if !strings.Contains(view, "3 teaching cases") {
		t.Error("case count missing")
	}
}

func TestTicksStopWhenAnimationEnds(t *testing.T) {
	w, calls := newTestWelcome()

	if cmd := sendTicks(w, 45); cmd != nil {
		t.Error("tick after the animation ended should not schedule another")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if *calls != 0 {
		t.Errorf("factory called %d times without a keypress", *calls)
	}
}

func TestKeypressReplacesOnce(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should transition")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || replace.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", replace)
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestBannerCompactFallback(t *testing.T) {
	tests := []struct {
		width, height int
		compact       bool
	}{
		{40, 40, true},
		{100, 24, true},
		{100, 40, false},
	}
	for _, tt := range tests {
		got := strings.Contains(RenderBanner(tt.width, tt.height), "R A D S T A R")
		if got != tt.compact {
			t.Errorf("RenderBanner(%d, %d) compact = %v, want %v", tt.width, tt.height, got, tt.compact)
		}
	}
}
