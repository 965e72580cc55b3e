package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestPopToRoot(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})
	r.Push(&stubScreen{title: "third"})

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

// resumingScreen counts how often it became active again.
type resumingScreen struct {
	stubScreen
	resumed int
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

func TestPopResumesScreenBelow(t *testing.T) {
	root := &resumingScreen{stubScreen: stubScreen{title: "cases"}}
	r := New(root)
	r.Push(&stubScreen{title: "constellation"})
	r.Push(&stubScreen{title: "viewer"})

	r.Update(PopScreenMsg{})
	if root.resumed != 0 {
		t.Errorf("root resumed while still covered")
	}
	r.Update(PopScreenMsg{})
	if root.resumed != 1 {
		t.Errorf("expected 1 resume, got %d", root.resumed)
	}

	r.Pop()
	if root.resumed != 1 {
		t.Errorf("pop at bottom must not resume, got %d", root.resumed)
	}
}

func TestPopToRootResumes(t *testing.T) {
	root := &resumingScreen{stubScreen: stubScreen{title: "cases"}}
	r := New(root)
	r.PopToRoot()
	if root.resumed != 0 {
		t.Errorf("PopToRoot on a single screen resumed it")
	}

	r.Push(&stubScreen{title: "constellation"})
	r.Push(&stubScreen{title: "viewer"})
	r.PopToRoot()
	if root.resumed != 1 {
		t.Errorf("expected 1 resume, got %d", root.resumed)
	}
}

func TestBreadcrumb(t *testing.T) {
	r := New(&stubScreen{title: "Cases"})
	r.Push(&stubScreen{title: "Constellation"})
	r.Push(&stubScreen{title: "Image Viewer"})

	got := r.Breadcrumb()
	want := []string{"Cases", "Constellation", "Image Viewer"}
	if len(got) != len(want) {
		t.Fatalf("Breadcrumb() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("crumb %d = %q, want %q", i, got[i], want[i])
		}
	}
}
