// Package session holds the state shared by the screens of one case viewing
// session: the view-state controller and the journal recorder.
package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/journal"
	"github.com/abhisek/radstar/internal/ui/layout"
	"github.com/abhisek/radstar/internal/viewer"
)

// Options are the starting settings of a session.
type Options struct {
	CaseID string
	Depth  casebook.Depth
	Guided bool
}

// Session is one viewer instance. Screens that show the same case share a
// Session so node, depth and image choices carry across them.
type Session struct {
	Ctl *viewer.Controller
	Rec *journal.Recorder
}

// New opens opts.CaseID (or the default case) with the given settings.
// rec may be nil.
func New(opts Options, rec *journal.Recorder) *Session {
	ctl := viewer.New(opts.CaseID)
	ctl.SetKnowledgeDepth(opts.Depth)
	if opts.Guided {
		ctl.SetExplorationMode(viewer.ModeGuided)
	}
	return &Session{Ctl: ctl, Rec: rec}
}

// HeaderStatus summarizes the session for the app header.
func (s *Session) HeaderStatus() layout.HeaderStatus {
	st := s.Ctl.State()
	return layout.HeaderStatus{
		CaseName: s.Ctl.Case().DisplayName,
		Progress: st.Progress,
		Guided:   st.Mode == viewer.ModeGuided,
	}
}

// Event builds a journal event of the given kind from the current state.
func (s *Session) Event(kind journal.EventKind, detail string) journal.Event {
	st := s.Ctl.State()
	e := journal.Event{
		Kind:   kind,
		CaseID: st.CaseID,
		Depth:  st.Depth.String(),
		Detail: detail,
	}
	if st.Node != casebook.NodeNone {
		e.Node = st.Node.String()
	}
	if st.Comparison != viewer.ComparisonSingle {
		e.Comparison = st.Comparison.String()
	}
	return e
}

// Record returns a command that appends an event describing the current
// state. The event is built immediately; the write happens off the update
// loop. Returns nil when journaling is off.
func (s *Session) Record(kind journal.EventKind, detail string) tea.Cmd {
	if !s.Rec.Enabled() {
		return nil
	}
	e := s.Event(kind, detail)
	rec := s.Rec
	return func() tea.Msg {
		rec.Record(context.Background(), e)
		return nil
	}
}
