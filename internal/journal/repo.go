package journal

import (
	"context"
	"errors"
	"time"
)

// EventKind names a learner interaction.
type EventKind string

const (
	KindCaseOpened        EventKind = "case_opened"
	KindNodeSelected      EventKind = "node_selected"
	KindDepthChanged      EventKind = "depth_changed"
	KindComparisonChanged EventKind = "comparison_changed"
	KindImageChanged      EventKind = "image_changed"
	KindModeChanged       EventKind = "mode_changed"
)

// ErrInvalidEvent is returned by Append for events missing a kind or case.
var ErrInvalidEvent = errors.New("invalid journal event")

// Event is one appended interaction. Only CaseID and Kind are required.
type Event struct {
	SessionID  string
	Kind       EventKind
	CaseID     string
	Node       string
	Depth      string
	Comparison string
	Detail     string
	Timestamp  time.Time
}

// Record is a stored event.
type Record struct {
	Event
	Sequence int64
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string
	CaseID    string
	Kind      EventKind
}

// SessionSummary aggregates the events of one session.
type SessionSummary struct {
	SessionID    string
	Started      time.Time
	Ended        time.Time
	Events       int
	NodeVisits   int
	Cases        []string
	LastCaseID   string
	LastSequence int64
}

// Duration is the time between the first and last event.
func (s SessionSummary) Duration() time.Duration {
	return s.Ended.Sub(s.Started)
}

// Repo provides append and query access to the journal.
type Repo interface {
	// Append stores an event with the next global sequence number.
	Append(ctx context.Context, e Event) (int64, error)

	// Recent returns matching events, newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Record, error)

	// SessionSummaries returns one summary per session, most recent first.
	SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error)
}
