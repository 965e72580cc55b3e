package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/radstar/internal/logger"
)

// appendTimeout bounds a single journal write.
const appendTimeout = 2 * time.Second

// Recorder stamps events with a per-run session id and appends them to a
// Repo. Failures are logged and swallowed; a nil Recorder or one without a
// Repo records nothing.
type Recorder struct {
	repo      Repo
	log       *logger.Logger
	sessionID string
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder(repo Repo, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{
		repo:      repo,
		log:       log,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the id stamped on every event of this run.
func (r *Recorder) SessionID() string {
	if r == nil {
		return ""
	}
	return r.sessionID
}

// Enabled reports whether events are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.repo != nil
}

// Record appends e and reports whether it was stored.
func (r *Recorder) Record(ctx context.Context, e Event) bool {
	if !r.Enabled() {
		return false
	}
	e.SessionID = r.sessionID

	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	seq, err := r.repo.Append(ctx, e)
	if err != nil {
		r.log.Warn("journal append failed", "kind", e.Kind, "case", e.CaseID, "error", err)
		return false
	}
	r.log.Debug("journal event", "seq", seq, "kind", e.Kind, "case", e.CaseID, "node", e.Node)
	return true
}
