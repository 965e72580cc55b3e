package journal

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) Append(ctx context.Context, e Event) (int64, error) {
	if e.Kind == "" || e.CaseID == "" {
		return 0, fmt.Errorf("%w: kind=%q case=%q", ErrInvalidEvent, e.Kind, e.CaseID)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO journal_events
			(sequence, session_id, kind, case_id, node, depth, comparison, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, e.SessionID, string(e.Kind), e.CaseID, e.Node, e.Depth, e.Comparison, e.Detail,
		e.Timestamp.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("save journal event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) Recent(ctx context.Context, opts QueryOpts) ([]Record, error) {
	where, args := whereClause(opts)
	q := `SELECT sequence, session_id, kind, case_id, node, depth, comparison, detail, created_at
		FROM journal_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal events: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec  Record
			kind string
			ts   int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &kind, &rec.CaseID,
			&rec.Node, &rec.Depth, &rec.Comparison, &rec.Detail, &ts); err != nil {
			return nil, fmt.Errorf("scan journal event: %w", err)
		}
		rec.Kind = EventKind(kind)
		rec.Timestamp = time.Unix(0, ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error) {
	where, args := whereClause(opts)
	q := `SELECT session_id, MIN(created_at), MAX(created_at), COUNT(*),
			SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END),
			GROUP_CONCAT(DISTINCT case_id), MAX(sequence)
		FROM journal_events` + where + `
		GROUP BY session_id
		ORDER BY MAX(sequence) DESC`
	args = append([]any{string(KindNodeSelected)}, args...)
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			s              SessionSummary
			started, ended int64
			cases          string
		)
		if err := rows.Scan(&s.SessionID, &started, &ended, &s.Events, &s.NodeVisits,
			&cases, &s.LastSequence); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		s.Started = time.Unix(0, started)
		s.Ended = time.Unix(0, ended)
		s.Cases = strings.Split(cases, ",")
		slices.Sort(s.Cases)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}

	for i := range out {
		last, err := r.lastCase(ctx, out[i].LastSequence)
		if err != nil {
			return nil, err
		}
		out[i].LastCaseID = last
	}
	return out, nil
}

func (r *eventRepo) lastCase(ctx context.Context, seq int64) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT case_id FROM journal_events WHERE sequence = ?`, seq).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("query last case: %w", err)
	}
	return id, nil
}

// whereClause builds the shared filter for both queries. Placeholders are
// positional so callers prepend or append their own arguments.
func whereClause(opts QueryOpts) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if opts.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, opts.From.UnixNano())
	}
	if !opts.To.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, opts.To.UnixNano())
	}
	if opts.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, opts.SessionID)
	}
	if opts.CaseID != "" {
		conds = append(conds, "case_id = ?")
		args = append(args, opts.CaseID)
	}
	if opts.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(opts.Kind))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
