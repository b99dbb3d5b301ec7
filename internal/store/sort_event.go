package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendSortEvent(ctx context.Context, data SortEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sort_events (sequence, timestamp_ms, session_id, category, outcome, bin, source, learned, correct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.SessionID, data.Category, data.Outcome,
		data.Bin, data.Source, boolInt(data.Learned), boolInt(data.Correct),
	)
	if err != nil {
		return fmt.Errorf("save sort event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySortEvents(ctx context.Context, opts QueryOpts) ([]SortEventRecord, error) {
	where, args := opts.where()
	query := `SELECT sequence, timestamp_ms, session_id, category, outcome, bin, source, learned, correct
		FROM sort_events` + where + ` ORDER BY sequence DESC` + opts.limit()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sort events: %w", err)
	}
	defer rows.Close()

	var records []SortEventRecord
	for rows.Next() {
		var rec SortEventRecord
		var ts int64
		var learned, correct int
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Category, &rec.Outcome,
			&rec.Bin, &rec.Source, &learned, &correct); err != nil {
			return nil, fmt.Errorf("scan sort event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.Learned = learned != 0
		rec.Correct = correct != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sort events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, outcome, COUNT(*), COALESCE(SUM(correct), 0)
		 FROM sort_events GROUP BY category, outcome ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	index := make(map[string]int)
	for rows.Next() {
		var category, outcome string
		var count, correct int
		if err := rows.Scan(&category, &outcome, &count, &correct); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		i, ok := index[category]
		if !ok {
			i = len(totals)
			index[category] = i
			totals = append(totals, CategoryTotal{Category: category})
		}
		switch outcome {
		case "disposed":
			totals[i].Disposed += count
		case "suggested":
			totals[i].Suggested += count
			totals[i].HelperCorrect += correct
		case "returned":
			totals[i].Returned += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}

func (r *eventRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(outcome = 'disposed'), 0),
			COALESCE(SUM(outcome = 'suggested'), 0),
			COALESCE(SUM(outcome = 'returned'), 0)
		 FROM sort_events`,
	).Scan(&t.Disposed, &t.Suggested, &t.Returned)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_events WHERE action = 'end'`,
	).Scan(&t.Sessions)
	if err != nil {
		return Totals{}, fmt.Errorf("count sessions: %w", err)
	}
	return t, nil
}

// where builds the WHERE clause shared by event queries.
func (o QueryOpts) where() (string, []any) {
	var conds []string
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp_ms >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp_ms <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if o.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, o.SessionID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit > 0 {
		return fmt.Sprintf(" LIMIT %d", o.Limit)
	}
	return ""
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
