package store

import (
	"context"
	"database/sql"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only this session, when set
}

// Sort event sources.
const (
	SourcePlayer = "player"
	SourceHelper = "helper"
)

// SortEventData captures one drag outcome.
type SortEventData struct {
	SessionID string
	Category  string
	Outcome   string // disposed, suggested, returned
	Bin       string // empty when returned
	Source    string // player or helper
	Learned   bool   // suggestion came from examples, not the random fallback
	Correct   bool   // disposed, or suggested bin matches the category's bin
}

// SortEventRecord is a persisted sort event.
type SortEventRecord struct {
	SortEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Action       string // start or end
	Disposed     int
	Suggested    int
	Returned     int
	Examples     int
	DurationSecs int
}

// SessionSummaryRecord is a finished session as shown in history.
type SessionSummaryRecord struct {
	SessionID    string
	Timestamp    time.Time
	Disposed     int
	Suggested    int
	Returned     int
	Examples     int
	DurationSecs int
}

// CategoryTotal aggregates lifetime outcomes for one category.
type CategoryTotal struct {
	Category      string
	Disposed      int
	Suggested     int
	HelperCorrect int
	Returned      int
}

// Totals aggregates lifetime outcomes across all categories.
type Totals struct {
	Sessions  int
	Disposed  int
	Suggested int
	Returned  int
}

// EventRepo provides append and query access to game events.
type EventRepo interface {
	// AppendSortEvent records the outcome of one drag.
	AppendSortEvent(ctx context.Context, data SortEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySortEvents returns sort events, newest first.
	QuerySortEvents(ctx context.Context, opts QueryOpts) ([]SortEventRecord, error)

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// CategoryTotals returns lifetime outcomes per category, ordered by category.
	CategoryTotals(ctx context.Context) ([]CategoryTotal, error)

	// Totals returns lifetime outcomes across all categories.
	Totals(ctx context.Context) (Totals, error)
}

// eventRepo implements EventRepo on raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}
