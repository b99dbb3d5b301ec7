package game

import (
	"context"
	"time"

	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/waste"
)

// Rule is what the helper has learned for one category.
type Rule struct {
	Category waste.Category
	Bin      waste.BinID
	Votes    int
	Support  int
}

// Summary describes a session for the end-of-session screen.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Stats     Stats
	Examples  int
	Rules     []Rule // categories with at least one example, in display order
}

// Accuracy returns the fraction of helper suggestions that named the
// item's own bin, or 0 when the helper was never asked.
func (s Summary) Accuracy() float64 {
	if s.Stats.Suggested == 0 {
		return 0
	}
	return float64(s.Stats.HelperCorrect) / float64(s.Stats.Suggested)
}

// Summary returns the session so far.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID: s.ID,
		Stats:     s.stats,
		Examples:  s.learner.Len(),
	}
	if !s.started.IsZero() {
		end := s.now()
		if s.ended {
			end = s.endedAt
		}
		sum.Duration = end.Sub(s.started)
	}
	for _, c := range waste.AllCategories() {
		if len(s.learner.Tally(c)) == 0 {
			continue
		}
		p := s.learner.Predict(c)
		sum.Rules = append(sum.Rules, Rule{Category: c, Bin: p.Bin, Votes: p.Votes, Support: p.Support})
	}
	return sum
}

// End stops input handling and records the session end. Calling End more
// than once returns the same summary without logging again.
func (s *Session) End() Summary {
	sum := s.Summary()
	if s.ended {
		return sum
	}
	s.ended = true
	s.endedAt = s.now()
	s.dragging = false
	sum = s.Summary()

	if s.eventRepo != nil {
		err := s.eventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID:    s.ID,
			Action:       "end",
			Disposed:     sum.Stats.Disposed,
			Suggested:    sum.Stats.Suggested,
			Returned:     sum.Stats.Returned,
			Examples:     sum.Examples,
			DurationSecs: int(sum.Duration.Seconds()),
		})
		if err != nil {
			s.onLogError(err)
		}
	}
	return sum
}
