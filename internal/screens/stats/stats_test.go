package stats

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sortbot/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessions   []store.SessionSummaryRecord
	categories []store.CategoryTotal
	events     []store.SortEventRecord
	err        error
}

func (m *mockEventRepo) AppendSortEvent(_ context.Context, _ store.SortEventData) error {
	return nil
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, _ store.SessionEventData) error {
	return nil
}
func (m *mockEventRepo) QuerySortEvents(_ context.Context, opts store.QueryOpts) ([]store.SortEventRecord, error) {
	var out []store.SortEventRecord
	for _, ev := range m.events {
		if ev.SessionID == opts.SessionID {
			out = append(out, ev)
		}
	}
	return out, nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return m.sessions, nil
}
func (m *mockEventRepo) CategoryTotals(_ context.Context) ([]store.CategoryTotal, error) {
	return m.categories, m.err
}
func (m *mockEventRepo) Totals(_ context.Context) (store.Totals, error) {
	return store.Totals{}, nil
}

func loaded(t *testing.T, repo *mockEventRepo) *StatsScreen {
	t.Helper()
	s := New(repo)
	msg := s.Init()()
	scr, _ := s.Update(msg)
	return scr.(*StatsScreen)
}

func testRepo() *mockEventRepo {
	return &mockEventRepo{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", Timestamp: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), Disposed: 5, Suggested: 2, DurationSecs: 95},
			{SessionID: "s1", Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Disposed: 1, Returned: 3, DurationSecs: 30},
		},
		categories: []store.CategoryTotal{
			{Category: "black", Disposed: 3, Suggested: 2, HelperCorrect: 1},
			{Category: "blue", Disposed: 3, Returned: 3},
		},
		events: []store.SortEventRecord{
			{SortEventData: store.SortEventData{SessionID: "s2", Category: "black", Outcome: "suggested", Bin: "garbage", Source: store.SourcePlayer, Correct: true}},
		},
	}
}

func TestStatsScreen_Loads(t *testing.T) {
	s := loaded(t, testRepo())

	view := s.View(100, 30)
	if !strings.Contains(view, "Black bag") {
		t.Error("expected category totals in view")
	}
	if !strings.Contains(view, "1:35") {
		t.Error("expected session duration in view")
	}
	if !strings.Contains(view, "Mar 02, 2026") {
		t.Error("expected session date in view")
	}
}

func TestStatsScreen_Empty(t *testing.T) {
	s := loaded(t, &mockEventRepo{})
	if !strings.Contains(s.View(80, 24), "Nothing sorted yet") {
		t.Error("expected empty message")
	}
}

func TestStatsScreen_Error(t *testing.T) {
	s := loaded(t, &mockEventRepo{err: errors.New("db locked")})
	if !strings.Contains(s.View(80, 24), "db locked") {
		t.Error("expected error message")
	}
}

func TestStatsScreen_ExpandSession(t *testing.T) {
	s := loaded(t, testRepo())

	if strings.Contains(s.View(100, 30), "by you") {
		t.Fatal("events should be hidden until expanded")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "by you") {
		t.Error("expected session events after Enter")
	}
}

func TestStatsScreen_Navigation(t *testing.T) {
	s := loaded(t, testRepo())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 at bottom", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}
