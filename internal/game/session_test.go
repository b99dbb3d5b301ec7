package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/judge"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/waste"
)

// zeroSource always returns 0. With it the first spawn is Blue and the
// learner's random fallback picks the garbage bin.
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sortEvents    []store.SortEventData
	sessionEvents []store.SessionEventData
	err           error
}

func (m *mockEventRepo) AppendSortEvent(_ context.Context, data store.SortEventData) error {
	m.sortEvents = append(m.sortEvents, data)
	return m.err
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return m.err
}
func (m *mockEventRepo) QuerySortEvents(_ context.Context, _ store.QueryOpts) ([]store.SortEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) CategoryTotals(_ context.Context) ([]store.CategoryTotal, error) {
	return nil, nil
}
func (m *mockEventRepo) Totals(_ context.Context) (store.Totals, error) {
	return store.Totals{}, nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time                    { return c.t }
func (c *fakeClock) Advance(d time.Duration) time.Time { c.t = c.t.Add(d); return c.t }

func newTestSession(t *testing.T) (*Session, *fakeClock, *mockEventRepo) {
	t.Helper()
	sc, err := scene.Default()
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := &mockEventRepo{}
	s, err := New(Options{
		Scene:     sc,
		Source:    zeroSource{},
		EventRepo: repo,
		Clock:     clock.Now,
	})
	require.NoError(t, err)

	s.Start()
	require.True(t, s.Animating(), "first item drops in")
	require.NoError(t, s.Tick(clock.Advance(DropInDuration)))
	require.False(t, s.Animating())
	return s, clock, repo
}

// grabPoint is a cell inside the item at the origin.
func grabPoint(s *Session) geom.Point {
	return s.Scene().Origin.Add(geom.Point{X: 1, Y: 1})
}

// dropPoint returns the pointer position that leaves the item's top-left
// at target, for a drag started at grabPoint.
func dropPoint(target geom.Point) geom.Point {
	return target.Add(geom.Point{X: 1, Y: 1})
}

func TestNew_RequiresScene(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestStart_DropsInAtOrigin(t *testing.T) {
	s, _, repo := newTestSession(t)

	it, ok := s.Item()
	require.True(t, ok)
	assert.Equal(t, waste.Blue, it.Category)
	assert.Equal(t, s.Scene().Origin, it.Pos)
	assert.Equal(t, 1.0, it.Scale)

	require.Len(t, repo.sessionEvents, 1)
	assert.Equal(t, "start", repo.sessionEvents[0].Action)
	assert.Equal(t, s.ID, repo.sessionEvents[0].SessionID)
}

func TestDragStart_OnlyOnItem(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.False(t, s.DragStart(geom.Point{X: 0, Y: 0}))
	assert.False(t, s.Dragging())
	assert.True(t, s.DragStart(grabPoint(s)))
	assert.True(t, s.Dragging())
}

func TestDragMove_StaysInsideField(t *testing.T) {
	s, _, _ := newTestSession(t)
	require.True(t, s.DragStart(grabPoint(s)))

	s.DragMove(geom.Point{X: 500, Y: 500})
	it, _ := s.Item()
	assert.True(t, s.Scene().Field.ContainsRect(it.Bounds()))

	s.DragMove(geom.Point{X: -5, Y: -5})
	it, _ = s.Item()
	assert.Equal(t, geom.Point{X: 0, Y: 0}, it.Pos)
}

func TestDragEnd_CorrectBinDisposes(t *testing.T) {
	s, clock, repo := newTestSession(t)
	target, err := s.Scene().Placement(waste.Recycle)
	require.NoError(t, err)

	require.True(t, s.DragStart(grabPoint(s)))
	out, err := s.DragEnd(dropPoint(target))
	require.NoError(t, err)

	assert.Equal(t, judge.Disposed, out.Kind)
	assert.Equal(t, waste.Recycle, out.Bin)
	assert.Equal(t, 1, s.Learner().Len())
	assert.Equal(t, 1, s.Stats().Disposed)
	assert.True(t, s.Animating())
	assert.False(t, s.DragStart(grabPoint(s)), "no drag while animating")

	// Halfway through removal the item is shrinking.
	require.NoError(t, s.Tick(clock.Advance(RemoveDuration/2)))
	it, _ := s.Item()
	assert.Less(t, it.Scale, 1.0)
	assert.Greater(t, it.Scale, RemoveScale)

	// Removal finishes and the next item drops in.
	require.NoError(t, s.Tick(clock.Advance(RemoveDuration/2)))
	it, ok := s.Item()
	require.True(t, ok)
	assert.Equal(t, waste.Green, it.Category)
	assert.Equal(t, s.Scene().SpawnPoint(), it.Pos)
	assert.True(t, s.Animating())

	require.Len(t, repo.sortEvents, 1)
	ev := repo.sortEvents[0]
	assert.Equal(t, "blue", ev.Category)
	assert.Equal(t, "disposed", ev.Outcome)
	assert.Equal(t, "recycle", ev.Bin)
	assert.Equal(t, store.SourcePlayer, ev.Source)
	assert.True(t, ev.Correct)
}

func TestDragEnd_WrongBinReturns(t *testing.T) {
	s, clock, _ := newTestSession(t)
	target, err := s.Scene().Placement(waste.Garbage)
	require.NoError(t, err)

	require.True(t, s.DragStart(grabPoint(s)))
	out, err := s.DragEnd(dropPoint(target))
	require.NoError(t, err)
	assert.Equal(t, judge.Returned, out.Kind)
	assert.Equal(t, 0, s.Learner().Len(), "returns are not training examples")

	require.NoError(t, s.Tick(clock.Advance(MoveDuration)))
	it, _ := s.Item()
	assert.Equal(t, s.Scene().Origin, it.Pos)
	assert.False(t, s.Animating())
	assert.Equal(t, 1, s.Stats().Returned)
}

func TestDragEnd_StraddlingEdgeReturns(t *testing.T) {
	s, _, _ := newTestSession(t)
	recycle, ok := s.Scene().Bin(waste.Recycle)
	require.True(t, ok)

	// Two columns hang off the left edge of the recycling bin.
	target := geom.Point{X: recycle.Region.X - 2, Y: recycle.Region.Y + 1}
	require.True(t, s.DragStart(grabPoint(s)))
	out, err := s.DragEnd(dropPoint(target))
	require.NoError(t, err)
	assert.Equal(t, judge.Returned, out.Kind)
}

func TestDragEnd_WithoutDrag(t *testing.T) {
	s, _, _ := newTestSession(t)
	_, err := s.DragEnd(geom.Point{X: 1, Y: 1})
	assert.True(t, errors.Is(err, ErrNotDragging))
}

func TestHelper_LearnedBinDisposes(t *testing.T) {
	s, clock, repo := newTestSession(t)
	s.Learner().Train(waste.Blue, waste.Recycle)

	out, err := s.AskHelper()
	require.NoError(t, err)
	assert.Equal(t, judge.Suggested, out.Kind)
	assert.Equal(t, waste.Recycle, out.Bin)
	assert.True(t, out.Prediction.Learned)

	_, err = s.AskHelper()
	assert.True(t, errors.Is(err, ErrAnimating))

	// The move lands in the recycling bin and resolves as a disposal.
	require.NoError(t, s.Tick(clock.Advance(MoveDuration)))
	it, _ := s.Item()
	recycle, _ := s.Scene().Bin(waste.Recycle)
	assert.True(t, recycle.Region.ContainsRect(it.Bounds()))
	assert.True(t, s.Animating(), "item is being removed")
	assert.Equal(t, 2, s.Learner().Len())
	assert.Equal(t, Stats{Disposed: 1, Suggested: 1, HelperCorrect: 1, HelperLearned: 1}, s.Stats())

	require.Len(t, repo.sortEvents, 2)
	assert.Equal(t, "suggested", repo.sortEvents[0].Outcome)
	assert.Equal(t, store.SourcePlayer, repo.sortEvents[0].Source)
	assert.True(t, repo.sortEvents[0].Correct)
	assert.Equal(t, "disposed", repo.sortEvents[1].Outcome)
	assert.Equal(t, store.SourceHelper, repo.sortEvents[1].Source)
}

func TestHelper_WrongGuessReturns(t *testing.T) {
	s, clock, repo := newTestSession(t)

	out, err := s.AskHelper()
	require.NoError(t, err)
	assert.Equal(t, judge.Suggested, out.Kind)
	assert.Equal(t, waste.Garbage, out.Bin)
	assert.Equal(t, waste.Recycle, out.Home)
	assert.False(t, out.Prediction.Learned)

	require.NoError(t, s.Tick(clock.Advance(MoveDuration)))
	require.True(t, s.Animating(), "item heads back to the origin")
	require.NoError(t, s.Tick(clock.Advance(MoveDuration)))

	it, _ := s.Item()
	assert.Equal(t, s.Scene().Origin, it.Pos)
	assert.Equal(t, 0, s.Learner().Len())
	assert.Equal(t, Stats{Suggested: 1, Returned: 1}, s.Stats())

	require.Len(t, repo.sortEvents, 2)
	assert.False(t, repo.sortEvents[0].Correct)
	assert.Equal(t, "returned", repo.sortEvents[1].Outcome)
}

func TestKeyboardDrag(t *testing.T) {
	s, _, _ := newTestSession(t)
	target, err := s.Scene().Placement(waste.Recycle)
	require.NoError(t, err)

	require.True(t, s.Grab())
	delta := target.Sub(s.Scene().Origin)
	s.Nudge(delta.X, delta.Y)
	it, _ := s.Item()
	assert.Equal(t, target, it.Pos)

	out, err := s.Drop()
	require.NoError(t, err)
	assert.Equal(t, judge.Disposed, out.Kind)
}

func TestEnd_RecordsOnce(t *testing.T) {
	s, clock, repo := newTestSession(t)
	target, _ := s.Scene().Placement(waste.Recycle)
	require.True(t, s.DragStart(grabPoint(s)))
	_, err := s.DragEnd(dropPoint(target))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	sum := s.End()
	again := s.End()

	assert.Equal(t, sum, again)
	assert.True(t, s.Ended())
	assert.Equal(t, 1, sum.Stats.Disposed)
	assert.Equal(t, 1, sum.Examples)
	require.Len(t, sum.Rules, 1)
	assert.Equal(t, Rule{Category: waste.Blue, Bin: waste.Recycle, Votes: 1, Support: 1}, sum.Rules[0])

	require.Len(t, repo.sessionEvents, 2)
	end := repo.sessionEvents[1]
	assert.Equal(t, "end", end.Action)
	assert.Equal(t, 1, end.Disposed)
	assert.Equal(t, 1, end.Examples)
	assert.Equal(t, int((time.Minute + DropInDuration).Seconds()), end.DurationSecs)

	_, err = s.AskHelper()
	assert.True(t, errors.Is(err, ErrEnded))
	assert.False(t, s.DragStart(grabPoint(s)))
}

func TestLogErrorsAreReported(t *testing.T) {
	sc, err := scene.Default()
	require.NoError(t, err)

	var logged []error
	s, err := New(Options{
		Scene:      sc,
		Source:     zeroSource{},
		EventRepo:  &mockEventRepo{err: errors.New("disk full")},
		OnLogError: func(err error) { logged = append(logged, err) },
	})
	require.NoError(t, err)

	s.Start()
	assert.Len(t, logged, 1)
}

func TestSummary_Accuracy(t *testing.T) {
	assert.Equal(t, 0.0, Summary{}.Accuracy())
	assert.Equal(t, 0.5, Summary{Stats: Stats{Suggested: 4, HelperCorrect: 2}}.Accuracy())
}
