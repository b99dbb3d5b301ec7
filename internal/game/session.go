// Package game holds the state of one play session and the handlers for
// drag input and animation frames. It has no TUI dependency.
package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sortbot/internal/anim"
	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/judge"
	"github.com/abhisek/sortbot/internal/learner"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/spawner"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/waste"
)

// Animation timings.
const (
	MoveDuration   = 750 * time.Millisecond
	RemoveDuration = 500 * time.Millisecond
	DropInDuration = 400 * time.Millisecond

	// RemoveScale is the scale-by factor applied while an item is removed.
	RemoveScale = 0.1
)

var (
	// ErrAnimating is returned when an animation is requested while the
	// item is still running one.
	ErrAnimating = errors.New("item is animating")

	// ErrNotDragging is returned by DragEnd when no drag is in progress.
	ErrNotDragging = errors.New("no drag in progress")

	// ErrEnded is returned by input handlers after End.
	ErrEnded = errors.New("session ended")
)

// then is what happens when an animation finishes.
type then int

const (
	thenSettle  then = iota // item rests and becomes draggable
	thenResolve             // re-run the judge at the new position
	thenRemove              // remove the item and spawn the next
)

type animation struct {
	move  *anim.Move
	scale *anim.Scale
	then  then
}

// Stats counts outcomes in this session.
type Stats struct {
	Disposed      int
	Suggested     int
	Returned      int
	HelperCorrect int // suggestions that named the item's own bin
	HelperLearned int // suggestions backed by examples
}

// Notice describes the most recent outcome, for display.
type Notice struct {
	Outcome  judge.Outcome
	Category waste.Category
	Source   string
	Correct  bool
	At       time.Time
}

// Options configures a Session.
type Options struct {
	Scene *scene.Scene

	// Source drives the spawner and the learner's random fallback.
	// Defaults to a crypto-seeded source.
	Source dice.Source

	// EventRepo receives sort and session events. Optional.
	EventRepo store.EventRepo

	// Clock defaults to time.Now.
	Clock func() time.Time

	// OnLogError is called when an event cannot be persisted. Defaults
	// to a warning on stderr.
	OnLogError func(error)
}

// Session is one play session. It owns the learner and its example log,
// so sessions are independent of each other. Not safe for concurrent use;
// the UI loop serializes all calls.
type Session struct {
	ID string

	scene   *scene.Scene
	learner *learner.Learner
	judge   *judge.Judge
	spawner *spawner.Spawner

	item     *waste.Item
	dragging bool
	grab     geom.Point // pointer offset from the item's top-left
	cursor   geom.Point
	active   *animation

	stats   Stats
	notice  *Notice
	started time.Time
	endedAt time.Time
	ended   bool

	eventRepo  store.EventRepo
	now        func() time.Time
	onLogError func(error)
}

// New creates a session. Call Start to spawn the first item.
func New(opts Options) (*Session, error) {
	if opts.Scene == nil {
		return nil, errors.New("game: scene is required")
	}
	src := opts.Source
	if src == nil {
		src = dice.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	onLogError := opts.OnLogError
	if onLogError == nil {
		onLogError = func(err error) {
			fmt.Fprintln(os.Stderr, "warning: failed to log event:", err)
		}
	}

	l := learner.New(src)
	return &Session{
		ID:         uuid.New().String(),
		scene:      opts.Scene,
		learner:    l,
		judge:      judge.New(opts.Scene, l),
		spawner:    spawner.New(src),
		eventRepo:  opts.EventRepo,
		now:        clock,
		onLogError: onLogError,
	}, nil
}

// Start records the session start and drops in the first item.
func (s *Session) Start() {
	s.started = s.now()
	if s.eventRepo != nil {
		err := s.eventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: s.ID,
			Action:    "start",
		})
		if err != nil {
			s.onLogError(err)
		}
	}
	s.spawn()
}

// Scene returns the field layout.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Learner returns the session's learner.
func (s *Session) Learner() *learner.Learner { return s.learner }

// Stats returns the outcome counters.
func (s *Session) Stats() Stats { return s.stats }

// Notice returns the most recent outcome, or nil.
func (s *Session) Notice() *Notice { return s.notice }

// Item returns a copy of the current item.
func (s *Session) Item() (waste.Item, bool) {
	if s.item == nil {
		return waste.Item{}, false
	}
	return *s.item, true
}

// Animating reports whether an animation is running.
func (s *Session) Animating() bool { return s.active != nil }

// Dragging reports whether the item is being dragged.
func (s *Session) Dragging() bool { return s.dragging }

// Ended reports whether End has been called.
func (s *Session) Ended() bool { return s.ended }

// DragStart selects the item if p is inside it. Items are not draggable
// while animating.
func (s *Session) DragStart(p geom.Point) bool {
	if s.ended || s.item == nil || s.active != nil {
		return false
	}
	if !s.item.Bounds().Contains(p) {
		return false
	}
	s.dragging = true
	s.grab = p.Sub(s.item.Pos)
	s.cursor = p
	return true
}

// DragMove moves the selected item so the grabbed cell follows p. The
// item stays inside the field.
func (s *Session) DragMove(p geom.Point) {
	if !s.dragging || s.item == nil {
		return
	}
	s.item.Pos = s.scene.Field.ClampInside(p.Sub(s.grab), s.item.Size)
	s.cursor = s.item.Pos.Add(s.grab)
}

// DragEnd drops the item at p and resolves it.
func (s *Session) DragEnd(p geom.Point) (judge.Outcome, error) {
	if s.ended {
		return judge.Outcome{}, ErrEnded
	}
	if !s.dragging || s.item == nil {
		return judge.Outcome{}, ErrNotDragging
	}
	s.DragMove(p)
	s.dragging = false
	return s.resolve(store.SourcePlayer)
}

// Grab starts a keyboard drag from the item's center.
func (s *Session) Grab() bool {
	if s.item == nil {
		return false
	}
	return s.DragStart(s.item.Bounds().Center())
}

// Nudge moves a keyboard drag by (dx, dy) cells.
func (s *Session) Nudge(dx, dy int) {
	s.DragMove(s.cursor.Add(geom.Point{X: dx, Y: dy}))
}

// Drop ends a keyboard drag where the item is.
func (s *Session) Drop() (judge.Outcome, error) {
	return s.DragEnd(s.cursor)
}

// AskHelper drops the resting item straight into the helper region, as if
// the player had dragged it there.
func (s *Session) AskHelper() (judge.Outcome, error) {
	if s.ended {
		return judge.Outcome{}, ErrEnded
	}
	if s.item == nil {
		return judge.Outcome{}, ErrNotDragging
	}
	if s.active != nil {
		return judge.Outcome{}, ErrAnimating
	}
	s.dragging = false
	s.item.Pos = s.scene.Helper.Rect.CenteredIn(s.item.Size)
	return s.resolve(store.SourcePlayer)
}

// Tick advances the running animation to now and, when it finishes, runs
// its continuation.
func (s *Session) Tick(now time.Time) error {
	a := s.active
	if a == nil || s.item == nil {
		return nil
	}

	done := true
	if a.move != nil {
		p, finished := a.move.At(now)
		s.item.Pos = p
		done = done && finished
	}
	if a.scale != nil {
		v, finished := a.scale.At(now)
		s.item.Scale = v
		done = done && finished
	}
	if !done {
		return nil
	}

	s.active = nil
	switch a.then {
	case thenResolve:
		_, err := s.resolve(store.SourceHelper)
		return err
	case thenRemove:
		s.item = nil
		s.spawn()
	}
	return nil
}

// resolve judges the item where it stands and starts the matching
// animation.
func (s *Session) resolve(source string) (judge.Outcome, error) {
	it := s.item
	out, err := s.judge.Resolve(it, it.Pos)
	if err != nil {
		return judge.Outcome{}, err
	}

	correct := false
	switch out.Kind {
	case judge.Disposed:
		correct = true
		s.learner.Train(it.Category, out.Bin)
		s.stats.Disposed++
		err = s.animate(animation{
			scale: &anim.Scale{From: it.Scale, By: RemoveScale, Start: s.now(), Duration: RemoveDuration},
			then:  thenRemove,
		})

	case judge.Suggested:
		correct = out.HelperRight()
		s.stats.Suggested++
		if correct {
			s.stats.HelperCorrect++
		}
		if out.Prediction.Learned {
			s.stats.HelperLearned++
		}
		var target geom.Point
		target, err = s.scene.Placement(out.Bin)
		if err != nil {
			return judge.Outcome{}, err
		}
		err = s.animate(animation{
			move: &anim.Move{From: it.Pos, To: target, Start: s.now(), Duration: MoveDuration, Ease: anim.Linear},
			then: thenResolve,
		})

	case judge.Returned:
		s.stats.Returned++
		if it.Pos != s.scene.Origin {
			err = s.animate(animation{
				move: &anim.Move{From: it.Pos, To: s.scene.Origin, Start: s.now(), Duration: MoveDuration, Ease: anim.EaseInOut},
				then: thenSettle,
			})
		}
	}
	if err != nil {
		return judge.Outcome{}, err
	}

	s.notice = &Notice{Outcome: out, Category: it.Category, Source: source, Correct: correct, At: s.now()}
	s.record(out, it.Category, source, correct)
	return out, nil
}

func (s *Session) animate(a animation) error {
	if s.active != nil {
		return ErrAnimating
	}
	s.active = &a
	return nil
}

// spawn places the next item at the top edge and drops it to the origin.
func (s *Session) spawn() {
	c := s.spawner.Next()
	s.item = waste.NewItem(c, s.scene.SpawnPoint(), s.scene.ItemSize)
	s.dragging = false
	s.active = &animation{
		move: &anim.Move{From: s.item.Pos, To: s.scene.Origin, Start: s.now(), Duration: DropInDuration, Ease: anim.EaseInOut},
		then: thenSettle,
	}
}

func (s *Session) record(out judge.Outcome, c waste.Category, source string, correct bool) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendSortEvent(context.Background(), store.SortEventData{
		SessionID: s.ID,
		Category:  string(c),
		Outcome:   out.Kind.String(),
		Bin:       string(out.Bin),
		Source:    source,
		Learned:   out.Prediction.Learned,
		Correct:   correct,
	})
	if err != nil {
		s.onLogError(err)
	}
}
