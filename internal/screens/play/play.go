// Package play is the sorting field screen.
package play

import (
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/game"
	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/router"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/screen"
	"github.com/abhisek/sortbot/internal/screens/summary"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/ui/layout"
)

// frameInterval paces animation frames at about 30 fps.
const frameInterval = time.Second / 30

// frameMsg is sent on each animation frame.
type frameMsg time.Time

// Deps are the play screen's injected dependencies.
type Deps struct {
	Scene     *scene.Scene
	EventRepo store.EventRepo
	Source    dice.Source
	Clock     func() time.Time
}

// PlayScreen implements screen.Screen for one game session.
type PlayScreen struct {
	sess    *game.Session
	keys    keyMap
	width   int
	height  int
	ticking bool
	errMsg  string
	logErr  string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a PlayScreen with a fresh session.
func New(deps Deps) *PlayScreen {
	s := &PlayScreen{keys: defaultKeyMap()}
	sess, err := game.New(game.Options{
		Scene:      deps.Scene,
		Source:     deps.Source,
		EventRepo:  deps.EventRepo,
		Clock:      deps.Clock,
		OnLogError: func(err error) { s.logErr = err.Error() },
	})
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.sess = sess
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.sess == nil {
		return nil
	}
	s.sess.Start()
	return s.ensureTicking()
}

func (s *PlayScreen) Title() string {
	return "Play"
}

// HandlesEscape reports that Esc ends the session here instead of popping.
func (s *PlayScreen) HandlesEscape() bool {
	return s.sess != nil
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.sess == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	grab := s.keys.Grab.Help()
	if s.sess.Dragging() {
		grab.Desc = "drop"
	}
	bindings := []key.Help{grab, s.keys.Move.Help(), s.keys.Helper.Help(), s.keys.End.Help()}
	hints := make([]layout.KeyHint, 0, len(bindings)+1)
	hints = append(hints, layout.KeyHint{Key: "Mouse", Description: "drag"})
	for _, h := range bindings {
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.sess == nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case frameMsg:
		s.ticking = false
		s.check(s.sess.Tick(time.Time(msg)))
		return s, s.ensureTicking()

	case tea.MouseClickMsg:
		m := msg.Mouse()
		if m.Button == tea.MouseLeft {
			s.sess.DragStart(s.toField(m))
		}
		return s, nil

	case tea.MouseMotionMsg:
		if s.sess.Dragging() {
			s.sess.DragMove(s.toField(msg.Mouse()))
		}
		return s, nil

	case tea.MouseReleaseMsg:
		if s.sess.Dragging() {
			_, err := s.sess.DragEnd(s.toField(msg.Mouse()))
			s.check(err)
		}
		return s, s.ensureTicking()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.End):
		return s.endSession()

	case key.Matches(msg, s.keys.Grab):
		if s.sess.Dragging() {
			_, err := s.sess.Drop()
			s.check(err)
		} else {
			s.sess.Grab()
		}

	case key.Matches(msg, s.keys.Helper):
		if s.sess.Dragging() {
			return s, nil
		}
		_, err := s.sess.AskHelper()
		s.check(err)

	case key.Matches(msg, s.keys.Up):
		s.sess.Nudge(0, -1)
	case key.Matches(msg, s.keys.Down):
		s.sess.Nudge(0, 1)
	case key.Matches(msg, s.keys.Left):
		s.sess.Nudge(-2, 0)
	case key.Matches(msg, s.keys.Right):
		s.sess.Nudge(2, 0)
	}
	return s, s.ensureTicking()
}

// endSession records the end of the session and shows its summary in
// place of this screen.
func (s *PlayScreen) endSession() (screen.Screen, tea.Cmd) {
	sum := s.sess.End()
	return s, tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(sum)} },
		func() tea.Msg { return screen.StatsChangedMsg{} },
	)
}

// check keeps unexpected session errors for display. Input that arrives
// during an animation is dropped silently.
func (s *PlayScreen) check(err error) {
	if err == nil || errors.Is(err, game.ErrAnimating) || errors.Is(err, game.ErrNotDragging) {
		return
	}
	s.errMsg = err.Error()
}

// ensureTicking schedules the next frame while an animation runs.
func (s *PlayScreen) ensureTicking() tea.Cmd {
	if s.ticking || !s.sess.Animating() {
		return nil
	}
	s.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// toField converts a content-area mouse position to field coordinates.
func (s *PlayScreen) toField(m tea.Mouse) geom.Point {
	left := fieldLeft(s.width, s.sess.Scene().Field.W)
	return geom.Point{X: m.X - left - 1, Y: m.Y - fieldTop - 1}
}
