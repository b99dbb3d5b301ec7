package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/router"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/screen"
	"github.com/abhisek/sortbot/internal/screens/home"
	"github.com/abhisek/sortbot/internal/screens/welcome"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/ui/layout"
)

// Options holds optional dependencies for the app.
type Options struct {
	EventRepo store.EventRepo
	Scene     *scene.Scene
	Source    dice.Source

	// SkipSplash starts on the home screen instead of the welcome splash.
	SkipSplash bool
}

// totalsLoadedMsg carries lifetime counters for the header.
type totalsLoadedMsg struct {
	Totals store.Totals
	Err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	eventRepo store.EventRepo
	stats     layout.HeaderStats
	width     int
	height    int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	newHome := func() screen.Screen {
		return home.New(home.Deps{
			EventRepo: opts.EventRepo,
			Scene:     opts.Scene,
			Source:    opts.Source,
		})
	}
	var first screen.Screen
	if opts.SkipSplash {
		first = newHome()
	} else {
		first = welcome.New(newHome)
	}
	return AppModel{
		router:    router.New(first),
		eventRepo: opts.EventRepo,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadTotals())
}

func (m AppModel) loadTotals() tea.Cmd {
	if m.eventRepo == nil {
		return nil
	}
	repo := m.eventRepo
	return func() tea.Msg {
		t, err := repo.Totals(context.Background())
		return totalsLoadedMsg{Totals: t, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd := m.router.Update(tea.WindowSizeMsg{
			Width:  m.width,
			Height: layout.ContentHeight(m.height),
		})
		return m, cmd

	case totalsLoadedMsg:
		if msg.Err == nil {
			m.stats = layout.HeaderStats{Disposed: msg.Totals.Disposed, Suggested: msg.Totals.Suggested}
		}
		return m, nil

	case router.PushScreenMsg, router.ReplaceScreenMsg:
		// New screens learn the content size from a repeated resize.
		cmd := m.router.Update(msg)
		width, height := m.width, m.height
		return m, tea.Batch(cmd, func() tea.Msg {
			return tea.WindowSizeMsg{Width: width, Height: height}
		})

	case screen.StatsChangedMsg:
		return m, tea.Batch(m.loadTotals(), m.router.Update(msg))

	case tea.MouseClickMsg:
		return m, m.router.Update(tea.MouseClickMsg(toContent(msg.Mouse())))
	case tea.MouseMotionMsg:
		return m, m.router.Update(tea.MouseMotionMsg(toContent(msg.Mouse())))
	case tea.MouseReleaseMsg:
		return m, m.router.Update(tea.MouseReleaseMsg(toContent(msg.Mouse())))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// toContent translates a terminal mouse position into the content area
// below the header.
func toContent(mouse tea.Mouse) tea.Mouse {
	mouse.Y -= layout.HeaderHeight
	return mouse
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
