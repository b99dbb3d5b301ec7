package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/router"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/screen"
	"github.com/abhisek/sortbot/internal/screens/play"
	"github.com/abhisek/sortbot/internal/screens/stats"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/ui/components"
	"github.com/abhisek/sortbot/internal/ui/layout"
)

// Deps are the dependencies the home screen hands to the screens it opens.
type Deps struct {
	EventRepo store.EventRepo
	Scene     *scene.Scene
	Source    dice.Source
}

type totalsLoadedMsg struct {
	Totals store.Totals
	Err    error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	totals store.Totals
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PLAY", Hotkey: "p", Disabled: deps.Scene == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: play.New(play.Deps{
						Scene:     deps.Scene,
						EventRepo: deps.EventRepo,
						Source:    deps.Source,
					}),
				}
			}
		}},
		{Label: "STATS", Hotkey: "s", Disabled: deps.EventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(deps.EventRepo)}
			}
		}},
		{Label: "QUIT", Hotkey: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadTotals()
}

// Refresh reloads lifetime totals after a game or stats reset.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadTotals()
}

func (h *HomeScreen) loadTotals() tea.Cmd {
	repo := h.deps.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		t, err := repo.Totals(context.Background())
		return totalsLoadedMsg{Totals: t, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case totalsLoadedMsg:
		if msg.Err == nil {
			h.totals = msg.Totals
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}

	if h.deps.EventRepo == nil {
		sections = append(sections, renderNoStoreBanner(cw))
	} else {
		sections = append(sections, renderStatsBar(h.totals, cw, compact))
	}

	sections = append(sections, h.menu.View(cw, compact))

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return append(h.menu.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) mascotVariant() MascotVariant {
	switch {
	case h.totals.Disposed == 0:
		return MascotSleepy
	case h.totals.Suggested > 0 && h.totals.Disposed >= 2*h.totals.Returned:
		return MascotTrained
	default:
		return MascotIdle
	}
}
