package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/router"
	"github.com/abhisek/sortbot/internal/screen"
	"github.com/abhisek/sortbot/internal/ui/theme"
	"github.com/abhisek/sortbot/internal/waste"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond  // robot only
	legendStep   = 300 * time.Millisecond  // one legend row per step
	phase2End    = 1500 * time.Millisecond // legend complete
	totalDur     = 4500 * time.Millisecond
)

const robotArt = `  ╭───────────╮
  │    ╔═╗    │
  │  ┌─┴─┴─┐  │
  │  │ ◉ ◉ │  │
  │  │ ▭▭▭ │  │
  │  └┬───┬┘  │
  │   ▀   ▀   │
  ╰───────────╯`

// sparkle frames cycle around the robot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a splash with the sorting rules before handing over
// to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	robotStyle := lipgloss.NewStyle().Foreground(theme.Helper)
	rendered := robotStyle.Render(robotArt)

	if w.elapsed >= phase1End {
		frame := w.tickCount % len(sparkleFrames)
		sparkle := sparkleFrames[frame]

		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 7 {
			lines[7] = s1 + "  " + lines[7] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	// Legend rows appear one at a time.
	if w.elapsed >= phase1End {
		sections = append(sections, "")
		shown := int((w.elapsed-phase1End)/legendStep) + 1
		for i, c := range waste.AllCategories() {
			if i >= shown {
				break
			}
			bin, _ := waste.CorrectBin(c)
			row := fmt.Sprintf("%s%s%s  %-12s →  %s",
				c.Glyph(), c.Glyph(), c.Glyph(), c.DisplayName(), bin.DisplayName())
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.CategoryColor(string(c))).
				Render(row))
		}
	}

	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Sort the rubbish. Teach the robot.")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
