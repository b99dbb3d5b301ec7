// Package stats shows lifetime sorting totals and recent sessions.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/router"
	"github.com/abhisek/sortbot/internal/screen"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/ui/components"
	"github.com/abhisek/sortbot/internal/ui/layout"
	"github.com/abhisek/sortbot/internal/ui/theme"
	"github.com/abhisek/sortbot/internal/waste"
)

// recentLimit caps the session list.
const recentLimit = 50

type statsLoadedMsg struct {
	Sessions   []store.SessionSummaryRecord
	Categories []store.CategoryTotal
	Events     map[string][]store.SortEventRecord // sessionID → sort events
	Err        error
}

// StatsScreen displays per-category totals and past sessions.
type StatsScreen struct {
	eventRepo  store.EventRepo
	sessions   []store.SessionSummaryRecord
	categories []store.CategoryTotal
	events     map[string][]store.SortEventRecord
	selected   int
	expanded   map[int]bool
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(eventRepo store.EventRepo) *StatsScreen {
	return &StatsScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		cats, err := s.eventRepo.CategoryTotals(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		sessions, err := s.eventRepo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		events := make(map[string][]store.SortEventRecord, len(sessions))
		for _, sess := range sessions {
			evs, err := s.eventRepo.QuerySortEvents(ctx, store.QueryOpts{SessionID: sess.SessionID})
			if err != nil {
				continue
			}
			events[sess.SessionID] = evs
		}

		return statsLoadedMsg{Sessions: sessions, Categories: cats, Events: events}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.categories = msg.Categories
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}
	if len(s.sessions) == 0 && len(s.categories) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing sorted yet. Start playing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderCategories(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent sessions")))
	b.WriteString("\n\n")

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Format("Jan 02, 2006 15:04")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d sorted  %d asked  %d returned",
			prefix, dateStr, durationStr, sess.Disposed, sess.Suggested, sess.Returned)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderSessionEvents(sess.SessionID, width))
		}
	}

	return b.String()
}

// renderCategories renders lifetime totals per category with a bar for
// the robot's accuracy on that category.
func (s *StatsScreen) renderCategories(width int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	for _, ct := range s.categories {
		cat := waste.Category(ct.Category)
		style := lipgloss.NewStyle().Foreground(theme.CategoryColor(ct.Category)).Bold(true)
		head := fmt.Sprintf("%s %-12s  %d sorted  %d asked  %d returned",
			cat.Glyph(), cat.DisplayName(), ct.Disposed, ct.Suggested, ct.Returned)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(head)))
		b.WriteString("\n")

		if ct.Suggested > 0 {
			acc := float64(ct.HelperCorrect) / float64(ct.Suggested)
			bar := components.NewProgressBar("robot", acc, true, cw)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *StatsScreen) renderSessionEvents(sessionID string, width int) string {
	evs := s.events[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(evs) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No items this session")) + "\n"
	}

	var b strings.Builder
	// Oldest first reads like a replay.
	for i := len(evs) - 1; i >= 0; i-- {
		ev := evs[i]
		who := "you"
		if ev.Source == store.SourceHelper {
			who = "robot"
		}
		line := fmt.Sprintf("    %s %-6s %-9s %-8s by %s", waste.Category(ev.Category).Glyph(), ev.Category, ev.Outcome, ev.Bin, who)
		style := lipgloss.NewStyle().Foreground(theme.CategoryColor(ev.Category))
		if !ev.Correct {
			style = style.Foreground(theme.Accent)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
