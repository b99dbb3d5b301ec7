package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/ui/layout"
	"github.com/abhisek/sortbot/internal/ui/theme"
)

// MenuButtonWidth is the fixed width of each arcade button.
const MenuButtonWidth = 22

// MenuItem is one button of a Menu.
type MenuItem struct {
	Label string
	// Hotkey activates the item directly, e.g. "p" for PLAY.
	Hotkey   string
	Action   func() tea.Cmd
	Disabled bool
}

type menuKeys struct {
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Prev: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑↓", "navigate"),
		),
		Next: key.NewBinding(key.WithKeys("down", "j", "tab")),
		Select: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("Enter", "select"),
		),
	}
}

// Menu is a column of arcade buttons. Selection wraps around and skips
// disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
	keys     menuKeys
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, keys: defaultMenuKeys()}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update handles navigation, selection and hotkeys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Prev):
		m.Selected = m.step(-1)
	case key.Matches(kmsg, m.keys.Next):
		m.Selected = m.step(1)
	case key.Matches(kmsg, m.keys.Select):
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Hotkey != "" && kmsg.String() == item.Hotkey && !item.Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) step(dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		i := ((m.Selected+dir*k)%n + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// KeyHints returns footer hints for the menu, including enabled hotkeys.
func (m Menu) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: m.keys.Prev.Help().Key, Description: m.keys.Prev.Help().Desc},
		{Key: m.keys.Select.Help().Key, Description: m.keys.Select.Help().Desc},
	}
	for _, item := range m.Items {
		if item.Hotkey != "" && !item.Disabled {
			hints = append(hints, layout.KeyHint{
				Key:         strings.ToUpper(item.Hotkey),
				Description: strings.ToLower(item.Label),
			})
		}
	}
	return hints
}

// View renders the buttons centered in cw columns. Compact mode drops the
// borders for short terminals.
func (m Menu) View(cw int, compact bool) string {
	var rows []string
	for i, item := range m.Items {
		selected := i == m.Selected
		switch {
		case compact:
			rows = append(rows, compactRow(item, selected))
		case item.Disabled:
			rows = append(rows, lipgloss.NewStyle().
				Width(MenuButtonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(item.Label))
		default:
			rows = append(rows, ArcadeButton(item.Label, selected, MenuButtonWidth))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

func compactRow(item MenuItem, selected bool) string {
	switch {
	case item.Disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
	case selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + item.Label + " ")
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
	}
}
