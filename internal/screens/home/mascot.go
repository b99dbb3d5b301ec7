package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/ui/theme"
)

// MascotVariant selects which robot art to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // Default, some sorting done
	MascotSleepy                       // Nothing sorted yet
	MascotTrained                      // Helper has been asked and is mostly right
)

const mascotIdle = `  ╔═╗
┌─┴─┴─┐
│ ◉ ◉ │
│ ▭▭▭ │
└┬───┬┘
 ▀   ▀`

const mascotSleepy = `  ╔═╗
┌─┴─┴─┐
│ - - │ z
│ ▭▭▭ │
└┬───┬┘
 ▀   ▀`

const mascotTrained = `  ╔★╗
┌─┴─┴─┐
│ ★ ★ │
│ ◡◡◡ │
└┬───┬┘
 ▀   ▀`

// RenderMascot returns the robot art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Helper

	switch v {
	case MascotTrained:
		art = mascotTrained
		fg = theme.ArcadeYellow
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
