package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = `███████╗ ██████╗ ██████╗ ████████╗██████╗  ██████╗ ████████╗
██╔════╝██╔═══██╗██╔══██╗╚══██╔══╝██╔══██╗██╔═══██╗╚══██╔══╝
███████╗██║   ██║██████╔╝   ██║   ██████╔╝██║   ██║   ██║
╚════██║██║   ██║██╔══██╗   ██║   ██╔══██╗██║   ██║   ██║
███████║╚██████╔╝██║  ██║   ██║   ██████╔╝╚██████╔╝   ██║
╚══════╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═════╝  ╚═════╝    ╚═╝`

const arcadeTitleCompact = "S · O · R · T · B · O · T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact || cw < lipgloss.Width(arcadeTitleFull) {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders lifetime totals in a bordered box matching content width.
func renderStatsBar(t store.Totals, cw int, compact bool) string {
	sortedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	askedStyle := lipgloss.NewStyle().Foreground(theme.Helper).Bold(true)
	returnedStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			sortedStyle.Render(fmt.Sprintf("✔%d", t.Disposed)),
			askedStyle.Render(fmt.Sprintf("◎%d", t.Suggested)),
			returnedStyle.Render(fmt.Sprintf("↺%d", t.Returned)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			sortedStyle.Render(fmt.Sprintf("✔ %d SORTED", t.Disposed)),
			askedStyle.Render(fmt.Sprintf("◎ %d ASKED", t.Suggested)),
			returnedStyle.Render(fmt.Sprintf("↺ %d RETURNED", t.Returned)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderNoStoreBanner renders a warning when stats are not being recorded.
func renderNoStoreBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Statistics are off for this run (see sortbot --help)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
