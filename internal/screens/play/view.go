package play

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sortbot/internal/game"
	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/judge"
	"github.com/abhisek/sortbot/internal/store"
	"github.com/abhisek/sortbot/internal/ui/theme"
	"github.com/abhisek/sortbot/internal/waste"
)

// fieldTop is the content row of the field's top border. Row 0 holds the
// notice line.
const fieldTop = 1

// fieldLeft returns the content column of the field's left border.
func fieldLeft(width, fieldW int) int {
	left := (width - (fieldW + 2)) / 2
	if left < 0 {
		return 0
	}
	return left
}

type cell struct {
	ch   rune
	fg   color.Color
	bold bool
}

// canvas is a grid of styled cells in field coordinates.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{ch: ' ', fg: theme.TextDim}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, ch rune, fg color.Color, bold bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{ch: ch, fg: fg, bold: bold}
}

func (c *canvas) text(x, y int, s string, fg color.Color, bold bool) {
	for _, r := range s {
		c.set(x, y, r, fg, bold)
		x++
	}
}

// box draws a border around r with an optional title on the top edge.
func (c *canvas) box(r geom.Rect, b lipgloss.Border, fg color.Color, title string) {
	if r.Empty() {
		return
	}
	first := func(s string) rune {
		for _, ch := range s {
			return ch
		}
		return ' '
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, first(b.Top), fg, false)
		c.set(x, bottom, first(b.Bottom), fg, false)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, first(b.Left), fg, false)
		c.set(right, y, first(b.Right), fg, false)
	}
	c.set(r.X, r.Y, first(b.TopLeft), fg, false)
	c.set(right, r.Y, first(b.TopRight), fg, false)
	c.set(r.X, bottom, first(b.BottomLeft), fg, false)
	c.set(right, bottom, first(b.BottomRight), fg, false)

	if title != "" {
		title = " " + title + " "
		tw := len([]rune(title))
		if tw > r.W-2 {
			title = string([]rune(title)[:max(r.W-2, 0)])
			tw = r.W - 2
		}
		c.text(r.X+(r.W-tw)/2, r.Y, title, fg, true)
	}
}

func (c *canvas) fill(r geom.Rect, ch rune, fg color.Color, bold bool) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.set(x, y, ch, fg, bold)
		}
	}
}

// render joins runs of equally styled cells into styled strings.
func (c *canvas) render() []string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bold == row[start].bold {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				run.WriteRune(cl.ch)
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(row[start].fg).
				Bold(row[start].bold).
				Render(run.String()))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	}

	sc := s.sess.Scene()
	field := sc.Field
	if width < field.W+2 || height < field.H+2+fieldTop {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\nTerminal too small.\n\nNeeds %d x %d cells.",
				field.W+2, field.H+2+fieldTop))
	}

	c := newCanvas(field.W, field.H)
	for _, bin := range sc.Bins() {
		c.box(bin.Region, lipgloss.RoundedBorder(), theme.CategoryColor(string(bin.ID)), bin.Name)
	}
	s.drawHelper(c)
	s.drawItem(c)

	left := strings.Repeat(" ", fieldLeft(width, field.W))
	border := lipgloss.NewStyle().Foreground(theme.Border)
	bc := lipgloss.NormalBorder()

	var b strings.Builder
	b.WriteString(left + s.noticeLine() + "\n")
	b.WriteString(left + border.Render(bc.TopLeft+strings.Repeat(bc.Top, field.W)+bc.TopRight) + "\n")
	for _, line := range c.render() {
		b.WriteString(left + border.Render(bc.Left) + line + border.Render(bc.Right) + "\n")
	}
	b.WriteString(left + border.Render(bc.BottomLeft+strings.Repeat(bc.Bottom, field.W)+bc.BottomRight))
	if height > field.H+2+fieldTop {
		b.WriteString("\n" + left + s.learnerLine())
	}
	return b.String()
}

func (s *PlayScreen) drawHelper(c *canvas) {
	h := s.sess.Scene().Helper
	c.box(h.Rect, lipgloss.DoubleBorder(), theme.Helper, h.Label)

	inner := geom.Rect{X: h.Rect.X + 1, Y: h.Rect.Y + 1, W: h.Rect.W - 2, H: h.Rect.H - 2}
	if inner.Empty() {
		return
	}
	face := "[◉_◉]"
	says := ""
	if n := s.sess.Notice(); n != nil && n.Outcome.Kind == judge.Suggested && s.sess.Animating() {
		face = "[◉‿◉]"
		says = "→ " + string(n.Outcome.Bin)
	}
	center := func(y int, text string, fg color.Color) {
		tw := len([]rune(text))
		c.text(inner.X+(inner.W-tw)/2, y, text, fg, false)
	}
	center(inner.Y, face, theme.Helper)
	if says != "" && inner.H > 1 {
		center(inner.Y+1, says, theme.ArcadeYellow)
	}
}

func (s *PlayScreen) drawItem(c *canvas) {
	it, ok := s.sess.Item()
	if !ok {
		return
	}
	r := it.Bounds()
	if it.Scale < 1 {
		w := max(1, int(math.Round(float64(r.W)*it.Scale)))
		h := max(1, int(math.Round(float64(r.H)*it.Scale)))
		r = geom.NewRect(r.CenteredIn(geom.Size{W: w, H: h}), geom.Size{W: w, H: h})
	}
	glyph := []rune(it.Category.Glyph())[0]
	c.fill(r, glyph, theme.CategoryColor(string(it.Category)), s.sess.Dragging())
}

func (s *PlayScreen) noticeLine() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if s.logErr != "" {
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ stats not saved: " + s.logErr)
	}
	n := s.sess.Notice()
	if n == nil {
		if it, ok := s.sess.Item(); ok {
			return dim.Render(fmt.Sprintf("Sort the %s. Drop it on the robot for a hint.",
				strings.ToLower(it.Category.DisplayName())))
		}
		return ""
	}

	name := n.Category.DisplayName()
	var text string
	var fg color.Color
	switch n.Outcome.Kind {
	case judge.Disposed:
		fg = theme.Success
		text = fmt.Sprintf("✔ %s went into the %s", name, n.Outcome.Bin.DisplayName())
		if n.Source == store.SourceHelper {
			text = fmt.Sprintf("✔ The robot sorted the %s into the %s", strings.ToLower(name), n.Outcome.Bin.DisplayName())
		}
	case judge.Suggested:
		fg = theme.Helper
		how := "guessing"
		if p := n.Outcome.Prediction; p.Learned {
			how = fmt.Sprintf("learned %d/%d", p.Votes, p.Support)
		}
		text = fmt.Sprintf("◎ The robot suggests the %s (%s)", n.Outcome.Bin.DisplayName(), how)
	case judge.Returned:
		fg = theme.Accent
		text = fmt.Sprintf("↺ %s does not go there", name)
		if n.Source == store.SourceHelper {
			text = "↺ The robot got it wrong. Show it the right bin!"
		}
	}
	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render(text)
}

// learnerLine summarizes what the robot has learned and the session
// counters.
func (s *PlayScreen) learnerLine() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	known := map[waste.Category]game.Rule{}
	for _, r := range s.sess.Summary().Rules {
		known[r.Category] = r
	}

	parts := make([]string, 0, len(waste.AllCategories()))
	for _, cat := range waste.AllCategories() {
		style := lipgloss.NewStyle().Foreground(theme.CategoryColor(string(cat)))
		if r, ok := known[cat]; ok {
			parts = append(parts, style.Render(fmt.Sprintf("%s→%s %d/%d", cat, r.Bin, r.Votes, r.Support)))
		} else {
			parts = append(parts, style.Render(string(cat)+"→?"))
		}
	}
	st := s.sess.Stats()
	return dim.Render("Robot knows: ") + strings.Join(parts, dim.Render(" · ")) +
		dim.Render(fmt.Sprintf("   sorted %d  asked %d  returned %d", st.Disposed, st.Suggested, st.Returned))
}
