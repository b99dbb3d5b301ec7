// Package geom provides integer cell geometry for the play field.
// It has no TUI dependency so the game logic stays testable headless.
package geom

import "fmt"

// Point is a cell position in field coordinates. Y grows downward.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair in cells.
type Size struct {
	W, H int
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle from a top-left corner and a size.
func NewRect(at Point, size Size) Rect {
	return Rect{X: at.X, Y: at.Y, W: size.W, H: size.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d at (%d,%d)", r.W, r.H, r.X, r.Y)
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether other lies entirely inside r.
// Touching edges count as inside; an empty other is never contained.
func (r Rect) ContainsRect(other Rect) bool {
	if other.Empty() || r.Empty() {
		return false
	}
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Center returns the center cell, rounding toward the top-left.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Moved returns the rectangle with its top-left corner at p.
func (r Rect) Moved(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// CenteredIn returns the top-left position that centers a box of the
// given size inside r.
func (r Rect) CenteredIn(size Size) Point {
	return Point{
		X: r.X + (r.W-size.W)/2,
		Y: r.Y + (r.H-size.H)/2,
	}
}

// ClampInside returns the top-left position closest to p that keeps a box
// of the given size inside r. Boxes larger than r are pinned to its corner.
func (r Rect) ClampInside(p Point, size Size) Point {
	return Point{
		X: Clamp(p.X, r.X, r.Right()-size.W),
		Y: Clamp(p.Y, r.Y, r.Bottom()-size.H),
	}
}

// Clamp restricts a value to [lo, hi]. When hi < lo, lo wins.
func Clamp(val, lo, hi int) int {
	if val > hi {
		val = hi
	}
	if val < lo {
		val = lo
	}
	return val
}
