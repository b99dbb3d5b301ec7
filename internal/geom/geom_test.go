package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsRect(t *testing.T) {
	bin := Rect{X: 10, Y: 10, W: 10, H: 6}

	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"fully inside", Rect{X: 12, Y: 11, W: 4, H: 3}, true},
		{"same bounds", bin, true},
		{"touching right edge", Rect{X: 16, Y: 11, W: 4, H: 3}, true},
		{"one cell past right", Rect{X: 17, Y: 11, W: 4, H: 3}, false},
		{"partial overlap top", Rect{X: 12, Y: 8, W: 4, H: 3}, false},
		{"outside", Rect{X: 0, Y: 0, W: 4, H: 3}, false},
		{"larger than bin", Rect{X: 9, Y: 9, W: 12, H: 8}, false},
		{"empty", Rect{X: 12, Y: 11, W: 0, H: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bin.ContainsRect(tt.inner))
		})
	}
}

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 5, H: 5}

	assert.True(t, a.Intersects(Rect{X: 4, Y: 4, W: 2, H: 2}))
	assert.False(t, a.Intersects(Rect{X: 5, Y: 0, W: 2, H: 2}), "edge-adjacent boxes do not overlap")
	assert.False(t, a.Intersects(Rect{X: 1, Y: 1, W: 0, H: 0}))
}

func TestCenteredIn(t *testing.T) {
	bin := Rect{X: 10, Y: 10, W: 10, H: 7}
	p := bin.CenteredIn(Size{W: 4, H: 3})

	assert.Equal(t, Point{X: 13, Y: 12}, p)
	assert.True(t, bin.ContainsRect(NewRect(p, Size{W: 4, H: 3})))
}

func TestClampInside(t *testing.T) {
	field := Rect{X: 0, Y: 0, W: 20, H: 10}
	size := Size{W: 4, H: 2}

	assert.Equal(t, Point{X: 16, Y: 8}, field.ClampInside(Point{X: 30, Y: 30}, size))
	assert.Equal(t, Point{X: 0, Y: 0}, field.ClampInside(Point{X: -3, Y: -1}, size))
	assert.Equal(t, Point{X: 5, Y: 5}, field.ClampInside(Point{X: 5, Y: 5}, size))
}

func TestContainsPoint(t *testing.T) {
	r := Rect{X: 2, Y: 2, W: 3, H: 3}
	assert.True(t, r.Contains(Point{X: 2, Y: 2}))
	assert.True(t, r.Contains(Point{X: 4, Y: 4}))
	assert.False(t, r.Contains(Point{X: 5, Y: 4}))
}
