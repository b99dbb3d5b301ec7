package waste

import "github.com/abhisek/sortbot/internal/geom"

// Item is a rubbish item on the play field.
type Item struct {
	Category Category
	Pos      geom.Point // top-left cell
	Size     geom.Size
	Scale    float64 // 1 at rest, shrinks while being removed
}

// NewItem creates a full-size item at pos.
func NewItem(c Category, pos geom.Point, size geom.Size) *Item {
	return &Item{Category: c, Pos: pos, Size: size, Scale: 1}
}

// Bounds returns the item's bounding box at its current position.
func (it *Item) Bounds() geom.Rect {
	return geom.NewRect(it.Pos, it.Size)
}

// BoundsAt returns the item's bounding box if it were at p.
func (it *Item) BoundsAt(p geom.Point) geom.Rect {
	return geom.NewRect(p, it.Size)
}
