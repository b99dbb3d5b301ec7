package waste

import (
	"errors"
	"fmt"
)

// Category identifies the kind of rubbish item. It is the single feature
// the bin learner sees.
type Category string

const (
	Black Category = "black"
	Blue  Category = "blue"
	Green Category = "green"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{Black, Blue, Green}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Black, Blue, Green:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case Black:
		return "Black bag"
	case Blue:
		return "Blue bottle"
	case Green:
		return "Green peel"
	default:
		return string(c)
	}
}

// Glyph returns the cell pattern used to draw the item.
func (c Category) Glyph() string {
	switch c {
	case Black:
		return "▓"
	case Blue:
		return "▒"
	case Green:
		return "░"
	default:
		return "?"
	}
}

// BinID identifies a disposal bin.
type BinID string

const (
	Garbage BinID = "garbage"
	Recycle BinID = "recycle"
	Compost BinID = "compost"
)

// AllBins returns all bin IDs in display order.
func AllBins() []BinID {
	return []BinID{Garbage, Recycle, Compost}
}

// Valid reports whether b is a known bin.
func (b BinID) Valid() bool {
	switch b {
	case Garbage, Recycle, Compost:
		return true
	}
	return false
}

// DisplayName returns the default bin label.
func (b BinID) DisplayName() string {
	switch b {
	case Garbage:
		return "garbage bin"
	case Recycle:
		return "recycling bin"
	case Compost:
		return "compost bin"
	default:
		return string(b)
	}
}

// ErrUnknownCategory is returned when a category has no bin mapping.
var ErrUnknownCategory = errors.New("unknown category")

// CorrectBin returns the bin an item of category c belongs in. The mapping
// is fixed and independent of anything the learner has seen.
func CorrectBin(c Category) (BinID, error) {
	switch c {
	case Black:
		return Garbage, nil
	case Blue:
		return Recycle, nil
	case Green:
		return Compost, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// ParseBin converts a string to a BinID.
func ParseBin(s string) (BinID, error) {
	b := BinID(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown bin: %q", s)
	}
	return b, nil
}
