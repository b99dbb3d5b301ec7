// Package scene holds the static play field: the three bins, the helper
// region and the origin, loaded from a layout and validated up front.
package scene

import (
	"errors"
	"fmt"

	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/waste"
)

// ErrRegionNotFound is returned by FindRegion for unknown names.
var ErrRegionNotFound = errors.New("region not found")

// HelperRegionName always resolves to the helper region, whatever the
// layout calls it.
const HelperRegionName = "helper"

// Region is a named area of the field.
type Region struct {
	Name  string
	Label string
	Rect  geom.Rect
}

// Bin is a disposal target.
type Bin struct {
	ID     waste.BinID
	Name   string
	Region geom.Rect
}

// Scene is the validated, immutable field layout.
type Scene struct {
	Field    geom.Rect
	Origin   geom.Point
	ItemSize geom.Size
	Helper   Region

	bins    map[waste.BinID]Bin
	regions map[string]Region
}

// New validates l and builds a Scene.
func New(l *Layout) (*Scene, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}

	s := &Scene{
		Field:    geom.Rect{W: l.Field.Width, H: l.Field.Height},
		Origin:   l.Origin.point(),
		ItemSize: l.Item.size(),
		Helper: Region{
			Name:  l.Helper.Name,
			Label: l.Helper.Label,
			Rect:  l.Helper.Rect.rect(),
		},
		bins:    make(map[waste.BinID]Bin, len(l.Bins)),
		regions: make(map[string]Region),
	}
	if s.Helper.Label == "" {
		s.Helper.Label = s.Helper.Name
	}
	s.regions[s.Helper.Name] = s.Helper
	s.regions[HelperRegionName] = s.Helper

	for _, bs := range l.Bins {
		id := waste.BinID(bs.ID)
		name := bs.Name
		if name == "" {
			name = id.DisplayName()
		}
		b := Bin{ID: id, Name: name, Region: bs.Rect.rect()}
		s.bins[id] = b
		s.regions[name] = Region{Name: name, Label: name, Rect: b.Region}
		s.regions[string(id)] = Region{Name: name, Label: name, Rect: b.Region}
	}
	return s, nil
}

// FindRegion looks up a region by bin name, bin ID, helper name, or
// HelperRegionName.
func (s *Scene) FindRegion(name string) (Region, error) {
	r, ok := s.regions[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	return r, nil
}

// FindBin returns the bin an item of category c belongs in.
func (s *Scene) FindBin(c waste.Category) (Bin, error) {
	id, err := waste.CorrectBin(c)
	if err != nil {
		return Bin{}, err
	}
	b, ok := s.bins[id]
	if !ok {
		// New guarantees every bin exists; this only fires on a zero Scene.
		return Bin{}, fmt.Errorf("%w: bin %q", ErrRegionNotFound, id)
	}
	return b, nil
}

// Bin returns the bin with the given ID.
func (s *Scene) Bin(id waste.BinID) (Bin, bool) {
	b, ok := s.bins[id]
	return b, ok
}

// Bins returns all bins in display order.
func (s *Scene) Bins() []Bin {
	out := make([]Bin, 0, len(s.bins))
	for _, id := range waste.AllBins() {
		if b, ok := s.bins[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Placement returns the top-left position that centers an item in bin id.
func (s *Scene) Placement(id waste.BinID) (geom.Point, error) {
	b, ok := s.bins[id]
	if !ok {
		return geom.Point{}, fmt.Errorf("%w: bin %q", ErrRegionNotFound, id)
	}
	return b.Region.CenteredIn(s.ItemSize), nil
}

// SpawnPoint returns where a new item appears before dropping to Origin:
// the origin column, at the top edge of the field.
func (s *Scene) SpawnPoint() geom.Point {
	return geom.Point{X: s.Origin.X, Y: s.Field.Y}
}
