package scene

import (
	"fmt"

	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/waste"
)

// Validate checks the semantic constraints of a layout and returns a
// *ValidationError listing every problem, or nil.
func Validate(l *Layout) error {
	var errs []string
	addf := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if l.Version != 1 {
		addf("unsupported version %d", l.Version)
	}

	field := geom.Rect{W: l.Field.Width, H: l.Field.Height}
	item := l.Item.size()
	if field.Empty() {
		addf("field must have positive width and height")
	}
	if item.W <= 0 || item.H <= 0 {
		addf("item must have positive width and height")
	}

	type named struct {
		name string
		rect geom.Rect
	}
	var regions []named

	helper := l.Helper.Rect.rect()
	if l.Helper.Name == "" {
		addf("helper: name is required")
	}
	if !field.ContainsRect(helper) {
		addf("helper %q: region %v lies outside the field", l.Helper.Name, helper)
	}
	if !fits(item, helper) {
		addf("helper %q: item %dx%d does not fit in %dx%d", l.Helper.Name, item.W, item.H, helper.W, helper.H)
	}
	regions = append(regions, named{name: "helper " + l.Helper.Name, rect: helper})

	seen := make(map[waste.BinID]bool)
	for i, b := range l.Bins {
		id, err := waste.ParseBin(b.ID)
		if err != nil {
			addf("bins[%d]: %v", i, err)
			continue
		}
		if seen[id] {
			addf("bins[%d]: duplicate bin %q", i, id)
			continue
		}
		seen[id] = true

		r := b.Rect.rect()
		if !field.ContainsRect(r) {
			addf("bin %q: region %v lies outside the field", id, r)
		}
		if !fits(item, r) {
			addf("bin %q: item %dx%d does not fit in %dx%d", id, item.W, item.H, r.W, r.H)
		}
		regions = append(regions, named{name: "bin " + string(id), rect: r})
	}
	for _, id := range waste.AllBins() {
		if !seen[id] {
			addf("missing bin %q", id)
		}
	}
	for _, c := range waste.AllCategories() {
		id, err := waste.CorrectBin(c)
		if err != nil {
			addf("category %q: %v", c, err)
			continue
		}
		if !seen[id] {
			addf("category %q: its bin %q is not in the layout", c, id)
		}
	}

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].rect.Intersects(regions[j].rect) {
				addf("%s overlaps %s", regions[i].name, regions[j].name)
			}
		}
	}

	start := geom.NewRect(l.Origin.point(), item)
	if !field.ContainsRect(start) {
		addf("origin (%d,%d): item would not be inside the field", l.Origin.X, l.Origin.Y)
	}
	for _, r := range regions {
		if r.rect.Intersects(start) {
			addf("origin (%d,%d): item would overlap %s", l.Origin.X, l.Origin.Y, r.name)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func fits(item geom.Size, r geom.Rect) bool {
	return item.W <= r.W && item.H <= r.H
}
