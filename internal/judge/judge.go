// Package judge decides what happens to an item when a drag ends.
package judge

import (
	"fmt"

	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/learner"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/waste"
)

// Kind is the outcome of a drag.
type Kind int

const (
	Returned  Kind = iota // not in its bin or the helper; goes back to origin
	Disposed              // fully inside its matching bin
	Suggested             // fully inside the helper; move to the predicted bin
)

func (k Kind) String() string {
	switch k {
	case Returned:
		return "returned"
	case Disposed:
		return "disposed"
	case Suggested:
		return "suggested"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of Resolve.
type Outcome struct {
	Kind Kind

	// Bin is the bin disposed into (Disposed) or the predicted bin
	// (Suggested). Empty for Returned.
	Bin waste.BinID

	// Prediction is set for Suggested outcomes.
	Prediction learner.Prediction

	// Home is the bin the item's category belongs in, set for every kind.
	Home waste.BinID
}

// HelperRight reports whether a Suggested outcome named the item's own bin.
func (o Outcome) HelperRight() bool {
	return o.Kind == Suggested && o.Bin == o.Home
}

// Predictor is the part of the learner the judge needs.
type Predictor interface {
	Predict(c waste.Category) learner.Prediction
}

// Judge checks item placement against a scene.
type Judge struct {
	scene     *scene.Scene
	predictor Predictor
}

// New creates a Judge.
func New(sc *scene.Scene, p Predictor) *Judge {
	return &Judge{scene: sc, predictor: p}
}

// Resolve decides the outcome for an item of the given category whose
// drag ended with its top-left corner at pos. Containment is full: an
// item straddling a bin edge is Returned. Resolve does not mutate
// anything; recording examples is the caller's job.
func (j *Judge) Resolve(item *waste.Item, pos geom.Point) (Outcome, error) {
	bounds := item.BoundsAt(pos)

	bin, err := j.scene.FindBin(item.Category)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve %s item: %w", item.Category, err)
	}
	if bin.Region.ContainsRect(bounds) {
		return Outcome{Kind: Disposed, Bin: bin.ID, Home: bin.ID}, nil
	}

	if j.scene.Helper.Rect.ContainsRect(bounds) {
		p := j.predictor.Predict(item.Category)
		return Outcome{Kind: Suggested, Bin: p.Bin, Prediction: p, Home: bin.ID}, nil
	}

	return Outcome{Kind: Returned, Home: bin.ID}, nil
}
