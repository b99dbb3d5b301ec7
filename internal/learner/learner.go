// Package learner implements the bin learner: a single-attribute decision
// tree over item category, rebuilt from the example log on every query.
package learner

import (
	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/waste"
)

// Example is one observed disposal.
type Example struct {
	Category waste.Category
	Bin      waste.BinID
}

// Prediction is the learner's answer for one category.
type Prediction struct {
	Bin waste.BinID

	// Learned is false when the category had no examples and the bin was
	// picked by the random fallback.
	Learned bool

	// Support is the number of examples seen for the category.
	Support int

	// Votes is how many of those examples chose Bin.
	Votes int
}

// FallbackWeights are the branch weights of the random-bin path, in
// waste.AllBins order.
var FallbackWeights = []int{3, 3, 3}

// Learner is an online classifier mapping category to bin.
// It is owned by a single game session and is not safe for concurrent use.
type Learner struct {
	examples []Example
	src      dice.Source
}

// New creates an empty learner. src drives the random fallback.
func New(src dice.Source) *Learner {
	if src == nil {
		src = dice.Default()
	}
	return &Learner{src: src}
}

// Train appends one example.
func (l *Learner) Train(c waste.Category, b waste.BinID) {
	l.examples = append(l.examples, Example{Category: c, Bin: b})
}

// Len returns the number of recorded examples.
func (l *Learner) Len() int {
	return len(l.examples)
}

// Examples returns a copy of the example log in arrival order.
func (l *Learner) Examples() []Example {
	out := make([]Example, len(l.examples))
	copy(out, l.examples)
	return out
}

// Tally returns per-bin example counts for category c.
func (l *Learner) Tally(c waste.Category) map[waste.BinID]int {
	counts := make(map[waste.BinID]int)
	for _, e := range l.examples {
		if e.Category == c {
			counts[e.Bin]++
		}
	}
	return counts
}

// Predict returns the most frequent bin among examples of category c.
// Ties go to the bin whose first example arrived earliest. With no
// examples for c, a bin is drawn from FallbackWeights.
func (l *Learner) Predict(c waste.Category) Prediction {
	counts := make(map[waste.BinID]int)
	var order []waste.BinID
	support := 0

	for _, e := range l.examples {
		if e.Category != c {
			continue
		}
		support++
		if counts[e.Bin] == 0 {
			order = append(order, e.Bin)
		}
		counts[e.Bin]++
	}

	if support == 0 {
		return Prediction{Bin: RandomBin(l.src, FallbackWeights)}
	}

	best := order[0]
	for _, b := range order[1:] {
		if counts[b] > counts[best] {
			best = b
		}
	}
	return Prediction{
		Bin:     best,
		Learned: true,
		Support: support,
		Votes:   counts[best],
	}
}

// RandomBin picks a bin by branch weight, one weight per entry of
// waste.AllBins. Missing weights count as zero.
func RandomBin(src dice.Source, weights []int) waste.BinID {
	bins := waste.AllBins()
	w := make([]int, len(bins))
	copy(w, weights)
	return bins[dice.Weighted(src, w)]
}
