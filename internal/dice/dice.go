// Package dice provides injectable random sources and the shuffled die
// used to pick the next item.
package dice

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source abstracts the random number generator.
type Source interface {
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

type pcgSource struct {
	r *rand.Rand
}

func (s *pcgSource) IntN(n int) int { return s.r.IntN(n) }

// NewSeeded returns a reproducible source. Used by tests and --seed.
func NewSeeded(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, 0))}
}

// Default returns a source seeded from crypto/rand, falling back to the
// runtime-seeded global generator if the system source fails.
func Default() Source {
	var buf [16]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return &pcgSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &pcgSource{r: rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(buf[:8]),
		binary.BigEndian.Uint64(buf[8:]),
	))}
}

// ShuffledDie deals its faces in one shuffled order, chosen on the first
// roll and then repeated. Any Sides consecutive rolls show every face
// exactly once.
type ShuffledDie struct {
	sides int
	src   Source
	order []int
	next  int
}

// NewShuffledDie creates a die with faces 1..sides.
func NewShuffledDie(sides int, src Source) *ShuffledDie {
	if sides < 1 {
		sides = 1
	}
	return &ShuffledDie{sides: sides, src: src}
}

// Sides returns the number of faces.
func (d *ShuffledDie) Sides() int {
	return d.sides
}

// Roll returns the next face in [1, Sides].
func (d *ShuffledDie) Roll() int {
	if d.order == nil {
		d.shuffle()
	}
	n := d.order[d.next]
	d.next = (d.next + 1) % d.sides
	return n
}

func (d *ShuffledDie) shuffle() {
	order := make([]int, d.sides)
	for i := range order {
		order[i] = i + 1
	}
	// Fisher-Yates.
	for i := len(order) - 1; i > 0; i-- {
		j := d.src.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	d.order = order
}

// Weighted picks an index with probability proportional to weights[i].
// Non-positive weights are never picked; if no weight is positive the
// choice is uniform. weights must not be empty.
func Weighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return src.IntN(len(weights))
	}
	r := src.IntN(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
