package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/waste"
)

func TestPredict_Majority(t *testing.T) {
	l := New(dice.NewSeeded(1))
	l.Train(waste.Black, waste.Garbage)
	l.Train(waste.Black, waste.Recycle)
	l.Train(waste.Black, waste.Garbage)

	p := l.Predict(waste.Black)
	assert.Equal(t, waste.Garbage, p.Bin)
	assert.True(t, p.Learned)
	assert.Equal(t, 3, p.Support)
	assert.Equal(t, 2, p.Votes)
}

func TestPredict_TieGoesToFirstSeen(t *testing.T) {
	l := New(dice.NewSeeded(1))
	l.Train(waste.Blue, waste.Compost)
	l.Train(waste.Blue, waste.Garbage)

	p := l.Predict(waste.Blue)
	assert.Equal(t, waste.Compost, p.Bin)
	assert.Equal(t, 1, p.Votes)
}

func TestPredict_TieAfterOvertake(t *testing.T) {
	l := New(dice.NewSeeded(1))
	l.Train(waste.Green, waste.Recycle)
	l.Train(waste.Green, waste.Compost)
	l.Train(waste.Green, waste.Compost)
	l.Train(waste.Green, waste.Recycle)

	// 2-2: recycle was seen first.
	assert.Equal(t, waste.Recycle, l.Predict(waste.Green).Bin)

	l.Train(waste.Green, waste.Compost)
	assert.Equal(t, waste.Compost, l.Predict(waste.Green).Bin)
}

func TestPredict_IgnoresOtherCategories(t *testing.T) {
	l := New(dice.NewSeeded(1))
	l.Train(waste.Black, waste.Garbage)
	l.Train(waste.Blue, waste.Recycle)
	l.Train(waste.Blue, waste.Recycle)
	l.Train(waste.Black, waste.Garbage)

	assert.Equal(t, waste.Garbage, l.Predict(waste.Black).Bin)
	assert.Equal(t, waste.Recycle, l.Predict(waste.Blue).Bin)
}

func TestPredict_FallbackWhenUntrained(t *testing.T) {
	l := New(dice.NewSeeded(5))
	l.Train(waste.Black, waste.Garbage)

	seen := make(map[waste.BinID]int)
	for i := 0; i < 300; i++ {
		p := l.Predict(waste.Green)
		assert.False(t, p.Learned)
		assert.Zero(t, p.Support)
		assert.True(t, p.Bin.Valid())
		seen[p.Bin]++
	}
	assert.Len(t, seen, 3, "fallback should reach every bin")
}

func TestExamplesIsACopy(t *testing.T) {
	l := New(dice.NewSeeded(1))
	l.Train(waste.Black, waste.Garbage)

	ex := l.Examples()
	ex[0].Bin = waste.Compost

	assert.Equal(t, waste.Garbage, l.Examples()[0].Bin)
	assert.Equal(t, 1, l.Len())
}

func TestTally(t *testing.T) {
	l := New(dice.NewSeeded(1))
	l.Train(waste.Blue, waste.Recycle)
	l.Train(waste.Blue, waste.Recycle)
	l.Train(waste.Blue, waste.Garbage)
	l.Train(waste.Black, waste.Garbage)

	assert.Equal(t, map[waste.BinID]int{waste.Recycle: 2, waste.Garbage: 1}, l.Tally(waste.Blue))
	assert.Empty(t, l.Tally(waste.Green))
}

func TestRandomBin_Weights(t *testing.T) {
	src := dice.NewSeeded(3)
	for i := 0; i < 50; i++ {
		assert.Equal(t, waste.Compost, RandomBin(src, []int{0, 0, 1}))
	}
	// Short weight slices pad with zero.
	for i := 0; i < 50; i++ {
		assert.Equal(t, waste.Garbage, RandomBin(src, []int{2}))
	}
}
