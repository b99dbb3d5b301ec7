package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sortbot/internal/dice"
	"github.com/abhisek/sortbot/internal/geom"
	"github.com/abhisek/sortbot/internal/learner"
	"github.com/abhisek/sortbot/internal/scene"
	"github.com/abhisek/sortbot/internal/waste"
)

func testJudge(t *testing.T) (*Judge, *scene.Scene, *learner.Learner) {
	t.Helper()
	sc, err := scene.Default()
	require.NoError(t, err)
	l := learner.New(dice.NewSeeded(1))
	return New(sc, l), sc, l
}

func TestResolve_DisposedInMatchingBin(t *testing.T) {
	j, sc, _ := testJudge(t)

	for _, c := range waste.AllCategories() {
		item := waste.NewItem(c, sc.Origin, sc.ItemSize)
		bin, err := sc.FindBin(c)
		require.NoError(t, err)

		out, err := j.Resolve(item, bin.Region.CenteredIn(sc.ItemSize))
		require.NoError(t, err)
		assert.Equal(t, Disposed, out.Kind, "category %s", c)
		assert.Equal(t, bin.ID, out.Bin)
	}
}

func TestResolve_WrongBinIsReturned(t *testing.T) {
	j, sc, _ := testJudge(t)
	item := waste.NewItem(waste.Black, sc.Origin, sc.ItemSize)

	p, err := sc.Placement(waste.Compost)
	require.NoError(t, err)

	out, err := j.Resolve(item, p)
	require.NoError(t, err)
	assert.Equal(t, Returned, out.Kind)
	assert.Empty(t, out.Bin)
}

func TestResolve_PartialOverlapIsReturned(t *testing.T) {
	j, sc, _ := testJudge(t)
	item := waste.NewItem(waste.Blue, sc.Origin, sc.ItemSize)
	bin, err := sc.FindBin(waste.Blue)
	require.NoError(t, err)

	// One row above the bin's top edge.
	pos := geom.Point{X: bin.Region.X + 2, Y: bin.Region.Y - 1}
	require.True(t, bin.Region.Intersects(item.BoundsAt(pos)))

	out, err := j.Resolve(item, pos)
	require.NoError(t, err)
	assert.Equal(t, Returned, out.Kind)
}

func TestResolve_EdgeAlignedIsDisposed(t *testing.T) {
	j, sc, _ := testJudge(t)
	item := waste.NewItem(waste.Green, sc.Origin, sc.ItemSize)
	bin, err := sc.FindBin(waste.Green)
	require.NoError(t, err)

	pos := geom.Point{X: bin.Region.Right() - sc.ItemSize.W, Y: bin.Region.Bottom() - sc.ItemSize.H}
	out, err := j.Resolve(item, pos)
	require.NoError(t, err)
	assert.Equal(t, Disposed, out.Kind)
}

func TestResolve_HelperUsesPrediction(t *testing.T) {
	j, sc, l := testJudge(t)
	l.Train(waste.Black, waste.Recycle)
	l.Train(waste.Black, waste.Recycle)
	l.Train(waste.Black, waste.Garbage)

	item := waste.NewItem(waste.Black, sc.Origin, sc.ItemSize)
	out, err := j.Resolve(item, sc.Helper.Rect.CenteredIn(sc.ItemSize))
	require.NoError(t, err)

	assert.Equal(t, Suggested, out.Kind)
	assert.Equal(t, l.Predict(waste.Black).Bin, out.Bin)
	assert.Equal(t, waste.Recycle, out.Bin)
	assert.True(t, out.Prediction.Learned)
}

func TestResolve_HelperFallbackWhenUntrained(t *testing.T) {
	j, sc, _ := testJudge(t)
	item := waste.NewItem(waste.Green, sc.Origin, sc.ItemSize)

	out, err := j.Resolve(item, sc.Helper.Rect.CenteredIn(sc.ItemSize))
	require.NoError(t, err)
	assert.Equal(t, Suggested, out.Kind)
	assert.False(t, out.Prediction.Learned)
	assert.True(t, out.Bin.Valid())
}

func TestResolve_OriginIsReturned(t *testing.T) {
	j, sc, _ := testJudge(t)
	item := waste.NewItem(waste.Blue, sc.Origin, sc.ItemSize)

	out, err := j.Resolve(item, sc.Origin)
	require.NoError(t, err)
	assert.Equal(t, Returned, out.Kind)
}

func TestResolve_DoesNotTrain(t *testing.T) {
	j, sc, l := testJudge(t)
	item := waste.NewItem(waste.Black, sc.Origin, sc.ItemSize)
	p, err := sc.Placement(waste.Garbage)
	require.NoError(t, err)

	_, err = j.Resolve(item, p)
	require.NoError(t, err)
	assert.Zero(t, l.Len())
}

func TestResolve_UnknownCategory(t *testing.T) {
	j, sc, _ := testJudge(t)
	item := waste.NewItem("purple", sc.Origin, sc.ItemSize)
	_, err := j.Resolve(item, sc.Origin)
	assert.ErrorIs(t, err, waste.ErrUnknownCategory)
}

type stubPredictor struct{ bin waste.BinID }

func (s stubPredictor) Predict(waste.Category) learner.Prediction {
	return learner.Prediction{Bin: s.bin, Learned: true, Support: 1, Votes: 1}
}

func TestResolve_CustomPredictor(t *testing.T) {
	sc, err := scene.Default()
	require.NoError(t, err)
	j := New(sc, stubPredictor{bin: waste.Compost})

	item := waste.NewItem(waste.Black, sc.Origin, sc.ItemSize)
	out, err := j.Resolve(item, sc.Helper.Rect.CenteredIn(sc.ItemSize))
	require.NoError(t, err)
	assert.Equal(t, waste.Compost, out.Bin)
	assert.Equal(t, waste.Garbage, out.Home)
	assert.False(t, out.HelperRight())
}

func TestResolve_HomeIsSetForEveryKind(t *testing.T) {
	sc, err := scene.Default()
	require.NoError(t, err)
	j := New(sc, stubPredictor{bin: waste.Recycle})
	item := waste.NewItem(waste.Blue, sc.Origin, sc.ItemSize)

	out, err := j.Resolve(item, sc.Helper.Rect.CenteredIn(sc.ItemSize))
	require.NoError(t, err)
	assert.Equal(t, waste.Recycle, out.Home)
	assert.True(t, out.HelperRight())

	out, err = j.Resolve(item, sc.Origin)
	require.NoError(t, err)
	assert.Equal(t, Returned, out.Kind)
	assert.Equal(t, waste.Recycle, out.Home)
	assert.False(t, out.HelperRight())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "disposed", Disposed.String())
	assert.Equal(t, "suggested", Suggested.String())
	assert.Equal(t, "returned", Returned.String())
}
