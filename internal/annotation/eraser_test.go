package annotation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

func near(t *testing.T, want, got geom.Point, tolerance float64) {
	t.Helper()
	if math.Abs(want.X-got.X) > tolerance || math.Abs(want.Y-got.Y) > tolerance {
		t.Errorf("point %v not within %v of %v", got, tolerance, want)
	}
}

func TestErase_UntouchedStrokeUnchanged(t *testing.T) {
	store := NewStore()
	points := []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 40, Y: 0}}
	id, err := store.AddStroke(points, testStyle(), 1)
	require.NoError(t, err)

	result := store.Erase(Eraser{CenterX: 20, CenterY: 100, Radius: 5}, 1)

	assert.False(t, result.Touched())
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Added)

	stroke, ok := store.Stroke(id)
	require.True(t, ok, "untouched stroke keeps its id")
	assert.Equal(t, points, stroke.Points, "untouched stroke keeps its exact points")
}

func TestErase_StrokeFullyInsideIsRemoved(t *testing.T) {
	store := NewStore()
	id, err := store.AddStroke([]geom.Point{{X: 19, Y: 0}, {X: 20, Y: 0}, {X: 21, Y: 0}}, testStyle(), 1)
	require.NoError(t, err)

	result := store.Erase(Eraser{CenterX: 20, CenterY: 0, Radius: 5}, 1)

	assert.Equal(t, []string{id}, result.Removed)
	assert.Empty(t, result.Added, "a fully swallowed stroke produces no replacements")

	strokes, _ := store.Counts()
	assert.Zero(t, strokes)
}

func TestErase_SplitsStrokeInTwo(t *testing.T) {
	store := NewStore()
	style := StrokeStyle{Color: "#00ff00", StrokeWidth: 3, Opacity: 0.8}
	id, err := store.AddStroke([]geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 40, Y: 0}}, style, 2)
	require.NoError(t, err)

	result := store.Erase(Eraser{CenterX: 20, CenterY: 0, Radius: 5}, 2)

	require.Equal(t, []string{id}, result.Removed)
	require.Len(t, result.Added, 2)

	left, right := result.Added[0], result.Added[1]

	near(t, geom.Point{X: 0, Y: 0}, left.Points[0], 1e-9)
	near(t, geom.Point{X: 15, Y: 0}, left.Points[len(left.Points)-1], 1e-6)
	near(t, geom.Point{X: 25, Y: 0}, right.Points[0], 1e-6)
	near(t, geom.Point{X: 40, Y: 0}, right.Points[len(right.Points)-1], 1e-9)

	for _, fragment := range result.Added {
		assert.NotEqual(t, id, fragment.ID, "fragments carry fresh ids")
		assert.Equal(t, "#00ff00", fragment.Color)
		assert.Equal(t, 3.0, fragment.StrokeWidth)
		assert.Equal(t, 0.8, fragment.Opacity)
		assert.Equal(t, 2, fragment.PageNumber)
	}

	_, ok := store.Stroke(id)
	assert.False(t, ok, "the original id is gone from the store")

	strokes, _ := store.Counts()
	assert.Equal(t, 2, strokes)
}

func TestErase_NoSinglePointFragments(t *testing.T) {
	store := NewStore()

	// First point sits exactly on the boundary and is therefore erased;
	// whatever fragments result, none may be shorter than two points.
	_, err := store.AddStroke([]geom.Point{{X: 15, Y: 0}, {X: 20, Y: 0}, {X: 40, Y: 0}}, testStyle(), 1)
	require.NoError(t, err)

	store.Erase(Eraser{CenterX: 20, CenterY: 0, Radius: 5}, 1)

	for _, stroke := range store.Strokes() {
		assert.GreaterOrEqual(t, len(stroke.Points), 2, "no 1-point strokes may survive an erase")
	}
}

func TestErase_EndInsideEraser(t *testing.T) {
	store := NewStore()
	id, err := store.AddStroke([]geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}}, testStyle(), 1)
	require.NoError(t, err)

	result := store.Erase(Eraser{CenterX: 20, CenterY: 0, Radius: 5}, 1)

	require.Equal(t, []string{id}, result.Removed)
	require.Len(t, result.Added, 1)

	fragment := result.Added[0]
	near(t, geom.Point{X: 0, Y: 0}, fragment.Points[0], 1e-9)
	near(t, geom.Point{X: 15, Y: 0}, fragment.Points[len(fragment.Points)-1], 1e-6)
}

func TestErase_BoundaryPointCountsAsInside(t *testing.T) {
	store := NewStore()
	// Middle point at distance exactly radius from the center.
	id, err := store.AddStroke([]geom.Point{{X: 0, Y: 0}, {X: 15, Y: 0}, {X: 0, Y: 10}}, testStyle(), 1)
	require.NoError(t, err)

	result := store.Erase(Eraser{CenterX: 20, CenterY: 0, Radius: 5}, 1)

	assert.Equal(t, []string{id}, result.Removed, "a point on the boundary is erased")
}

func TestErase_OnlyAffectsRequestedPage(t *testing.T) {
	store := NewStore()
	points := []geom.Point{{X: 18, Y: 0}, {X: 22, Y: 0}}
	idPage1, _ := store.AddStroke(points, testStyle(), 1)
	idPage2, _ := store.AddStroke(points, testStyle(), 2)

	result := store.Erase(Eraser{CenterX: 20, CenterY: 0, Radius: 5}, 1)

	assert.Equal(t, []string{idPage1}, result.Removed)
	_, ok := store.Stroke(idPage2)
	assert.True(t, ok, "strokes on other pages are untouched")
}

func TestErase_MultipleStrokesAtomically(t *testing.T) {
	store := NewStore()
	for i := 0; i < 3; i++ {
		_, err := store.AddStroke([]geom.Point{{X: 0, Y: float64(i)}, {X: 40, Y: float64(i)}}, testStyle(), 1)
		require.NoError(t, err)
	}

	var notifications int
	store.Subscribe(func() { notifications++ })

	result := store.Erase(Eraser{CenterX: 20, CenterY: 1, Radius: 5}, 1)

	assert.Len(t, result.Removed, 3, "one footprint can affect several strokes")
	assert.Equal(t, 1, notifications, "one erase event is one checkpoint")
}

func TestErasePath_SamplesAgainstTunneling(t *testing.T) {
	store := NewStore()

	// A thin vertical stroke crossing the drag path midway. A naive
	// two-endpoint application with radius 4 would miss it.
	id, err := store.AddStroke([]geom.Point{{X: 50, Y: -1}, {X: 50, Y: 1}}, testStyle(), 1)
	require.NoError(t, err)

	result := store.ErasePath(geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0}, 4, 1)

	assert.Contains(t, result.Removed, id, "sub-steps no wider than radius/2 must catch the stroke")
	strokes, _ := store.Counts()
	assert.Zero(t, strokes)
}

func TestErasePath_NetResultHidesTransientFragments(t *testing.T) {
	store := NewStore()
	id, err := store.AddStroke([]geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, testStyle(), 1)
	require.NoError(t, err)

	// Drag along the whole stroke: every transient fragment is consumed by
	// a later sample.
	result := store.ErasePath(geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0}, 10, 1)

	assert.Equal(t, []string{id}, result.Removed)
	for _, added := range result.Added {
		_, ok := store.Stroke(added.ID)
		assert.True(t, ok, "net Added only lists fragments still in the store")
	}
}

func TestErasePath_ZeroLengthDragDegeneratesToSingleErase(t *testing.T) {
	store := NewStore()
	id, err := store.AddStroke([]geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 40, Y: 0}}, testStyle(), 1)
	require.NoError(t, err)

	result := store.ErasePath(geom.Point{X: 20, Y: 0}, geom.Point{X: 20, Y: 0}, 5, 1)

	assert.Equal(t, []string{id}, result.Removed)
	assert.Len(t, result.Added, 2)
}
