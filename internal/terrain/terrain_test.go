package terrain

import (
	"testing"

	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/engine/enginetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CreatesEdgePerSegment(t *testing.T) {
	w := enginetest.New()
	tr := New(DefaultProfile(), nil)
	require.NoError(t, tr.Apply(w))

	ground := w.Live(engine.Static)
	require.Len(t, ground, 1)
	require.Len(t, ground[0].Fixtures, VertexCount-1)

	verts := tr.Vertices()
	for i, fd := range ground[0].Fixtures {
		edge, ok := fd.Shape.(engine.Edge)
		require.True(t, ok)
		assert.Equal(t, verts[i], edge.A)
		assert.Equal(t, verts[i+1], edge.B)
		assert.Equal(t, DefaultFriction, fd.Friction)
	}
}

func TestApply_ReplacesPreviousGround(t *testing.T) {
	w := enginetest.New()
	tr := New(DefaultProfile(), nil)
	require.NoError(t, tr.Apply(w))
	first := tr.Body()

	require.NoError(t, tr.Apply(w))
	assert.NotSame(t, first, tr.Body())
	assert.Len(t, w.Live(engine.Static), 1)
	require.Len(t, w.Destroyed, 1)
	assert.Same(t, first, w.Destroyed[0])
}

func TestApply_FailureKeepsGround(t *testing.T) {
	w := enginetest.New()
	tr := New(DefaultProfile(), nil)
	require.NoError(t, tr.Apply(w))
	prev := tr.Body()

	w.FailCreate = 1
	assert.Error(t, tr.Apply(w))
	assert.Same(t, prev, tr.Body())
	assert.Len(t, w.Live(engine.Static), 1)
}

func TestEdit_AppliesAllSixValues(t *testing.T) {
	w := enginetest.New()
	tr := New(DefaultProfile(), nil)
	require.NoError(t, tr.Apply(w))

	err := tr.Edit(w, [FieldCount]string{"50", "10", "200", "-30", " 25 ", "5"})
	require.NoError(t, err)

	p := tr.Profile()
	assert.Equal(t, 50.0, p.Segments[0].DxCm)
	assert.Equal(t, 10.0, p.Segments[0].DyCm)
	assert.Equal(t, 200.0, p.Segments[1].DxCm)
	assert.Equal(t, -30.0, p.Segments[1].DyCm)
	assert.Equal(t, 25.0, p.Segments[2].DxCm)
	assert.Equal(t, 5.0, p.Segments[2].DyCm)
	assert.Equal(t, Build(p), tr.Vertices())
}

func TestEdit_InvalidBatchLeavesTerrainUnchanged(t *testing.T) {
	cases := map[string][FieldCount]string{
		"letters": {"100", "-5", "abc", "-70", "0", "0"},
		"empty":   {"100", "-5", "400", "", "0", "0"},
		"nan":     {"100", "-5", "400", "-70", "NaN", "0"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			w := enginetest.New()
			tr := New(DefaultProfile(), nil)
			require.NoError(t, tr.Apply(w))
			before := tr.Vertices()
			body := tr.Body()

			err := tr.Edit(w, fields)
			assert.ErrorIs(t, err, ErrInvalidEdit)
			assert.Equal(t, before, tr.Vertices())
			assert.Equal(t, DefaultProfile(), tr.Profile())
			assert.Same(t, body, tr.Body())
			assert.Empty(t, w.Destroyed)
		})
	}
}

func TestProfileFields_RoundTrip(t *testing.T) {
	p := DefaultProfile()
	vals, err := ParseFields(p.Fields())
	require.NoError(t, err)
	assert.Equal(t, p, p.WithValues(vals))
}

func TestPanelLines(t *testing.T) {
	lines := PanelLines(Build(DefaultProfile()))
	require.Len(t, lines, VertexCount)
	assert.Equal(t, "0. Start: x=0.0, y=0.0", lines[0])
	assert.Equal(t, "1. After 1) 5m flat: x=500.0, y=0.0", lines[1])
	assert.Equal(t, "4. After 3a): x=650.0, y=0.0", lines[4])
	assert.Equal(t, "5. After 3b): x=1050.0, y=-70.0", lines[5])
	assert.Equal(t, "7. After 4) 5m flat: x=1550.0, y=-70.0", lines[7])
}

func TestEndpoints(t *testing.T) {
	a, b, ok := Endpoints(Build(DefaultProfile()))
	require.True(t, ok)
	assert.Equal(t, Endpoint{X: "650.0", Y: "0.0"}, a)
	assert.Equal(t, Endpoint{X: "1050.0", Y: "-70.0"}, b)

	_, _, ok = Endpoints(Build(DefaultProfile())[:5])
	assert.False(t, ok)
}

func TestHeightAt(t *testing.T) {
	verts := Build(DefaultProfile())
	tests := []struct {
		x, want float64
	}{
		{-1, 0},
		{2.5, 0},
		{5, 0},
		{5.25, 0.04},
		{8.5, -0.35},
		{20, -0.7},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, HeightAt(verts, tt.x), 1e-9, "x=%v", tt.x)
	}
	assert.Equal(t, 0.0, HeightAt(nil, 3))
}

func TestNudged(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "110", p.Nudged(0, 1)[0])
	assert.Equal(t, "-10", p.Nudged(1, -1)[1])
	assert.Equal(t, "400", p.Nudged(3, 0)[2])
	assert.Equal(t, p.Fields(), p.Nudged(9, 1))
}
