package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chaostower/pkg/errors"
)

const eps = 1e-12

func TestRegularPolygonOnCircle(t *testing.T) {
	for _, n := range []int{3, 4, 5, 8, 200} {
		for _, radius := range []float64{0.5, 1, 3} {
			vs, err := RegularPolygon(n, radius, true)
			require.NoError(t, err)
			require.Len(t, vs, n)

			for k, v := range vs {
				require.InDelta(t, radius, math.Hypot(v.X, v.Y), eps, "n=%d vertex %d", n, k)
			}

			// Equal angular spacing: every edge has the same length.
			edge := math.Hypot(vs[1].X-vs[0].X, vs[1].Y-vs[0].Y)
			for k := range vs {
				next := vs[(k+1)%n]
				require.InDelta(t, edge, math.Hypot(next.X-vs[k].X, next.Y-vs[k].Y), 1e-9)
			}
		}
	}
}

func TestRegularPolygonTriangle(t *testing.T) {
	vs, err := RegularPolygon(3, 1, true)
	require.NoError(t, err)

	want := VertexSet{
		{X: 0, Y: 1},
		{X: -math.Sqrt(3) / 2, Y: -0.5},
		{X: math.Sqrt(3) / 2, Y: -0.5},
	}
	for k := range want {
		require.InDelta(t, want[k].X, vs[k].X, eps)
		require.InDelta(t, want[k].Y, vs[k].Y, eps)
	}
}

func TestRegularPolygonUncentered(t *testing.T) {
	centered, err := RegularPolygon(4, 2, true)
	require.NoError(t, err)
	shifted, err := RegularPolygon(4, 2, false)
	require.NoError(t, err)

	require.Equal(t, Point{}, shifted[0])
	for k := range centered {
		require.InDelta(t, centered[k].X-centered[0].X, shifted[k].X, eps)
		require.InDelta(t, centered[k].Y-centered[0].Y, shifted[k].Y, eps)
	}
}

func TestRegularPolygonInvalid(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		radius float64
	}{
		{"too few vertices", 2, 1},
		{"zero radius", 3, 0},
		{"negative radius", 3, -1},
		{"nan radius", 3, math.NaN()},
		{"infinite radius", 3, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RegularPolygon(tt.n, tt.radius, true)
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrCodeConfiguration))
		})
	}
}

func TestStackMidpoints(t *testing.T) {
	vs := VertexSet{Pt(0, 0), Pt(2, 0), Pt(2, 2), Pt(0, 2)}
	got := StackMidpoints(vs)

	require.Len(t, got, 2*len(vs))
	require.Equal(t, vs, got[:4])
	require.Equal(t, VertexSet{Pt(1, 0), Pt(2, 1), Pt(1, 2), Pt(0, 1)}, got[4:])

	// Input is untouched.
	require.Len(t, vs, 4)
}

func TestStackCenter(t *testing.T) {
	vs, err := RegularPolygon(5, 1, true)
	require.NoError(t, err)

	got := StackCenter(vs)
	require.Len(t, got, len(vs)+1)
	c := got[len(got)-1]
	require.InDelta(t, 0, c.X, eps)
	require.InDelta(t, 0, c.Y, eps)

	require.Empty(t, StackCenter(nil))
}

func TestStackingLengths(t *testing.T) {
	for n := 3; n < 12; n++ {
		vs, err := RegularPolygon(n, 1, true)
		require.NoError(t, err)
		require.Len(t, StackMidpoints(vs), 2*n)
		require.Len(t, StackCenter(vs), n+1)
		require.Len(t, StackCenter(StackMidpoints(vs)), 2*n+1)
	}
}

func TestLerpKeepsZ(t *testing.T) {
	p := Point{X: 0, Y: 0, Z: 7}
	q := Point{X: 4, Y: -2, Z: 100}
	got := p.Lerp(q, 0.25)
	require.Equal(t, Point{X: 1, Y: -0.5, Z: 7}, got)
}

func TestFinite(t *testing.T) {
	require.True(t, Pt(1, 2).Finite())
	require.False(t, Pt(math.NaN(), 0).Finite())
	require.False(t, Pt(0, math.Inf(-1)).Finite())
}

func TestBroadcast(t *testing.T) {
	require.Equal(t, JumpVector{0.5, 0.5, 0.5}, Broadcast(0.5, 3))
	require.Empty(t, Broadcast(0.5, 0))
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]Point{Pt(1, 5), Pt(-2, 3), Pt(4, -1)})
	require.Equal(t, Pt(-2, -1), lo)
	require.Equal(t, Pt(4, 5), hi)

	lo, hi = Bounds(nil)
	require.Equal(t, Point{}, lo)
	require.Equal(t, Point{}, hi)
}
