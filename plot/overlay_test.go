package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTangent(t *testing.T) {
	tan := NewTangent(2, 4, 4, -1, 5)
	assert.Equal(t, Pt(-1, -8), tan.From)
	assert.Equal(t, Pt(5, 16), tan.To)
	assert.Equal(t, Pt(2, 4), tan.Marker)
	assert.Equal(t, KindTangent, tan.Kind())
}

func TestNewIntegral(t *testing.T) {
	samples := []Sample{
		Pt(-1, 1),
		Pt(0, 0),
		Pt(0.5, math.NaN()),
		Pt(1, 1),
		Pt(1.5, math.Inf(1)),
		Pt(2, 4),
		Pt(2.5, 6.25),
	}
	in := NewIntegral(samples, 0, 2, 8.0/3, "x^2", 6)
	require.Equal(t, []Sample{Pt(0, 0), Pt(1, 1), Pt(2, 4)}, in.Region)
	for _, s := range in.Region {
		assert.GreaterOrEqual(t, s.X, in.A)
		assert.LessOrEqual(t, s.X, in.B)
	}
	assert.Equal(t, "∫[0, 2] x^2 dx\n≈ 2.666667", in.Summary)
	assert.Equal(t, KindIntegral, in.Kind())

	empty := NewIntegral(samples, 10, 20, 0, "f", 2)
	assert.Empty(t, empty.Region)
	assert.Equal(t, "∫[10, 20] f dx\n≈ 0.00", empty.Summary)
}

func TestOverlaysClear(t *testing.T) {
	var o Overlays
	o.Add(NewTangent(0, 0, 1, -1, 1))
	o.Add(NewIntegral(nil, 0, 1, 0, "f", 2))
	o.Add(NewTangent(1, 1, 0, -1, 1))

	all := o.All()
	all[0] = nil
	assert.Equal(t, 3, o.Len(), "All returns a copy")
	assert.NotNil(t, o.All()[0])

	assert.Equal(t, 2, o.Count(KindTangent))
	assert.Equal(t, 2, o.Clear(KindTangent))
	assert.Equal(t, 0, o.Clear(KindTangent))
	require.Equal(t, 1, o.Len())
	assert.Equal(t, KindIntegral, o.All()[0].Kind())
	assert.Equal(t, 1, o.Clear(KindIntegral))
	assert.Equal(t, 0, o.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "tangent", KindTangent.String())
	assert.Equal(t, "integral", KindIntegral.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
