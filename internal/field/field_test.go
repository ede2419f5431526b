package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestField builds a settled field with n particles resting at the
// origin-centered targets below, bypassing the SVG pipeline.
func newTestField(t *testing.T, n int) *Field {
	t.Helper()
	cfg := DefaultConfig()
	cfg.WavesEnabled = false
	cfg.AutonomousStrength = 0
	f := New(&cfg, 42)
	f.S.resize(n)
	f.S.InsideCount = n
	f.diag = 1000
	f.phase = PhaseSettled
	for i := 0; i < n; i++ {
		p := Vec3{X: float64(i), Y: 0, Z: 0}
		f.S.Base[i] = p
		f.S.Target[i] = p
		f.S.Pos[i] = p
		f.S.Start[i] = Vec3{X: 200, Y: 200, Z: 0}
		f.S.ScrollDir[i] = Vec3{X: 1}
		f.S.BaseSize[i] = 2
		f.S.Size[i] = 2
	}
	return f
}

func TestFrameThrottle(t *testing.T) {
	f := newTestField(t, 1)
	f.Cfg.TargetFPS = 30

	require.True(t, f.Step(1.0))
	// Far below the 33ms interval: skipped.
	assert.False(t, f.Step(1.010))
	// Past the interval minus tolerance: processed.
	assert.True(t, f.Step(1.034))
}

func TestThrottleDisabledByDefault(t *testing.T) {
	f := newTestField(t, 1)
	require.Zero(t, f.Cfg.TargetFPS)
	require.True(t, f.Step(1.0))
	assert.True(t, f.Step(1.0001))
}

func TestScrollMovesTargetsAlongRadialDirection(t *testing.T) {
	f := newTestField(t, 3)
	f.Cfg.ScrollSpread = 50

	f.SetScroll(1)
	for i := 0; i < 3; i++ {
		want := f.S.Base[i].Add(f.S.ScrollDir[i].Scale(50))
		assert.Equal(t, want, f.S.Target[i])
	}

	f.SetScroll(0.5)
	for i := 0; i < 3; i++ {
		want := f.S.Base[i].Add(f.S.ScrollDir[i].Scale(25))
		assert.Equal(t, want, f.S.Target[i])
	}
}

func TestScrollProgressClamped(t *testing.T) {
	f := newTestField(t, 1)
	f.SetScroll(2.5)
	assert.Equal(t, 1.0, f.Scroll())
	f.SetScroll(-1)
	assert.Equal(t, 0.0, f.Scroll())
}
