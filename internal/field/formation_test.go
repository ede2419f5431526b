package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareSilhouette() *Silhouette {
	return &Silhouette{
		Rings: [][]Point2{{{0, 0}, {100, 0}, {100, 100}, {0, 100}}},
		Box:   Box{0, 0, 100, 100},
	}
}

func newFormationField(t *testing.T, inside, outside int) *Field {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ParticleCount = inside
	cfg.OutsideParticleCount = outside
	f := New(&cfg, 42)
	f.BuildFormation(squareSilhouette(), 0)
	return f
}

// drainSampler runs the cooperative scatter to completion, bounded so a
// regression cannot hang the test.
func drainSampler(t *testing.T, f *Field) {
	t.Helper()
	for i := 0; i < 1000 && f.sampler != nil; i++ {
		f.stepSampler()
	}
	require.Nil(t, f.sampler, "scatter job never finished")
}

func TestBuildFormationPlacesParticlesOnSilhouette(t *testing.T) {
	f := newFormationField(t, 200, 50)

	assert.Equal(t, 200, f.S.InsideCount)
	assert.Equal(t, 250, f.S.Len())
	assert.Equal(t, PhaseLoading, f.Phase())

	for i := 0; i < f.S.InsideCount; i++ {
		x, y := f.toSVG(f.S.Base[i].X, f.S.Base[i].Y)
		require.True(t, f.sil.Contains(x, y), "formation particle %d off the shape", i)
		// Loading starts from the randomized far position, not the target.
		assert.Equal(t, f.S.Start[i], f.S.Pos[i])
	}
}

func TestBuildFormationWorldMapping(t *testing.T) {
	f := newFormationField(t, 10, 0)

	// A 100x100 SVG normalizes to a height-100 world with the 1.6 margin.
	assert.InDelta(t, 1.0, f.worldScale, 1e-12)
	assert.InDelta(t, 160.0, f.viewW, 1e-12)
	assert.InDelta(t, 160.0, f.viewH, 1e-12)

	// SVG center maps to the world origin, Y axis flipped.
	x, y := f.toSVG(0, 0)
	assert.InDelta(t, 50.0, x, 1e-12)
	assert.InDelta(t, 50.0, y, 1e-12)
	p := f.toWorld(Point2{50, 30})
	assert.InDelta(t, 0.0, p.X, 1e-12)
	assert.InDelta(t, 20.0, p.Y, 1e-12, "smaller SVG y means higher in the world")
}

func TestOutsideScatterFillsOverFrames(t *testing.T) {
	f := newFormationField(t, 20, 1500)

	// More candidates than one batch can produce: the job must yield at
	// least once before finishing.
	f.stepSampler()
	require.NotNil(t, f.sampler)
	drainSampler(t, f)

	assert.Equal(t, 1520, f.S.Len())
	for i := f.S.InsideCount; i < f.S.Len(); i++ {
		x, y := f.toSVG(f.S.Base[i].X, f.S.Base[i].Y)
		require.False(t, f.sil.Contains(x, y), "scatter particle %d landed on the shape", i)
	}
}

func TestOutsideScatterInvisibleShare(t *testing.T) {
	f := newFormationField(t, 10, 4000)
	f.Cfg.OutsideInvisibleProb = 0.5
	drainSampler(t, f)

	invisible := 0
	for i := f.S.InsideCount; i < f.S.Len(); i++ {
		if f.S.BaseSize[i] == 0 {
			invisible++
		}
	}
	assert.InDelta(t, 2000, invisible, 200)

	// Formation particles are never invisible.
	for i := 0; i < f.S.InsideCount; i++ {
		require.Positive(t, f.S.BaseSize[i])
	}
}

func TestRebuildOutsidePreservesFormation(t *testing.T) {
	f := newFormationField(t, 100, 200)
	drainSampler(t, f)

	base := append([]Vec3(nil), f.S.Base[:f.S.InsideCount]...)
	gen := f.S.Generation()

	f.Cfg.OutsideParticleCount = 400
	f.Rebuild(5)
	assert.Equal(t, gen+1, f.S.Generation())
	drainSampler(t, f)

	assert.Equal(t, 500, f.S.Len())
	assert.Equal(t, base, f.S.Base[:f.S.InsideCount], "formation must survive an outside-only rebuild")
}

func TestRebuildFullWhenFormationCountChanges(t *testing.T) {
	f := newFormationField(t, 100, 50)
	f.Cfg.ParticleCount = 150
	f.Rebuild(5)
	assert.Equal(t, 150, f.S.InsideCount)
	assert.Equal(t, PhaseLoading, f.Phase())
}

func TestStaleSamplerDiscarded(t *testing.T) {
	f := newFormationField(t, 10, 3000)
	f.stepSampler()
	require.NotNil(t, f.sampler)

	// A newer rebuild supersedes the in-flight job.
	f.S.generation++
	f.stepSampler()
	assert.Nil(t, f.sampler)
}

func TestSettledScatterAppearsInPlace(t *testing.T) {
	f := newFormationField(t, 10, 100)
	f.phase = PhaseSettled
	drainSampler(t, f)

	for i := f.S.InsideCount; i < f.S.Len(); i++ {
		require.Equal(t, f.S.Target[i], f.S.Pos[i], "settled scatter must not replay the fly-in")
	}
}

func TestBuildFormationClearsTransientState(t *testing.T) {
	f := newFormationField(t, 10, 0)
	f.waves = append(f.waves, Wave{Radius: 5})
	f.Explode(Vec3{}, 1)

	f.BuildFormation(squareSilhouette(), 2)
	assert.Empty(t, f.waves)
	assert.Empty(t, f.explosions)
}

func TestRebuildWithoutSilhouetteIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	f := New(&cfg, 1)
	f.Rebuild(0)
	assert.Zero(t, f.S.Len())
}
