package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A wave born at radius 0 at time T has its Gaussian peak exactly at the
// particles sitting at waveWidth/2 from the origin once half the band
// width has been swept.
func TestWaveBandCenterAlignment(t *testing.T) {
	f := newTestField(t, 2)
	f.Cfg.WaveSpeed = 40
	f.Cfg.WaveWidth = 20
	sigma := f.waveSigma()

	f.S.Pos[0] = Vec3{X: f.Cfg.WaveWidth / 2} // band center
	f.S.Pos[1] = Vec3{X: f.Cfg.WaveWidth/2 + sigma}

	startT := 3.0
	f.waves = append(f.waves, Wave{StartTime: startT})

	now := startT + f.Cfg.WaveWidth/(2*f.Cfg.WaveSpeed)
	f.updateWaves(now)
	require.Len(t, f.waves, 1)
	assert.InDelta(t, f.Cfg.WaveWidth/2, f.waves[0].Radius, 1e-12)

	f.accumWaveFactors()
	assert.InDelta(t, 1.0, f.waveFactor[0], 1e-12, "peak must sit on the band center")
	assert.InDelta(t, math.Exp(-f.Cfg.WaveFalloff), f.waveFactor[1], 1e-12)
}

func TestWaveInfluenceCutOffAtTwoSigmas(t *testing.T) {
	f := newTestField(t, 1)
	sigma := f.waveSigma()
	f.waves = append(f.waves, Wave{Radius: 30})
	f.S.Pos[0] = Vec3{X: 30 + 2*sigma + 0.01}

	f.accumWaveFactors()
	assert.Zero(t, f.waveFactor[0])
}

func TestOverlappingWavesSum(t *testing.T) {
	f := newTestField(t, 1)
	f.S.Pos[0] = Vec3{X: 25}
	f.waves = append(f.waves, Wave{Radius: 25}, Wave{Radius: 25})

	f.accumWaveFactors()
	assert.InDelta(t, 2.0, f.waveFactor[0], 1e-12)
}

func TestWaveExpiresPastViewportDiagonal(t *testing.T) {
	f := newTestField(t, 1)
	f.diag = 100
	f.Cfg.WaveSpeed = 50
	f.Cfg.WaveWidth = 10

	f.waves = append(f.waves, Wave{StartTime: 0})
	f.updateWaves(2.0) // radius 100, within diag+width
	require.Len(t, f.waves, 1)

	f.updateWaves(2.3) // radius 115 > 110
	assert.Empty(t, f.waves)
}

func TestWaveCadenceSpawnsOnInterval(t *testing.T) {
	f := newTestField(t, 1)
	f.Cfg.WavesEnabled = true
	f.Cfg.WaveInterval = 6
	f.nextWaveAt = 10

	f.updateWaves(9.5)
	assert.Empty(t, f.waves)

	f.updateWaves(10)
	require.Len(t, f.waves, 1)
	assert.Equal(t, 16.0, f.nextWaveAt)

	f.updateWaves(12)
	assert.Len(t, f.waves, 1, "no spawn before the next interval")
}

func TestSettleInitializesWaveCadence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WavesEnabled = true
	cfg.LoadingDuration = 2
	f := New(&cfg, 7)
	f.S.resize(2)
	f.S.InsideCount = 2
	f.loadStart = 0

	f.stepLoading(1.0)
	require.Equal(t, PhaseLoading, f.Phase())

	f.stepLoading(2.0)
	require.Equal(t, PhaseSettled, f.Phase())
	// First wave begins immediately after settling.
	assert.Equal(t, 2.0, f.nextWaveAt)
	f.updateWaves(2.0)
	assert.Len(t, f.waves, 1)
}

func TestWavesKeepInsertionOrder(t *testing.T) {
	f := newTestField(t, 1)
	f.Cfg.WaveSpeed = 10
	f.waves = append(f.waves,
		Wave{StartTime: 0},
		Wave{StartTime: 1},
		Wave{StartTime: 2},
	)
	f.updateWaves(3)
	require.Len(t, f.waves, 3)
	assert.Greater(t, f.waves[0].Radius, f.waves[1].Radius)
	assert.Greater(t, f.waves[1].Radius, f.waves[2].Radius)
}
