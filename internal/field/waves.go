package field

import "math"

// Wave is an expanding ring disturbance centered on the origin. Radius
// grows monotonically with the shared clock; the wave dies once it has
// swept past the viewport diagonal plus its own width.
type Wave struct {
	Radius    float64
	StartTime float64
}

// Explosion is a single-frame impulse source. It is marked applied and
// discarded in the same frame it is processed; only its per-particle
// aftereffect timers persist.
type Explosion struct {
	Pos       Vec3
	StartTime float64
	Applied   bool
}

func (f *Field) waveSigma() float64 { return f.Cfg.WaveWidth / 2 }

// updateWaves advances radii, expires finished waves, and spawns new ones
// on the cadence timer.
func (f *Field) updateWaves(now float64) {
	cfg := f.Cfg
	if cfg.WavesEnabled && now >= f.nextWaveAt {
		f.waves = append(f.waves, Wave{StartTime: now})
		f.nextWaveAt = now + cfg.WaveInterval
	}

	limit := f.diag + cfg.WaveWidth
	kept := f.waves[:0]
	for _, w := range f.waves {
		w.Radius = (now - w.StartTime) * cfg.WaveSpeed
		if w.Radius > limit {
			continue
		}
		kept = append(kept, w)
	}
	f.waves = kept
}

// accumWaveFactors sums each active wave's Gaussian band influence per
// particle. The same factor drives the outward force, the size swell, and
// the wave glow, so it is computed once per frame.
func (f *Field) accumWaveFactors() {
	f.ensureScratch()
	for i := range f.waveFactor {
		f.waveFactor[i] = 0
	}
	if len(f.waves) == 0 {
		return
	}

	sigma := f.waveSigma()
	falloff := f.Cfg.WaveFalloff
	n := f.S.commonLen()

	for _, w := range f.waves {
		// Band envelope: influence is cut off at two sigmas.
		minR := w.Radius - 2*sigma
		maxR := w.Radius + 2*sigma
		for i := 0; i < n; i++ {
			dist := f.S.Pos[i].Len()
			if dist < minR || dist > maxR {
				continue
			}
			d := (dist - w.Radius) / sigma
			f.waveFactor[i] += math.Exp(-falloff * d * d)
		}
	}
}
