package field

import "math"

// integrate advances every particle by one fixed step. Particles inside an
// explosion return window are in free flight; everyone else relaxes toward
// their target under a Hookean spring with exponential damping, snapping
// to rest once both displacement and velocity are negligible.
func (f *Field) integrate(now float64) {
	cfg := f.Cfg
	dt := f.dt()
	damp := math.Exp(-cfg.Damping * dt)
	n := f.S.commonLen()

	for i := 0; i < n; i++ {
		if f.S.ReturnUntil[i] > now {
			// Free flight: no spring, light decay, faster playback.
			f.S.Vel[i] = f.S.Vel[i].Scale(freeFlightDecay)
			f.S.Pos[i] = f.S.Pos[i].Add(f.S.Vel[i].Scale(dt * cfg.ExplosionSpeedMult))
			continue
		}

		disp := f.S.Target[i].Sub(f.S.Pos[i])
		if disp.LenSq() < restEps && f.S.Vel[i].LenSq() < restEps {
			// Rest snap: kill floating-point micro-jitter for good.
			f.S.Pos[i] = f.S.Target[i]
			f.S.Vel[i] = Vec3{}
			continue
		}

		f.S.Vel[i] = f.S.Vel[i].Add(disp.Scale(cfg.SpringConstant * dt)).Scale(damp)
		f.S.Pos[i] = f.S.Pos[i].Add(f.S.Vel[i].Scale(dt))
	}
}
