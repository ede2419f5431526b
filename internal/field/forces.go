package field

import "math"

// accumForces adds this frame's velocity deltas from the four independent
// sources: pointer interaction, autonomous jitter, wave bands, and queued
// explosions. Sources accumulate into velocity; nothing here overwrites it.
func (f *Field) accumForces(now float64) {
	f.applyPointerForce()
	f.applyJitter()
	f.applyWaveForce()
	f.applyExplosions(now)
}

// applyPointerForce pushes particles away from the cursor. Active only
// while the pointer is inside the viewport and either held down or moving.
func (f *Field) applyPointerForce() {
	cfg := f.Cfg
	p := f.pointer
	moving := p.Speed > 1e-3
	if !p.Inside || (!p.Down && !moving) {
		return
	}

	radius := cfg.InteractionRadius
	radiusSq := radius * radius
	n := f.S.commonLen()

	for i := 0; i < n; i++ {
		d := f.S.Pos[i].Sub(p.Pos)
		distSq := d.LenSq()
		// Squared-distance early exit; true distance only inside the radius.
		if distSq > radiusSq {
			continue
		}
		dist := math.Sqrt(distSq)

		radial := d.Norm()
		if radial == (Vec3{}) {
			radial = f.rng.UnitVec()
		}

		// Bounded random cone deviation so pushes are never perfectly
		// uniform.
		dev := radial.Add(perp(radial, f.rng).Scale(
			math.Tan(cfg.ChaosAngle) * cfg.ChaosStrength * f.rng.Float64())).Norm()

		// Tangential component at a random azimuth, plus a random
		// depth-axis component.
		tang := perp(dev, f.rng)

		mag := (1 - dist/radius) * p.Speed * cfg.ForceStrength * f.rng.RangeF(0.7, 1.3)

		dir := dev.Scale(1 - cfg.TangentialRatio).Add(tang.Scale(cfg.TangentialRatio))
		dir.Z += f.rng.RangeF(-1, 1) * cfg.ZAxisStrength

		f.S.Vel[i] = f.S.Vel[i].Add(dir.Scale(mag))
	}
}

// applyJitter gives each particle a small random kick with a fixed
// per-frame probability, producing idle breathing motion.
func (f *Field) applyJitter() {
	strength := f.Cfg.AutonomousStrength
	if strength <= 0 {
		return
	}
	n := f.S.commonLen()
	for i := 0; i < n; i++ {
		if f.rng.Float64() >= jitterChance {
			continue
		}
		kick := Vec3{
			X: f.rng.RangeF(-1, 1),
			Y: f.rng.RangeF(-1, 1),
			Z: f.rng.RangeF(-1, 1),
		}.Scale(strength)
		f.S.Vel[i] = f.S.Vel[i].Add(kick)
	}
}

// applyWaveForce pushes particles outward along the band factors computed
// for this frame.
func (f *Field) applyWaveForce() {
	if len(f.waves) == 0 {
		return
	}
	force := f.Cfg.WaveForce
	n := f.S.commonLen()
	for i := 0; i < n; i++ {
		g := f.waveFactor[i]
		if g <= 0 {
			continue
		}
		out := f.S.Pos[i].Norm()
		if out == (Vec3{}) {
			out = f.rng.UnitVec()
		}
		f.S.Vel[i] = f.S.Vel[i].Add(out.Scale(force * g))
	}
}

// applyExplosions applies every queued explosion to every particle along
// that particle's fixed radial direction, then discards the batch. The
// per-particle timers take the later of the existing and new deadlines, so
// overlapping explosions extend the effect rather than reset it.
func (f *Field) applyExplosions(now float64) {
	if len(f.explosions) == 0 {
		return
	}
	cfg := f.Cfg
	n := f.S.commonLen()

	for e := range f.explosions {
		for i := 0; i < n; i++ {
			dir := f.S.ScrollDir[i].Add(f.rng.UnitVec().Scale(0.15)).Norm()
			f.S.Vel[i] = f.S.Vel[i].Add(dir.Scale(cfg.ExplosionForce * f.rng.RangeF(0.85, 1.15)))

			if until := now + cfg.ExplosionReturnDelay; until > f.S.ReturnUntil[i] {
				f.S.ReturnUntil[i] = until
			}
			if until := now + cfg.ExplosionGlowTime; until > f.S.GlowUntil[i] {
				f.S.GlowUntil[i] = until
			}
		}
		f.explosions[e].Applied = true
	}
	f.explosions = f.explosions[:0]
}
