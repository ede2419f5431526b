package field

// depthBrightness derives brightness from the particle's distance to the
// camera along the view axis only, normalized against the fixed configured
// range. Fixed-range on purpose: a particle's brightness depends on its
// own depth, never on the spatial extent of the rest of the cloud.
func (f *Field) depthBrightness(p Vec3) float64 {
	cfg := f.Cfg
	depth := cfg.CameraZ - p.Z
	span := cfg.DepthFar - cfg.DepthNear
	if span <= 0 {
		return cfg.MaxBrightness
	}
	nd := clampF((depth-cfg.DepthNear)/span, 0, 1)
	return (1 - nd*cfg.DepthDarkening) * cfg.MaxBrightness
}

// deriveAttributes turns physical state into the visual attribute arrays:
// grayscale brightness, displayed size, and emissive glow.
func (f *Field) deriveAttributes(now float64) {
	cfg := f.Cfg
	n := f.S.commonLen()

	velocityGlow := cfg.VelocityGlowMult > 0
	if !velocityGlow {
		// Static glow is recomputed only when the configured value moves.
		if !f.staticGlowSet || f.staticGlow != cfg.BaseGlow {
			for i := 0; i < n; i++ {
				f.S.Glow[i] = cfg.BaseGlow
			}
			f.staticGlow = cfg.BaseGlow
			f.staticGlowSet = true
		}
	} else {
		f.staticGlowSet = false
	}

	for i := 0; i < n; i++ {
		b := f.depthBrightness(f.S.Pos[i])

		// Outside-formation dimming, skipped entirely at near-full
		// configured brightness.
		if i >= f.S.InsideCount && cfg.MaxBrightness < outsideDimSkip {
			b *= outsideDim
		}

		// Wave glow rides on top of depth brightness; size effects are a
		// separate channel of the same band factor.
		g := f.waveFactor[i]
		if g > 0 {
			b += g * cfg.WaveGlow
		}

		// Explosion highlight fades linearly over the remaining window.
		if f.S.GlowUntil[i] > now && cfg.ExplosionGlowTime > 0 {
			rem := f.S.GlowUntil[i] - now
			b += cfg.ExplosionGlow * clampF(rem/cfg.ExplosionGlowTime, 0, 1)
		}

		// Size: visible points swell with the band, invisible points are
		// revealed at a stable hashed size so repeated reveals don't
		// flicker.
		if f.S.BaseSize[i] > 0 {
			f.S.Size[i] = f.S.BaseSize[i] * (1 + waveSwell*clampF(g, 0, 1))
		} else {
			apparent := (0.5 + 0.5*indexHash01(i)) * cfg.BaseSize
			f.S.Size[i] = apparent * clampF(g, 0, 1)
		}

		// A permanently invisible point with no wave reveal stays black no
		// matter what the other contributions say.
		if f.S.BaseSize[i] == 0 && f.S.Size[i] == 0 {
			b = 0
		}

		f.S.Bright[i] = clampF(b, 0, 1)

		if velocityGlow {
			f.S.Glow[i] = clampF(cfg.BaseGlow+f.S.Vel[i].Len()*cfg.VelocityGlowMult, 0, 1)
		}
	}
}
