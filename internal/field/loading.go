package field

// Phase is the loading state machine. Two states only: the initial appear
// animation, and the settled steady-state simulation. Loading is
// re-entered solely through Replay or a formation rebuild.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseSettled
)

// Replay re-enters the loading animation: every particle jumps back to its
// start position and all glow resets to 0 for a visible ramp-in.
func (f *Field) Replay(now float64) {
	f.phase = PhaseLoading
	f.loadStart = now
	n := f.S.commonLen()
	for i := 0; i < n; i++ {
		f.S.Pos[i] = f.S.Start[i]
		f.S.Vel[i] = Vec3{}
		f.S.Glow[i] = 0
	}
	f.staticGlowSet = false
}

// stepLoading interpolates start -> target along the easing curve and
// derives brightness purely from each particle's own depth. The depth
// normalization range is fixed so one particle's brightness never depends
// on the rest of the cloud.
func (f *Field) stepLoading(now float64) {
	cfg := f.Cfg
	progress := clampF((now-f.loadStart)/cfg.LoadingDuration, 0, 1)
	e := EvalEasing(progress, cfg.CurveP1, cfg.CurveP2)

	n := f.S.commonLen()
	for i := 0; i < n; i++ {
		f.S.Pos[i] = lerpVec(f.S.Start[i], f.S.Target[i], e)
		f.S.Size[i] = f.S.BaseSize[i]
		// Invisible points stay black; waves reveal them only after settling.
		b := 0.0
		if f.S.BaseSize[i] > 0 {
			b = clampF(f.depthBrightness(f.S.Pos[i]), 0, 1)
		}
		f.S.Bright[i] = b
		// Glow ramps linearly with easing toward the steady-state value.
		f.S.Glow[i] = cfg.BaseGlow * e
	}

	if progress >= 1 {
		f.phase = PhaseSettled
		if cfg.WavesEnabled {
			// First wave begins immediately after settling.
			f.nextWaveAt = now
		}
	}
}
