package field

// World mapping: the silhouette is normalized to this height in world
// units, centered on the origin, with the camera on +Z.
const (
	worldHeight = 100.0
	viewMargin  = 1.6 // outside scatter extends this far beyond the shape
)

// Pointer is the externally translated cursor state: a 3D position on the
// z=0 plane, whether the button is held, whether the cursor is inside the
// viewport, and its speed in world units per second.
type Pointer struct {
	Pos    Vec3
	Down   bool
	Inside bool
	Speed  float64
}

// Field runs the whole simulation: formation, loading animation, force
// accumulation, spring-damper relaxation, and attribute derivation. One
// Step per display frame; everything runs on the frame thread.
type Field struct {
	Cfg *Config
	S   *Store

	rng *Rand

	phase     Phase
	loadStart float64

	waves      []Wave
	nextWaveAt float64
	explosions []Explosion

	pointer Pointer
	scroll  float64

	sil        *Silhouette
	worldScale float64 // SVG units -> world units
	viewW      float64
	viewH      float64
	diag       float64 // viewport diagonal, bounds wave lifetime

	// Per-particle summed Gaussian wave factor, shared between the force
	// pass and the attribute pass within a frame.
	waveFactor []float64

	lastStep float64

	// Cached static glow so the settled no-velocity-glow path does not
	// rewrite every slot each frame.
	staticGlow    float64
	staticGlowSet bool

	sampler *outsideJob
}

// New creates a field around cfg and seed. The field is empty until
// BuildFormation is called.
func New(cfg *Config, seed uint64) *Field {
	return &Field{
		Cfg:   cfg,
		S:     NewStore(),
		rng:   NewRand(seed),
		phase: PhaseLoading,
	}
}

func (f *Field) Phase() Phase { return f.phase }

// Waves returns the active wave list (insertion order).
func (f *Field) Waves() []Wave { return f.waves }

// SetPointer updates the translated cursor state for the next frame.
func (f *Field) SetPointer(p Pointer) { f.pointer = p }

// Pointer returns the last translated cursor state.
func (f *Field) Pointer() Pointer { return f.pointer }

// Explode queues a click explosion at a 3D position. The impulse is
// processed exactly once, on the next settled frame.
func (f *Field) Explode(pos Vec3, now float64) {
	f.explosions = append(f.explosions, Explosion{Pos: pos, StartTime: now})
}

// SetScroll applies a normalized scroll progress in [0,1]. Every target
// position moves along its particle's fixed radial direction.
func (f *Field) SetScroll(progress float64) {
	f.scroll = clampF(progress, 0, 1)
	spread := f.scroll * f.Cfg.ScrollSpread
	n := f.S.commonLen()
	for i := 0; i < n; i++ {
		f.S.Target[i] = f.S.Base[i].Add(f.S.ScrollDir[i].Scale(spread))
	}
}

// Scroll returns the current normalized scroll progress.
func (f *Field) Scroll() float64 { return f.scroll }

// Step advances the simulation by one display frame. Returns false when
// the frame-rate ceiling swallowed the step.
func (f *Field) Step(now float64) bool {
	if f.Cfg.TargetFPS > 0 && f.lastStep > 0 {
		if now-f.lastStep < 1.0/f.Cfg.TargetFPS-fpsTolerance {
			return false
		}
	}
	f.lastStep = now

	f.stepSampler()

	if f.phase == PhaseLoading {
		f.stepLoading(now)
		return true
	}

	f.updateWaves(now)
	f.accumWaveFactors()
	f.accumForces(now)
	f.integrate(now)
	f.deriveAttributes(now)
	return true
}

// dt returns the fixed integration step. The simulation is frame-rate
// normalized: a nominal 60 Hz step scaled by TimeScale, never the measured
// wall-clock delta.
func (f *Field) dt() float64 {
	return NominalStep * f.Cfg.TimeScale
}

func (f *Field) ensureScratch() {
	n := f.S.Len()
	if cap(f.waveFactor) < n {
		f.waveFactor = make([]float64, n)
	}
	f.waveFactor = f.waveFactor[:n]
}
