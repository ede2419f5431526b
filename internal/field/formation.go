package field

import "math"

// outsideBatch bounds how many scatter candidates are evaluated per frame,
// so a rebuild never blocks the frame loop.
const outsideBatch = 512

// outsideJob is an in-flight cooperative sampling task for the outside
// scatter. It carries the generation it was started for; a superseded
// rebuild's job is discarded instead of racing the newer one.
type outsideJob struct {
	gen  uint64
	need int
	pts  []Vec3
}

// BuildFormation rebuilds the whole particle store from a silhouette and
// re-enters the loading animation. In-formation particles are placed
// immediately; the outside scatter fills in over the following frames.
func (f *Field) BuildFormation(sil *Silhouette, now float64) {
	f.sil = sil
	f.worldScale = worldHeight / sil.Box.Height()
	f.viewW = sil.Box.Width() * f.worldScale * viewMargin
	f.viewH = worldHeight * viewMargin
	f.diag = math.Hypot(f.viewW, f.viewH)

	cfg := f.Cfg
	samples := sil.SampleInside(cfg.ParticleCount, f.rng)

	s := f.S
	s.generation++
	s.InsideCount = len(samples)
	s.resize(len(samples) + cfg.OutsideParticleCount)

	for i, p := range samples {
		f.initParticle(i, f.toWorld(p), false)
	}

	f.waves = f.waves[:0]
	f.explosions = f.explosions[:0]
	f.sampler = &outsideJob{gen: s.generation, need: cfg.OutsideParticleCount}
	f.Replay(now)
}

// RebuildOutside regenerates only the outside scatter, preserving every
// in-formation base/target position. Used when just the outside count
// changes.
func (f *Field) RebuildOutside() {
	if f.sil == nil {
		return
	}
	s := f.S
	s.generation++
	s.resize(s.InsideCount + f.Cfg.OutsideParticleCount)
	f.sampler = &outsideJob{gen: s.generation, need: f.Cfg.OutsideParticleCount}
}

// Rebuild regenerates the formation for the current configuration counts.
// A change that only touches the outside count keeps the formation as it
// is; anything else is a full rebuild.
func (f *Field) Rebuild(now float64) {
	if f.sil == nil {
		return
	}
	if f.S.InsideCount > 0 && f.S.InsideCount == f.Cfg.ParticleCount {
		f.RebuildOutside()
		return
	}
	f.BuildFormation(f.sil, now)
}

// stepSampler runs one bounded batch of outside-scatter candidates, then
// yields back to the frame. Results commit only if the job's generation is
// still the store's current one.
func (f *Field) stepSampler() {
	job := f.sampler
	if job == nil {
		return
	}
	if job.gen != f.S.generation {
		f.sampler = nil // superseded rebuild, discard stale batch
		return
	}

	for att := 0; att < outsideBatch && len(job.pts) < job.need; att++ {
		x := f.rng.RangeF(-f.viewW/2, f.viewW/2)
		y := f.rng.RangeF(-f.viewH/2, f.viewH/2)
		if f.sil.Contains(f.toSVG(x, y)) {
			continue // candidate landed on the silhouette, reject
		}
		z := f.rng.RangeF(-f.Cfg.DepthJitter/2, f.Cfg.DepthJitter/2)
		job.pts = append(job.pts, Vec3{X: x, Y: y, Z: z})
	}

	if len(job.pts) < job.need {
		return // yield; continue next frame
	}

	base := f.S.InsideCount
	for k, p := range job.pts {
		i := base + k
		if i >= f.S.commonLen() {
			break
		}
		f.initParticle(i, p, true)
		if f.phase == PhaseSettled {
			f.S.Pos[i] = f.S.Target[i]
		}
	}
	f.sampler = nil
}

// initParticle fills every per-particle slot at index i for a formation
// position in world units.
func (f *Field) initParticle(i int, base Vec3, outside bool) {
	cfg := f.Cfg
	s := f.S

	s.Base[i] = base

	// Fixed radial direction: outward from the cloud center with a little
	// depth wobble. Shared by scroll spread and explosion impulses.
	dir := Vec3{X: base.X, Y: base.Y, Z: f.rng.RangeF(-0.3, 0.3)}.Norm()
	if dir == (Vec3{}) {
		dir = f.rng.UnitVec()
	}
	s.ScrollDir[i] = dir

	s.Target[i] = base.Add(dir.Scale(f.scroll * cfg.ScrollSpread))

	// Loading start: a randomized point far outside the cloud.
	s.Start[i] = f.rng.UnitVec().Scale(cfg.StartRadius * (1 + 0.5*f.rng.Float64()))
	s.Pos[i] = s.Start[i]

	size := cfg.BaseSize * (1 + cfg.SizeVariation*(f.rng.Float64()-0.5))
	if outside && f.rng.Float64() < cfg.OutsideInvisibleProb {
		size = 0
	}
	s.BaseSize[i] = size
	s.Size[i] = size

	s.Vel[i] = Vec3{}
	s.Bright[i] = 0
	s.Glow[i] = 0
	s.ReturnUntil[i] = 0
	s.GlowUntil[i] = 0
}

// toWorld maps an SVG sample into world units: centered on the origin,
// Y up, normalized to worldHeight, with a small random depth.
func (f *Field) toWorld(p Point2) Vec3 {
	cx := (f.sil.Box.MinX + f.sil.Box.MaxX) / 2
	cy := (f.sil.Box.MinY + f.sil.Box.MaxY) / 2
	return Vec3{
		X: (p.X - cx) * f.worldScale,
		Y: (cy - p.Y) * f.worldScale,
		Z: f.rng.RangeF(-f.Cfg.DepthJitter/2, f.Cfg.DepthJitter/2),
	}
}

// toSVG is the inverse planar mapping, used for membership tests.
func (f *Field) toSVG(x, y float64) (float64, float64) {
	cx := (f.sil.Box.MinX + f.sil.Box.MaxX) / 2
	cy := (f.sil.Box.MinY + f.sil.Box.MaxY) / 2
	return x/f.worldScale + cx, cy - y/f.worldScale
}
