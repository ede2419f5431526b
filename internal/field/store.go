package field

// Store owns the per-particle parallel arrays. All arrays are index-aligned;
// indices [0, InsideCount) lie on the silhouette, the rest are scattered
// around it. The store has no behavior beyond (re)allocation — the frame
// pipeline mutates it in place.
type Store struct {
	Pos    []Vec3 // current rendered position
	Target []Vec3 // spring rest point (base + scroll spread)
	Base   []Vec3 // formation position before scroll offset
	Start  []Vec3 // position at the start of the loading animation

	// Fixed per-particle radial direction, used both for scroll spread and
	// for explosion impulses. Set once at formation build.
	ScrollDir []Vec3

	Vel []Vec3

	BaseSize []float64 // 0 = invisible unless a wave reveals it
	Size     []float64 // displayed size
	Bright   []float64 // grayscale brightness, written to all color channels
	Glow     []float64 // emissive intensity

	// Per-particle effect timers (absolute clock seconds).
	ReturnUntil []float64 // spring re-engagement gate after an explosion
	GlowUntil   []float64 // explosion highlight fade deadline

	InsideCount int

	// Formation generation, bumped on every rebuild. Batched sampling jobs
	// carry the generation they were started for and commit only if it is
	// still current.
	generation uint64
}

func NewStore() *Store {
	return &Store{}
}

// Len returns the nominal particle count.
func (s *Store) Len() int { return len(s.Pos) }

// commonLen returns the shortest of the parallel arrays. Rebuilds can
// transiently leave mismatched lengths; per-frame loops run over the common
// prefix and silently skip the remainder rather than erroring.
func (s *Store) commonLen() int {
	n := len(s.Pos)
	for _, m := range []int{
		len(s.Target), len(s.Base), len(s.Start), len(s.ScrollDir),
		len(s.Vel), len(s.BaseSize), len(s.Size), len(s.Bright),
		len(s.Glow), len(s.ReturnUntil), len(s.GlowUntil),
	} {
		if m < n {
			n = m
		}
	}
	return n
}

// Generation returns the current formation generation.
func (s *Store) Generation() uint64 { return s.generation }

// resize grows or shrinks every array to n, preserving the prefix. New
// slots are zero-valued; the formation builder fills them in.
func (s *Store) resize(n int) {
	s.Pos = resizeVec(s.Pos, n)
	s.Target = resizeVec(s.Target, n)
	s.Base = resizeVec(s.Base, n)
	s.Start = resizeVec(s.Start, n)
	s.ScrollDir = resizeVec(s.ScrollDir, n)
	s.Vel = resizeVec(s.Vel, n)
	s.BaseSize = resizeFloat(s.BaseSize, n)
	s.Size = resizeFloat(s.Size, n)
	s.Bright = resizeFloat(s.Bright, n)
	s.Glow = resizeFloat(s.Glow, n)
	s.ReturnUntil = resizeFloat(s.ReturnUntil, n)
	s.GlowUntil = resizeFloat(s.GlowUntil, n)
}

func resizeVec(v []Vec3, n int) []Vec3 {
	if n <= cap(v) {
		return v[:n]
	}
	nv := make([]Vec3, n)
	copy(nv, v)
	return nv
}

func resizeFloat(v []float64, n int) []float64 {
	if n <= cap(v) {
		return v[:n]
	}
	nv := make([]float64, n)
	copy(nv, v)
	return nv
}
