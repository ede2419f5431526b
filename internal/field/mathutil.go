package field

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerpF(a, b, t float64) float64 {
	return a + (b-a)*t
}

// indexHash01 maps a particle index to a stable pseudo-random value in [0,1).
// Knuth multiplicative hash folded into a 31-bit range; the same index always
// yields the same value, so repeated wave reveals of an invisible point do
// not flicker.
func indexHash01(idx int) float64 {
	h := (uint64(uint32(idx)) * 2654435761) % 2147483647
	return float64(h) / 2147483647.0
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	// Scramble so nearby seeds do not produce correlated streams.
	s := splitmix64(seed)
	if s == 0 {
		s = 1
	}
	return &Rand{s: s}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}

// UnitVec returns a uniformly distributed random unit vector.
func (r *Rand) UnitVec() Vec3 {
	// Marsaglia rejection on the unit sphere.
	for {
		x := r.RangeF(-1, 1)
		y := r.RangeF(-1, 1)
		z := r.RangeF(-1, 1)
		v := Vec3{x, y, z}
		if sq := v.LenSq(); sq > 1e-6 && sq <= 1 {
			return v.Scale(1 / v.Len())
		}
	}
}
