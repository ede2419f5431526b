package field

// Fixed simulation constants. These are policy, not tuning surface: the
// simulation is normalized to a nominal 60 Hz step regardless of the real
// display cadence.
const (
	NominalStep = 1.0 / 60.0

	// Per-frame chance that a particle receives autonomous jitter.
	jitterChance = 0.30

	// Rest snap: both |displacement|^2 and |velocity|^2 below this and the
	// particle is parked exactly on its target.
	restEps = 1e-4

	// Velocity retained per frame while a particle is in post-explosion
	// free flight.
	freeFlightDecay = 0.98

	// Outside-formation particles render at half brightness unless max
	// brightness is effectively full.
	outsideDim     = 0.5
	outsideDimSkip = 0.99

	// Visible particles swell up to 150% under a full-strength wave.
	waveSwell = 0.5

	// Frame-rate ceiling tolerance, so the throttle does not beat against
	// the display's own refresh cadence.
	fpsTolerance = 0.002
)

// CurvePoint is a cubic Bezier control point for the loading easing curve.
type CurvePoint struct {
	X float64 `mapstructure:"x" json:"x"`
	Y float64 `mapstructure:"y" json:"y"`
}

// Config is the flat tunable surface read by every component, once per
// frame. The core never validates ranges; the CLI/config layer owns that.
type Config struct {
	// Particle counts.
	ParticleCount        int     `mapstructure:"particle_count"`
	OutsideParticleCount int     `mapstructure:"outside_particle_count"`
	OutsideInvisibleProb float64 `mapstructure:"outside_invisible_prob"`

	// Nominal point size; individual base sizes vary around it.
	BaseSize      float64 `mapstructure:"base_size"`
	SizeVariation float64 `mapstructure:"size_variation"`
	DepthJitter   float64 `mapstructure:"depth_jitter"`

	// Pointer interaction.
	InteractionRadius float64 `mapstructure:"interaction_radius"`
	ForceStrength     float64 `mapstructure:"force_strength"`
	ChaosAngle        float64 `mapstructure:"chaos_angle"`
	ChaosStrength     float64 `mapstructure:"chaos_strength"`
	TangentialRatio   float64 `mapstructure:"tangential_ratio"`
	ZAxisStrength     float64 `mapstructure:"z_axis_strength"`

	// Idle breathing motion.
	AutonomousStrength float64 `mapstructure:"autonomous_strength"`

	// Waves.
	WavesEnabled bool    `mapstructure:"waves_enabled"`
	WaveInterval float64 `mapstructure:"wave_interval"`
	WaveSpeed    float64 `mapstructure:"wave_speed"`
	WaveWidth    float64 `mapstructure:"wave_width"`
	WaveForce    float64 `mapstructure:"wave_force"`
	WaveFalloff  float64 `mapstructure:"wave_falloff"`
	WaveGlow     float64 `mapstructure:"wave_glow"`

	// Explosions.
	ExplosionForce       float64 `mapstructure:"explosion_force"`
	ExplosionReturnDelay float64 `mapstructure:"explosion_return_delay"`
	ExplosionGlowTime    float64 `mapstructure:"explosion_glow_time"`
	ExplosionGlow        float64 `mapstructure:"explosion_glow"`
	ExplosionSpeedMult   float64 `mapstructure:"explosion_speed_mult"`

	// Spring-damper relaxation.
	SpringConstant float64 `mapstructure:"spring_constant"`
	Damping        float64 `mapstructure:"damping"`
	TimeScale      float64 `mapstructure:"time_scale"`

	// Brightness derivation. Depth is measured from the camera along the
	// view axis and normalized against the fixed [DepthNear, DepthFar]
	// range, never against the current cloud extent.
	CameraZ        float64 `mapstructure:"camera_z"`
	DepthNear      float64 `mapstructure:"depth_near"`
	DepthFar       float64 `mapstructure:"depth_far"`
	DepthDarkening float64 `mapstructure:"depth_darkening"`
	MaxBrightness  float64 `mapstructure:"max_brightness"`

	// Glow derivation.
	BaseGlow         float64 `mapstructure:"base_glow"`
	VelocityGlowMult float64 `mapstructure:"velocity_glow_mult"`

	// Loading animation. Duration and the curve control points are the two
	// settings persisted across sessions.
	LoadingDuration float64    `mapstructure:"loading_duration"`
	CurveP1         CurvePoint `mapstructure:"curve_p1"`
	CurveP2         CurvePoint `mapstructure:"curve_p2"`
	StartRadius     float64    `mapstructure:"start_radius"`

	// Scroll spread: target = base + scrollDir * (progress * ScrollSpread).
	ScrollSpread float64 `mapstructure:"scroll_spread"`

	// Frame-rate ceiling; 0 disables the throttle.
	TargetFPS float64 `mapstructure:"target_fps"`
}

// DefaultConfig returns the tuning the app ships with.
func DefaultConfig() Config {
	return Config{
		ParticleCount:        18000,
		OutsideParticleCount: 4000,
		OutsideInvisibleProb: 0.55,

		BaseSize:      2.2,
		SizeVariation: 0.8,
		DepthJitter:   6.0,

		InteractionRadius: 26.0,
		ForceStrength:     0.9,
		ChaosAngle:        0.6,
		ChaosStrength:     0.5,
		TangentialRatio:   0.35,
		ZAxisStrength:     0.4,

		AutonomousStrength: 0.05,

		WavesEnabled: true,
		WaveInterval: 6.0,
		WaveSpeed:    42.0,
		WaveWidth:    18.0,
		WaveForce:    0.55,
		WaveFalloff:  2.0,
		WaveGlow:     0.45,

		ExplosionForce:       3.2,
		ExplosionReturnDelay: 1.1,
		ExplosionGlowTime:    1.6,
		ExplosionGlow:        0.6,
		ExplosionSpeedMult:   1.8,

		SpringConstant: 0.35,
		Damping:        0.90,
		TimeScale:      0.90,

		CameraZ:        140.0,
		DepthNear:      110.0,
		DepthFar:       180.0,
		DepthDarkening: 0.65,
		MaxBrightness:  0.85,

		BaseGlow:         0.25,
		VelocityGlowMult: 0.12,

		LoadingDuration: 2.8,
		CurveP1:         CurvePoint{X: 0.42, Y: 0.0},
		CurveP2:         CurvePoint{X: 0.58, Y: 1.0},
		StartRadius:     220.0,

		ScrollSpread: 90.0,

		TargetFPS: 0,
	}
}
