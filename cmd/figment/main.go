package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"figment/internal/app"
	"figment/internal/field"
)

var (
	cfgFile      string
	svgPath      string
	settingsPath string
	mute         bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "figment",
	Short: "Interactive particle field that assembles into an SVG silhouette.",
	Long: `figment renders a particle cloud that assembles into the silhouette of an
SVG image, reacts to pointer movement, scroll, and clicks, and relaxes back
into formation with spring-damper physics.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		return app.Run(&cfg, app.Options{
			SVGPath:      svgPath,
			SettingsPath: settingsPath,
			Mute:         mute,
		}, log)
	},
}

func init() {
	fl := rootCmd.Flags()
	fl.StringVarP(&cfgFile, "config", "c", "", "config file (default ./figment.yaml)")
	fl.StringVarP(&svgPath, "image", "i", "silhouette.svg", "SVG silhouette to assemble")
	fl.StringVar(&settingsPath, "settings", "figment_settings.json", "persisted settings file")
	fl.BoolVar(&mute, "mute", false, "disable sound effects")
	fl.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	fl.Int("particles", 0, "in-formation particle count")
	fl.Int("outside", -1, "outside scatter particle count")
	fl.Float64("fps", 0, "frame-rate ceiling (0 = uncapped)")
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// loadConfig layers defaults, an optional config file, FIGMENT_* env vars,
// and the count/fps flags into a field.Config.
func loadConfig(cmd *cobra.Command) (field.Config, error) {
	cfg := field.DefaultConfig()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("figment")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("FIGMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only consults the environment for keys viper knows, so
	// every key is registered with its default before Unmarshal.
	setDefaults(v, &cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		// No config file; defaults + env + flags.
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if n, _ := cmd.Flags().GetInt("particles"); n > 0 {
		cfg.ParticleCount = n
	}
	if n, _ := cmd.Flags().GetInt("outside"); n >= 0 {
		cfg.OutsideParticleCount = n
	}
	if fps, _ := cmd.Flags().GetFloat64("fps"); fps > 0 {
		cfg.TargetFPS = fps
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *field.Config) {
	v.SetDefault("particle_count", cfg.ParticleCount)
	v.SetDefault("outside_particle_count", cfg.OutsideParticleCount)
	v.SetDefault("outside_invisible_prob", cfg.OutsideInvisibleProb)

	v.SetDefault("base_size", cfg.BaseSize)
	v.SetDefault("size_variation", cfg.SizeVariation)
	v.SetDefault("depth_jitter", cfg.DepthJitter)

	v.SetDefault("interaction_radius", cfg.InteractionRadius)
	v.SetDefault("force_strength", cfg.ForceStrength)
	v.SetDefault("chaos_angle", cfg.ChaosAngle)
	v.SetDefault("chaos_strength", cfg.ChaosStrength)
	v.SetDefault("tangential_ratio", cfg.TangentialRatio)
	v.SetDefault("z_axis_strength", cfg.ZAxisStrength)
	v.SetDefault("autonomous_strength", cfg.AutonomousStrength)

	v.SetDefault("waves_enabled", cfg.WavesEnabled)
	v.SetDefault("wave_interval", cfg.WaveInterval)
	v.SetDefault("wave_speed", cfg.WaveSpeed)
	v.SetDefault("wave_width", cfg.WaveWidth)
	v.SetDefault("wave_force", cfg.WaveForce)
	v.SetDefault("wave_falloff", cfg.WaveFalloff)
	v.SetDefault("wave_glow", cfg.WaveGlow)

	v.SetDefault("explosion_force", cfg.ExplosionForce)
	v.SetDefault("explosion_return_delay", cfg.ExplosionReturnDelay)
	v.SetDefault("explosion_glow_time", cfg.ExplosionGlowTime)
	v.SetDefault("explosion_glow", cfg.ExplosionGlow)
	v.SetDefault("explosion_speed_mult", cfg.ExplosionSpeedMult)

	v.SetDefault("spring_constant", cfg.SpringConstant)
	v.SetDefault("damping", cfg.Damping)
	v.SetDefault("time_scale", cfg.TimeScale)

	v.SetDefault("camera_z", cfg.CameraZ)
	v.SetDefault("depth_near", cfg.DepthNear)
	v.SetDefault("depth_far", cfg.DepthFar)
	v.SetDefault("depth_darkening", cfg.DepthDarkening)
	v.SetDefault("max_brightness", cfg.MaxBrightness)

	v.SetDefault("base_glow", cfg.BaseGlow)
	v.SetDefault("velocity_glow_mult", cfg.VelocityGlowMult)

	v.SetDefault("loading_duration", cfg.LoadingDuration)
	v.SetDefault("curve_p1.x", cfg.CurveP1.X)
	v.SetDefault("curve_p1.y", cfg.CurveP1.Y)
	v.SetDefault("curve_p2.x", cfg.CurveP2.X)
	v.SetDefault("curve_p2.y", cfg.CurveP2.Y)
	v.SetDefault("start_radius", cfg.StartRadius)

	v.SetDefault("scroll_spread", cfg.ScrollSpread)
	v.SetDefault("target_fps", cfg.TargetFPS)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
