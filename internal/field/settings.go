package field

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Settings is the small blob that survives sessions: the loading animation
// duration and the easing control points. Nothing else persists.
type Settings struct {
	LoadingDuration float64    `mapstructure:"loading_duration" json:"loading_duration"`
	CurveP1         CurvePoint `mapstructure:"curve_p1" json:"curve_p1"`
	CurveP2         CurvePoint `mapstructure:"curve_p2" json:"curve_p2"`
}

// SettingsFromConfig extracts the persisted subset.
func SettingsFromConfig(cfg *Config) Settings {
	return Settings{
		LoadingDuration: cfg.LoadingDuration,
		CurveP1:         cfg.CurveP1,
		CurveP2:         cfg.CurveP2,
	}
}

// Apply writes the persisted subset back into a config.
func (s Settings) Apply(cfg *Config) {
	cfg.LoadingDuration = s.LoadingDuration
	cfg.CurveP1 = s.CurveP1
	cfg.CurveP2 = s.CurveP2
}

// LoadSettings reads a settings file. A missing file is not an error; the
// zero bool reports whether anything was loaded.
func LoadSettings(path string) (Settings, bool, error) {
	var s Settings
	if _, err := os.Stat(path); err != nil {
		return s, false, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return s, false, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, false, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, true, nil
}

// SaveSettings writes the settings file. JSON keeps the float values
// bit-identical across a save/load round trip.
func SaveSettings(path string, s Settings) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.Set("loading_duration", s.LoadingDuration)
	v.Set("curve_p1.x", s.CurveP1.X)
	v.Set("curve_p1.y", s.CurveP1.Y)
	v.Set("curve_p2.x", s.CurveP2.X)
	v.Set("curve_p2.y", s.CurveP2.Y)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
