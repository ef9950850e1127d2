package backend

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

// Configuration keys. They double as command line flag names.
const (
	KeyInput         = "input"
	KeyXMin          = "x-min"
	KeyXMax          = "x-max"
	KeyJumpThreshold = "jump-threshold"
	KeyYVisualLimit  = "y-visual-limit"
	KeyAspectLock    = "aspect-lock"
	KeyInterpolation = "interpolation"
	KeyAreaPrecision = "area-precision"
	KeyLogLevel      = "log-level"
)

// Config is the resolved configuration of the application. Every field
// holds a concrete value; optional settings carry an explicit flag.
type Config struct {
	Input string

	// XMin and XMax are only meaningful when HasXRange is set. Otherwise
	// the domain of the loaded trace is plotted.
	XMin, XMax float64
	HasXRange  bool

	JumpThreshold float64
	YVisualLimit  float64
	AspectLocked  bool
	Interpolation plot.Interpolation
	AreaPrecision int

	LogLevel log.Level
}

// SetDefaults registers the default value of every key that has one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyJumpThreshold, plot.DefaultJumpThreshold)
	v.SetDefault(KeyYVisualLimit, plot.DefaultYVisualLimit)
	v.SetDefault(KeyAspectLock, false)
	v.SetDefault(KeyInterpolation, plot.Linear.String())
	v.SetDefault(KeyAreaPrecision, plot.DefaultAreaPrecision)
	v.SetDefault(KeyLogLevel, log.InfoLevel.String())
}

// LoadConfig resolves a Config from v.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Input:         v.GetString(KeyInput),
		JumpThreshold: v.GetFloat64(KeyJumpThreshold),
		YVisualLimit:  v.GetFloat64(KeyYVisualLimit),
		AspectLocked:  v.GetBool(KeyAspectLock),
		AreaPrecision: v.GetInt(KeyAreaPrecision),
	}
	var err error
	cfg.Interpolation, err = plot.ParseInterpolation(v.GetString(KeyInterpolation))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyInterpolation, err)
	}
	cfg.LogLevel, err = log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	if cfg.JumpThreshold <= 0 {
		return Config{}, fmt.Errorf("invalid %s: must be positive, got %v", KeyJumpThreshold, cfg.JumpThreshold)
	}
	if cfg.YVisualLimit <= 0 {
		return Config{}, fmt.Errorf("invalid %s: must be positive, got %v", KeyYVisualLimit, cfg.YVisualLimit)
	}
	if cfg.AreaPrecision < 0 {
		return Config{}, fmt.Errorf("invalid %s: must not be negative, got %d", KeyAreaPrecision, cfg.AreaPrecision)
	}

	hasMin, hasMax := v.IsSet(KeyXMin), v.IsSet(KeyXMax)
	if hasMin != hasMax {
		return Config{}, fmt.Errorf("%s and %s must be set together", KeyXMin, KeyXMax)
	}
	if hasMin {
		cfg.XMin, cfg.XMax = v.GetFloat64(KeyXMin), v.GetFloat64(KeyXMax)
		if cfg.XMin >= cfg.XMax {
			return Config{}, fmt.Errorf("invalid x range: %s (%v) must be less than %s (%v)", KeyXMin, cfg.XMin, KeyXMax, cfg.XMax)
		}
		cfg.HasXRange = true
	}
	return cfg, nil
}

// PlotOptions converts the configuration into chart options.
func (c Config) PlotOptions() plot.Options {
	return plot.Options{
		JumpThreshold: c.JumpThreshold,
		YVisualLimit:  c.YVisualLimit,
		AspectLocked:  c.AspectLocked,
		Interpolation: c.Interpolation,
		AreaPrecision: c.AreaPrecision,
	}
}

// XRange resolves the range to plot for a trace: the configured range if
// there is one, otherwise the trace's domain.
func (c Config) XRange(t Trace) (xMin, xMax float64, ok bool) {
	if c.HasXRange {
		return c.XMin, c.XMax, true
	}
	return t.Domain()
}
