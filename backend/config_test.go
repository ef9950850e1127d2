package backend

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(newViper(nil))
	require.NoError(t, err)
	assert.Equal(t, plot.DefaultOptions(), cfg.PlotOptions())
	assert.False(t, cfg.HasXRange)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(newViper(map[string]any{
		KeyInput:         "trace.csv",
		KeyXMin:          -2.5,
		KeyXMax:          "7",
		KeyJumpThreshold: 3,
		KeyAspectLock:    true,
		KeyInterpolation: "Smoothed",
		KeyLogLevel:      "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "trace.csv", cfg.Input)
	assert.True(t, cfg.HasXRange)
	assert.Equal(t, -2.5, cfg.XMin)
	assert.Equal(t, 7.0, cfg.XMax)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)

	opts := cfg.PlotOptions()
	assert.Equal(t, 3.0, opts.JumpThreshold)
	assert.Equal(t, plot.DefaultYVisualLimit, opts.YVisualLimit)
	assert.True(t, opts.AspectLocked)
	assert.Equal(t, plot.Smoothed, opts.Interpolation)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, values := range map[string]map[string]any{
		"interpolation":  {KeyInterpolation: "cubic"},
		"log level":      {KeyLogLevel: "loud"},
		"jump threshold": {KeyJumpThreshold: 0},
		"visual limit":   {KeyYVisualLimit: -1},
		"precision":      {KeyAreaPrecision: -1},
		"half range":     {KeyXMin: 1},
		"inverted range": {KeyXMin: 1, KeyXMax: 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestConfigXRange(t *testing.T) {
	trace := Trace{Samples: []plot.Sample{plot.Pt(-1, 0), plot.Pt(5, 0)}}

	lo, hi, ok := Config{}.XRange(trace)
	require.True(t, ok)
	assert.Equal(t, []float64{-1, 5}, []float64{lo, hi})

	lo, hi, ok = Config{HasXRange: true, XMin: 0, XMax: 1}.XRange(trace)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1}, []float64{lo, hi})
}
