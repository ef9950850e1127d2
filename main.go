package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"git.sr.ht/~whereswaldon/fnplot/backend"
	"git.sr.ht/~whereswaldon/fnplot/plot"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "fnplot [trace.csv]",
		Short: "Plot a sampled function",
		Long: heredoc.Doc(`
			Plot a function from a trace of samples. A trace is CSV whose
			heading is "x, <expression>" followed by one "x, y" row per sample.
			Undefined samples are written as NaN, Inf or an empty y.

			The trace file is watched and re-plotted whenever it is rewritten.
		`),
		Example: heredoc.Doc(`
			# Plot a trace file
			$ fnplot tan.csv

			# Plot samples piped from an evaluator with smoothing enabled
			$ evaluate 'sin(x)/x' | fnplot - --interpolation smoothed

			# Restrict the x range and lock the aspect ratio
			$ fnplot --x-min -3.14 --x-max 3.14 --aspect-lock tan.csv
		`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			if len(args) == 1 {
				v.Set(backend.KeyInput, args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := backend.LoadConfig(v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.fnplot.yaml)")
	flags.StringP(backend.KeyInput, "i", "", `Trace to plot, or "-" for standard input`)
	flags.Float64(backend.KeyXMin, 0, "Lower end of the plotted x range (default is the trace domain)")
	flags.Float64(backend.KeyXMax, 0, "Upper end of the plotted x range (default is the trace domain)")
	flags.Float64(backend.KeyJumpThreshold, plot.DefaultJumpThreshold, "Break the curve between neighbouring samples whose y differs by more than this")
	flags.Float64(backend.KeyYVisualLimit, plot.DefaultYVisualLimit, "Largest absolute y shown when a y bound is unbounded")
	flags.Bool(backend.KeyAspectLock, false, "Scale the axes to the aspect ratio of the window")
	flags.String(backend.KeyInterpolation, plot.Linear.String(), "How samples are joined: linear or smoothed")
	flags.Int(backend.KeyAreaPrecision, plot.DefaultAreaPrecision, "Decimal places shown for integral areas")
	flags.String(backend.KeyLogLevel, log.InfoLevel.String(), "Log level: debug, info, warn or error")

	backend.SetDefaults(v)
	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("FNPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed finding home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(".fnplot")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed reading config: %w", err)
	}
	return nil
}

func run(cfg backend.Config) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		Prefix:          "fnplot",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	ctx, cancel := context.WithCancel(context.Background())
	ds, err := backend.NewDatasource(ctx, logger)
	if err != nil {
		cancel()
		return err
	}
	if cfg.Input != "" {
		// Standard input may stay open for a long time, so never block the
		// window on it.
		go func() {
			if err := ds.Load(cfg.Input); err != nil {
				logger.Error("failed loading trace", "input", cfg.Input, "error", err)
			}
		}()
	}

	go func() {
		defer cancel()
		w := app.NewWindow(app.Title("Function Plot"), app.Size(unit.Dp(1100), unit.Dp(720)))
		ws := backend.NewWindowState(ctx, backend.NewBundle(cfg, ds), w)
		if err := loop(w, ws, logger); err != nil {
			logger.Fatal("window closed with error", "error", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}

func loop(w *app.Window, ws backend.WindowState, logger *log.Logger) error {
	expl := explorer.NewExplorer(w)
	ui := NewUI(ws, expl, w.Invalidate, logger)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
