//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rover/app"
	"rover/hal"
	"rover/internal/buildinfo"
	"rover/internal/config"
	"rover/internal/logx"
)

var errColor = color.New(color.FgRed, color.Bold)

type options struct {
	configPath string
	headless   bool
	hz         int
	ticks      uint64
	logLevel   string
	logRate    float64
	obstacleCM float64
}

func main() {
	var opts options
	rootCmd := &cobra.Command{
		Use:           "rover",
		Short:         "Rover firmware running against a simulated vehicle",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "TOML file with [app], [sim] and [log] sections")
	flags.BoolVar(&opts.headless, "headless", false, "run without a window")
	flags.IntVar(&opts.hz, "hz", 60, "hardware step rate in headless mode")
	flags.Uint64Var(&opts.ticks, "ticks", 0, "stop after N hardware steps in headless mode (0 = run forever)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides the config file)")
	flags.Float64Var(&opts.logRate, "log-rate", 0, "max firmware log lines per second (overrides the config file)")
	flags.Float64Var(&opts.obstacleCM, "obstacle-cm", 0, "starting distance to the obstacle (overrides the config file)")

	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	file := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		file = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		file.Log.Level = opts.logLevel
	}
	if flags.Changed("log-rate") {
		file.Log.Rate = opts.logRate
	}
	if flags.Changed("obstacle-cm") {
		file.Sim.ObstacleCM = opts.obstacleCM
	}

	zl, err := logx.New(os.Stdout, file.Log.Level)
	if err != nil {
		return err
	}
	lines := logx.NewLines(zl).WithRate(file.Log.Rate, file.Log.Burst)
	zl.Info().Str("version", buildinfo.Short()).Bool("headless", opts.headless).Msg("rover: starting")

	h := hal.NewHost(file.Sim, lines)
	sys, err := app.New(h, file.App)
	if err != nil {
		return err
	}
	// Yield the CPU between interrupts instead of spinning a core.
	sys.SetIdle(func() { time.Sleep(50 * time.Microsecond) })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.headless {
		err = hal.RunHeadless(ctx, h, sys.RunContext, hal.HeadlessConfig{Hz: opts.hz, Frames: opts.ticks})
	} else {
		err = hal.RunWindow(ctx, h, sys.RunContext)
	}

	snap := h.Snapshot()
	zl.Info().
		Dur("elapsed", snap.Elapsed).
		Uint64("interrupts", snap.Interrupts).
		Uint64("samples", snap.Samples).
		Uint64("dropped_lines", lines.Dropped()).
		Msg("rover: stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("rover: %w", err)
	}
	return nil
}
