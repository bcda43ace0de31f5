package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/wellring/engine"
	"github.com/lixenwraith/wellring/observability"
	"github.com/lixenwraith/wellring/status"
)

const progressEvery = 100

type headlessOptions struct {
	frames int
	dt     float64
	align  bool
}

func newHeadlessCmd(a *app) *cobra.Command {
	opts := headlessOptions{frames: 600, dt: 1.0 / 60}
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the simulation without a screen and report a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHeadless(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "number of steps to run")
	cmd.Flags().Float64Var(&opts.dt, "dt", opts.dt, "step size in seconds")
	cmd.Flags().BoolVar(&opts.align, "align", false, "place wells equidistantly before running")
	return cmd
}

func (a *app) runHeadless(cmd *cobra.Command, opts headlessOptions) error {
	if opts.frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", opts.frames)
	}
	if opts.dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", opts.dt)
	}

	observability.InitializeLogger(a.cfg.Logger)
	defer observability.Sync()
	log := observability.GetLogger()

	reg := status.NewRegistry()
	sim := engine.NewSimulation(a.cfg.Params(),
		engine.WithSeed(a.cfg.Sim.Seed),
		engine.WithLogger(log.Named("sim")),
		engine.WithRegistry(reg),
		engine.WithCanvas(a.cfg.Sim.Width, a.cfg.Sim.Height),
	)
	if opts.align {
		sim.AlignWellsEquidistant()
	}
	sim.SetRunning(true)

	progress := rate.Sometimes{Every: progressEvery}
	for i := 0; i < opts.frames; i++ {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		rep := sim.Step(opts.dt)
		progress.Do(func() {
			log.Debug("progress",
				zap.Uint64("step", sim.Steps()),
				zap.Int("held", rep.Held),
				zap.Float64("mean_capture", rep.MeanCapture),
			)
		})
	}

	snap := sim.Snapshot()
	log.Info("headless run complete", zap.Object("metrics", reg))
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"steps %d  t %.2fs  held %d/%d  mean capture %.3f  overlap %.3f\n",
		snap.Steps, snap.SimTime, snap.Last.Held, len(snap.Agents),
		snap.Last.MeanCapture, snap.Last.Collisions.MaxOverlap)
	return err
}
