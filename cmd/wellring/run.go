package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/wellring/audio"
	"github.com/lixenwraith/wellring/engine"
	"github.com/lixenwraith/wellring/observability"
	"github.com/lixenwraith/wellring/parameter"
	"github.com/lixenwraith/wellring/render"
	"github.com/lixenwraith/wellring/status"
)

const (
	// defaultLogFile receives interactive logs when none is configured; the terminal is owned by tcell
	defaultLogFile = "wellring.log"
	statsInterval  = 5 * time.Second
	eventBuffer    = 256
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive terminal viewer (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd)
		},
	}
}

// viewer owns the screen, renderer and scheduler for one interactive session
type viewer struct {
	screen    tcell.Screen
	renderer  *render.TerminalRenderer
	scheduler *engine.Scheduler
	reg       *status.Registry
	height    float64
	log       *zap.Logger
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	cfg := a.cfg
	logCfg := cfg.Logger
	if logCfg.File == "" {
		logCfg.File = defaultLogFile
	}
	observability.Initialize(logCfg, nil)
	defer observability.Sync()
	log := observability.GetLogger()

	mode := render.ParseColorMode(cfg.Render.ColorMode)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	render.RegisterCrashScreen(screen)
	defer render.RegisterCrashScreen(nil)
	defer screen.Fini()
	defer render.Recover()

	screen.HideCursor()
	screen.Clear()

	renderer := render.NewTerminalRenderer(screen, render.Options{
		ColorMode:     mode,
		ShowField:     cfg.Render.ShowField,
		HeadingColors: cfg.Render.HeadingColors,
		ShowLinks:     cfg.Render.ShowLinks,
		LinkWidth:     cfg.Render.LinkWidth,
		LinkAlpha:     cfg.Render.LinkAlpha,
	})
	pixW, pixH := renderer.PixelSize()
	w, h := render.CanvasFor(pixW, pixH, cfg.Sim.Height)

	reg := status.NewRegistry()
	opts := []engine.Option{
		engine.WithSeed(cfg.Sim.Seed),
		engine.WithLogger(log.Named("sim")),
		engine.WithRegistry(reg),
		engine.WithCanvas(w, h),
	}

	if cfg.Audio.Enabled {
		sound := audio.NewSoundManager(cfg.Audio.Volume, log.Named("audio"))
		if err := sound.Initialize(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer sound.Cleanup()
			opts = append(opts, engine.WithObserver(sound.Observe))
		}
	}

	sim := engine.NewSimulation(cfg.Params(), opts...)
	sim.SetRunning(true)

	fps := max(1, cfg.Render.FPS)
	frame := time.Second / time.Duration(fps)
	scheduler := engine.NewScheduler(sim, frame, engine.WithSchedulerLogger(log.Named("scheduler")))

	v := &viewer{
		screen:    screen,
		renderer:  renderer,
		scheduler: scheduler,
		reg:       reg,
		height:    cfg.Sim.Height,
		log:       log,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	scheduler.Start(gctx)
	defer scheduler.Stop()

	events := make(chan tcell.Event, eventBuffer)
	g.Go(func() error {
		defer render.Recover()
		v.poll(gctx, events)
		return nil
	})
	g.Go(func() error {
		defer render.Recover()
		defer screen.Fini()
		defer cancel()
		return v.loop(gctx, events, frame)
	})

	log.Info("viewer started",
		zap.String("run_id", sim.RunID().String()),
		zap.Int("fps", fps),
		zap.String("color_mode", cfg.Render.ColorMode),
		zap.Bool("audio", cfg.Audio.Enabled),
	)
	err = g.Wait()
	log.Info("viewer stopped", zap.Object("metrics", reg))
	return err
}

// poll forwards terminal events until the screen is finalized
func (v *viewer) poll(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// loop draws a frame per tick and applies input until quit or ctx is done
func (v *viewer) loop(ctx context.Context, events <-chan tcell.Event, frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	stats := rate.Sometimes{Interval: statsInterval}

	v.renderer.Draw(v.scheduler.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-v.scheduler.Done():
			return nil

		case ev := <-events:
			if v.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			v.renderer.Draw(v.scheduler.Snapshot())
			stats.Do(func() {
				v.log.Debug("stats", v.reg.Fields()...)
			})
		}
	}
}

// handleEvent applies one terminal event, returning true on quit
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		pixW, pixH := v.renderer.Resize()
		w, h := render.CanvasFor(pixW, pixH, v.height)
		v.do(func(s *engine.Simulation) { s.SetCanvas(w, h) })
		v.screen.Sync()

	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		v.selectParam(1)
		return false
	case tcell.KeyBacktab:
		v.selectParam(-1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		v.do(func(s *engine.Simulation) { s.TogglePlay() })
	case '.':
		v.do(func(s *engine.Simulation) {
			s.SetRunning(false)
			s.Step(parameter.MaxStepDt)
		})
	case 'r':
		v.do(func(s *engine.Simulation) { s.ReseedAll() })
		v.renderer.SetMessage("reseeded")
	case 'w':
		v.do(func(s *engine.Simulation) { s.ReseedWells() })
		v.renderer.SetMessage("wells reseeded")
	case 'a':
		v.do(func(s *engine.Simulation) { s.AlignWellsEquidistant() })
		v.renderer.SetMessage("wells aligned")
	case 'f':
		v.renderer.SetMessage(onOff("field", v.renderer.ToggleField()))
	case 'h':
		v.renderer.SetMessage(onOff("heading colors", v.renderer.ToggleHeadingColors()))
	case 'l':
		v.renderer.SetMessage(onOff("links", v.renderer.ToggleLinks()))
	case '+', '=':
		v.adjust(1)
	case '-', '_':
		v.adjust(-1)
	}
	return false
}

func (v *viewer) selectParam(delta int) {
	id := v.renderer.SelectNext(delta)
	v.renderer.SetMessage(id.Label())
}

func (v *viewer) adjust(steps int) {
	id := v.renderer.Selected()
	v.do(func(s *engine.Simulation) { s.AdjustParameter(id, steps) })
	v.renderer.SetMessage("")
}

func (v *viewer) do(fn func(*engine.Simulation)) {
	if err := v.scheduler.Do(fn); err != nil {
		v.log.Debug("command dropped", zap.Error(err))
	}
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}
