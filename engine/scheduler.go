package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrSchedulerStopped is returned for commands sent after Stop or context cancellation
var ErrSchedulerStopped = errors.New("scheduler stopped")

// command is a unit of work run on the scheduler goroutine
type command struct {
	fn   func(*Simulation)
	done chan struct{}
}

// Scheduler serializes access to a Simulation from a single goroutine
// It ticks the simulation on a fixed interval and applies commands in arrival order
// between ticks; readers get the latest published Snapshot
type Scheduler struct {
	sim      *Simulation
	interval time.Duration
	clock    Clock
	log      *zap.Logger

	cmds     chan command
	snapshot atomic.Pointer[Snapshot]
	ticks    atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithClock replaces the wall clock used to measure elapsed time between ticks
func WithClock(c Clock) SchedulerOption {
	return func(sc *Scheduler) { sc.clock = c }
}

// WithSchedulerLogger sets the scheduler logger
func WithSchedulerLogger(log *zap.Logger) SchedulerOption {
	return func(sc *Scheduler) {
		if log != nil {
			sc.log = log
		}
	}
}

// NewScheduler wraps sim; the caller must not touch sim directly after Start
func NewScheduler(sim *Simulation, interval time.Duration, opts ...SchedulerOption) *Scheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	sc := &Scheduler{
		sim:      sim,
		interval: interval,
		clock:    SystemClock{},
		log:      zap.NewNop(),
		cmds:     make(chan command, 64),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(sc)
	}
	snap := sim.Snapshot()
	sc.snapshot.Store(&snap)
	return sc
}

// Start launches the scheduler goroutine; it exits on Stop or when ctx is done
func (sc *Scheduler) Start(ctx context.Context) {
	if !sc.running.CompareAndSwap(false, true) {
		return
	}
	sc.wg.Add(1)
	go sc.loop(ctx)
	sc.log.Debug("scheduler started", zap.Duration("interval", sc.interval))
}

// Stop halts the goroutine and waits for it to exit
func (sc *Scheduler) Stop() {
	sc.stopOnce.Do(func() {
		close(sc.stopChan)
	})
	sc.wg.Wait()
}

// Done is closed once Stop is called
func (sc *Scheduler) Done() <-chan struct{} {
	return sc.stopChan
}

// Ticks returns the number of frame ticks processed
func (sc *Scheduler) Ticks() uint64 {
	return sc.ticks.Load()
}

// Snapshot returns the most recently published state
func (sc *Scheduler) Snapshot() Snapshot {
	return *sc.snapshot.Load()
}

// Do enqueues fn to run on the scheduler goroutine without waiting for it
func (sc *Scheduler) Do(fn func(*Simulation)) error {
	select {
	case <-sc.stopChan:
		return ErrSchedulerStopped
	default:
	}
	select {
	case sc.cmds <- command{fn: fn}:
		return nil
	case <-sc.stopChan:
		return ErrSchedulerStopped
	}
}

// Call runs fn on the scheduler goroutine and waits until it has been applied
func (sc *Scheduler) Call(ctx context.Context, fn func(*Simulation)) error {
	done := make(chan struct{})
	select {
	case <-sc.stopChan:
		return ErrSchedulerStopped
	default:
	}
	select {
	case sc.cmds <- command{fn: fn, done: done}:
	case <-sc.stopChan:
		return ErrSchedulerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-sc.stopChan:
		return ErrSchedulerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (sc *Scheduler) loop(ctx context.Context) {
	defer sc.wg.Done()
	defer sc.running.Store(false)

	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()
	last := sc.clock.Now()

	for {
		select {
		case <-ctx.Done():
			sc.log.Debug("scheduler context done", zap.Error(ctx.Err()))
			sc.stopOnce.Do(func() { close(sc.stopChan) })
			return

		case <-sc.stopChan:
			return

		case cmd := <-sc.cmds:
			cmd.fn(sc.sim)
			sc.publish()
			if cmd.done != nil {
				close(cmd.done)
			}

		case <-ticker.C:
			now := sc.clock.Now()
			elapsed := now.Sub(last)
			last = now
			sc.sim.Tick(elapsed)
			sc.ticks.Add(1)
			sc.publish()
		}
	}
}

func (sc *Scheduler) publish() {
	snap := sc.sim.Snapshot()
	sc.snapshot.Store(&snap)
}
