package runtime

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is one of the three runtime states of spec.md §5.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

// Runtime owns the input queue and playback FIFO and drives the
// STOPPED/RUNNING/PAUSED transitions around them. It never holds a lock
// across a call into the decoder/QSO core; callbacks run on the runtime
// worker goroutine only.
type Runtime struct {
	mu    sync.Mutex
	state State

	input    *FrameQueue
	playback *Playback

	tick time.Duration

	group  *errgroup.Group
	cancel context.CancelFunc
	stopCh chan struct{}

	onTick func(frames [][]float32)
}

// Config carries the runtime's tunables, per spec.md §5.
type Config struct {
	InputQueueCapacity int
	TickInterval       time.Duration // default 50ms
}

// New builds a stopped Runtime. onTick is invoked once per tick with all
// frames drained from the input queue since the previous tick.
func New(cfg Config, onTick func(frames [][]float32)) *Runtime {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	return &Runtime{
		state:    Stopped,
		input:    NewFrameQueue(cfg.InputQueueCapacity),
		playback: NewPlayback(),
		tick:     cfg.TickInterval,
		onTick:   onTick,
	}
}

// State returns the current runtime state.
func (r *Runtime) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// PushFrame enqueues one audio frame from the real-time input callback.
// Never blocks.
func (r *Runtime) PushFrame(frame []float32) {
	r.input.Push(frame)
}

// EnqueuePlayback adds one item to the playback FIFO.
func (r *Runtime) EnqueuePlayback(item PlaybackItem) {
	r.playback.Enqueue(item)
}

// Start transitions STOPPED→RUNNING: discards any queued input frames,
// starts the input drain ticker and the playback drain worker under one
// errgroup, and closes the playback worker's stop channel once the run
// context is cancelled.
func (r *Runtime) Start(ctx context.Context, sink Sink) error {
	r.mu.Lock()
	if r.state != Stopped {
		r.mu.Unlock()
		return nil
	}
	r.state = Running
	r.input.DrainAll()
	r.playback.Resume()

	runCtx, cancel := context.WithCancel(ctx)
	g, runCtx := errgroup.WithContext(runCtx)
	stopCh := make(chan struct{})
	r.cancel = cancel
	r.group = g
	r.stopCh = stopCh
	r.mu.Unlock()

	g.Go(func() error {
		r.runTicker(runCtx)
		return nil
	})
	g.Go(func() error {
		r.playback.Run(stopCh, sink)
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		close(stopCh)
		return nil
	})
	return nil
}

func (r *Runtime) runTicker(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frames := r.input.DrainAll()
			if len(frames) > 0 && r.onTick != nil {
				r.onTick(frames)
			}
		}
	}
}

// Pause transitions RUNNING→PAUSED: detaches input and aborts any
// in-flight playback, but preserves decoder/QSO state for Resume.
func (r *Runtime) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Running {
		return
	}
	r.state = Paused
	if r.cancel != nil {
		r.cancel()
	}
	r.playback.Stop()
	if r.group != nil {
		r.group.Wait()
	}
}

// Resume transitions PAUSED→RUNNING: reattaches input and resumes
// draining.
func (r *Runtime) Resume(ctx context.Context, sink Sink) error {
	r.mu.Lock()
	if r.state != Paused {
		r.mu.Unlock()
		return nil
	}
	r.state = Stopped // allow Start's guard to proceed
	r.mu.Unlock()
	return r.Start(ctx, sink)
}

// Stop tears everything down from any state. The decoder and QSO machine
// are reset by the caller in response to this transition.
func (r *Runtime) Stop() {
	r.mu.Lock()
	state := r.state
	cancel := r.cancel
	group := r.group
	r.state = Stopped
	r.mu.Unlock()

	if state == Stopped {
		return
	}
	if cancel != nil {
		cancel()
	}
	r.playback.Stop()
	if group != nil {
		group.Wait()
	}
	r.input.DrainAll()
}
