package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/cinescroll/engine/input"
	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"github.com/Carmen-Shannon/cinescroll/engine/profiler"
	"github.com/Carmen-Shannon/cinescroll/engine/renderer"
	"github.com/Carmen-Shannon/cinescroll/engine/window"
	"golang.org/x/sync/errgroup"
)

// ErrAlreadyRun is returned by Run when the engine is running or has already shut down.
var ErrAlreadyRun = errors.New("engine: Run may only be called once")

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	started atomic.Bool
	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	renderDone  chan struct{}

	window       window.Window
	orchestrator orchestrator.Orchestrator
	renderer     renderer.Renderer
	registry     input.Registry

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	fixedStep      bool
	tickBudget     uint64
	ticks          atomic.Uint64

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives the frame pipeline. A fixed-rate tick loop runs one orchestrator pass per tick, an
// optional render loop draws the last presented frame, and on a windowed host the calling goroutine
// pumps window messages.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Orchestrator returns the frame pipeline driven by the tick loop.
	//
	// Returns:
	//   - orchestrator.Orchestrator: the pipeline, or nil when none was configured
	Orchestrator() orchestrator.Orchestrator

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ProfilingEnabled reports whether the profiler is collecting.
	ProfilingEnabled() bool

	// SetTickRate sets the engine tick rate in ticks per second.
	// If the engine is running, the change takes effect immediately.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the configured tick period.
	TickRate() time.Duration

	// SetTickCallback registers the function called after each pipeline pass.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs one pipeline pass synchronously and counts it as a tick.
	//
	// Parameters:
	//   - dt: the delta time in seconds
	//
	// Returns:
	//   - orchestrator.Frame: the frame produced, or the zero frame without an orchestrator
	Step(dt float32) orchestrator.Frame

	// Ticks returns the number of ticks run so far.
	Ticks() uint64

	// Run starts the engine and blocks until Quit, the tick budget is spent, the window closes or the
	// context is cancelled. On the way out the orchestrator is stopped and the renderer closed.
	//
	// Parameters:
	//   - ctx: cancelling it shuts the engine down
	//
	// Returns:
	//   - error: the first loop failure, or ErrAlreadyRun
	Run(ctx context.Context) error

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been signalled.
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When both a window and an input registry are supplied the window events are bound to the registry,
// the orchestrator is attached to it and the renderer follows resize events.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		renderDone:      make(chan struct{}),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.registry != nil {
		if e.window != nil {
			input.Bind(e.window, e.registry)
		}
		if e.orchestrator != nil {
			e.orchestrator.Attach(e.registry)
			if e.window != nil {
				e.orchestrator.Resize(e.window.Width(), e.window.Height())
			}
		}
		if e.renderer != nil {
			rnd := e.renderer
			e.registry.Listen(input.KindResize, func(ev input.Event) {
				rnd.Resize(ev.Width, ev.Height)
			})
		}
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Orchestrator() orchestrator.Orchestrator {
	return e.orchestrator
}

func (e *engine) Run(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}
	e.running.Store(true)
	defer e.running.Store(false)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(e.handleEngine)
	if e.renderer != nil || e.renderCallback != nil {
		g.Go(e.handleRender)
	} else {
		close(e.renderDone)
	}
	g.Go(func() error {
		return e.handleQuit(gctx)
	})

	if e.window != nil {
		// glfw must be closed from the goroutine that pumps it, and only after the renderer let go of the surface.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.renderDone:
				if e.quitting() {
					_ = e.window.Close()
				}
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	}

	err := g.Wait()
	if e.orchestrator != nil {
		e.orchestrator.Stop()
	}
	if e.window != nil && e.window.IsRunning() {
		_ = e.window.Close()
	}
	if err != nil {
		log.Printf("[Engine] stopped after %d ticks: %v", e.ticks.Load(), err)
		return err
	}
	log.Printf("[Engine] stopped after %d ticks", e.ticks.Load())
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func (e *engine) Step(dt float32) orchestrator.Frame {
	var f orchestrator.Frame
	if e.orchestrator != nil {
		f = e.orchestrator.Frame(dt)
	}

	e.mu.Lock()
	cb := e.tickCallback
	e.mu.Unlock()
	if cb != nil {
		cb(dt)
	}

	if n := e.ticks.Add(1); e.tickBudget > 0 && n >= e.tickBudget {
		e.signalQuit()
	}
	return f
}

func (e *engine) Ticks() uint64 {
	return e.ticks.Load()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Runs one Step per tick at the configured rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick goroutine recovered from panic: %v", r)
			err = fmt.Errorf("tick loop: %v", r)
			e.signalQuit()
		}
	}()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()
	profileTicks := e.renderer == nil && e.renderCallback == nil

	for {
		select {
		case <-e.quitChannel:
			return nil
		case <-ticker.C:
			// select does not prefer the quit case when both are ready
			if e.quitting() {
				return nil
			}
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			if e.fixedStep {
				dt = float32(rate.Seconds())
			}

			e.Step(dt)

			if profileTicks && e.profilingEnabled.Load() {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			rate = newRate
		}
	}
}

// handleRender runs the (optionally frame-limited) render loop in its own goroutine.
// Draws the last presented frame, then runs the render callback and the profiler.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() (err error) {
	defer close(e.renderDone)
	defer func() {
		if e.renderer != nil {
			e.renderer.Close()
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			err = fmt.Errorf("render loop: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()
	failing := false

	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.renderer != nil {
				if rerr := e.renderer.Render(); rerr != nil {
					// A lost or outdated surface recovers on the next resize; log the first failure only.
					if !failing {
						log.Printf("[Engine] render failed: %v", rerr)
					}
					failing = true
				} else {
					failing = false
				}
			}

			e.mu.Lock()
			cb := e.renderCallback
			limit := e.renderFrameLimit
			e.mu.Unlock()

			if cb != nil {
				cb(dt)
			}

			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if limit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := limit - elapsed; remaining > 0 {
					select {
					case <-e.quitChannel:
						return nil
					case <-time.After(remaining):
					}
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed or the context is cancelled.
func (e *engine) handleQuit(ctx context.Context) error {
	select {
	case <-ctx.Done():
		e.signalQuit()
	case <-e.quitChannel:
	}
	return nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) ProfilingEnabled() bool {
	return e.profilingEnabled.Load()
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickPeriod(fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	}
}

func (e *engine) TickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engineTickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
// Only takes effect on the render loop if a renderer or render callback was present when Run started.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = framePeriod(fps)
}

// tickPeriod converts a rate to a ticker period, defaulting to 60Hz.
func tickPeriod(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// framePeriod converts a frame cap to a minimum frame duration; 0 means uncapped.
func framePeriod(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
