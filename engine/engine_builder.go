package engine

import (
	"github.com/Carmen-Shannon/cinescroll/engine/input"
	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"github.com/Carmen-Shannon/cinescroll/engine/profiler"
	"github.com/Carmen-Shannon/cinescroll/engine/renderer"
	"github.com/Carmen-Shannon/cinescroll/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickPeriod(fps)
	}
}

// WithFixedStep makes every tick report the nominal tick period as its delta time instead of the
// measured wall-clock time, so headless runs are reproducible.
//
// Parameters:
//   - fixed: true to use the nominal period
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFixedStep(fixed bool) EngineBuilderOption {
	return func(e *engine) {
		e.fixedStep = fixed
	}
}

// WithTickBudget quits the engine after n ticks. 0 runs until Quit.
//
// Parameters:
//   - n: the number of ticks to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickBudget(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.tickBudget = n
	}
}

// WithWindow sets the host window whose message loop Run pumps.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithOrchestrator sets the frame pipeline run on every tick.
func WithOrchestrator(o orchestrator.Orchestrator) EngineBuilderOption {
	return func(e *engine) {
		e.orchestrator = o
	}
}

// WithRenderer sets the presenter drawn by the render loop.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithInput sets the listener registry window events are delivered to.
func WithInput(r input.Registry) EngineBuilderOption {
	return func(e *engine) {
		e.registry = r
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = framePeriod(fps)
	}
}
