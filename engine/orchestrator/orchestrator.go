package orchestrator

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/effects"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/input"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/narrative"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// keyStep is the scroll distance of one arrow-key press.
	keyStep float32 = 40
	// motifSpin is the idle yaw rate of the visible motif in radians per second.
	motifSpin float32 = 0.2
	// motifTilt is the idle pitch rate of the visible motif in radians per second.
	motifTilt float32 = 0.12
	// motifPhaseGrowth is the extra scale a motif gains at artifact phase 1.
	motifPhaseGrowth float32 = 0.24
	// motifPhaseRecede is how far a motif moves away from the camera at artifact phase 1.
	motifPhaseRecede float32 = 0.7
	// motifPhaseLift is the vertical travel of a motif across the artifact phase.
	motifPhaseLift float32 = 0.18
)

// motifRest is a motif's authored transform, captured when the pipeline is built.
type motifRest struct {
	position mgl32.Vec3
	scale    mgl32.Vec3
}

type orchestratorImpl struct {
	// frameMu serializes pipeline passes.
	frameMu *sync.Mutex
	// mu guards the fields below that input handlers and readers share with the pipeline.
	mu *sync.Mutex

	sampler       motion.Sampler
	choreographer choreography.Choreographer
	rig           camera.Rig
	atmosphere    atmosphere.Atmosphere
	field         parallax.Field
	narrative     narrative.Narrative
	effects       effects.Effects
	scene         scene.Scene
	presenter     Presenter
	pump          Pump
	motifs        []game_object.GameObject
	motifRests    []motifRest

	width, height int
	registry      input.Registry
	releases      []func()

	index     uint64
	time      float32
	lastState int
	last      Frame
	failures  [stageCount]uint64
	stopped   bool
	stopOnce  sync.Once

	onFrame func(Frame)
}

// Orchestrator runs the fixed per-frame pipeline:
// input, sampler, choreography, effects, rig, atmosphere, layers, narrative, render.
//
// Scroll state is sampled once at the top of a pass and every later stage reads that sample. Each stage is
// isolated: a panic is logged and counted, the rest of the pass still runs, and the next pass is unaffected.
// Components left unset are skipped.
type Orchestrator interface {
	// Frame runs one pipeline pass. After Stop it returns the last frame without running.
	//
	// Parameters:
	//   - dt: seconds since the previous pass, floored to a small positive epsilon
	//
	// Returns:
	//   - Frame: what this pass produced
	Frame(dt float32) Frame

	// Attach registers the pipeline's input handlers on r. The handlers are removed on Stop.
	//
	// Parameters:
	//   - r: the registry that receives host events
	Attach(r input.Registry)

	// Resize updates the viewport, re-clamps the scroll bounds immediately and updates the camera aspect.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	Resize(width, height int)

	// Bounds returns the scroll bounds for the current viewport.
	//
	// Returns:
	//   - motion.Bounds: the bounds
	Bounds() motion.Bounds

	// SeekSection moves the scroll target to the start of a section.
	//
	// Parameters:
	//   - index: the section, clamped into range
	//   - immediate: jump without easing
	SeekSection(index int, immediate bool)

	// Last returns the most recent frame.
	//
	// Returns:
	//   - Frame: the frame
	Last() Frame

	// Failures returns how many passes a stage has panicked in.
	//
	// Parameters:
	//   - stage: the stage
	//
	// Returns:
	//   - uint64: the count
	Failures(stage Stage) uint64

	// OnFrame registers a callback fired after every pass, outside the pipeline lock. Pass nil to clear it.
	//
	// Parameters:
	//   - callback: receives the frame
	OnFrame(callback func(Frame))

	// Stop ends the pipeline: listeners are released, a running transition is settled and the depth-layer
	// workers are stopped. Safe to call more than once.
	Stop()

	// Stopped reports whether Stop has run.
	Stopped() bool
}

var _ Orchestrator = &orchestratorImpl{}

// NewOrchestrator creates an Orchestrator. A sampler and a choreographer are created with defaults when not
// supplied; every other component is optional.
//
// Parameters:
//   - options: functional options to configure the orchestrator
//
// Returns:
//   - Orchestrator: the newly created orchestrator
func NewOrchestrator(options ...OrchestratorBuilderOption) Orchestrator {
	o := &orchestratorImpl{
		frameMu:   &sync.Mutex{},
		mu:        &sync.Mutex{},
		width:     1280,
		height:    720,
		lastState: -1,
	}
	for _, option := range options {
		option(o)
	}
	if o.choreographer == nil {
		o.choreographer = choreography.NewChoreographer()
	}
	if o.sampler == nil {
		o.sampler = motion.NewSampler(motion.WithBoundsProvider(o.Bounds))
	}
	o.motifRests = make([]motifRest, len(o.motifs))
	for i, m := range o.motifs {
		o.motifRests[i] = motifRest{position: m.Position(), scale: m.Scale()}
	}
	o.Resize(o.width, o.height)
	return o
}

func (o *orchestratorImpl) Frame(dt float32) Frame {
	o.frameMu.Lock()

	o.mu.Lock()
	if o.stopped {
		last := o.last
		o.mu.Unlock()
		o.frameMu.Unlock()
		return last
	}
	o.index++
	o.mu.Unlock()

	dt = common.PositiveDelta(dt)
	o.time += dt
	f := Frame{Index: o.index, Time: o.time, Dt: dt, State: -1}

	o.run(&f, StageInput, func() {
		if o.pump != nil {
			o.pump.Advance(dt)
		}
	})
	o.run(&f, StageSampler, func() {
		f.Scroll = o.sampler.Tick(dt)
		f.Progress = o.sampler.Progress()
	})
	o.run(&f, StageChoreography, func() {
		pose := o.choreographer.Update(f.Progress, dt)
		f.Channels = pose.Channels
		f.State = o.choreographer.CurrentState()
		if o.rig != nil {
			o.rig.SetBasePose(pose.Position, pose.Orientation)
		}
	})
	o.run(&f, StageEffects, func() {
		if o.effects == nil {
			return
		}
		o.effects.Update(f.Scroll.Velocity, f.Progress)
		f.Effects = o.effects.State()
		if o.rig != nil {
			o.rig.SetFovOffset(o.effects.FovOffset())
		}
	})
	o.run(&f, StageRig, func() {
		if o.rig == nil {
			return
		}
		o.rig.Update(f.Progress, f.Scroll.Velocity, dt)
		cam := o.rig.Camera()
		pos, q := cam.Position(), cam.Orientation()
		f.Camera = CameraPose{
			Position:    [3]float32{pos[0], pos[1], pos[2]},
			Orientation: [4]float32{q.V[0], q.V[1], q.V[2], q.W},
			Fov:         cam.Fov(),
		}
	})
	o.run(&f, StageAtmosphere, func() {
		if o.atmosphere == nil {
			return
		}
		o.atmosphere.Advance(dt)
		if o.choreographer.Mode() == choreography.ModeTimeline {
			f.Atmosphere = o.atmosphere.Update(f.Channels.LightMix, f.Channels.TransitionMix)
		} else {
			f.Atmosphere = o.atmosphere.Update(f.Progress, f.Progress)
		}
	})
	o.run(&f, StageLayers, func() {
		if o.field == nil {
			return
		}
		o.field.SetMotifDepth(f.Channels.MotifDepth)
		o.field.Advance(dt)
		o.field.Update(f.Scroll.Current, f.Scroll.Velocity)
	})
	o.run(&f, StageNarrative, func() {
		if o.narrative != nil {
			if f.State >= 0 && f.State != o.lastState {
				if o.lastState >= 0 || f.State != o.narrative.Current() {
					o.narrative.EnterState(f.State)
				}
				o.lastState = f.State
			}
			o.narrative.Advance(dt)
			f.Phase = o.narrative.Phase().String()
			if o.narrative.ParticlesVisible() {
				f.Particles = len(o.narrative.Particles())
			}
		}
		o.poseMotifs(&f)
	})
	o.run(&f, StageRender, func() {
		if o.scene != nil {
			if c := o.scene.Composer(); c != nil {
				f.Post = c.Params()
			}
		}
		if o.presenter != nil {
			o.presenter.Present(f)
		}
	})

	o.mu.Lock()
	o.last = f
	callback := o.onFrame
	o.mu.Unlock()
	o.frameMu.Unlock()

	if callback != nil {
		callback(f)
	}
	return f
}

func (o *orchestratorImpl) Attach(r input.Registry) {
	if r == nil {
		return
	}
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.registry = r
	o.mu.Unlock()

	releases := []func(){
		r.Listen(input.KindWheel, func(ev input.Event) {
			mode := motion.WheelModePixel
			if ev.Lines {
				mode = motion.WheelModeLine
			}
			o.sampler.IngestWheel(ev.DeltaY, mode)
		}),
		r.Listen(input.KindTouchStart, func(ev input.Event) {
			o.sampler.IngestTouchStart(motion.Point{X: ev.X, Y: ev.Y})
		}),
		r.Listen(input.KindTouchMove, func(ev input.Event) {
			o.sampler.IngestTouchMove(motion.Point{X: ev.X, Y: ev.Y})
		}),
		r.Listen(input.KindTouchEnd, func(input.Event) { o.sampler.IngestTouchEnd() }),
		r.Listen(input.KindTouchCancel, func(input.Event) { o.sampler.IngestTouchEnd() }),
		r.Listen(input.KindResize, func(ev input.Event) { o.Resize(ev.Width, ev.Height) }),
		r.Listen(input.KindPointer, func(ev input.Event) {
			if o.rig != nil {
				o.rig.SetPointer(ev.X, ev.Y)
			}
			if o.atmosphere != nil {
				o.atmosphere.SetPointer(ev.X, ev.Y)
			}
		}),
		r.Listen(input.KindKey, func(ev input.Event) { o.key(ev.Key) }),
	}

	o.mu.Lock()
	o.releases = append(o.releases, releases...)
	o.mu.Unlock()
}

func (o *orchestratorImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	o.mu.Lock()
	o.width, o.height = width, height
	o.mu.Unlock()

	b := o.Bounds()
	if o.sampler != nil {
		if err := o.sampler.SetBounds(b); err != nil {
			log.Printf("[Orchestrator] rejected bounds %+v: %v", b, err)
		}
	}
	if o.field != nil {
		o.field.SetExtent(b.Min, b.Max)
	}
	if o.rig != nil {
		o.rig.Camera().SetAspect(float32(width) / float32(height))
	}
}

func (o *orchestratorImpl) Bounds() motion.Bounds {
	o.mu.Lock()
	height := o.height
	o.mu.Unlock()

	sections := 1
	if o.choreographer != nil {
		sections = max(o.choreographer.SectionCount(), 1)
	}
	return motion.Bounds{Min: 0, Max: float32((sections - 1) * height)}
}

func (o *orchestratorImpl) SeekSection(index int, immediate bool) {
	sections := max(o.choreographer.SectionCount(), 1)
	index = min(max(index, 0), sections-1)

	o.mu.Lock()
	height := o.height
	o.mu.Unlock()
	o.sampler.Seek(float32(index*height), immediate)
}

func (o *orchestratorImpl) Last() Frame {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

func (o *orchestratorImpl) Failures(stage Stage) uint64 {
	if stage < 0 || stage >= stageCount {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failures[stage]
}

func (o *orchestratorImpl) OnFrame(callback func(Frame)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onFrame = callback
}

func (o *orchestratorImpl) Stop() {
	o.stopOnce.Do(func() {
		o.mu.Lock()
		o.stopped = true
		releases := o.releases
		o.releases = nil
		registry := o.registry
		o.mu.Unlock()

		for _, release := range releases {
			release()
		}
		if registry != nil {
			registry.Release()
		}

		// Wait for a pass in flight before touching the components it uses.
		o.frameMu.Lock()
		defer o.frameMu.Unlock()
		if o.narrative != nil {
			o.narrative.Cancel()
		}
		if o.field != nil {
			o.field.Close()
		}
	})
}

func (o *orchestratorImpl) Stopped() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stopped
}

// run executes one stage, recovering and counting a panic so the remaining stages still run.
// Caller must hold frameMu.
func (o *orchestratorImpl) run(f *Frame, stage Stage, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Orchestrator] recovered from panic in %s stage (frame %d): %v", stage, f.Index, r)
			o.mu.Lock()
			o.failures[stage]++
			o.mu.Unlock()
			f.Failed = append(f.Failed, stage.String())
		}
	}()
	fn()
}

// key maps navigation keys onto the sampler.
func (o *orchestratorImpl) key(code uint32) {
	o.mu.Lock()
	height := float32(o.height)
	o.mu.Unlock()

	target := o.sampler.State().Target
	switch code {
	case common.KeyDown:
		o.sampler.IngestWheel(keyStep, motion.WheelModePixel)
	case common.KeyUp:
		o.sampler.IngestWheel(-keyStep, motion.WheelModePixel)
	case common.KeyPageDown, common.KeySpace:
		o.sampler.Seek(target+height, false)
	case common.KeyPageUp:
		o.sampler.Seek(target-height, false)
	case common.KeyHome:
		o.sampler.Seek(o.Bounds().Min, false)
	case common.KeyEnd:
		o.sampler.Seek(o.Bounds().Max, false)
	default:
		if code >= common.Key1 && code <= common.Key9 {
			o.SeekSection(int(code-common.Key1), false)
		}
	}
}

// poseMotifs applies the artifact phase and motif scale channels to every motif and spins the visible one.
// In scroll mode the phase follows progress. Hidden motifs are posed too, so a transition that reveals one
// captures an up-to-date scale. Scale is left to the narrative while a transition runs.
func (o *orchestratorImpl) poseMotifs(f *Frame) {
	phase := f.Progress
	if o.choreographer.Mode() == choreography.ModeTimeline {
		phase = f.Channels.ArtifactPhase
	}
	motifScale := f.Channels.MotifScale
	if motifScale <= 0 {
		motifScale = 1
	}
	transitioning := o.narrative != nil && o.narrative.Active()

	for i, m := range o.motifs {
		rest := o.motifRests[i]
		m.SetPosition(
			rest.position[0],
			rest.position[1]+(phase-0.5)*motifPhaseLift,
			rest.position[2]-phase*motifPhaseRecede,
		)
		if !transitioning {
			s := rest.scale.Mul(motifScale * (1 + phase*motifPhaseGrowth))
			m.SetScale(s[0], s[1], s[2])
		}
		if m.Enabled() {
			m.SetRotation(o.time*motifTilt, phase*common.Tau+o.time*motifSpin, 0)
		}
	}
}
