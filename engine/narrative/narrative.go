package narrative

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
)

// Phase is the state of the transition machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDissolving
	PhaseReflowing
	PhaseAssembling
	PhaseFadingOut
	PhaseFadingIn
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDissolving:
		return "dissolving"
	case PhaseReflowing:
		return "reflowing"
	case PhaseAssembling:
		return "assembling"
	case PhaseFadingOut:
		return "fading-out"
	case PhaseFadingIn:
		return "fading-in"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// A morph and a cross-fade both end after the configured duration. Without a reflow the assemble takes over its
// share, and a reveal with no source skips the dissolve share.
const (
	dissolveShare float32 = 0.4
	reflowShare   float32 = 0.15
	assembleShare float32 = 0.45
	fadeShare     float32 = 0.5

	// scatterRange is the full vertex scatter width at the end of a dissolve.
	scatterRange float32 = 0.5
	// dissolveShrink is how much uniform scale a dissolving object loses.
	dissolveShrink float32 = 0.3
	// assemblePeak is the scale overshoot reached at assemblePeakAt before settling to 1.
	assemblePeak   float32 = 1.04
	assemblePeakAt float32 = 0.8
)

// Crossfader accepts the fog and lighting swells that accompany a transition.
type Crossfader interface {
	CrossfadeFog(color common.Color, duration float32)
	CrossfadeLighting(gains atmosphere.Gains, duration float32)
}

type narrativeImpl struct {
	mu *sync.Mutex

	duration       float32
	particleCount  int
	geometryMorph  bool
	particleReflow bool
	seed           uint64

	crossfader Crossfader
	fogSwell   common.Color
	lightSwell atmosphere.Gains

	rng       *rand.Rand
	scheduler tween.Scheduler
	pool      particlePool

	motifs  []game_object.GameObject
	current int

	phase       Phase
	generation  uint64
	source      game_object.GameObject
	target      game_object.GameObject
	sourceScale mgl32.Vec3
	targetScale mgl32.Vec3

	onPhase func(Phase)
}

// Narrative plays the dissolve, reflow and assemble sequence between two motif objects when the scene state changes.
//
// A new transition requested while one is running wins: the running one is settled to its nearest stable look and
// the new one starts from there, so the shared particle batch is never driven by two transitions.
type Narrative interface {
	// EnterState transitions from the visible motif to the motif at index.
	//
	// Parameters:
	//   - index: the motif to show
	EnterState(index int)

	// Transition moves from source to target. A nil source only assembles the target.
	//
	// Parameters:
	//   - source: the object to dissolve, may be nil
	//   - target: the object to assemble
	Transition(source, target game_object.GameObject)

	// Advance steps the particle flow once and moves the running phase forward by dt.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// Cancel settles a running transition to its nearest stable look and returns to idle.
	Cancel()

	// Phase returns the current phase.
	//
	// Returns:
	//   - Phase: the phase
	Phase() Phase

	// Active reports whether a transition is running.
	//
	// Returns:
	//   - bool: true unless idle
	Active() bool

	// Current returns the index of the motif that is, or is becoming, visible.
	//
	// Returns:
	//   - int: motif index, -1 if none
	Current() int

	// SetMotifs replaces the motif registry used by EnterState.
	//
	// Parameters:
	//   - motifs: objects in scene-state order
	SetMotifs(motifs ...game_object.GameObject)

	// Particles returns a copy of the reflow batch.
	//
	// Returns:
	//   - []Particle: the particles
	Particles() []Particle

	// ParticlesVisible reports whether the reflow batch is shown.
	//
	// Returns:
	//   - bool: true while particles are visible
	ParticlesVisible() bool

	// OnPhase registers a callback fired outside the lock on every phase change.
	//
	// Parameters:
	//   - callback: receives the new phase
	OnPhase(callback func(Phase))
}

var _ Narrative = &narrativeImpl{}

// NewNarrative creates a Narrative.
//
// Parameters:
//   - options: functional options to configure the narrative
//
// Returns:
//   - Narrative: the newly created narrative
func NewNarrative(options ...NarrativeBuilderOption) Narrative {
	n := &narrativeImpl{
		mu:             &sync.Mutex{},
		duration:       1.2,
		particleCount:  150,
		geometryMorph:  true,
		particleReflow: true,
		seed:           1,
		fogSwell:       common.ColorFromHex(0x1b2148),
		lightSwell:     atmosphere.Gains{Key: 1.15, Fill: 0.9, Rim: 1.3},
		scheduler:      tween.NewScheduler(),
		current:        -1,
	}
	for _, option := range options {
		option(n)
	}
	n.rng = rand.New(rand.NewPCG(n.seed, n.seed^0x9e3779b97f4a7c15))
	if n.particleReflow {
		n.pool = newParticlePool(n.particleCount, n.rng)
	}
	if n.current < 0 && len(n.motifs) > 0 {
		n.current = 0
	}
	return n
}

func (n *narrativeImpl) EnterState(index int) {
	n.mu.Lock()
	if index < 0 || index >= len(n.motifs) {
		n.mu.Unlock()
		log.Printf("[Narrative] ignoring state %d, %d motifs registered", index, len(n.motifs))
		return
	}
	var source game_object.GameObject
	if n.phase != PhaseIdle {
		n.settle()
	}
	if n.current >= 0 && n.current < len(n.motifs) {
		source = n.motifs[n.current]
	}
	target := n.motifs[index]
	n.mu.Unlock()

	n.Transition(source, target)
}

func (n *narrativeImpl) Transition(source, target game_object.GameObject) {
	if target == nil {
		return
	}

	n.mu.Lock()
	if n.phase != PhaseIdle {
		n.settle()
	}
	n.generation++
	n.current = n.indexOf(target)
	if source == target {
		show(target, target.Scale())
		phase, cb := n.phase, n.onPhase
		n.mu.Unlock()
		if cb != nil {
			cb(phase)
		}
		return
	}

	n.source, n.target = source, target
	if source != nil {
		n.sourceScale = source.Scale()
	}
	n.targetScale = target.Scale()

	var first tween.Tween
	switch {
	case !n.geometryMorph:
		first = n.beginFadeOut()
	case source == nil:
		first = n.beginAssemble(reflowShare + assembleShare)
	default:
		first = n.beginDissolve()
	}
	phase, cb := n.phase, n.onPhase
	crossfader, fogSwell, lightSwell, duration := n.crossfader, n.fogSwell, n.lightSwell, n.duration
	n.mu.Unlock()

	n.scheduler.Add(first)
	if crossfader != nil {
		crossfader.CrossfadeFog(fogSwell, duration)
		crossfader.CrossfadeLighting(lightSwell, duration)
	}
	if cb != nil {
		cb(phase)
	}
}

func (n *narrativeImpl) Advance(dt float32) {
	n.mu.Lock()
	n.pool.step(dt)
	n.mu.Unlock()

	n.scheduler.Advance(dt)
}

func (n *narrativeImpl) Cancel() {
	n.mu.Lock()
	if n.phase == PhaseIdle {
		n.mu.Unlock()
		return
	}
	n.settle()
	cb := n.onPhase
	n.mu.Unlock()

	if cb != nil {
		cb(PhaseIdle)
	}
}

func (n *narrativeImpl) Phase() Phase {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.phase
}

func (n *narrativeImpl) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.phase != PhaseIdle
}

func (n *narrativeImpl) Current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *narrativeImpl) SetMotifs(motifs ...game_object.GameObject) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.motifs = append([]game_object.GameObject(nil), motifs...)
	if n.current >= len(n.motifs) || (n.current < 0 && len(n.motifs) > 0) {
		n.current = 0
	}
	if len(n.motifs) == 0 {
		n.current = -1
	}
}

func (n *narrativeImpl) Particles() []Particle {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.snapshot()
}

func (n *narrativeImpl) ParticlesVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.visible
}

func (n *narrativeImpl) OnPhase(callback func(Phase)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onPhase = callback
}

// settle stops the running transition and snaps both objects to the nearest stable look.
// Before the target starts to appear the source is restored; afterwards the target is completed.
// Caller must hold the mutex.
func (n *narrativeImpl) settle() {
	n.generation++
	n.scheduler.Clear()

	switch n.phase {
	case PhaseDissolving, PhaseFadingOut:
		show(n.source, n.sourceScale)
		hide(n.target, n.targetScale)
		n.current = n.indexOf(n.source)
	case PhaseReflowing, PhaseAssembling, PhaseFadingIn:
		hide(n.source, n.sourceScale)
		show(n.target, n.targetScale)
		n.current = n.indexOf(n.target)
	}
	n.pool.hide()
	n.phase = PhaseIdle
	n.source, n.target = nil, nil
}

// phaseTween builds a tween that drives one phase of the current generation.
// complete runs under the mutex and returns the next phase's tween, or nil at the end.
// Caller must hold the mutex.
func (n *narrativeImpl) phaseTween(seconds float32, ease common.EaseFunc, update func(p float32), complete func() tween.Tween) tween.Tween {
	gen := n.generation
	return tween.NewTween(
		tween.WithDuration(seconds),
		tween.WithEase(ease),
		tween.OnUpdate(func(p float32) {
			n.mu.Lock()
			defer n.mu.Unlock()
			if n.generation == gen && update != nil {
				update(p)
			}
		}),
		tween.OnComplete(func() {
			n.mu.Lock()
			if n.generation != gen {
				n.mu.Unlock()
				return
			}
			next := complete()
			phase, cb := n.phase, n.onPhase
			n.mu.Unlock()

			if next != nil {
				n.scheduler.Add(next)
			}
			if cb != nil {
				cb(phase)
			}
		}),
	)
}

// Caller must hold the mutex.
func (n *narrativeImpl) beginDissolve() tween.Tween {
	n.phase = PhaseDissolving
	return n.phaseTween(n.duration*dissolveShare, common.Power2In,
		func(p float32) { n.dissolve(p) },
		func() tween.Tween {
			if n.particleReflow && len(n.pool.particles) > 0 {
				return n.beginReflow()
			}
			return n.beginAssemble(reflowShare + assembleShare)
		})
}

// Caller must hold the mutex.
func (n *narrativeImpl) beginReflow() tween.Tween {
	n.phase = PhaseReflowing
	from := mgl32.Vec3{}
	if n.source != nil {
		from = n.source.Position()
	}
	n.pool.spawn(from, n.target.Position(), n.rng)
	return n.phaseTween(n.duration*reflowShare, common.Linear, nil, func() tween.Tween {
		return n.beginAssemble(assembleShare)
	})
}

// Caller must hold the mutex.
func (n *narrativeImpl) beginAssemble(share float32) tween.Tween {
	n.phase = PhaseAssembling
	n.target.SetEnabled(true)
	n.assemble(0)
	return n.phaseTween(n.duration*share, common.Power2Out,
		func(p float32) { n.assemble(p) },
		n.finish)
}

// Caller must hold the mutex.
func (n *narrativeImpl) beginFadeOut() tween.Tween {
	n.phase = PhaseFadingOut
	return n.phaseTween(n.duration*fadeShare, common.Power2In,
		func(p float32) {
			if n.source != nil {
				n.source.SetOpacity(1 - p)
			}
		},
		n.beginFadeIn)
}

// Caller must hold the mutex.
func (n *narrativeImpl) beginFadeIn() tween.Tween {
	n.phase = PhaseFadingIn
	n.target.SetEnabled(true)
	n.target.SetOpacity(0)
	return n.phaseTween(n.duration*fadeShare, common.Power2Out,
		func(p float32) { n.target.SetOpacity(p) },
		n.finish)
}

// Caller must hold the mutex.
func (n *narrativeImpl) finish() tween.Tween {
	hide(n.source, n.sourceScale)
	show(n.target, n.targetScale)
	n.pool.hide()
	n.phase = PhaseIdle
	n.source, n.target = nil, nil
	return nil
}

// dissolve scatters, fades and shrinks the source.
// Caller must hold the mutex.
func (n *narrativeImpl) dissolve(p float32) {
	if n.source == nil {
		return
	}
	n.source.SetOpacity(1 - p)
	s := n.sourceScale.Mul(1 - p*dissolveShrink)
	n.source.SetScale(s[0], s[1], s[2])
	n.scatter(n.source, p*scatterRange)
}

// assemble gathers, fades in and grows the target past full size before it settles.
// Caller must hold the mutex.
func (n *narrativeImpl) assemble(p float32) {
	n.target.SetOpacity(p)
	s := n.targetScale.Mul(assembleScale(p))
	n.target.SetScale(s[0], s[1], s[2])
	if p >= 1 {
		n.target.RestoreVertices()
		return
	}
	n.scatter(n.target, (1-p)*scatterRange)
}

// Caller must hold the mutex.
func (n *narrativeImpl) scatter(obj game_object.GameObject, amount float32) {
	obj.DisplaceVertices(func(_ int, original mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{
			original[0] + jitter(n.rng, amount),
			original[1] + jitter(n.rng, amount),
			original[2] + jitter(n.rng, amount),
		}
	})
}

// Caller must hold the mutex.
func (n *narrativeImpl) indexOf(obj game_object.GameObject) int {
	for i, m := range n.motifs {
		if m == obj {
			return i
		}
	}
	return -1
}

// assembleScale rises from 1 - dissolveShrink to assemblePeak and eases back to 1.
func assembleScale(p float32) float32 {
	if p < assemblePeakAt {
		return common.Lerp(1-dissolveShrink, assemblePeak, p/assemblePeakAt)
	}
	return common.Lerp(assemblePeak, 1, (p-assemblePeakAt)/(1-assemblePeakAt))
}

func show(obj game_object.GameObject, scale mgl32.Vec3) {
	if obj == nil {
		return
	}
	obj.RestoreVertices()
	obj.SetScale(scale[0], scale[1], scale[2])
	obj.SetOpacity(1)
	obj.SetEnabled(true)
}

func hide(obj game_object.GameObject, scale mgl32.Vec3) {
	if obj == nil {
		return
	}
	obj.SetEnabled(false)
	obj.RestoreVertices()
	obj.SetScale(scale[0], scale[1], scale[2])
	obj.SetOpacity(1)
}
