package orchestrator

import (
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/effects"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/narrative"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/scene"
)

// OrchestratorBuilderOption is a functional option for configuring an Orchestrator.
type OrchestratorBuilderOption func(*orchestratorImpl)

// WithSampler sets the scroll sampler.
func WithSampler(s motion.Sampler) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.sampler = s
	}
}

// WithChoreographer sets the shot choreographer.
func WithChoreographer(c choreography.Choreographer) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.choreographer = c
	}
}

// WithRig sets the camera rig. The rig is the only writer of its camera.
func WithRig(r camera.Rig) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.rig = r
	}
}

// WithAtmosphere sets the atmosphere. It is the only writer of the fog and rig lights.
func WithAtmosphere(a atmosphere.Atmosphere) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.atmosphere = a
	}
}

// WithField sets the depth-layer field. Stop closes it.
func WithField(f parallax.Field) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.field = f
	}
}

// WithNarrative sets the transition narrative, triggered whenever the current section changes.
func WithNarrative(n narrative.Narrative) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.narrative = n
	}
}

// WithEffects sets the post-process driver.
func WithEffects(e effects.Effects) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.effects = e
	}
}

// WithScene sets the scene whose post-process chain is reported in each frame.
func WithScene(s scene.Scene) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.scene = s
	}
}

// WithPresenter sets the renderer that receives each frame.
func WithPresenter(p Presenter) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.presenter = p
	}
}

// WithPump sets an input source advanced at the top of every pass, such as a scripted replay.
func WithPump(p Pump) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.pump = p
	}
}

// WithMotifs sets the motif objects that idle-spin while visible.
func WithMotifs(motifs ...game_object.GameObject) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		o.motifs = append(o.motifs[:0], motifs...)
	}
}

// WithViewport sets the initial viewport size. Non-positive sizes are ignored.
func WithViewport(width, height int) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}
