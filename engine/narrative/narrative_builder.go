package narrative

import (
	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
)

// NarrativeBuilderOption is a functional option for configuring a Narrative.
type NarrativeBuilderOption func(*narrativeImpl)

// WithDuration sets the full transition length. Non-positive values keep the default.
//
// Parameters:
//   - seconds: total duration
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithDuration(seconds float32) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		if seconds > 0 {
			n.duration = seconds
		}
	}
}

// WithParticleCount sets the size of the reflow batch. Negative values are treated as 0.
//
// Parameters:
//   - count: number of particles
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithParticleCount(count int) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.particleCount = max(0, count)
	}
}

// WithGeometryMorph toggles the dissolve/assemble path. When disabled transitions cross-fade.
//
// Parameters:
//   - enabled: true for the morph path
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithGeometryMorph(enabled bool) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.geometryMorph = enabled
	}
}

// WithParticleReflow toggles the particle batch between dissolve and assemble.
//
// Parameters:
//   - enabled: true to spawn particles
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithParticleReflow(enabled bool) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.particleReflow = enabled
	}
}

// WithSeed seeds the scatter and particle generator.
//
// Parameters:
//   - seed: generator seed
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithSeed(seed uint64) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.seed = seed
	}
}

// WithCrossfader sets the receiver of the fog and lighting swells, usually the scene atmosphere.
//
// Parameters:
//   - c: the crossfader, may be nil
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithCrossfader(c Crossfader) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.crossfader = c
	}
}

// WithFogSwell sets the fog color at the peak of a transition.
//
// Parameters:
//   - color: the peak color
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithFogSwell(color common.Color) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.fogSwell = color
	}
}

// WithLightingSwell sets the key/fill/rim gains at the peak of a transition.
//
// Parameters:
//   - gains: the peak gains
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithLightingSwell(gains atmosphere.Gains) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.lightSwell = gains
	}
}

// WithMotifs registers the objects EnterState switches between, in scene-state order.
//
// Parameters:
//   - motifs: the motif objects
//
// Returns:
//   - NarrativeBuilderOption: option function to apply
func WithMotifs(motifs ...game_object.GameObject) NarrativeBuilderOption {
	return func(n *narrativeImpl) {
		n.motifs = append([]game_object.GameObject(nil), motifs...)
	}
}
