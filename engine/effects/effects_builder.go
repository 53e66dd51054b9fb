package effects

import "github.com/Carmen-Shannon/cinescroll/engine/postprocess"

// EffectsBuilderOption is a functional option for configuring Effects.
type EffectsBuilderOption func(*effectsImpl)

// WithComposer sets the post-process chain the channels write. A nil composer disables the writes only.
//
// Parameters:
//   - c: the composer, may be nil
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithComposer(c postprocess.Composer) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.composer = c
	}
}

// WithToggles enables or disables each effect.
//
// Parameters:
//   - t: the toggles
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithToggles(t Toggles) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.toggles = t
	}
}

// WithBloomIntensity sets the resting bloom strength. Negative values are clamped to 0.
//
// Parameters:
//   - v: resting bloom
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithBloomIntensity(v float32) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.bloomIntensity = max(0, v)
	}
}

// WithMotionBlurStrength sets the blur per unit of speed. Negative values are clamped to 0.
//
// Parameters:
//   - v: blur gain
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithMotionBlurStrength(v float32) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.motionBlurRange = max(0, v)
	}
}

// WithFovRange sets the breathing amplitude in degrees. Negative values are clamped to 0.
//
// Parameters:
//   - degrees: peak offset
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithFovRange(degrees float32) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.fovRange = max(0, degrees)
	}
}

// WithExposureRange sets the exposure lost per unit of speed. Negative values are clamped to 0.
//
// Parameters:
//   - v: exposure drop gain
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithExposureRange(v float32) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.exposureRange = max(0, v)
	}
}

// WithChromaticAmount sets the chromatic offset per unit of speed. Negative values are clamped to 0.
//
// Parameters:
//   - v: offset gain
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithChromaticAmount(v float32) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.chromaticAmount = max(0, v)
	}
}

// WithSpeedScale converts sampler velocity units into effect speed. The default of 1 uses velocity as is.
//
// Parameters:
//   - s: multiplier, negative values are clamped to 0
//
// Returns:
//   - EffectsBuilderOption: option function to apply
func WithSpeedScale(s float32) EffectsBuilderOption {
	return func(e *effectsImpl) {
		e.speedScale = max(0, s)
	}
}
