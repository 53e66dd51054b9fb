package camera

import "github.com/go-gl/mathgl/mgl32"

// RigBuilderOption is a functional option for configuring a Rig.
// Negative magnitudes are clamped to 0.
type RigBuilderOption func(*rigImpl)

// WithIntensity scales the arc lateral/vertical terms, the shake and the rotation drift.
//
// Parameters:
//   - intensity: overall motion multiplier
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithIntensity(intensity float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.intensity = max(0, intensity)
	}
}

// WithDepthRange sets how far the arc pushes the camera along Z at mid-progress.
//
// Parameters:
//   - depth: world units
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithDepthRange(depth float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.depthRange = max(0, depth)
	}
}

// WithArcRadius sets the lateral arc amplitude. The vertical drift uses half of it.
//
// Parameters:
//   - radius: world units
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithArcRadius(radius float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.arcRadius = max(0, radius)
	}
}

// WithRotationDrift sets radians of yaw per unit of smoothed velocity.
//
// Parameters:
//   - drift: drift gain
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithRotationDrift(drift float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.rotationDrift = max(0, drift)
	}
}

// WithShakeIntensity sets the micro shake amplitude in world units.
//
// Parameters:
//   - shake: shake amplitude
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithShakeIntensity(shake float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.shakeIntensity = max(0, shake)
	}
}

// WithNoiseScale sets how fast the shake walks through noise space per second.
//
// Parameters:
//   - scale: noise units per second
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithNoiseScale(scale float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.noiseScale = max(0, scale)
	}
}

// WithFovBreathing sets the FOV breathing range in degrees.
//
// Parameters:
//   - degrees: breathing range
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithFovBreathing(degrees float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.fovBreathing = max(0, degrees)
	}
}

// WithPointerInfluence sets the pointer parallax gains.
//
// Parameters:
//   - position: world units of offset at the screen edge
//   - rotation: radians of pitch at the screen edge (yaw uses 1.2x, roll 0.2x)
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithPointerInfluence(position, rotation float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.pointerPosition = max(0, position)
		r.pointerRotation = max(0, rotation)
	}
}

// WithPointerSmoothing sets the per-update factor the pointer eases toward its target.
//
// Parameters:
//   - factor: smoothing factor, clamped to [0, 1]
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithPointerSmoothing(factor float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.pointerSmoothing = max(0, min(1, factor))
	}
}

// WithSeed derives the noise offset from a seed so the shake path is reproducible.
//
// Parameters:
//   - seed: generator seed
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithSeed(seed uint64) RigBuilderOption {
	return func(r *rigImpl) {
		r.seed = seed
		r.seeded = true
		r.offsetFixed = false
	}
}

// WithNoiseOffset fixes the point in noise space the shake starts from.
//
// Parameters:
//   - x, y: noise-space offset
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithNoiseOffset(x, y float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.noiseOffset = mgl32.Vec2{x, y}
		r.offsetFixed = true
		r.seeded = false
	}
}
