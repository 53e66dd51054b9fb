package motion

import (
	"time"

	"github.com/Carmen-Shannon/cinescroll/common"
)

// SamplerBuilderOption is a functional option for configuring a Sampler.
// Options clamp out-of-range values instead of rejecting them.
type SamplerBuilderOption func(*samplerImpl)

// WithLerp sets the smoothing factor fed into the easing curve each frame.
//
// Parameters:
//   - lerp: smoothing factor, clamped to [0, 1]
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithLerp(lerp float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.lerp = common.Clamp01(lerp)
	}
}

// WithWheelMultiplier scales every wheel delta.
//
// Parameters:
//   - multiplier: wheel speed multiplier, negative values clamp to 0
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithWheelMultiplier(multiplier float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.wheelMultiplier = max(0, multiplier)
	}
}

// WithTouchMultiplier scales touch drag deltas and the release impulse.
//
// Parameters:
//   - multiplier: touch speed multiplier, negative values clamp to 0
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithTouchMultiplier(multiplier float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.touchMultiplier = max(0, multiplier)
	}
}

// WithLineModeMultiplier sets the normalization factor for line-mode wheel deltas.
//
// Parameters:
//   - multiplier: scroll units per line, negative values clamp to 0
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithLineModeMultiplier(multiplier float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.lineModeMultiplier = max(0, multiplier)
	}
}

// WithTouchInertia sets the per-frame momentum decay factor.
//
// Parameters:
//   - inertia: decay factor, clamped to [0, 0.999]
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithTouchInertia(inertia float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.touchInertia = common.Clamp(inertia, 0, 0.999)
	}
}

// WithImpulseGain sets the gain applied to release velocity when seeding momentum.
//
// Parameters:
//   - gain: impulse gain, negative values clamp to 0
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithImpulseGain(gain float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.impulseGain = max(0, gain)
	}
}

// WithMinTouchDelta sets the floor applied to the time between touch samples.
//
// Parameters:
//   - d: minimum duration, values below one microsecond clamp to one microsecond
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithMinTouchDelta(d time.Duration) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.minTouchDelta = max(time.Microsecond, d)
	}
}

// WithAxis selects which touch axis drives the position.
//
// Parameters:
//   - axis: AxisVertical or AxisHorizontal
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithAxis(axis Axis) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.axis = axis
	}
}

// WithSmooth enables or disables easing. When disabled, Tick copies target into current.
//
// Parameters:
//   - smooth: true to ease toward the target
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithSmooth(smooth bool) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.smooth = smooth
	}
}

// WithSmoothTouch enables or disables touch-driven targets and release momentum.
//
// Parameters:
//   - smoothTouch: true to let touch drags move the target
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithSmoothTouch(smoothTouch bool) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.smoothTouch = smoothTouch
	}
}

// WithEase replaces the easing curve applied to the smoothing factor.
// A nil curve keeps the default.
//
// Parameters:
//   - ease: a monotonic curve mapping [0, 1] into [0, 1]
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithEase(ease common.EaseFunc) SamplerBuilderOption {
	return func(s *samplerImpl) {
		if ease != nil {
			s.ease = ease
		}
	}
}

// WithReferenceRate makes the easing step frame-rate independent relative to hz.
// Zero keeps the per-frame behavior.
//
// Parameters:
//   - hz: the frame rate the smoothing factor was tuned for
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithReferenceRate(hz float32) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.referenceHz = max(0, hz)
	}
}

// WithBounds sets the initial bounds. Unordered bounds collapse to Min.
//
// Parameters:
//   - b: the initial bounds
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithBounds(b Bounds) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.bounds = normalizeBounds(b)
	}
}

// WithBoundsProvider registers the function IngestResize uses to recompute bounds.
//
// Parameters:
//   - provider: returns the host's current scroll range
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithBoundsProvider(provider BoundsProvider) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.boundsProvider = provider
	}
}

// WithHost attaches the host page that mirrors the virtual position.
//
// Parameters:
//   - host: the host scroller
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithHost(host HostScroller) SamplerBuilderOption {
	return func(s *samplerImpl) {
		s.host = host
	}
}

// WithClock replaces the clock used to time touch samples.
//
// Parameters:
//   - clock: returns the current time
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithClock(clock func() time.Time) SamplerBuilderOption {
	return func(s *samplerImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}
