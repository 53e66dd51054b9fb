package common

import "math"

// EaseFunc maps a normalized time t in [0, 1] to an eased progress value.
type EaseFunc func(t float32) float32

// Linear returns t unchanged.
func Linear(t float32) float32 {
	return t
}

// ExpoOutBounded is the default scroll easing curve: min(1, 1.001 - 2^(-10t)).
// It is monotonic on [0, 1] and never exceeds 1, so it cannot overshoot.
func ExpoOutBounded(t float32) float32 {
	return min(1, 1.001-Pow(2, -10*t))
}

// Power2In is a quadratic ease-in.
func Power2In(t float32) float32 {
	return t * t
}

// Power2Out is a quadratic ease-out.
func Power2Out(t float32) float32 {
	u := 1 - t
	return 1 - u*u
}

// Power2InOut is a quadratic ease-in-out.
func Power2InOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Power4InOut is a quartic ease-in-out.
func Power4InOut(t float32) float32 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u*u/2
}

// Power4Out is a quartic ease-out.
func Power4Out(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u*u
}

// ExpoOut is an exponential ease-out that lands exactly on 1 at t = 1.
func ExpoOut(t float32) float32 {
	if t >= 1 {
		return 1
	}
	return 1 - Pow(2, -10*t)
}

// EaseInOutCubic is a cubic ease-in-out.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// BackOut overshoots past 1 before settling, peaking near 1 + 0.1*overshoot.
//
// Parameters:
//   - overshoot: the back amount; 1.70158 is the conventional default
//
// Returns:
//   - EaseFunc: the configured curve
func BackOut(overshoot float32) EaseFunc {
	c3 := overshoot + 1
	return func(t float32) float32 {
		u := t - 1
		return 1 + c3*u*u*u + overshoot*u*u
	}
}

// EaseByName resolves the easing names used in shot and config files.
// Unknown names fall back to Linear.
//
// Parameters:
//   - name: one of linear, power2.in, power2.out, power2.inOut, power4.inOut, power4.out, expo.out, cubic.inOut
//
// Returns:
//   - EaseFunc: the matching curve
func EaseByName(name string) EaseFunc {
	switch name {
	case "power2.in":
		return Power2In
	case "power2.out":
		return Power2Out
	case "power2.inOut":
		return Power2InOut
	case "power4.inOut":
		return Power4InOut
	case "power4.out":
		return Power4Out
	case "expo.out":
		return ExpoOut
	case "cubic.inOut":
		return EaseInOutCubic
	default:
		return Linear
	}
}

// Tau is 2π as float32.
const Tau = float32(2 * math.Pi)

// Pi is π as float32.
const Pi = float32(math.Pi)
