package common

import "math"

// Epsilon is the minimum positive value substituted for zero or negative time steps
// before they are used in rate computations.
const Epsilon float32 = 1e-4

// Lerp linearly interpolates between a and b.
// Written as a*(1-t) + b*t so that t=0 and t=1 return the endpoints exactly.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Approach moves current toward target by the given fraction of the remaining gap.
// This is the exponential smoothing step used by every eased channel in the engine.
//
// Parameters:
//   - current: the live value
//   - target: the value being approached
//   - factor: fraction of the gap closed this step, typically in (0, 1]
//
// Returns:
//   - float32: the updated value
func Approach(current, target, factor float32) float32 {
	return current + (target-current)*factor
}

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Sin is a float32 wrapper around math.Sin.
func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// Cos is a float32 wrapper around math.Cos.
func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

// Pow is a float32 wrapper around math.Pow.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Floor is a float32 wrapper around math.Floor.
func Floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Smoothstep evaluates the cubic Hermite blend 3t² - 2t³ for t in [0, 1].
//
// Parameters:
//   - t: blend factor, expected in [0, 1]
//
// Returns:
//   - float32: the blended factor
func Smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// PositiveDelta floors a time step to Epsilon so callers never divide by zero
// or integrate backwards.
//
// Parameters:
//   - dt: the raw time step in seconds
//
// Returns:
//   - float32: dt, or Epsilon when dt <= 0
func PositiveDelta(dt float32) float32 {
	if dt <= 0 || math.IsNaN(float64(dt)) {
		return Epsilon
	}
	return dt
}
