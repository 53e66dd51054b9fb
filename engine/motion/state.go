package motion

import "errors"

// ErrInvalidBounds is returned when a Bounds has Max below Min.
var ErrInvalidBounds = errors.New("motion: bounds max is below min")

// Direction is the quantized sign of the virtual scroll velocity.
type Direction int8

const (
	// DirectionNone means the velocity is inside the dead-zone.
	DirectionNone Direction = 0
	// DirectionForward means the position is increasing.
	DirectionForward Direction = 1
	// DirectionBackward means the position is decreasing.
	DirectionBackward Direction = -1
)

// Axis selects which touch axis drives the virtual position.
type Axis int

const (
	// AxisVertical reads touch Y deltas.
	AxisVertical Axis = iota
	// AxisHorizontal reads touch X deltas.
	AxisHorizontal
)

// WheelMode mirrors the unit of a wheel delta reported by the host.
type WheelMode int

const (
	// WheelModePixel deltas are already in scroll units.
	WheelModePixel WheelMode = iota
	// WheelModeLine deltas count text lines and are scaled by the line-mode multiplier.
	WheelModeLine
)

// Point is a touch location in host coordinates.
type Point struct {
	X, Y float32
}

// Bounds is the valid range of the virtual scroll position.
// It is derived from the host's content and viewport size and never persisted.
type Bounds struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Clamp restricts v to the bounds.
func (b Bounds) Clamp(v float32) float32 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Extent returns Max - Min.
func (b Bounds) Extent() float32 {
	return b.Max - b.Min
}

// Validate reports whether the bounds are ordered.
func (b Bounds) Validate() error {
	if b.Max < b.Min {
		return ErrInvalidBounds
	}
	return nil
}

// State is the smoothed virtual scroll state produced once per frame.
type State struct {
	Current   float32   `yaml:"current"`
	Target    float32   `yaml:"target"`
	Last      float32   `yaml:"last"`
	Velocity  float32   `yaml:"velocity"`
	Direction Direction `yaml:"direction"`
	Speed     float32   `yaml:"speed"`
	Momentum  float32   `yaml:"momentum"`
}

// Progress normalizes a position into [0, 1] over the bounds.
// A degenerate range (Max <= Min) yields 0.
//
// Parameters:
//   - position: the scroll position to normalize
//   - b: the bounds to normalize against
//
// Returns:
//   - float32: normalized progress in [0, 1]
func Progress(position float32, b Bounds) float32 {
	extent := b.Extent()
	if extent <= 0 {
		return 0
	}
	p := (position - b.Min) / extent
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// quantize applies the direction dead-zone.
func quantize(velocity, deadZone float32) Direction {
	switch {
	case velocity > deadZone:
		return DirectionForward
	case velocity < -deadZone:
		return DirectionBackward
	default:
		return DirectionNone
	}
}
