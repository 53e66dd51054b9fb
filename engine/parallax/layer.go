package parallax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLayerOrdering is returned when parallax strengths are not strictly decreasing from foreground to background
// or when a strength is negative.
var ErrLayerOrdering = errors.New("parallax strengths must satisfy foreground > midground > background >= 0")

// ErrUnknownLayer is returned when a layer name or value does not name one of the three depth layers.
var ErrUnknownLayer = errors.New("unknown depth layer")

// Layer identifies a depth layer.
type Layer int

const (
	Foreground Layer = iota
	Midground
	Background
	layerCount
)

// Layers lists every layer from nearest to farthest.
var Layers = [layerCount]Layer{Foreground, Midground, Background}

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case Foreground:
		return "foreground"
	case Midground:
		return "midground"
	case Background:
		return "background"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// ParseLayer resolves a layer name.
//
// Parameters:
//   - name: foreground, midground or background (case-insensitive)
//
// Returns:
//   - Layer: the layer
//   - error: ErrUnknownLayer if the name is not recognized
func ParseLayer(name string) (Layer, error) {
	for _, l := range Layers {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

func (l Layer) valid() bool {
	return l >= Foreground && l < layerCount
}

// Strengths are the per-layer parallax gains.
type Strengths struct {
	Foreground float32 `yaml:"foreground"`
	Midground  float32 `yaml:"midground"`
	Background float32 `yaml:"background"`
}

// DefaultStrengths exaggerates the foreground and drags the background.
var DefaultStrengths = Strengths{Foreground: 1.8, Midground: 1.0, Background: 0.4}

// Validate checks the depth ordering.
//
// Returns:
//   - error: ErrLayerOrdering if the strengths are not strictly ordered or a strength is negative
func (s Strengths) Validate() error {
	if s.Background < 0 || !(s.Foreground > s.Midground && s.Midground > s.Background) {
		return fmt.Errorf("%w: got %v/%v/%v", ErrLayerOrdering, s.Foreground, s.Midground, s.Background)
	}
	return nil
}

// Of returns the strength of a layer.
func (s Strengths) Of(l Layer) float32 {
	switch l {
	case Foreground:
		return s.Foreground
	case Midground:
		return s.Midground
	case Background:
		return s.Background
	default:
		return 0
	}
}

// ambient describes the time-driven float and the depth push of a layer at its default strength.
type ambient struct {
	ampX, ampY float32
	freqY      float32
	depthBase  float32
	depthSign  float32
	spinX      float32
	spinY      float32
	spinStep   float32
}

var ambientProfiles = [layerCount]ambient{
	Foreground: {ampX: 0.35, ampY: 0.2, freqY: 1.4, depthBase: 0, depthSign: -1, spinX: 0.0008, spinY: 0.0011},
	Midground:  {ampX: 0.18, ampY: 0.1, freqY: 1.2, depthBase: 0.9, depthSign: -1, spinY: 0.001, spinStep: 0.0004},
	Background: {ampX: 0.05, ampY: 0.04, freqY: 1.1, depthBase: 0.55, depthSign: 1},
}
