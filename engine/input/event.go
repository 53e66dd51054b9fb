package input

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind names an input event type.
type Kind int

const (
	KindWheel Kind = iota
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindTouchCancel
	KindResize
	KindPointer
	KindKey
	kindCount
)

var kindNames = [kindCount]string{
	"wheel", "touch-start", "touch-move", "touch-end", "touch-cancel", "resize", "pointer", "key",
}

// String returns the event kind name used in scripts.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves an event kind name.
//
// Parameters:
//   - name: the kind name, case-insensitive
//
// Returns:
//   - Kind: the kind
//   - error: error if the name is unknown
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input event kind %q", name)
}

// MarshalYAML writes the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// UnmarshalYAML reads the kind by name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = parsed
	return nil
}

// Event is one host input event. Only the fields relevant to Kind are meaningful.
//
// Wheel events carry DeltaY (positive scrolls forward) and Lines for line-mode deltas.
// Touch and pointer events carry X and Y; pointer coordinates are normalized device coordinates.
// Resize events carry Width and Height. Key events carry Key.
type Event struct {
	At     float32 `yaml:"at"`
	Kind   Kind    `yaml:"kind"`
	DeltaY float32 `yaml:"deltaY,omitempty"`
	Lines  bool    `yaml:"lines,omitempty"`
	X      float32 `yaml:"x,omitempty"`
	Y      float32 `yaml:"y,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Key    uint32  `yaml:"key,omitempty"`
}
