package fog

import (
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
)

type fogImpl struct {
	mu *sync.Mutex

	near  float32
	far   float32
	color common.Color
}

// Fog is the renderer's linear distance fog handle.
// Objects closer than Near are unfogged and objects beyond Far take the fog color completely.
type Fog interface {
	// Near returns the distance where fog starts.
	//
	// Returns:
	//   - float32: the near distance
	Near() float32

	// Far returns the distance where fog is opaque.
	//
	// Returns:
	//   - float32: the far distance
	Far() float32

	// Color returns the fog color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Factor returns how much fog covers a fragment at the given view distance.
	//
	// Parameters:
	//   - distance: view-space distance
	//
	// Returns:
	//   - float32: coverage in [0, 1]
	Factor(distance float32) float32

	// SetRange sets both distances. Near is clamped at 0 and far is kept at or beyond near.
	//
	// Parameters:
	//   - near: distance where fog starts
	//   - far: distance where fog is opaque
	SetRange(near, far float32)

	// SetColor sets the fog color.
	//
	// Parameters:
	//   - c: the color
	SetColor(c common.Color)
}

var _ Fog = &fogImpl{}

// NewFog creates a Fog handle.
//
// Parameters:
//   - near: distance where fog starts
//   - far: distance where fog is opaque
//   - color: the fog color
//
// Returns:
//   - Fog: the fog handle
func NewFog(near, far float32, color common.Color) Fog {
	f := &fogImpl{mu: &sync.Mutex{}, color: color}
	f.setRange(near, far)
	return f
}

func (f *fogImpl) Near() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.near
}

func (f *fogImpl) Far() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.far
}

func (f *fogImpl) Color() common.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color
}

func (f *fogImpl) Factor(distance float32) float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	span := f.far - f.near
	if span <= 0 {
		if distance >= f.far {
			return 1
		}
		return 0
	}
	return common.Clamp01((distance - f.near) / span)
}

func (f *fogImpl) SetRange(near, far float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setRange(near, far)
}

func (f *fogImpl) SetColor(c common.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.color = c
}

func (f *fogImpl) setRange(near, far float32) {
	f.near = max(0, near)
	f.far = max(f.near, far)
}
