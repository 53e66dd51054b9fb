package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"github.com/cogentcore/webgpu/wgpu"
)

// defaultBloomLift is how much a full-strength bloom brightens the clear color.
const defaultBloomLift = 0.25

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clear  common.Color
	frames uint64
	width  int
	height int
	closed bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	bloomLift            float32
}

// Renderer is the windowed presenter. Present is called by the frame pipeline and only records the
// frame's clear color; Render runs on the render loop and draws the most recent color to the surface.
type Renderer interface {
	orchestrator.Presenter

	// Render clears the surface to the color of the last presented frame and presents it.
	//
	// Returns:
	//   - error: error if the surface could not be drawn
	Render() error

	// Resize configures the underlying backend to handle a new surface size.
	// Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the surface present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// ClearColor returns the color the next Render will draw.
	//
	// Returns:
	//   - common.Color: the current clear color
	ClearColor() common.Color

	// Frames returns the number of frames presented so far.
	Frames() uint64

	// Close releases the GPU resources. Render after Close is a no-op.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a wgpu presenter for the given window surface.
//
// Parameters:
//   - surfaceDescriptor: the window's surface descriptor
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options for the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: error if no adapter or device could be acquired
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("renderer: nil surface descriptor")
	}
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: BackendTypeWGPU,
		presentMode: PresentModeVSync,
		bloomLift:   defaultBloomLift,
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.Resize(width, height)

	log.Printf("[Renderer] wgpu presenter ready (%dx%d, %s)", width, height, r.presentMode)
	return r, nil
}

// FrameColor computes the clear color for a frame: the fog color scaled by the exposure and
// lifted by bloom, clamped to [0, 1]. A zero exposure is treated as neutral.
//
// Parameters:
//   - f: the frame to color
//   - bloomLift: brightening applied at bloom strength 1
//
// Returns:
//   - common.Color: the clear color
func FrameColor(f orchestrator.Frame, bloomLift float32) common.Color {
	exposure := f.Post.Exposure
	if exposure == 0 {
		exposure = 1
	}
	c := f.Atmosphere.FogColor.Scale(exposure * (1 + f.Post.Bloom*bloomLift))
	for i := range c {
		c[i] = common.Clamp01(c[i])
	}
	return c
}

func (r *renderer) Present(f orchestrator.Frame) {
	c := FrameColor(f, r.bloomLift)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = c
	r.frames++
}

func (r *renderer) Render() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	c := r.clear
	r.mu.Unlock()

	return r.backend.ClearFrame(c)
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clear
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.backend.Release()
}
