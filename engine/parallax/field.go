package parallax

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// verticalSmoothing is the per-update catch-up toward the scroll offset.
	verticalSmoothing float32 = 0.05
	// horizontalSmoothing is the per-update catch-up toward the sideways drift.
	horizontalSmoothing float32 = 0.03
	// staggerStep desynchronizes objects sharing a layer.
	staggerStep float32 = 0.1
	// verticalTravel scales the scroll offset into world units.
	verticalTravel float32 = 2
	// driftTravel scales the sideways sway.
	driftTravel float32 = 0.3
	// velocityYaw and velocityPitch turn scroll velocity into rotation.
	velocityYaw   float32 = 0.001
	velocityPitch float32 = 0.0005
)

// depthObject is the per-object state the field owns. The game object is a back-reference only.
type depthObject struct {
	object    game_object.GameObject
	layer     Layer
	base      mgl32.Vec3
	baseRot   mgl32.Vec3
	drift     float32
	depthBias float32
	phase     float32

	offset mgl32.Vec2
	spin   mgl32.Vec3
}

// DepthObjectOption configures an object as it joins a layer.
type DepthObjectOption func(*depthObject)

// WithBasePosition overrides the rest position. By default the object's position at insertion is used.
//
// Parameters:
//   - x, y, z: the rest position
//
// Returns:
//   - DepthObjectOption: option function to apply
func WithBasePosition(x, y, z float32) DepthObjectOption {
	return func(d *depthObject) {
		d.base = mgl32.Vec3{x, y, z}
	}
}

// WithDriftRate sets the angular rate of the ambient float.
//
// Parameters:
//   - rate: radians per second
//
// Returns:
//   - DepthObjectOption: option function to apply
func WithDriftRate(rate float32) DepthObjectOption {
	return func(d *depthObject) {
		d.drift = rate
	}
}

// WithDepthBias adds to the layer's depth push.
//
// Parameters:
//   - bias: extra push per unit of motif depth
//
// Returns:
//   - DepthObjectOption: option function to apply
func WithDepthBias(bias float32) DepthObjectOption {
	return func(d *depthObject) {
		d.depthBias = bias
	}
}

// WithPhase offsets the ambient float so neighbours do not bob in unison.
//
// Parameters:
//   - phase: radians
//
// Returns:
//   - DepthObjectOption: option function to apply
func WithPhase(phase float32) DepthObjectOption {
	return func(d *depthObject) {
		d.phase = phase
	}
}

type fieldImpl struct {
	mu *sync.Mutex

	strengths Strengths
	layers    [layerCount][]*depthObject

	extentMin, extentMax float32
	motifDepth           float32
	time                 float32

	workers   int
	pool      worker.DynamicWorkerPool
	closeOnce sync.Once
	closed    bool
}

// Field groups render objects into foreground, midground and background layers and moves each layer by its
// parallax strength as the scroll position changes.
//
// Membership is exclusive: an object belongs to at most one layer. Updates touch only the object's transform;
// the object itself stays owned by the scene.
type Field interface {
	// Update applies the scroll offset, sideways drift, ambient float, depth push and velocity rotation to every object.
	// Layers are processed concurrently and the call returns once all of them are written.
	//
	// Parameters:
	//   - scrollPosition: the sampler's current position
	//   - velocity: the sampler's signed velocity
	Update(scrollPosition, velocity float32)

	// Advance moves the ambient clock.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// AddToLayer places obj in layer. An object already in another layer is moved.
	//
	// Parameters:
	//   - obj: the render object
	//   - layer: the target layer
	//   - options: per-object drift, bias, phase and base position
	//
	// Returns:
	//   - error: ErrUnknownLayer for an invalid layer, or an error for a nil object
	AddToLayer(obj game_object.GameObject, layer Layer, options ...DepthObjectOption) error

	// RemoveObject drops obj from whichever layer holds it. Removing a non-member does nothing.
	//
	// Parameters:
	//   - obj: the render object
	RemoveObject(obj game_object.GameObject)

	// SetExtent sets the scroll range mapped to progress 0..1.
	//
	// Parameters:
	//   - min, max: scroll bounds
	SetExtent(min, max float32)

	// SetMotifDepth sets the depth push applied by the layers.
	//
	// Parameters:
	//   - depth: the motif-depth channel
	SetMotifDepth(depth float32)

	// Objects returns the members of a layer in insertion order.
	//
	// Parameters:
	//   - layer: the layer
	//
	// Returns:
	//   - []game_object.GameObject: the members
	Objects(layer Layer) []game_object.GameObject

	// Len returns the number of objects in a layer.
	//
	// Parameters:
	//   - layer: the layer
	//
	// Returns:
	//   - int: member count
	Len(layer Layer) int

	// Strengths returns the configured layer strengths.
	//
	// Returns:
	//   - Strengths: the strengths
	Strengths() Strengths

	// Close stops the worker pool. Later updates run on the calling goroutine.
	Close()
}

var _ Field = &fieldImpl{}

// NewField creates a Field with the default strengths.
//
// Parameters:
//   - options: functional options to configure the field
//
// Returns:
//   - Field: the newly created field
//   - error: ErrLayerOrdering if the configured strengths are not strictly ordered
func NewField(options ...FieldBuilderOption) (Field, error) {
	f := &fieldImpl{
		mu:        &sync.Mutex{},
		strengths: DefaultStrengths,
		extentMax: 1,
		workers:   min(int(layerCount), max(runtime.NumCPU()-1, 1)),
	}
	for _, option := range options {
		option(f)
	}
	if err := f.strengths.Validate(); err != nil {
		return nil, err
	}
	if f.workers > 1 {
		f.pool = worker.NewDynamicWorkerPool(f.workers, 16, 1*time.Second)
	}
	return f, nil
}

func (f *fieldImpl) Update(scrollPosition, velocity float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	progress := float32(0)
	if span := f.extentMax - f.extentMin; span > 0 {
		progress = common.Clamp01((scrollPosition - f.extentMin) / span)
	}
	frame := frameInput{
		progress: progress,
		velocity: velocity,
		depth:    f.motifDepth,
		time:     f.time,
	}

	if f.pool == nil || f.closed {
		for _, l := range Layers {
			f.updateLayer(l, frame)
		}
		return
	}

	var wg sync.WaitGroup
	for _, l := range Layers {
		if len(f.layers[l]) == 0 {
			continue
		}
		wg.Add(1)
		f.pool.SubmitTask(worker.Task{
			ID: int(l),
			Do: func() (any, error) {
				defer wg.Done()
				f.updateLayer(l, frame)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (f *fieldImpl) Advance(dt float32) {
	if dt <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.time += dt
}

func (f *fieldImpl) AddToLayer(obj game_object.GameObject, layer Layer, options ...DepthObjectOption) error {
	if obj == nil {
		return fmt.Errorf("add to %s: nil object", layer)
	}
	if !layer.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, int(layer))
	}

	pos, _, rot := obj.TransformData()
	d := &depthObject{
		object:  obj,
		layer:   layer,
		base:    pos,
		baseRot: rot,
		drift:   0.4,
	}
	for _, option := range options {
		option(d)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.remove(obj)
	f.layers[layer] = append(f.layers[layer], d)
	return nil
}

func (f *fieldImpl) RemoveObject(obj game_object.GameObject) {
	if obj == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remove(obj)
}

func (f *fieldImpl) SetExtent(min, max float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extentMin = min
	f.extentMax = max
}

func (f *fieldImpl) SetMotifDepth(depth float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.motifDepth = depth
}

func (f *fieldImpl) Objects(layer Layer) []game_object.GameObject {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !layer.valid() {
		return nil
	}
	out := make([]game_object.GameObject, len(f.layers[layer]))
	for i, d := range f.layers[layer] {
		out[i] = d.object
	}
	return out
}

func (f *fieldImpl) Len(layer Layer) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !layer.valid() {
		return 0
	}
	return len(f.layers[layer])
}

func (f *fieldImpl) Strengths() Strengths {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strengths
}

func (f *fieldImpl) Close() {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.closed = true
		if f.pool != nil {
			f.pool.Stop()
		}
	})
}

// frameInput is the read-only per-update input shared by the layer tasks.
type frameInput struct {
	progress float32
	velocity float32
	depth    float32
	time     float32
}

// remove drops obj from its layer if present.
// Caller must hold the mutex.
func (f *fieldImpl) remove(obj game_object.GameObject) {
	for l := range f.layers {
		for i, d := range f.layers[l] {
			if d.object == obj {
				f.layers[l] = append(f.layers[l][:i], f.layers[l][i+1:]...)
				return
			}
		}
	}
}

// updateLayer writes every object of one layer. Tasks for different layers share no mutable state.
// Caller must hold the mutex.
func (f *fieldImpl) updateLayer(l Layer, in frameInput) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Parallax] %s update recovered from panic: %v", l, r)
		}
	}()

	strength := f.strengths.Of(l)
	gain := strength / DefaultStrengths.Of(l)
	profile := ambientProfiles[l]

	for i, d := range f.layers[l] {
		stagger := float32(i) * staggerStep
		target := (in.progress - 0.5 + stagger) * strength
		sway := common.Sin(in.progress*math.Pi+stagger) * strength * driftTravel

		d.offset[1] = common.Lerp(d.offset[1], target*verticalTravel, verticalSmoothing)
		d.offset[0] = common.Lerp(d.offset[0], sway, horizontalSmoothing)

		t := in.time * d.drift
		ambientX := common.Sin(t+d.phase) * profile.ampX * gain
		ambientY := common.Cos(t*profile.freqY+d.phase) * profile.ampY * gain
		push := profile.depthSign * in.depth * (profile.depthBase + d.depthBias) * gain

		d.object.SetPosition(
			d.base[0]+d.offset[0]+ambientX,
			d.base[1]+d.offset[1]+ambientY,
			d.base[2]+push,
		)

		d.spin[0] += profile.spinX*gain + in.velocity*velocityPitch*strength
		d.spin[1] += (profile.spinY+float32(i)*profile.spinStep)*gain + in.velocity*velocityYaw*strength
		d.object.SetRotation(d.baseRot[0]+d.spin[0], d.baseRot[1]+d.spin[1], d.baseRot[2]+d.spin[2])
	}
}
