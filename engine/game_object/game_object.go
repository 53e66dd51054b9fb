package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	opacity  float32

	vertices []mgl32.Vec3
	original []mgl32.Vec3
}

// GameObject is a drawable scene entity as seen by the motion core: a transform, an opacity,
// a visibility flag and an optional point-cloud geometry whose authored shape is kept as a snapshot.
// The renderer owns how the object is drawn; the core only writes these fields.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's label.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is visible.
	//
	// Returns:
	//   - bool: true if visible
	Enabled() bool

	// Position returns the object's position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the object's Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// Scale returns the object's scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// Opacity returns the object's opacity in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// TransformData reads position, scale and rotation under a single lock.
	//
	// Returns:
	//   - pos: position
	//   - scale: scale
	//   - rot: rotation
	TransformData() (pos, scale, rot mgl32.Vec3)

	// Vertices returns a copy of the live vertex positions.
	//
	// Returns:
	//   - []mgl32.Vec3: the live vertices
	Vertices() []mgl32.Vec3

	// OriginalVertices returns a copy of the authored vertex positions.
	//
	// Returns:
	//   - []mgl32.Vec3: the authored vertices
	OriginalVertices() []mgl32.Vec3

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is visible.
	//
	// Parameters:
	//   - enabled: true to show the object
	SetEnabled(enabled bool)

	// SetPosition sets the object's position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the object's Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale sets the object's scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// SetOpacity sets the object's opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the opacity
	SetOpacity(opacity float32)

	// DisplaceVertices rewrites every live vertex from its authored position.
	//
	// Parameters:
	//   - fn: maps a vertex index and its authored position to the new live position
	DisplaceVertices(fn func(i int, original mgl32.Vec3) mgl32.Vec3)

	// RestoreVertices resets the live vertices to the authored snapshot.
	RestoreVertices()
}

var _ GameObject = &gameObject{}

var objectCount atomic.Uint64

// NewGameObject creates a visible GameObject with unit scale and full opacity.
// Objects get a process-unique ID unless WithID is given.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:      &sync.Mutex{},
		id:      objectCount.Add(1),
		scale:   mgl32.Vec3{1, 1, 1},
		opacity: 1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) Opacity() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opacity
}

func (g *gameObject) TransformData() (pos, scale, rot mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position, g.scale, g.rotation
}

func (g *gameObject) Vertices() []mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]mgl32.Vec3, len(g.vertices))
	copy(out, g.vertices)
	return out
}

func (g *gameObject) OriginalVertices() []mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]mgl32.Vec3, len(g.original))
	copy(out, g.original)
	return out
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) SetOpacity(opacity float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opacity = common.Clamp01(opacity)
}

func (g *gameObject) DisplaceVertices(fn func(i int, original mgl32.Vec3) mgl32.Vec3) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, v := range g.original {
		g.vertices[i] = fn(i, v)
	}
}

func (g *gameObject) RestoreVertices() {
	g.mu.Lock()
	defer g.mu.Unlock()
	copy(g.vertices, g.original)
}
