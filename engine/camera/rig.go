package camera

import (
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// rotationDamping is the per-update blend used for rotation drift.
	rotationDamping float32 = 0.1
	// fovDamping is the per-update blend toward the breathing FOV target.
	fovDamping float32 = 0.1
	// velocitySmoothing is the low-pass factor applied to the raw velocity before it drives rotation.
	velocitySmoothing float32 = 0.1
)

type rigImpl struct {
	mu *sync.Mutex

	camera Camera

	intensity      float32
	depthRange     float32
	arcRadius      float32
	rotationDrift  float32
	shakeIntensity float32
	noiseScale     float32
	fovBreathing   float32

	pointerPosition  float32
	pointerRotation  float32
	pointerSmoothing float32

	seed        uint64
	seeded      bool
	offsetFixed bool
	noiseOffset mgl32.Vec2

	capturedPosition    mgl32.Vec3
	capturedOrientation mgl32.Quat
	baseFov             float32

	basePosition    mgl32.Vec3
	baseOrientation mgl32.Quat

	time           float32
	smoothVelocity float32
	rotation       mgl32.Vec3
	pointer        mgl32.Vec2
	pointerTarget  mgl32.Vec2
	fovOffset      float32
	fov            float32
}

// Rig composes the cinematic camera motion and writes it to a Camera.
// Each update adds an arc path keyed by progress, a rotation drift driven by smoothed velocity,
// lattice-noise micro shake, FOV breathing and pointer parallax on top of a base pose.
// The base pose is the camera's pose at construction until SetBasePose supplies a choreographed one.
type Rig interface {
	// Update computes the composed camera transform and applies it.
	//
	// Parameters:
	//   - progress: normalized scroll progress in [0, 1]
	//   - velocity: raw scroll velocity in units per frame
	//   - dt: elapsed seconds since the previous update
	Update(progress, velocity, dt float32)

	// SetBasePose replaces the pose the rig composes its motion onto.
	//
	// Parameters:
	//   - position: base world-space position
	//   - orientation: base orientation
	SetBasePose(position mgl32.Vec3, orientation mgl32.Quat)

	// SetPointer sets the pointer target in normalized device coordinates ([-1, 1] on both axes, +y up).
	//
	// Parameters:
	//   - x, y: pointer position
	SetPointer(x, y float32)

	// Pointer returns the smoothed pointer position.
	//
	// Returns:
	//   - mgl32.Vec2: the smoothed pointer
	Pointer() mgl32.Vec2

	// SetFovOffset sets an additive FOV term in degrees, applied on the next update.
	//
	// Parameters:
	//   - offset: degrees added on top of the breathing FOV
	SetFovOffset(offset float32)

	// Rotation returns the current Euler rotation drift in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the drift angles
	Rotation() mgl32.Vec3

	// Elapsed returns the accumulated rig time in seconds.
	//
	// Returns:
	//   - float32: elapsed time
	Elapsed() float32

	// Camera returns the camera this rig writes to.
	//
	// Returns:
	//   - Camera: the driven camera
	Camera() Camera

	// Reset restores the camera to the pose and FOV captured at construction and clears motion state.
	Reset()
}

var _ Rig = &rigImpl{}

// NewRig creates a Rig bound to cam, capturing its current pose and FOV as the base.
// A nil camera gets a default one so the rig is always usable headless.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(cam Camera, options ...RigBuilderOption) Rig {
	if cam == nil {
		cam = NewCamera()
	}
	r := &rigImpl{
		mu:               &sync.Mutex{},
		camera:           cam,
		intensity:        1.0,
		depthRange:       2.5,
		arcRadius:        0.8,
		rotationDrift:    0.15,
		shakeIntensity:   0.02,
		noiseScale:       0.3,
		fovBreathing:     5,
		pointerPosition:  0.34,
		pointerRotation:  0.018,
		pointerSmoothing: 0.05,
	}
	for _, option := range options {
		option(r)
	}
	if r.seeded {
		rng := rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
		r.noiseOffset = mgl32.Vec2{rng.Float32() * 100, rng.Float32() * 100}
	} else if !r.offsetFixed {
		r.noiseOffset = mgl32.Vec2{rand.Float32() * 100, rand.Float32() * 100}
	}

	r.capturedPosition = cam.Position()
	r.capturedOrientation = cam.Orientation()
	r.baseFov = cam.Fov()
	r.fov = r.baseFov
	r.basePosition = r.capturedPosition
	r.baseOrientation = r.capturedOrientation
	return r
}

func (r *rigImpl) Update(progress, velocity, dt float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dt > 0 {
		r.time += dt
	}
	progress = common.Clamp01(progress)

	arc := r.arcMotion(progress)
	drift := r.rotationTarget(velocity)
	shake := r.microShake(r.time)
	r.fov = common.Approach(r.fov, r.baseFov+r.breathing(r.time)+r.fovOffset, fovDamping)

	r.pointer[0] = common.Approach(r.pointer[0], r.pointerTarget[0], r.pointerSmoothing)
	r.pointer[1] = common.Approach(r.pointer[1], r.pointerTarget[1], r.pointerSmoothing)

	position := mgl32.Vec3{
		r.basePosition[0] + (arc[0]+shake[0])*r.intensity + r.pointer[0]*r.pointerPosition,
		r.basePosition[1] + (arc[1]+shake[1])*r.intensity + r.pointer[1]*r.pointerPosition,
		arc[2] + shake[2]*r.intensity,
	}

	for i := range 3 {
		r.rotation[i] = common.Approach(r.rotation[i], drift[i]*r.intensity, rotationDamping)
	}
	driftQuat := EulerXYZ(r.rotation[0], r.rotation[1], r.rotation[2])
	pointerQuat := EulerXYZ(
		-r.pointer[1]*r.pointerRotation,
		r.pointer[0]*r.pointerRotation*1.2,
		r.pointer[0]*r.pointerRotation*0.2,
	)

	r.camera.SetPose(position, r.baseOrientation.Mul(driftQuat).Mul(pointerQuat))
	r.camera.SetFov(r.fov)
}

func (r *rigImpl) SetBasePose(position mgl32.Vec3, orientation mgl32.Quat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.basePosition = position
	r.baseOrientation = normalizeQuat(orientation)
}

func (r *rigImpl) SetPointer(x, y float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pointerTarget = mgl32.Vec2{common.Clamp(x, -1, 1), common.Clamp(y, -1, 1)}
}

func (r *rigImpl) Pointer() mgl32.Vec2 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointer
}

func (r *rigImpl) SetFovOffset(offset float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fovOffset = offset
}

func (r *rigImpl) Rotation() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotation
}

func (r *rigImpl) Elapsed() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.time
}

func (r *rigImpl) Camera() Camera {
	return r.camera
}

func (r *rigImpl) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.basePosition = r.capturedPosition
	r.baseOrientation = r.capturedOrientation
	r.time = 0
	r.smoothVelocity = 0
	r.rotation = mgl32.Vec3{}
	r.pointer = mgl32.Vec2{}
	r.pointerTarget = mgl32.Vec2{}
	r.fovOffset = 0
	r.fov = r.baseFov
	r.camera.SetPose(r.capturedPosition, r.capturedOrientation)
	r.camera.SetFov(r.baseFov)
}

// arcMotion returns the lateral/vertical arc offsets and the absolute arc depth.
// Caller must hold the mutex.
func (r *rigImpl) arcMotion(progress float32) mgl32.Vec3 {
	var eased float32
	if progress < 0.5 {
		eased = 2 * progress * progress
	} else {
		k := -2*progress + 2
		eased = 1 - k*k/2
	}
	return mgl32.Vec3{
		common.Sin(progress*common.Tau) * r.arcRadius,
		common.Sin(progress*common.Pi*1.5) * r.arcRadius * 0.5,
		r.basePosition[2] + common.Sin(eased*common.Pi)*r.depthRange,
	}
}

// rotationTarget low-pass filters velocity and maps it to per-axis drift angles.
// Caller must hold the mutex.
func (r *rigImpl) rotationTarget(velocity float32) mgl32.Vec3 {
	r.smoothVelocity = common.Approach(r.smoothVelocity, velocity, velocitySmoothing)
	sv := r.smoothVelocity * r.rotationDrift
	return mgl32.Vec3{sv * 0.5, sv, sv * 0.3}
}

// microShake samples Noise2D along a path through the per-instance offset.
// Caller must hold the mutex.
func (r *rigImpl) microShake(t float32) mgl32.Vec3 {
	nx := r.noiseOffset[0] + t*r.noiseScale
	ny := r.noiseOffset[1] + t*r.noiseScale*1.3
	nz := (nx + ny) * 0.7
	return mgl32.Vec3{
		Noise2D(nx, ny) * r.shakeIntensity,
		Noise2D(ny, nz) * r.shakeIntensity,
		Noise2D(nz, nx) * r.shakeIntensity * 0.5,
	}
}

// breathing maps a slow sinusoid into [0, fovBreathing].
// Caller must hold the mutex.
func (r *rigImpl) breathing(t float32) float32 {
	return (common.Sin(t*0.5)*0.5 + 0.5) * r.fovBreathing
}
