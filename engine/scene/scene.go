package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/fog"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/light"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

// Capabilities lists the optional renderer features a scene carries. Components check it once at setup
// instead of probing handles on every update.
type Capabilities struct {
	Fog         bool
	PostProcess bool
	Lights      int
}

// Scene is the renderer-facing descriptor: the camera, fog, lights, objects and optional post-process chain
// the frame pipeline writes and the renderer reads.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Fog returns the scene's fog, or nil when the scene has none.
	Fog() fog.Fog

	// SetFog replaces the scene's fog. nil removes it.
	//
	// Parameters:
	//   - f: the fog
	SetFog(f fog.Fog)

	// Composer returns the post-process chain, or nil when the renderer has none.
	Composer() postprocess.Composer

	// SetComposer replaces the post-process chain. nil removes it.
	//
	// Parameters:
	//   - c: the composer
	SetComposer(c postprocess.Composer)

	// Capabilities reports which optional features are present.
	//
	// Returns:
	//   - Capabilities: the feature set
	Capabilities() Capabilities

	// Count returns the number of GameObjects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject. Objects without an ID are assigned one.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject from the registry by ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns every registered object ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// VisibleObjects returns the enabled objects ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the enabled objects
	VisibleObjects() []game_object.GameObject

	// Clear removes all objects from the scene.
	Clear()

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// Light returns the first light with the given name.
	//
	// Parameters:
	//   - name: the light name
	//
	// Returns:
	//   - light.Light: the light or nil
	Light(name string) light.Light

	// AmbientColor returns the scene's ambient light color.
	//
	// Returns:
	//   - common.Color: the ambient RGB color
	AmbientColor() common.Color

	// SetAmbientColor sets the scene's ambient light color.
	//
	// Parameters:
	//   - color: the ambient RGB color
	SetAmbientColor(color common.Color)
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]game_object.GameObject
	nextID   uint64

	cam      camera.Camera
	fog      fog.Fog
	composer postprocess.Composer

	lights       []light.Light
	ambientColor common.Color
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene around a camera. The camera is required and NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		cam:      cam,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Fog() fog.Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(f fog.Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = f
}

func (s *scene) Composer() postprocess.Composer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composer
}

func (s *scene) SetComposer(c postprocess.Composer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer = c
}

func (s *scene) Capabilities() Capabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Capabilities{
		Fog:         s.fog != nil,
		PostProcess: s.composer != nil,
		Lights:      len(s.lights),
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.register(obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(false)
}

func (s *scene) VisibleObjects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(true)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.lights, l) {
		return
	}
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) Light(name string) light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lights {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

func (s *scene) AmbientColor() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor
}

func (s *scene) SetAmbientColor(color common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = color
}

// register stores obj under its ID, assigning the next free ID to objects without one.
// Caller must hold the write lock.
func (s *scene) register(obj game_object.GameObject) {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	s.nextID = max(s.nextID, obj.ID()+1)
	s.registry[obj.ID()] = obj
}

// sorted returns the registry ordered by ID.
// Caller must hold at least the read lock.
func (s *scene) sorted(visibleOnly bool) []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		if visibleOnly && !obj.Enabled() {
			continue
		}
		out = append(out, obj)
	}
	slices.SortFunc(out, func(a, b game_object.GameObject) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
	return out
}
