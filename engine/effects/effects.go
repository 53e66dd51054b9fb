package effects

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

// Per-channel catch-up factors. They differ so the effects never pulse together.
const (
	velocitySmoothing   float32 = 0.1
	bloomSmoothing      float32 = 0.1
	motionBlurSmoothing float32 = 0.15
	fovSmoothing        float32 = 0.05
	exposureSmoothing   float32 = 0.08
	chromaticSmoothing  float32 = 0.1

	// bloomSpeedGain is the bloom added per unit of speed.
	bloomSpeedGain float32 = 0.5
	// audioBloomGain is the bloom kick per unit of bass level.
	audioBloomGain float32 = 0.3
)

// Toggles enables each effect individually.
type Toggles struct {
	Bloom        bool `yaml:"bloom"`
	MotionBlur   bool `yaml:"motion_blur"`
	FovBreathing bool `yaml:"fov_breathing"`
	Exposure     bool `yaml:"exposure"`
	Chromatic    bool `yaml:"chromatic"`
}

// AllEnabled turns every effect on.
var AllEnabled = Toggles{Bloom: true, MotionBlur: true, FovBreathing: true, Exposure: true, Chromatic: true}

// State is the live value of every effect channel.
type State struct {
	SmoothVelocity float32 `yaml:"smooth_velocity"`
	Bloom          float32 `yaml:"bloom"`
	MotionBlur     float32 `yaml:"motion_blur"`
	FovOffset      float32 `yaml:"fov_offset"`
	Exposure       float32 `yaml:"exposure"`
	Chromatic      float32 `yaml:"chromatic"`
}

type effectsImpl struct {
	mu *sync.Mutex

	composer postprocess.Composer
	toggles  Toggles

	// Pass handles resolved once at construction, nil when the composer lacks the pass.
	bloomPass      postprocess.Pass
	motionBlurPass postprocess.Pass
	exposurePass   postprocess.Pass
	chromaticPass  postprocess.Pass

	bloomIntensity  float32
	motionBlurRange float32
	fovRange        float32
	exposureRange   float32
	chromaticAmount float32
	speedScale      float32

	state State
}

// Effects turns scroll speed and progress into post-process parameters and a FOV micro-offset.
//
// Every channel computes a target and eases toward it with its own constant. Channels whose composer pass is
// missing are still computed and reported by State but are not written anywhere.
type Effects interface {
	// Update advances every enabled channel one frame.
	//
	// Parameters:
	//   - velocity: the sampler's signed velocity
	//   - progress: overall scroll progress in [0, 1]
	Update(velocity, progress float32)

	// SetAudioLevel kicks the bloom channel by the bass level. The kick decays through normal smoothing.
	//
	// Parameters:
	//   - bass: bass level, usually in [0, 1]
	SetAudioLevel(bass float32)

	// FovOffset returns the breathing offset in degrees for the camera rig.
	//
	// Returns:
	//   - float32: the offset
	FovOffset() float32

	// State returns every channel's live value.
	//
	// Returns:
	//   - State: the channels
	State() State

	// Reset returns every channel to rest.
	Reset()
}

var _ Effects = &effectsImpl{}

// NewEffects creates an Effects with every channel enabled and the default magnitudes.
//
// Parameters:
//   - options: functional options to configure the effects
//
// Returns:
//   - Effects: the newly created effects
func NewEffects(options ...EffectsBuilderOption) Effects {
	e := &effectsImpl{
		mu:              &sync.Mutex{},
		toggles:         AllEnabled,
		bloomIntensity:  0.5,
		motionBlurRange: 0.3,
		fovRange:        5,
		exposureRange:   0.3,
		chromaticAmount: 0.002,
		speedScale:      1,
	}
	for _, option := range options {
		option(e)
	}
	if e.composer != nil {
		e.bloomPass = e.composer.Pass(postprocess.PassBloom)
		e.motionBlurPass = e.composer.Pass(postprocess.PassMotionBlur)
		e.exposurePass = e.composer.Pass(postprocess.PassToneMapping)
		e.chromaticPass = e.composer.Pass(postprocess.PassChromatic)
	}
	e.state = e.rest()
	return e
}

func (e *effectsImpl) Update(velocity, progress float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.state
	s.SmoothVelocity = common.Approach(s.SmoothVelocity, velocity, velocitySmoothing)
	speed := common.Abs(s.SmoothVelocity) * e.speedScale

	if e.toggles.Bloom {
		target := e.bloomIntensity + speed*bloomSpeedGain
		s.Bloom = common.Approach(s.Bloom, target, bloomSmoothing)
		write(e.bloomPass, s.Bloom)
	}
	if e.toggles.MotionBlur {
		target := speed * e.motionBlurRange
		s.MotionBlur = common.Approach(s.MotionBlur, target, motionBlurSmoothing)
		write(e.motionBlurPass, s.MotionBlur)
	}
	if e.toggles.FovBreathing {
		breath := common.Sin(common.Clamp01(progress)*math.Pi*2)*0.5 + 0.5
		s.FovOffset = common.Approach(s.FovOffset, breath*e.fovRange, fovSmoothing)
	}
	if e.toggles.Exposure {
		target := max(0, 1-speed*e.exposureRange)
		s.Exposure = common.Approach(s.Exposure, target, exposureSmoothing)
		write(e.exposurePass, s.Exposure)
	}
	if e.toggles.Chromatic {
		target := speed * e.chromaticAmount
		s.Chromatic = common.Approach(s.Chromatic, target, chromaticSmoothing)
		write(e.chromaticPass, s.Chromatic)
	}
}

func (e *effectsImpl) SetAudioLevel(bass float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.toggles.Bloom || bass <= 0 {
		return
	}
	e.state.Bloom += bass * audioBloomGain
	write(e.bloomPass, e.state.Bloom)
}

func (e *effectsImpl) FovOffset() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.FovOffset
}

func (e *effectsImpl) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *effectsImpl) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = e.rest()
}

// rest is the state before any motion.
// Caller must hold the mutex.
func (e *effectsImpl) rest() State {
	return State{Bloom: e.bloomIntensity, Exposure: 1}
}

// write sets a pass value when the pass exists.
func write(p postprocess.Pass, v float32) {
	if p != nil {
		p.SetValue(v)
	}
}
