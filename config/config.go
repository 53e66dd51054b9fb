package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"gopkg.in/yaml.v3"
)

// ErrLayerOrdering is returned by Validate when the depth-layer strengths are not strictly decreasing.
var ErrLayerOrdering = parallax.ErrLayerOrdering

// ErrInvalidConfig wraps every other validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the YAML configuration document. Keys missing from a file keep their defaults.
type Config struct {
	Mobile    bool            `yaml:"mobile"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Rig       RigConfig       `yaml:"rig"`
	Layers    LayersConfig    `yaml:"layers"`
	Effects   EffectsConfig   `yaml:"effects"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Engine    EngineConfig    `yaml:"engine"`
	Shots     ShotsConfig     `yaml:"shots"`
}

// SamplerConfig configures the scroll sampler.
type SamplerConfig struct {
	Lerp               float32       `yaml:"lerp"`
	WheelMultiplier    float32       `yaml:"wheelMultiplier"`
	TouchMultiplier    float32       `yaml:"touchMultiplier"`
	TouchInertia       float32       `yaml:"touchInertia"`
	LineModeMultiplier float32       `yaml:"lineModeMultiplier"`
	Direction          string        `yaml:"direction"`
	Smooth             bool          `yaml:"smooth"`
	SmoothTouch        bool          `yaml:"smoothTouch"`
	ImpulseGain        float32       `yaml:"impulseGain"`
	MinTouchDt         time.Duration `yaml:"minTouchDt"`
	Ease               string        `yaml:"ease,omitempty"`
	ReferenceRate      float32       `yaml:"referenceRate,omitempty"`
}

// RigConfig configures the camera rig and its camera.
type RigConfig struct {
	Intensity       float32 `yaml:"intensity"`
	DepthRange      float32 `yaml:"depthRange"`
	ArcRadius       float32 `yaml:"arcRadius"`
	RotationDrift   float32 `yaml:"rotationDrift"`
	ShakeIntensity  float32 `yaml:"shakeIntensity"`
	NoiseScale      float32 `yaml:"noiseScale"`
	FovBreathing    float32 `yaml:"fovBreathing"`
	PointerPosition float32 `yaml:"pointerPosition"`
	PointerRotation float32 `yaml:"pointerRotation"`
	Fov             float32 `yaml:"fov"`
	Seed            uint64  `yaml:"seed"`
}

// LayersConfig configures the depth-layer field.
type LayersConfig struct {
	Foreground float32 `yaml:"foreground"`
	Midground  float32 `yaml:"midground"`
	Background float32 `yaml:"background"`
	Workers    int     `yaml:"workers"`
}

// EffectsConfig configures the velocity-driven post-process effects.
type EffectsConfig struct {
	Bloom         float32 `yaml:"bloom"`
	MotionBlur    float32 `yaml:"motionBlur"`
	FovRange      float32 `yaml:"fovRange"`
	ExposureRange float32 `yaml:"exposureRange"`
	Chromatic     float32 `yaml:"chromatic"`
	Enabled       Toggles `yaml:"enabled"`
}

// Toggles switches individual effects on or off.
type Toggles struct {
	Bloom        bool `yaml:"bloom"`
	MotionBlur   bool `yaml:"motionBlur"`
	FovBreathing bool `yaml:"fovBreathing"`
	Exposure     bool `yaml:"exposure"`
	Chromatic    bool `yaml:"chromatic"`
}

// NarrativeConfig configures section transitions.
type NarrativeConfig struct {
	Duration       float32 `yaml:"duration"`
	Particles      int     `yaml:"particles"`
	GeometryMorph  bool    `yaml:"geometryMorph"`
	ParticleReflow bool    `yaml:"particleReflow"`
	Seed           uint64  `yaml:"seed"`
}

// EngineConfig configures the scheduler and the host window.
type EngineConfig struct {
	TickRate    float64 `yaml:"tickRate"`
	RenderLimit float64 `yaml:"renderLimit"`
	Profiling   bool    `yaml:"profiling"`
	VSync       bool    `yaml:"vsync"`
	Title       string  `yaml:"title"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
}

// ShotsConfig selects the shot sequence and how it is played.
type ShotsConfig struct {
	File      string  `yaml:"file"`
	Mode      string  `yaml:"mode"`
	Smoothing float32 `yaml:"smoothing"`
	Scrub     float32 `yaml:"scrub"`
}

// Default returns the documented defaults.
//
// Returns:
//   - *Config: a fully populated configuration
func Default() *Config {
	return &Config{
		Sampler: SamplerConfig{
			Lerp:               0.08,
			WheelMultiplier:    1.0,
			TouchMultiplier:    1.5,
			TouchInertia:       0.95,
			LineModeMultiplier: 15,
			Direction:          "vertical",
			Smooth:             true,
			SmoothTouch:        true,
			ImpulseGain:        30,
			MinTouchDt:         time.Millisecond,
		},
		Rig: RigConfig{
			Intensity:       1,
			DepthRange:      2.5,
			ArcRadius:       0.8,
			RotationDrift:   0.15,
			ShakeIntensity:  0.02,
			NoiseScale:      0.3,
			FovBreathing:    5,
			PointerPosition: 0.34,
			PointerRotation: 0.018,
			Fov:             50,
			Seed:            1,
		},
		Layers: LayersConfig{
			Foreground: 1.8,
			Midground:  1.0,
			Background: 0.4,
			Workers:    max(runtime.NumCPU()-1, 1),
		},
		Effects: EffectsConfig{
			Bloom:         0.5,
			MotionBlur:    0.3,
			FovRange:      5,
			ExposureRange: 0.3,
			Chromatic:     0.002,
			Enabled:       Toggles{Bloom: true, MotionBlur: true, FovBreathing: true, Exposure: true, Chromatic: true},
		},
		Narrative: NarrativeConfig{
			Duration:       1.2,
			Particles:      150,
			GeometryMorph:  true,
			ParticleReflow: true,
			Seed:           1,
		},
		Engine: EngineConfig{
			TickRate:    60,
			RenderLimit: 60,
			VSync:       true,
			Title:       "cinescroll",
			Width:       1280,
			Height:      720,
		},
		Shots: ShotsConfig{
			Mode:      "scroll",
			Smoothing: 0.055,
			Scrub:     1.2,
		},
	}
}

// Parse decodes a YAML document over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the resolved configuration
//   - error: error if the document is malformed or fails validation
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and validates a YAML config file.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the resolved configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Write encodes the configuration to a YAML file.
//
// Parameters:
//   - path: destination file path
//
// Returns:
//   - error: error if encoding or writing fails
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configurations no component can run with. Values a builder option would clamp are
// left to the option.
//
// Returns:
//   - error: ErrLayerOrdering for non-ordered layer strengths, ErrInvalidConfig for anything else
func (c *Config) Validate() error {
	if err := c.strengths().Validate(); err != nil {
		return err
	}
	var problems []string
	switch strings.ToLower(c.Sampler.Direction) {
	case "", "vertical", "horizontal":
	default:
		problems = append(problems, fmt.Sprintf("sampler.direction %q is not vertical or horizontal", c.Sampler.Direction))
	}
	switch strings.ToLower(c.Shots.Mode) {
	case "", "scroll", "timeline":
	default:
		problems = append(problems, fmt.Sprintf("shots.mode %q is not scroll or timeline", c.Shots.Mode))
	}
	if c.Narrative.Duration < 0 {
		problems = append(problems, "narrative.duration is negative")
	}
	if c.Narrative.Particles < 0 {
		problems = append(problems, "narrative.particles is negative")
	}
	if c.Engine.TickRate < 0 || c.Engine.RenderLimit < 0 {
		problems = append(problems, "engine rates are negative")
	}
	if c.Engine.Width < 0 || c.Engine.Height < 0 {
		problems = append(problems, "engine window size is negative")
	}
	if c.Rig.Fov < 0 || c.Rig.Fov >= 180 {
		problems = append(problems, fmt.Sprintf("rig.fov %v is outside (0, 180)", c.Rig.Fov))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) strengths() parallax.Strengths {
	return parallax.Strengths{
		Foreground: c.Layers.Foreground,
		Midground:  c.Layers.Midground,
		Background: c.Layers.Background,
	}
}
