package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
)

func TestDefault(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"sampler lerp", c.Sampler.Lerp, 0.08},
		{"touch multiplier", c.Sampler.TouchMultiplier, 1.5},
		{"touch inertia", c.Sampler.TouchInertia, 0.95},
		{"line mode", c.Sampler.LineModeMultiplier, 15},
		{"impulse gain", c.Sampler.ImpulseGain, 30},
		{"depth range", c.Rig.DepthRange, 2.5},
		{"arc radius", c.Rig.ArcRadius, 0.8},
		{"shake", c.Rig.ShakeIntensity, 0.02},
		{"fov breathing", c.Rig.FovBreathing, 5},
		{"pointer position", c.Rig.PointerPosition, 0.34},
		{"foreground", c.Layers.Foreground, 1.8},
		{"background", c.Layers.Background, 0.4},
		{"bloom", c.Effects.Bloom, 0.5},
		{"chromatic", c.Effects.Chromatic, 0.002},
		{"narrative duration", c.Narrative.Duration, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, tt.got)
			}
		})
	}
	if c.Sampler.MinTouchDt != time.Millisecond || !c.Sampler.Smooth || !c.Sampler.SmoothTouch {
		t.Errorf("Expected smooth sampling with a 1ms touch floor, got %+v", c.Sampler)
	}
	if c.Narrative.Particles != 150 || !c.Narrative.GeometryMorph || !c.Narrative.ParticleReflow {
		t.Errorf("Expected 150 particles with morph and reflow, got %+v", c.Narrative)
	}
	if c.Engine.TickRate != 60 || c.Engine.RenderLimit != 60 || c.Engine.Profiling {
		t.Errorf("Expected 60/60 without profiling, got %+v", c.Engine)
	}
	if c.Layers.Workers != max(runtime.NumCPU()-1, 1) {
		t.Errorf("Expected NumCPU-1 workers, got %d", c.Layers.Workers)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	doc := `
sampler:
  lerp: 0.2
  smooth: false
  minTouchDt: 4ms
rig:
  shakeIntensity: 0
effects:
  enabled:
    chromatic: false
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if c.Sampler.Lerp != 0.2 || c.Sampler.Smooth || c.Sampler.MinTouchDt != 4*time.Millisecond {
		t.Errorf("Expected file values to apply, got %+v", c.Sampler)
	}
	if c.Sampler.WheelMultiplier != 1 || !c.Sampler.SmoothTouch {
		t.Errorf("Expected untouched keys to keep defaults, got %+v", c.Sampler)
	}
	if c.Rig.ShakeIntensity != 0 || c.Rig.DepthRange != 2.5 {
		t.Errorf("Expected an explicit zero to stick, got %+v", c.Rig)
	}
	if c.Effects.Enabled.Chromatic || !c.Effects.Enabled.Bloom {
		t.Errorf("Expected only chromatic disabled, got %+v", c.Effects.Enabled)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{"equal strengths", "layers: {foreground: 1, midground: 1, background: 0.4}\n", ErrLayerOrdering},
		{"inverted strengths", "layers: {foreground: 0.4, midground: 1, background: 1.8}\n", ErrLayerOrdering},
		{"negative background", "layers: {background: -0.1}\n", ErrLayerOrdering},
		{"direction", "sampler: {direction: diagonal}\n", ErrInvalidConfig},
		{"mode", "shots: {mode: random}\n", ErrInvalidConfig},
		{"negative duration", "narrative: {duration: -1}\n", ErrInvalidConfig},
		{"negative rate", "engine: {tickRate: -5}\n", ErrInvalidConfig},
		{"fov", "rig: {fov: 190}\n", ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
	if !errors.Is(ErrLayerOrdering, parallax.ErrLayerOrdering) {
		t.Errorf("Expected the config sentinel to match the field's")
	}
}

func TestLoadAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cinescroll.yaml")
	c := Default()
	c.Mobile = true
	c.Narrative.Particles = 40
	if err := c.Write(path); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !loaded.Mobile || loaded.Narrative.Particles != 40 || loaded.Sampler.MinTouchDt != time.Millisecond {
		t.Errorf("Expected written values back, got %+v", loaded)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("sampler: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Errorf("Expected an error for malformed YAML")
	}
}

func TestSamplerOptionsBuildConfiguredSampler(t *testing.T) {
	c := Default()
	c.Sampler.LineModeMultiplier = 20
	c.Sampler.Smooth = false
	opts := append(c.SamplerOptions(), motion.WithBounds(motion.Bounds{Min: 0, Max: 1000}))
	s := motion.NewSampler(opts...)

	s.IngestWheel(2, motion.WheelModeLine)
	if st := s.Tick(1.0 / 60); st.Target != 40 || st.Current != 40 {
		t.Errorf("Expected an unsmoothed jump to 40, got %+v", st)
	}
}

func TestChoreographerOptions(t *testing.T) {
	dir := t.TempDir()
	shotFile := filepath.Join(dir, "shots.yaml")
	if err := choreography.WriteShots(choreography.MobileShots()[:3], shotFile); err != nil {
		t.Fatalf("Failed to write shots: %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		sections int
		mode     choreography.Mode
		wantErr  bool
	}{
		{"desktop library", func(c *Config) {}, 6, choreography.ModeScroll, false},
		{"timeline mode", func(c *Config) { c.Shots.Mode = "Timeline" }, 6, choreography.ModeTimeline, false},
		{"shot file", func(c *Config) { c.Shots.File = shotFile }, 3, choreography.ModeScroll, false},
		{"missing shot file", func(c *Config) { c.Shots.File = filepath.Join(dir, "nope.yaml") }, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			opts, err := c.ChoreographerOptions()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			ch := choreography.NewChoreographer(opts...)
			if ch.SectionCount() != tt.sections || ch.Mode() != tt.mode {
				t.Errorf("Expected %d sections in mode %d, got %d in %d", tt.sections, tt.mode, ch.SectionCount(), ch.Mode())
			}
		})
	}
}

func TestComponentOptionsApply(t *testing.T) {
	c := Default()
	c.Mobile = true
	if got := len(c.RigOptions()); got != 9 {
		t.Errorf("Expected 9 rig options, got %d", got)
	}
	field, err := parallax.NewField(c.FieldOptions()...)
	if err != nil {
		t.Fatalf("Expected a valid field, got %v", err)
	}
	defer field.Close()
	if s := field.Strengths(); s.Foreground != 1.8 || s.Background != 0.4 {
		t.Errorf("Expected configured strengths, got %+v", s)
	}
	if len(c.EngineOptions()) != 3 || len(c.WindowOptions()) != 2 || len(c.RendererOptions()) != 1 {
		t.Errorf("Expected engine, window and renderer options")
	}
}
