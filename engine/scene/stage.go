package scene

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/fog"
	"github.com/Carmen-Shannon/cinescroll/engine/game_object"
	"github.com/Carmen-Shannon/cinescroll/engine/light"
	"github.com/Carmen-Shannon/cinescroll/engine/model"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

// Light names used by the stage rig.
const (
	LightKey        = "key"
	LightFill       = "fill"
	LightRim        = "rim"
	LightAccent     = "accent"
	LightHemisphere = "hemisphere"
)

// Decor is a stage object that belongs to a depth layer.
type Decor struct {
	Object    game_object.GameObject
	Layer     parallax.Layer
	DriftRate float32
	DepthBias float32
	Phase     float32
}

// Stage is the default cinematic set: a scene with the three-point rig, an accent light, the fog,
// one motif per section and the depth-layer decor.
type Stage struct {
	Scene  Scene
	Key    light.Light
	Fill   light.Light
	Rim    light.Light
	Accent light.Light
	Motifs []game_object.GameObject
	Decor  []Decor
}

type stageConfig struct {
	mobile   bool
	seed     uint64
	composer postprocess.Composer
}

// StageOption configures NewStage.
type StageOption func(*stageConfig)

// WithMobile selects the reduced light rig and decor counts.
//
// Parameters:
//   - mobile: whether to build the mobile stage
//
// Returns:
//   - StageOption: option function to apply
func WithMobile(mobile bool) StageOption {
	return func(c *stageConfig) {
		c.mobile = mobile
	}
}

// WithStageSeed seeds the decor rotations and background jitter.
//
// Parameters:
//   - seed: generator seed
//
// Returns:
//   - StageOption: option function to apply
func WithStageSeed(seed uint64) StageOption {
	return func(c *stageConfig) {
		c.seed = seed
	}
}

// WithStageComposer attaches a post-process chain to the stage scene.
//
// Parameters:
//   - composer: the composer, may be nil
//
// Returns:
//   - StageOption: option function to apply
func WithStageComposer(composer postprocess.Composer) StageOption {
	return func(c *stageConfig) {
		c.composer = composer
	}
}

// NewStage builds the default set around cam. The first motif starts visible, the rest hidden.
//
// Parameters:
//   - cam: the scene camera (must not be nil)
//   - options: stage options
//
// Returns:
//   - *Stage: the populated stage
func NewStage(cam camera.Camera, options ...StageOption) *Stage {
	cfg := stageConfig{seed: 1}
	for _, option := range options {
		option(&cfg)
	}
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x5851f42d4c957f2d))

	keyIntensity := float32(1.85)
	if cfg.mobile {
		keyIntensity = 1.35
	}
	st := &Stage{
		Key:    light.NewLight(light.LightTypeDirectional, light.WithName(LightKey), light.WithColor(0xffffff), light.WithIntensity(keyIntensity), light.WithPosition(5.5, 4.8, 6.8)),
		Fill:   light.NewLight(light.LightTypeDirectional, light.WithName(LightFill), light.WithColor(0x7f95ff), light.WithIntensity(0.82), light.WithPosition(-6.5, 2.4, 2.2)),
		Rim:    light.NewLight(light.LightTypeDirectional, light.WithName(LightRim), light.WithColor(0xb48cff), light.WithIntensity(1.1), light.WithPosition(0.5, 3.2, -6.8)),
		Accent: light.NewLight(light.LightTypePoint, light.WithName(LightAccent), light.WithColor(0x6b83ff), light.WithIntensity(1.2), light.WithRange(12), light.WithPosition(0, 0, 3)),
	}
	hemi := light.NewLight(light.LightTypeHemisphere, light.WithName(LightHemisphere), light.WithColor(0x8fa3ff), light.WithGroundColor(0x0b0c12), light.WithIntensity(0.34))

	st.Motifs = buildMotifs()
	st.Decor = buildDecor(cfg.mobile, rng)

	objects := make([]game_object.GameObject, 0, len(st.Motifs)+len(st.Decor))
	objects = append(objects, st.Motifs...)
	for _, d := range st.Decor {
		objects = append(objects, d.Object)
	}

	st.Scene = NewScene("stage", cam,
		WithActive(true),
		WithFog(fog.NewFog(8, 20, common.ColorFromHex(0x0a0a0f))),
		WithComposer(cfg.composer),
		WithLights(hemi, st.Key, st.Fill, st.Rim, st.Accent),
		WithAmbientColor(common.ColorFromHex(0x0b0c12)),
		WithObjects(objects...),
	)
	return st
}

// buildMotifs creates one motif shell per section in section order.
func buildMotifs() []game_object.GameObject {
	shapes := []model.Model{
		model.Sphere(1, 32),
		model.Torus(1, 0.3, 16, 50),
		model.Box(1),
		model.Torus(0.8, 0.25, 16, 50),
		model.Icosahedron(0.44),
		model.Octahedron(0.68),
	}
	motifs := make([]game_object.GameObject, len(shapes))
	for i, shape := range shapes {
		name := shape.Name()
		if i < len(choreography.Sections) {
			name = choreography.Sections[i]
		}
		motifs[i] = game_object.NewGameObject(
			game_object.WithName("motif:"+name),
			game_object.WithVertices(shape.Vertices()),
			game_object.WithEnabled(i == 0),
		)
	}
	return motifs
}

// buildDecor lays out the foreground intrusions, the midground anchors and the background flow field.
func buildDecor(mobile bool, rng *rand.Rand) []Decor {
	intrusions, anchors, flow := 3, 3, 88
	if mobile {
		intrusions, anchors, flow = 2, 2, 42
	}
	var decor []Decor

	for i := range intrusions {
		fi := float32(i)
		x := -2.9 - fi*0.45
		if i%2 == 1 {
			x = 2.8 + fi*0.6
		}
		shape := model.Torus(0.3+fi*0.08, 0.06, 14, 96)
		if mobile {
			shape = model.Torus(0.3+fi*0.08, 0.06, 10, 64)
		}
		obj := game_object.NewGameObject(
			game_object.WithName("intrusion"),
			game_object.WithVertices(shape.Vertices()),
			game_object.WithPosition(x, -1.1+fi*0.6, 1.2+fi*0.5),
			game_object.WithRotation(rng.Float32()*math.Pi, rng.Float32()*math.Pi, 0),
			game_object.WithOpacity(0.22),
		)
		decor = append(decor, Decor{Object: obj, Layer: parallax.Foreground, DriftRate: 0.4 + fi*0.1, DepthBias: 0.25 + fi*0.08, Phase: fi})
	}

	for i := range anchors {
		fi := float32(i)
		x := 1.7 + fi*0.45
		shape := model.Torus(1, 0.08, 8, 48)
		if i%2 == 1 {
			x = -1.8 - fi*0.5
			shape = model.Icosahedron(1)
		}
		s := 0.72 + fi*0.12
		obj := game_object.NewGameObject(
			game_object.WithName("anchor"),
			game_object.WithVertices(shape.Vertices()),
			game_object.WithPosition(x, -0.35+fi*0.5, -2.8-fi*0.9),
			game_object.WithScale(s, s, s),
		)
		decor = append(decor, Decor{Object: obj, Layer: parallax.Midground, DriftRate: 0.22 + fi*0.08, DepthBias: 0.18 + fi*0.06, Phase: fi})
	}

	dot := model.Sphere(0.03, 8).Vertices()
	for i := range flow {
		col := float32(i%11) - 5
		row := float32(i / 11)
		obj := game_object.NewGameObject(
			game_object.WithName("flow"),
			game_object.WithVertices(dot),
			game_object.WithPosition(
				col*0.42+(rng.Float32()-0.5)*0.08,
				(row-4)*0.24+(rng.Float32()-0.5)*0.06,
				-7.6-row*0.16-rng.Float32()*0.4,
			),
			game_object.WithOpacity(0.72),
		)
		decor = append(decor, Decor{Object: obj, Layer: parallax.Background, DriftRate: 0.4, Phase: rng.Float32() * 2 * math.Pi})
	}
	return decor
}
