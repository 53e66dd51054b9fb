package orchestrator

import (
	"fmt"

	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/effects"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
)

// Stage identifies one step of the frame pipeline.
type Stage int

const (
	StageInput Stage = iota
	StageSampler
	StageChoreography
	StageEffects
	StageRig
	StageAtmosphere
	StageLayers
	StageNarrative
	StageRender
	stageCount
)

// Stages lists the pipeline in execution order.
var Stages = [stageCount]Stage{
	StageInput, StageSampler, StageChoreography, StageEffects, StageRig,
	StageAtmosphere, StageLayers, StageNarrative, StageRender,
}

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageSampler:
		return "sampler"
	case StageChoreography:
		return "choreography"
	case StageEffects:
		return "effects"
	case StageRig:
		return "rig"
	case StageAtmosphere:
		return "atmosphere"
	case StageLayers:
		return "layers"
	case StageNarrative:
		return "narrative"
	case StageRender:
		return "render"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// CameraPose is the camera output of a frame.
type CameraPose struct {
	Position    [3]float32 `yaml:"position"`
	Orientation [4]float32 `yaml:"orientation"`
	Fov         float32    `yaml:"fov"`
}

// Frame is everything one pipeline pass produced. Every stage of a pass reads the same Scroll and Progress.
type Frame struct {
	Index      uint64                `yaml:"index"`
	Time       float32               `yaml:"time"`
	Dt         float32               `yaml:"dt"`
	Scroll     motion.State          `yaml:"scroll"`
	Progress   float32               `yaml:"progress"`
	State      int                   `yaml:"state"`
	Channels   choreography.Channels `yaml:"channels"`
	Camera     CameraPose            `yaml:"camera"`
	Atmosphere atmosphere.Snapshot   `yaml:"atmosphere"`
	Effects    effects.State         `yaml:"effects"`
	Post       postprocess.Params    `yaml:"post"`
	Phase      string                `yaml:"phase"`
	Particles  int                   `yaml:"particles"`
	Failed     []string              `yaml:"failed,omitempty"`
}

// Presenter is the renderer side of the pipeline. Present runs as the last stage of every pass and must not block.
type Presenter interface {
	Present(f Frame)
}

// Pump feeds queued input into the pipeline at the top of a pass.
type Pump interface {
	Advance(dt float32) int
}
