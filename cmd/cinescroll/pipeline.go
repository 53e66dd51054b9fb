package main

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/cinescroll/config"
	"github.com/Carmen-Shannon/cinescroll/engine/atmosphere"
	"github.com/Carmen-Shannon/cinescroll/engine/camera"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/effects"
	"github.com/Carmen-Shannon/cinescroll/engine/motion"
	"github.com/Carmen-Shannon/cinescroll/engine/narrative"
	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"github.com/Carmen-Shannon/cinescroll/engine/parallax"
	"github.com/Carmen-Shannon/cinescroll/engine/postprocess"
	"github.com/Carmen-Shannon/cinescroll/engine/scene"
)

// pipeline is the assembled frame pipeline and the pieces the CLI still needs after assembly.
type pipeline struct {
	orchestrator  orchestrator.Orchestrator
	choreographer choreography.Choreographer
	narrative     narrative.Narrative
	stage         *scene.Stage
}

// buildPipeline wires every component from the configuration around one camera and one stage.
//
// Parameters:
//   - cfg: the resolved configuration
//   - presenter: receives every frame
//   - pump: optional input source advanced at the top of every pass (may be nil)
//   - width: initial viewport width in pixels
//   - height: initial viewport height in pixels
//   - verbose: log narrative phase changes
//
// Returns:
//   - *pipeline: the assembled pipeline
//   - error: error if the shot file or the layer configuration is unusable
func buildPipeline(cfg *config.Config, presenter orchestrator.Presenter, pump orchestrator.Pump, width, height int, verbose bool) (*pipeline, error) {
	cam := camera.NewCamera(cfg.CameraOptions()...)
	composer := postprocess.NewComposer(postprocess.WithAllPasses(cfg.Effects.Bloom))

	stage := scene.NewStage(cam,
		scene.WithMobile(cfg.Mobile),
		scene.WithStageSeed(cfg.Narrative.Seed),
		scene.WithStageComposer(composer),
	)

	field, err := parallax.NewField(cfg.FieldOptions()...)
	if err != nil {
		return nil, fmt.Errorf("depth layers: %w", err)
	}
	for _, d := range stage.Decor {
		if err := field.AddToLayer(d.Object, d.Layer,
			parallax.WithDriftRate(d.DriftRate),
			parallax.WithDepthBias(d.DepthBias),
			parallax.WithPhase(d.Phase),
		); err != nil {
			field.Close()
			return nil, fmt.Errorf("depth layers: %w", err)
		}
	}

	choreoOptions, err := cfg.ChoreographerOptions()
	if err != nil {
		field.Close()
		return nil, err
	}
	choreographer := choreography.NewChoreographer(choreoOptions...)

	atm := atmosphere.NewAtmosphere(append(cfg.AtmosphereOptions(),
		atmosphere.WithFog(stage.Scene.Fog()),
		atmosphere.WithLights(stage.Key, stage.Fill, stage.Rim),
		atmosphere.WithAccentLight(stage.Accent),
	)...)

	nar := narrative.NewNarrative(append(cfg.NarrativeOptions(),
		narrative.WithMotifs(stage.Motifs...),
		narrative.WithCrossfader(atm),
	)...)
	if verbose {
		nar.OnPhase(func(p narrative.Phase) {
			log.Printf("[Narrative] phase %s", p)
		})
	}

	options := []orchestrator.OrchestratorBuilderOption{
		orchestrator.WithViewport(width, height),
		orchestrator.WithSampler(motion.NewSampler(cfg.SamplerOptions()...)),
		orchestrator.WithChoreographer(choreographer),
		orchestrator.WithRig(camera.NewRig(cam, cfg.RigOptions()...)),
		orchestrator.WithAtmosphere(atm),
		orchestrator.WithField(field),
		orchestrator.WithNarrative(nar),
		orchestrator.WithEffects(effects.NewEffects(append(cfg.EffectsOptions(), effects.WithComposer(composer))...)),
		orchestrator.WithScene(stage.Scene),
		orchestrator.WithMotifs(stage.Motifs...),
		orchestrator.WithPresenter(presenter),
	}
	if pump != nil {
		options = append(options, orchestrator.WithPump(pump))
	}

	return &pipeline{
		orchestrator:  orchestrator.NewOrchestrator(options...),
		choreographer: choreographer,
		narrative:     nar,
		stage:         stage,
	}, nil
}

// sectionName names a section index for log output.
func sectionName(i int) string {
	if i >= 0 && i < len(choreography.Sections) {
		return choreography.Sections[i]
	}
	return fmt.Sprintf("section %d", i)
}
