package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/cinescroll/config"
	"github.com/Carmen-Shannon/cinescroll/engine"
	"github.com/Carmen-Shannon/cinescroll/engine/choreography"
	"github.com/Carmen-Shannon/cinescroll/engine/input"
	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"github.com/Carmen-Shannon/cinescroll/engine/renderer"
	"github.com/Carmen-Shannon/cinescroll/engine/window"
	"golang.org/x/sync/errgroup"
)

func init() {
	// glfw must stay on the main thread.
	runtime.LockOSThread()
}

// options are the command-line settings that are not part of the config file.
type options struct {
	configPath  string
	headless    bool
	ticks       uint64
	scriptPath  string
	recordPath  string
	tracePath   string
	traceStride int
	dumpConfig  string
	writeShots  string
	verbose     bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (defaults apply when empty)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window and write a frame trace")
	flag.Uint64Var(&opts.ticks, "ticks", 600, "Headless tick budget")
	flag.StringVar(&opts.scriptPath, "script", "", "Scripted input replay (YAML)")
	flag.StringVar(&opts.recordPath, "record", "", "Record live input to this YAML script on exit")
	flag.StringVar(&opts.tracePath, "trace", "", "Headless frame trace output (YAML)")
	flag.IntVar(&opts.traceStride, "trace-stride", 1, "Keep one of every N frames in the trace")
	flag.StringVar(&opts.dumpConfig, "dump-config", "", "Write the resolved config to this file and exit")
	flag.StringVar(&opts.writeShots, "write-shots", "", "Write the resolved shot sequence to this file and exit")
	flag.BoolVar(&opts.verbose, "v", false, "Log narrative phase changes")

	mobile := flag.Bool("mobile", false, "Use the mobile shot library, light rig and pointer gains")
	tickRate := flag.Float64("tick-rate", 0, "Engine ticks per second")
	renderLimit := flag.Float64("render-limit", 0, "Render frame cap (0 = uncapped)")
	profiling := flag.Bool("profile", false, "Log FPS, memory and CPU once per second")
	shotMode := flag.String("mode", "", "Shot playback: scroll or timeline")
	shotFile := flag.String("shots", "", "Shot sequence file (YAML)")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")

	flag.Parse()

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			log.Fatalf("[Config] %v", err)
		}
		cfg = loaded
	}

	// Flags override the file only when given on the command line.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mobile":
			cfg.Mobile = *mobile
		case "tick-rate":
			cfg.Engine.TickRate = *tickRate
		case "render-limit":
			cfg.Engine.RenderLimit = *renderLimit
		case "profile":
			cfg.Engine.Profiling = *profiling
		case "mode":
			cfg.Shots.Mode = *shotMode
		case "shots":
			cfg.Shots.File = *shotFile
		case "width":
			cfg.Engine.Width = *width
		case "height":
			cfg.Engine.Height = *height
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Config] %v", err)
	}

	if opts.dumpConfig != "" || opts.writeShots != "" {
		if err := writeResolved(cfg, opts); err != nil {
			log.Fatalf("[Config] %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if opts.headless {
		err = runHeadless(ctx, cfg, opts)
	} else {
		err = runWindowed(ctx, cfg, opts)
	}
	if err != nil {
		log.Fatalf("[Engine] %v", err)
	}
}

// writeResolved writes the resolved config and/or shot sequence.
func writeResolved(cfg *config.Config, opts options) error {
	if opts.dumpConfig != "" {
		if err := cfg.Write(opts.dumpConfig); err != nil {
			return err
		}
		log.Printf("[Config] wrote %s", opts.dumpConfig)
	}
	if opts.writeShots != "" {
		choreoOptions, err := cfg.ChoreographerOptions()
		if err != nil {
			return err
		}
		shots := choreography.NewChoreographer(choreoOptions...).Shots()
		if err := choreography.WriteShots(shots, opts.writeShots); err != nil {
			return err
		}
		log.Printf("[Config] wrote %d shots to %s", len(shots), opts.writeShots)
	}
	return nil
}

// loadScript reads the replay script when one was requested.
func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return nil, nil
	}
	s, err := input.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// runHeadless drives the pipeline at a fixed step for the tick budget, replaying scripted input
// in lockstep, and writes the frame trace.
func runHeadless(ctx context.Context, cfg *config.Config, opts options) error {
	script, err := loadScript(opts.scriptPath)
	if err != nil {
		return err
	}

	registry := input.NewRegistry()
	var pump orchestrator.Pump
	if script != nil {
		pump = input.NewReplay(*script, registry)
	}

	trace := renderer.NewTraceRecorder(renderer.WithStride(opts.traceStride))
	p, err := buildPipeline(cfg, trace, pump, cfg.Engine.Width, cfg.Engine.Height, opts.verbose)
	if err != nil {
		return err
	}
	p.orchestrator.Attach(registry)

	eng := engine.NewEngine(append(cfg.EngineOptions(),
		engine.WithOrchestrator(p.orchestrator),
		engine.WithFixedStep(true),
		engine.WithTickBudget(opts.ticks),
	)...)

	start := time.Now()
	if err := eng.Run(ctx); err != nil {
		return err
	}

	last := p.orchestrator.Last()
	log.Printf("[Engine] %d ticks in %s, final progress %.3f in %s", eng.Ticks(), time.Since(start).Round(time.Millisecond), last.Progress, sectionName(last.State))
	for _, stage := range orchestrator.Stages {
		if n := p.orchestrator.Failures(stage); n > 0 {
			log.Printf("[Orchestrator] %s failed %d times", stage, n)
		}
	}

	if opts.tracePath != "" {
		if err := trace.WriteTrace(opts.tracePath); err != nil {
			return err
		}
		log.Printf("[Renderer] wrote %d frames to %s", trace.Len(), opts.tracePath)
	}
	return nil
}

// runWindowed opens the window and the wgpu presenter, runs the engine on the main goroutine and a
// scripted replay, if any, alongside it.
func runWindowed(ctx context.Context, cfg *config.Config, opts options) error {
	script, err := loadScript(opts.scriptPath)
	if err != nil {
		return err
	}

	win, err := window.NewWindow(cfg.WindowOptions()...)
	if err != nil {
		return err
	}
	rnd, err := renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height(), cfg.RendererOptions()...)
	if err != nil {
		_ = win.Close()
		return err
	}

	registry := input.NewRegistry()
	var recorder *input.Recorder
	if opts.recordPath != "" {
		recorder = input.NewRecorder(registry, time.Now)
	}

	p, err := buildPipeline(cfg, rnd, nil, win.Width(), win.Height(), opts.verbose)
	if err != nil {
		rnd.Close()
		_ = win.Close()
		return err
	}

	eng := engine.NewEngine(append(cfg.EngineOptions(),
		engine.WithWindow(win),
		engine.WithRenderer(rnd),
		engine.WithOrchestrator(p.orchestrator),
		engine.WithInput(registry),
	)...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	if script != nil {
		replay := input.NewReplay(*script, registry)
		g.Go(func() error {
			if err := replay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("replay: %w", err)
			}
			return nil
		})
	}

	fmt.Println("cinescroll: wheel or drag to scroll, arrows/PageUp/PageDown/Home/End/1-9 to navigate, Esc to quit")
	runErr := eng.Run(gctx)
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}

	if recorder != nil {
		if err := input.WriteScript(recorder.Script(), opts.recordPath); err != nil && runErr == nil {
			runErr = err
		}
		log.Printf("[Input] recorded %d events to %s", len(recorder.Script().Events), opts.recordPath)
	}
	return runErr
}
