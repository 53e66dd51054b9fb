package renderer

import (
	"fmt"
	"os"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/engine/orchestrator"
	"gopkg.in/yaml.v3"
)

// Trace is the headless record of a run.
type Trace struct {
	Presented uint64               `yaml:"presented"`
	Stride    int                  `yaml:"stride"`
	Frames    []orchestrator.Frame `yaml:"frames"`
}

type traceRecorder struct {
	mu *sync.Mutex

	stride    int
	limit     int
	presented uint64
	frames    []orchestrator.Frame
}

// TraceRecorder is the headless presenter. It keeps every Nth presented frame in memory and writes
// them out as a YAML document.
type TraceRecorder interface {
	orchestrator.Presenter

	// Trace returns a copy of the recorded trace.
	//
	// Returns:
	//   - Trace: presented count, stride and kept frames
	Trace() Trace

	// Len returns the number of kept frames.
	Len() int

	// WriteTrace writes the recorded trace to a YAML file.
	//
	// Parameters:
	//   - path: destination file path
	//
	// Returns:
	//   - error: error if encoding or writing fails
	WriteTrace(path string) error
}

var _ TraceRecorder = &traceRecorder{}

// NewTraceRecorder creates a frame-trace recorder. By default every frame is kept without limit.
//
// Parameters:
//   - options: functional options for the recorder
//
// Returns:
//   - TraceRecorder: the newly created recorder
func NewTraceRecorder(options ...TraceBuilderOption) TraceRecorder {
	t := &traceRecorder{
		mu:     &sync.Mutex{},
		stride: 1,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *traceRecorder) Present(f orchestrator.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.presented++
	if (t.presented-1)%uint64(t.stride) != 0 {
		return
	}
	if t.limit > 0 && len(t.frames) >= t.limit {
		// keep the newest frames
		copy(t.frames, t.frames[1:])
		t.frames = t.frames[:len(t.frames)-1]
	}
	t.frames = append(t.frames, f)
}

func (t *traceRecorder) Trace() Trace {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Trace{
		Presented: t.presented,
		Stride:    t.stride,
		Frames:    append([]orchestrator.Frame(nil), t.frames...),
	}
}

func (t *traceRecorder) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.frames)
}

func (t *traceRecorder) WriteTrace(path string) error {
	data, err := yaml.Marshal(t.Trace())
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// ReadTrace loads a trace written by WriteTrace.
//
// Parameters:
//   - path: source file path
//
// Returns:
//   - Trace: the decoded trace
//   - error: error if the file cannot be read or parsed
func ReadTrace(path string) (Trace, error) {
	var tr Trace
	data, err := os.ReadFile(path)
	if err != nil {
		return tr, err
	}
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return tr, fmt.Errorf("decode trace %s: %w", path, err)
	}
	return tr, nil
}
