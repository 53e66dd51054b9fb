package input

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Script is a timed sequence of input events.
type Script struct {
	Events []Event `yaml:"events"`
}

// ParseScript decodes a YAML script and orders its events by time. Events with equal times keep file order.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Script: the script
//   - error: error if the document is malformed or an event has a negative time
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse input script: %w", err)
	}
	for i, ev := range s.Events {
		if ev.At < 0 {
			return Script{}, fmt.Errorf("input script event %d: negative time %v", i, ev.At)
		}
	}
	slices.SortStableFunc(s.Events, func(a, b Event) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		default:
			return 0
		}
	})
	return s, nil
}

// LoadScript reads and parses a YAML script file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Script: the script
//   - error: error if the file cannot be read or parsed
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read input script: %w", err)
	}
	return ParseScript(data)
}

// WriteScript saves a script as YAML.
//
// Parameters:
//   - s: the script
//   - path: the file path
//
// Returns:
//   - error: error if encoding or writing fails
func WriteScript(s Script, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode input script: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write input script: %w", err)
	}
	return nil
}

// Replay plays a script into a registry.
type Replay struct {
	mu *sync.Mutex

	script   Script
	registry Registry
	elapsed  float32
	next     int
}

// NewReplay creates a Replay positioned at the start of the script.
//
// Parameters:
//   - script: the events to play
//   - r: the registry to dispatch into
//
// Returns:
//   - *Replay: the replay
func NewReplay(script Script, r Registry) *Replay {
	return &Replay{mu: &sync.Mutex{}, script: script, registry: r}
}

// Advance moves the replay clock by dt and dispatches every event that has come due.
// Driving it from the frame tick makes a replay deterministic.
//
// Parameters:
//   - dt: elapsed seconds
//
// Returns:
//   - int: the number of events dispatched
func (p *Replay) Advance(dt float32) int {
	p.mu.Lock()
	p.elapsed += max(dt, 0)
	start := p.next
	for p.next < len(p.script.Events) && p.script.Events[p.next].At <= p.elapsed {
		p.next++
	}
	due := p.script.Events[start:p.next]
	p.mu.Unlock()

	for _, ev := range due {
		p.registry.Dispatch(ev)
	}
	return len(due)
}

// Run plays the remaining events against the wall clock, continuing from the current replay time.
//
// Parameters:
//   - ctx: cancels the replay
//
// Returns:
//   - error: ctx.Err() if cancelled before the last event, nil once every event has been dispatched
func (p *Replay) Run(ctx context.Context) error {
	start := time.Now().Add(-time.Duration(p.Elapsed() * float32(time.Second)))
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for !p.Done() {
		p.mu.Lock()
		at := p.script.Events[p.next].At
		p.mu.Unlock()

		wait := time.Duration(at*float32(time.Second)) - time.Since(start)
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		p.Advance(float32(time.Since(start).Seconds()) - p.Elapsed())
	}
	return nil
}

// Elapsed returns the replay clock in seconds.
func (p *Replay) Elapsed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elapsed
}

// Done reports whether every event has been dispatched.
func (p *Replay) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next >= len(p.script.Events)
}

// Reset rewinds the replay to the start.
func (p *Replay) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elapsed = 0
	p.next = 0
}

// Recorder captures dispatched events into a Script, stamping each with the time since recording began.
type Recorder struct {
	mu *sync.Mutex

	clock  func() time.Time
	start  time.Time
	events []Event
}

// NewRecorder starts recording every event kind dispatched through r. Recording stops when r is released.
//
// Parameters:
//   - r: the registry to observe
//   - clock: time source, time.Now when nil
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder(r Registry, clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	rec := &Recorder{mu: &sync.Mutex{}, clock: clock, start: clock()}
	for k := range kindCount {
		r.Listen(k, rec.record)
	}
	return rec
}

func (rec *Recorder) record(ev Event) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	ev.At = float32(rec.clock().Sub(rec.start).Seconds())
	rec.events = append(rec.events, ev)
}

// Script returns the events recorded so far.
func (rec *Recorder) Script() Script {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return Script{Events: slices.Clone(rec.events)}
}
