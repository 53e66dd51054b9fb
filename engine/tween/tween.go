package tween

import (
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
)

type tweenImpl struct {
	mu *sync.Mutex

	duration float32
	delay    float32
	elapsed  float32
	ease     common.EaseFunc

	onStart    func()
	onUpdate   func(eased float32)
	onComplete func()

	started  bool
	done     bool
	progress float32
}

// Tween drives a single eased 0->1 progress over a fixed duration, advanced by explicit time steps.
// It never reads a wall clock, so it behaves identically under synthetic dt in tests.
type Tween interface {
	// Advance moves the tween forward by dt seconds and fires any due callbacks.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous advance
	//
	// Returns:
	//   - bool: true once the tween has completed or was cancelled
	Advance(dt float32) bool

	// Progress returns the most recent eased progress in [0, 1] (BackOut curves may exceed 1).
	//
	// Returns:
	//   - float32: the eased progress
	Progress() float32

	// Done reports whether the tween has completed or was cancelled.
	//
	// Returns:
	//   - bool: true if the tween will no longer fire callbacks
	Done() bool

	// Cancel stops the tween without firing OnComplete.
	Cancel()

	// Finish jumps to the end, firing OnStart (if not yet fired), OnUpdate(1) and OnComplete.
	Finish()
}

var _ Tween = &tweenImpl{}

// NewTween creates a Tween. The default is a one second linear tween with no delay.
//
// Parameters:
//   - options: functional options for the tween
//
// Returns:
//   - Tween: the newly created tween
func NewTween(options ...TweenBuilderOption) Tween {
	t := &tweenImpl{
		mu:       &sync.Mutex{},
		duration: 1,
		ease:     common.Linear,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *tweenImpl) Advance(dt float32) bool {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return true
	}
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed < t.delay {
		t.mu.Unlock()
		return false
	}

	fireStart := !t.started
	t.started = true

	local := float32(1)
	if t.duration > 0 {
		local = common.Clamp01((t.elapsed - t.delay) / t.duration)
	}
	t.progress = t.ease(local)
	eased := t.progress
	finished := local >= 1
	if finished {
		t.done = true
	}
	onStart, onUpdate, onComplete := t.onStart, t.onUpdate, t.onComplete
	t.mu.Unlock()

	if fireStart && onStart != nil {
		onStart()
	}
	if onUpdate != nil {
		onUpdate(eased)
	}
	if finished && onComplete != nil {
		onComplete()
	}
	return finished
}

func (t *tweenImpl) Progress() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *tweenImpl) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *tweenImpl) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
}

func (t *tweenImpl) Finish() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	fireStart := !t.started
	t.started = true
	t.done = true
	t.elapsed = t.delay + t.duration
	t.progress = t.ease(1)
	eased := t.progress
	onStart, onUpdate, onComplete := t.onStart, t.onUpdate, t.onComplete
	t.mu.Unlock()

	if fireStart && onStart != nil {
		onStart()
	}
	if onUpdate != nil {
		onUpdate(eased)
	}
	if onComplete != nil {
		onComplete()
	}
}
