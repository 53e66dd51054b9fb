package tween

import "sync"

type schedulerImpl struct {
	mu     *sync.Mutex
	active []Tween
}

// Scheduler advances a set of tweens together. Tweens added from inside a callback
// start advancing on the next call to Advance.
type Scheduler interface {
	// Add schedules a tween.
	//
	// Parameters:
	//   - t: the tween to schedule
	Add(t Tween)

	// Advance moves every scheduled tween forward and drops finished ones.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// Clear cancels every scheduled tween without firing completion callbacks.
	Clear()

	// Len returns the number of tweens still scheduled.
	//
	// Returns:
	//   - int: the active tween count
	Len() int
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates an empty Scheduler.
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler() Scheduler {
	return &schedulerImpl{mu: &sync.Mutex{}}
}

func (s *schedulerImpl) Add(t Tween) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = append(s.active, t)
}

func (s *schedulerImpl) Advance(dt float32) {
	s.mu.Lock()
	snapshot := make([]Tween, len(s.active))
	copy(snapshot, s.active)
	s.mu.Unlock()

	finished := make(map[Tween]bool, len(snapshot))
	for _, t := range snapshot {
		if t.Advance(dt) {
			finished[t] = true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.active[:0]
	for _, t := range s.active {
		if finished[t] || t.Done() {
			continue
		}
		kept = append(kept, t)
	}
	s.active = kept
}

func (s *schedulerImpl) Clear() {
	s.mu.Lock()
	snapshot := s.active
	s.active = nil
	s.mu.Unlock()

	for _, t := range snapshot {
		t.Cancel()
	}
}

func (s *schedulerImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
