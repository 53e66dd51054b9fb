package input

import (
	"log"
	"slices"
	"sync"
)

// Handler receives dispatched events.
type Handler func(Event)

type listener struct {
	id      uint64
	kind    Kind
	handler Handler
}

type registryImpl struct {
	mu *sync.Mutex

	nextID    uint64
	listeners []listener
	releasers []func()
	released  bool
}

// Registry routes host input events to listeners and tracks everything bound to the host so it can all be
// released at once.
//
// Input handlers only mutate target or queued state on the components they feed. Dispatch never advances
// a frame.
type Registry interface {
	// Listen registers a handler for one event kind.
	//
	// Parameters:
	//   - kind: the event kind
	//   - handler: the handler
	//
	// Returns:
	//   - func(): removes this handler; safe to call more than once
	Listen(kind Kind, handler Handler) func()

	// OnRelease records a function that unbinds a host event source. It runs once, from Release.
	// If the registry is already released, fn runs immediately.
	//
	// Parameters:
	//   - fn: the unbind function
	OnRelease(fn func())

	// Dispatch delivers ev to every handler of its kind in registration order.
	// A panicking handler is logged and does not stop the others.
	//
	// Parameters:
	//   - ev: the event
	Dispatch(ev Event)

	// Release removes every handler and runs the recorded unbind functions in reverse order.
	// Later calls do nothing, and a released registry ignores Listen and Dispatch.
	Release()

	// Released reports whether Release has run.
	Released() bool

	// Len returns the number of registered handlers.
	Len() int
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - Registry: the registry
func NewRegistry() Registry {
	return &registryImpl{mu: &sync.Mutex{}}
}

func (r *registryImpl) Listen(kind Kind, handler Handler) func() {
	if handler == nil {
		return func() {}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return func() {}
	}
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listener{id: id, kind: kind, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.listeners = slices.DeleteFunc(r.listeners, func(l listener) bool { return l.id == id })
		})
	}
}

func (r *registryImpl) OnRelease(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		fn()
		return
	}
	r.releasers = append(r.releasers, fn)
	r.mu.Unlock()
}

func (r *registryImpl) Dispatch(ev Event) {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return
	}
	var handlers []Handler
	for _, l := range r.listeners {
		if l.kind == ev.Kind {
			handlers = append(handlers, l.handler)
		}
	}
	r.mu.Unlock()

	for _, h := range handlers {
		deliver(h, ev)
	}
}

func (r *registryImpl) Release() {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return
	}
	r.released = true
	r.listeners = nil
	releasers := r.releasers
	r.releasers = nil
	r.mu.Unlock()

	for i := len(releasers) - 1; i >= 0; i-- {
		releasers[i]()
	}
}

func (r *registryImpl) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

func (r *registryImpl) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

func deliver(h Handler, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Input] recovered from panic in %s handler: %v", ev.Kind, rec)
		}
	}()
	h(ev)
}
