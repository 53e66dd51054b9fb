package postprocess

import (
	"fmt"
	"sync"
)

// PassKind identifies a post-process pass.
type PassKind int

const (
	PassBloom PassKind = iota
	PassMotionBlur
	PassToneMapping
	PassChromatic
)

// String returns the pass name.
func (k PassKind) String() string {
	switch k {
	case PassBloom:
		return "bloom"
	case PassMotionBlur:
		return "motion-blur"
	case PassToneMapping:
		return "tone-mapping"
	case PassChromatic:
		return "chromatic"
	default:
		return fmt.Sprintf("pass(%d)", int(k))
	}
}

// Params are the values the renderer reads from the composer each frame.
// An absent or disabled pass reports its neutral value.
type Params struct {
	Bloom      float32 `yaml:"bloom"`
	MotionBlur float32 `yaml:"motion_blur"`
	Exposure   float32 `yaml:"exposure"`
	Chromatic  float32 `yaml:"chromatic"`
}

// NeutralParams leaves the image untouched.
var NeutralParams = Params{Exposure: 1}

type passImpl struct {
	mu *sync.Mutex

	kind    PassKind
	enabled bool
	value   float32
}

// Pass is a single scalar post-process stage. Values are clamped at 0.
type Pass interface {
	// Kind returns what the pass does.
	//
	// Returns:
	//   - PassKind: the kind
	Kind() PassKind

	// Enabled reports whether the renderer applies the pass.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled toggles the pass.
	//
	// Parameters:
	//   - enabled: true to apply the pass
	SetEnabled(enabled bool)

	// Value returns the pass strength: bloom strength, blur amount, exposure or chromatic offset.
	//
	// Returns:
	//   - float32: the value
	Value() float32

	// SetValue sets the pass strength. Negative values are clamped to 0.
	//
	// Parameters:
	//   - v: the value
	SetValue(v float32)
}

var _ Pass = &passImpl{}

func newPass(kind PassKind, value float32) *passImpl {
	return &passImpl{
		mu:      &sync.Mutex{},
		kind:    kind,
		enabled: true,
		value:   max(0, value),
	}
}

func (p *passImpl) Kind() PassKind {
	return p.kind
}

func (p *passImpl) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *passImpl) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

func (p *passImpl) Value() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *passImpl) SetValue(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = max(0, v)
}

type composerImpl struct {
	mu     *sync.Mutex
	passes []*passImpl
}

// Composer is the optional post-process chain of a renderer. Any pass may be missing.
type Composer interface {
	// Pass returns the pass of the given kind.
	//
	// Parameters:
	//   - kind: the pass kind
	//
	// Returns:
	//   - Pass: the pass, or nil if the chain has none
	Pass(kind PassKind) Pass

	// Passes returns the chain in application order.
	//
	// Returns:
	//   - []Pass: the passes
	Passes() []Pass

	// Params collects the values of the enabled passes.
	//
	// Returns:
	//   - Params: the current parameters
	Params() Params
}

var _ Composer = &composerImpl{}

// NewComposer creates a Composer with the passes selected by options, in the order given.
//
// Parameters:
//   - options: functional options adding passes
//
// Returns:
//   - Composer: the newly created composer
func NewComposer(options ...ComposerBuilderOption) Composer {
	c := &composerImpl{mu: &sync.Mutex{}}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *composerImpl) Pass(kind PassKind) Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.passes {
		if p.kind == kind {
			return p
		}
	}
	return nil
}

func (c *composerImpl) Passes() []Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Pass, len(c.passes))
	for i, p := range c.passes {
		out[i] = p
	}
	return out
}

func (c *composerImpl) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := NeutralParams
	for _, p := range c.passes {
		if !p.Enabled() {
			continue
		}
		v := p.Value()
		switch p.kind {
		case PassBloom:
			out.Bloom = v
		case PassMotionBlur:
			out.MotionBlur = v
		case PassToneMapping:
			out.Exposure = v
		case PassChromatic:
			out.Chromatic = v
		}
	}
	return out
}

// add appends a pass, replacing one of the same kind.
// Caller must hold the mutex or be the constructor.
func (c *composerImpl) add(kind PassKind, value float32) {
	for i, p := range c.passes {
		if p.kind == kind {
			c.passes[i] = newPass(kind, value)
			return
		}
	}
	c.passes = append(c.passes, newPass(kind, value))
}
