package choreography

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects how the choreographer turns scroll progress into a pose.
type Mode int

const (
	// ModeScroll interpolates linearly between the shots bracketing a smoothed global progress.
	ModeScroll Mode = iota
	// ModeTimeline plays the authored per-section choreography, scrubbed by section progress.
	ModeTimeline
)

// stateHandoff is the section-local progress past which the next section counts as current.
const stateHandoff float32 = 0.55

type choreographerImpl struct {
	mu *sync.Mutex

	shots     []Shot
	sections  []sectionTimeline
	mode      Mode
	smoothing float32
	scrub     float32

	navCurrent float32
	requested  float32
	applied    float32
	pose       Pose
}

// Choreographer holds an ordered shot sequence and produces the camera pose and channels for a progress value.
type Choreographer interface {
	// Sample interpolates the shot sequence at a global progress. It is pure and does not change live state.
	// Progress is clamped to [0, 1]; a progress exactly on a shot boundary resolves to the end of the lower segment.
	//
	// Parameters:
	//   - progress: normalized scroll progress
	//
	// Returns:
	//   - Pose: the interpolated pose and channels
	Sample(progress float32) Pose

	// AdvanceTimeline sets the requested timeline position from an external per-section scrub signal.
	// The applied position follows it with scrub smoothing on the next Update.
	//
	// Parameters:
	//   - sectionIndex: the section whose move is playing, clamped into range
	//   - localT: progress through that section, clamped to [0, 1]
	AdvanceTimeline(sectionIndex int, localT float32)

	// Update advances the live pose by one frame.
	// In ModeScroll the progress is eased by the navigation smoothing factor and then sampled.
	// In ModeTimeline the progress is split evenly across sections as the requested timeline position
	// and the frame proceeds as Step.
	//
	// Parameters:
	//   - progress: normalized scroll progress for this frame
	//   - dt: frame time in seconds
	//
	// Returns:
	//   - Pose: the live pose after this frame
	Update(progress, dt float32) Pose

	// Step eases the applied timeline position toward the position set by AdvanceTimeline
	// and evaluates the section timeline there, regardless of the active mode.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//
	// Returns:
	//   - Pose: the live pose after this frame
	Step(dt float32) Pose

	// Pose returns the live pose produced by the last Update or Step.
	//
	// Returns:
	//   - Pose: the live pose
	Pose() Pose

	// Progress returns the narrative progress in [0, 1] that the live pose represents.
	//
	// Returns:
	//   - float32: narrative progress
	Progress() float32

	// CurrentState returns the index of the section considered current.
	// The next section becomes current once its predecessor is more than 55% complete.
	//
	// Returns:
	//   - int: the current section index
	CurrentState() int

	// Mode returns the active mode.
	//
	// Returns:
	//   - Mode: the active mode
	Mode() Mode

	// SetMode switches mode. The applied timeline position is carried over so the pose does not jump.
	//
	// Parameters:
	//   - mode: the mode to switch to
	SetMode(mode Mode)

	// Shots returns a copy of the shot sequence.
	//
	// Returns:
	//   - []Shot: the shots
	Shots() []Shot

	// SectionCount returns the number of shots.
	//
	// Returns:
	//   - int: the shot count
	SectionCount() int
}

var _ Choreographer = &choreographerImpl{}

// NewChoreographer creates a Choreographer. Without WithShots it uses the desktop shot library.
//
// Parameters:
//   - options: functional options for the choreographer
//
// Returns:
//   - Choreographer: the newly created choreographer
func NewChoreographer(options ...ChoreographerBuilderOption) Choreographer {
	c := &choreographerImpl{
		mu:        &sync.Mutex{},
		shots:     DesktopShots(),
		mode:      ModeScroll,
		smoothing: 0.055,
		scrub:     1.2,
	}
	for _, opt := range options {
		opt(c)
	}
	c.buildSections()
	c.pose = c.sampleLocked(0)
	return c
}

func (c *choreographerImpl) buildSections() {
	c.sections = nil
	for i := 0; i+1 < len(c.shots); i++ {
		c.sections = append(c.sections, newSectionTimeline(i, c.shots[i], c.shots[i+1]))
	}
}

func (c *choreographerImpl) Sample(progress float32) Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleLocked(progress)
}

// sampleLocked interpolates the shot sequence. Caller must hold the mutex.
func (c *choreographerImpl) sampleLocked(progress float32) Pose {
	switch len(c.shots) {
	case 0:
		return Pose{Orientation: mgl32.QuatIdent()}
	case 1:
		return PoseOf(c.shots[0])
	}

	index, localT := c.bracket(progress)
	from, to := c.shots[index], c.shots[index+1]
	return Pose{
		Position:    LerpVec3(from.Position, to.Position, localT),
		Orientation: Slerp(from.Orientation, to.Orientation, localT),
		Channels:    from.Channels.Lerp(to.Channels, localT),
	}
}

// bracket maps a global progress to a segment index and local progress.
// Requires at least two shots.
func (c *choreographerImpl) bracket(progress float32) (int, float32) {
	segments := len(c.shots) - 1
	scaled := common.Clamp01(progress) * float32(segments)
	index := int(common.Floor(scaled))
	if index > segments-1 {
		index = segments - 1
	}
	localT := scaled - float32(index)
	if index > 0 && localT == 0 {
		index--
		localT = 1
	}
	return index, localT
}

func (c *choreographerImpl) AdvanceTimeline(sectionIndex int, localT float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requested = c.timelinePosition(sectionIndex, localT)
}

// timelinePosition packs a section index and local progress into one scalar. Caller must hold the mutex.
func (c *choreographerImpl) timelinePosition(sectionIndex int, localT float32) float32 {
	if len(c.sections) == 0 {
		return 0
	}
	sectionIndex = max(0, min(sectionIndex, len(c.sections)-1))
	return float32(sectionIndex) + common.Clamp01(localT)
}

func (c *choreographerImpl) Update(progress, dt float32) Pose {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeScroll || len(c.sections) == 0 {
		c.navCurrent += (common.Clamp01(progress) - c.navCurrent) * c.smoothing
		c.pose = c.sampleLocked(c.navCurrent)
		c.applied = c.navCurrent * float32(len(c.sections))
		c.requested = c.applied
		return c.pose
	}

	c.requested = common.Clamp01(progress) * float32(len(c.sections))
	return c.stepLocked(dt)
}

func (c *choreographerImpl) Step(dt float32) Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sections) == 0 {
		return c.pose
	}
	return c.stepLocked(dt)
}

// stepLocked moves the applied timeline position toward the requested one and evaluates the section.
// Caller must hold the mutex and ensure at least one section exists.
func (c *choreographerImpl) stepLocked(dt float32) Pose {
	if c.scrub <= 0 {
		c.applied = c.requested
	} else {
		k := 1 - float32(math.Exp(float64(-3*common.PositiveDelta(dt)/c.scrub)))
		c.applied += (c.requested - c.applied) * k
		if common.Abs(c.requested-c.applied) < 1e-4 {
			c.applied = c.requested
		}
	}
	c.navCurrent = c.applied / float32(len(c.sections))

	section, local := c.splitApplied()
	c.pose = c.sections[section].pose(local)
	return c.pose
}

// splitApplied unpacks the applied timeline position. Caller must hold the mutex.
func (c *choreographerImpl) splitApplied() (int, float32) {
	index := int(common.Floor(c.applied))
	if index > len(c.sections)-1 {
		index = len(c.sections) - 1
	}
	if index < 0 {
		index = 0
	}
	return index, common.Clamp01(c.applied - float32(index))
}

func (c *choreographerImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *choreographerImpl) Progress() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sections) == 0 {
		return 0
	}
	return common.Clamp01(c.requested / float32(len(c.sections)))
}

func (c *choreographerImpl) CurrentState() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sections) == 0 {
		return 0
	}
	index := int(common.Floor(c.requested))
	if index > len(c.sections)-1 {
		index = len(c.sections) - 1
	}
	if c.requested-float32(index) > stateHandoff {
		index++
	}
	return index
}

func (c *choreographerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *choreographerImpl) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

func (c *choreographerImpl) Shots() []Shot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Shot, len(c.shots))
	copy(out, c.shots)
	return out
}

func (c *choreographerImpl) SectionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.shots)
}
