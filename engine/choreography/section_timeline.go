package choreography

import (
	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/Carmen-Shannon/cinescroll/engine/tween"
)

const (
	chX             = "x"
	chY             = "y"
	chZ             = "z"
	chOrient        = "orient"
	chMotifDepth    = "motifDepth"
	chMotifScale    = "motifScale"
	chLightMix      = "lightMix"
	chTransitionMix = "transitionMix"
	chArtifactPhase = "artifactPhase"
)

// Timing of one section's choreography, in timeline seconds.
const (
	arcDuration        float32 = 0.74
	plungeDuration     float32 = 0.68
	settleStart        float32 = 0.68
	settleDuration     float32 = 0.24
	depthOvershootBase float32 = 0.22
	depthOvershootStep float32 = 0.03
	mixRiseStart       float32 = 0.16
	mixRiseDuration    float32 = 0.5
	mixRiseLift        float32 = 0.05
	mixLandStart       float32 = 0.62
	mixLandDuration    float32 = 0.4
)

// sectionTimeline is the choreography between shot index and shot index+1.
type sectionTimeline struct {
	from, to Shot
	timeline *tween.Timeline
}

// newSectionTimeline builds the camera move for one section: a power4 arc for x/y, orientation and channels,
// a depth plunge that overshoots the destination before an expo settle, and a transition-mix swell that
// rises past the midpoint and then lands on the destination value.
func newSectionTimeline(index int, from, to Shot) sectionTimeline {
	overshoot := depthOvershootBase + float32(index)*depthOvershootStep
	initial := map[string]float32{
		chX:             from.Position.X(),
		chY:             from.Position.Y(),
		chZ:             from.Position.Z(),
		chOrient:        0,
		chMotifDepth:    from.Channels.MotifDepth,
		chMotifScale:    from.Channels.MotifScale,
		chLightMix:      from.Channels.LightMix,
		chTransitionMix: from.Channels.TransitionMix,
		chArtifactPhase: from.Channels.ArtifactPhase,
	}

	arc := func(ch string, v float32) tween.Track {
		return tween.Track{Channel: ch, Start: 0, Duration: arcDuration, To: v, Ease: common.Power4InOut}
	}
	tl := tween.NewTimeline(initial,
		arc(chX, to.Position.X()),
		arc(chY, to.Position.Y()),
		arc(chOrient, 1),
		arc(chMotifDepth, to.Channels.MotifDepth),
		arc(chMotifScale, to.Channels.MotifScale),
		arc(chLightMix, to.Channels.LightMix),
		arc(chArtifactPhase, to.Channels.ArtifactPhase),
		tween.Track{Channel: chZ, Start: 0, Duration: plungeDuration, To: to.Position.Z() + overshoot, Ease: common.Power4Out},
		tween.Track{Channel: chZ, Start: settleStart, Duration: settleDuration, To: to.Position.Z(), Ease: common.ExpoOut},
		tween.Track{
			Channel:  chTransitionMix,
			Start:    mixRiseStart,
			Duration: mixRiseDuration,
			To:       (from.Channels.TransitionMix+to.Channels.TransitionMix)*0.5 + mixRiseLift,
			Ease:     common.Power2Out,
		},
		tween.Track{Channel: chTransitionMix, Start: mixLandStart, Duration: mixLandDuration, To: to.Channels.TransitionMix, Ease: common.ExpoOut},
	)
	return sectionTimeline{from: from, to: to, timeline: tl}
}

// pose evaluates the section at local progress t in [0, 1], mapped across the full timeline duration.
func (s sectionTimeline) pose(t float32) Pose {
	t = common.Clamp01(t)
	if t >= 1 {
		return PoseOf(s.to)
	}
	v := func(ch string) float32 { return s.timeline.ValueAtProgress(ch, t) }
	p := Pose{
		Orientation: Slerp(s.from.Orientation, s.to.Orientation, v(chOrient)),
		Channels: Channels{
			MotifDepth:    v(chMotifDepth),
			MotifScale:    v(chMotifScale),
			LightMix:      v(chLightMix),
			TransitionMix: v(chTransitionMix),
			ArtifactPhase: v(chArtifactPhase),
		},
	}
	p.Position[0], p.Position[1], p.Position[2] = v(chX), v(chY), v(chZ)
	return p
}
