package tween

import (
	"sort"

	"github.com/Carmen-Shannon/cinescroll/common"
)

// Track animates one named channel toward To, starting from whatever value the channel
// holds at Start. When tracks on the same channel overlap, the one that started last wins.
type Track struct {
	Channel  string
	Start    float32
	Duration float32
	To       float32
	Ease     common.EaseFunc
}

type resolvedTrack struct {
	Track
	from float32
}

// Timeline is an immutable set of tracks evaluated at an arbitrary time.
// Evaluation is stateless, so scrubbing backwards gives the same values as playing forwards.
type Timeline struct {
	initial   map[string]float32
	channels  map[string][]resolvedTrack
	duration  float32
	channelID []string
}

// NewTimeline resolves the start value of every track and returns the timeline.
//
// Parameters:
//   - initial: the channel values at time 0
//   - tracks: the tracks to play
//
// Returns:
//   - *Timeline: the resolved timeline
func NewTimeline(initial map[string]float32, tracks ...Track) *Timeline {
	tl := &Timeline{
		initial:  make(map[string]float32, len(initial)),
		channels: make(map[string][]resolvedTrack),
	}
	for k, v := range initial {
		tl.initial[k] = v
		tl.channelID = append(tl.channelID, k)
	}

	grouped := make(map[string][]Track)
	for _, tr := range tracks {
		if tr.Ease == nil {
			tr.Ease = common.Linear
		}
		tr.Duration = max(0, tr.Duration)
		grouped[tr.Channel] = append(grouped[tr.Channel], tr)
		tl.duration = max(tl.duration, tr.Start+tr.Duration)
		if _, ok := tl.initial[tr.Channel]; !ok {
			tl.initial[tr.Channel] = 0
			tl.channelID = append(tl.channelID, tr.Channel)
		}
	}
	sort.Strings(tl.channelID)

	for ch, list := range grouped {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Start < list[j].Start })
		resolved := make([]resolvedTrack, 0, len(list))
		for _, tr := range list {
			from := evaluate(tl.initial[ch], resolved, tr.Start)
			resolved = append(resolved, resolvedTrack{Track: tr, from: from})
		}
		tl.channels[ch] = resolved
	}
	return tl
}

// Duration returns the end time of the last track.
func (tl *Timeline) Duration() float32 {
	return tl.duration
}

// Channels returns the sorted channel names.
func (tl *Timeline) Channels() []string {
	out := make([]string, len(tl.channelID))
	copy(out, tl.channelID)
	return out
}

// Value evaluates a single channel at time at. Unknown channels evaluate to 0.
//
// Parameters:
//   - channel: the channel name
//   - at: the time in seconds, clamped to [0, Duration]
//
// Returns:
//   - float32: the channel value
func (tl *Timeline) Value(channel string, at float32) float32 {
	at = common.Clamp(at, 0, tl.duration)
	return evaluate(tl.initial[channel], tl.channels[channel], at)
}

// ValueAtProgress evaluates a channel at a normalized position over the whole timeline.
//
// Parameters:
//   - channel: the channel name
//   - progress: the position in [0, 1]
//
// Returns:
//   - float32: the channel value
func (tl *Timeline) ValueAtProgress(channel string, progress float32) float32 {
	return tl.Value(channel, common.Clamp01(progress)*tl.duration)
}

// evaluate returns the value produced by the last track that has started by time at.
func evaluate(initial float32, tracks []resolvedTrack, at float32) float32 {
	v := initial
	for _, tr := range tracks {
		if at < tr.Start {
			break
		}
		local := float32(1)
		if tr.Duration > 0 && at < tr.Start+tr.Duration {
			local = common.Clamp01((at - tr.Start) / tr.Duration)
		}
		v = common.Lerp(tr.from, tr.To, tr.Ease(local))
	}
	return v
}
