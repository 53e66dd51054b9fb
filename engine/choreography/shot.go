package choreography

import (
	"errors"

	"github.com/Carmen-Shannon/cinescroll/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoShots is returned when a shot sequence is empty.
var ErrNoShots = errors.New("choreography: shot sequence is empty")

// Channels are the auxiliary continuous outputs carried by every shot.
// Downstream components read them but never write them.
type Channels struct {
	MotifDepth    float32 `yaml:"motifDepth"`
	MotifScale    float32 `yaml:"motifScale"`
	LightMix      float32 `yaml:"lightMix"`
	TransitionMix float32 `yaml:"transitionMix"`
	ArtifactPhase float32 `yaml:"artifactPhase"`
}

// Lerp interpolates every channel toward other.
//
// Parameters:
//   - other: the channels at t = 1
//   - t: interpolation factor
//
// Returns:
//   - Channels: the mixed channels
func (c Channels) Lerp(other Channels, t float32) Channels {
	return Channels{
		MotifDepth:    common.Lerp(c.MotifDepth, other.MotifDepth, t),
		MotifScale:    common.Lerp(c.MotifScale, other.MotifScale, t),
		LightMix:      common.Lerp(c.LightMix, other.LightMix, t),
		TransitionMix: common.Lerp(c.TransitionMix, other.TransitionMix, t),
		ArtifactPhase: common.Lerp(c.ArtifactPhase, other.ArtifactPhase, t),
	}
}

// Shot is an authored camera keyframe. Rotation keeps the authored Euler angles (XYZ order, radians)
// and Orientation is the quaternion derived from them.
type Shot struct {
	Name        string
	Position    mgl32.Vec3
	Rotation    mgl32.Vec3
	Orientation mgl32.Quat
	Channels    Channels
}

// NewShot builds a Shot from a position and XYZ Euler angles.
//
// Parameters:
//   - name: a label for the shot, usually the section it frames
//   - position: camera position
//   - rotation: Euler angles in radians, applied in XYZ order
//   - channels: auxiliary channel values
//
// Returns:
//   - Shot: the shot with its orientation resolved
func NewShot(name string, position, rotation mgl32.Vec3, channels Channels) Shot {
	return Shot{
		Name:        name,
		Position:    position,
		Rotation:    rotation,
		Orientation: EulerToQuat(rotation),
		Channels:    channels,
	}
}

// EulerToQuat converts XYZ-ordered Euler angles in radians to a unit quaternion.
func EulerToQuat(rotation mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(rotation.X(), rotation.Y(), rotation.Z(), mgl32.XYZ).Normalize()
}

// Pose is the interpolated camera pose and channels for one frame.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Channels    Channels
}

// PoseOf returns the pose held by a single shot.
func PoseOf(s Shot) Pose {
	return Pose{Position: s.Position, Orientation: s.Orientation, Channels: s.Channels}
}

// Slerp interpolates orientations along the shortest arc. The endpoints are returned exactly.
//
// Parameters:
//   - from: the orientation at t = 0
//   - to: the orientation at t = 1
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - mgl32.Quat: the interpolated unit quaternion
func Slerp(from, to mgl32.Quat, t float32) mgl32.Quat {
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}
	return mgl32.QuatSlerp(from, to, t).Normalize()
}

// LerpVec3 interpolates two vectors component-wise with exact endpoints.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		common.Lerp(a[0], b[0], t),
		common.Lerp(a[1], b[1], t),
		common.Lerp(a[2], b[2], t),
	}
}
