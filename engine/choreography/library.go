package choreography

import "github.com/go-gl/mathgl/mgl32"

// Sections are the page sections framed by the built-in shot libraries, in scroll order.
var Sections = []string{"hero", "services", "work", "pricing", "about", "contact"}

type shotEntry struct {
	p, r mgl32.Vec3
	ch   Channels
}

var desktopEntries = []shotEntry{
	{mgl32.Vec3{0.0, 0.0, 8.0}, mgl32.Vec3{0.0, 0.0, 0.0}, Channels{0.0, 1.0, 0.0, 0.08, 0.0}},
	{mgl32.Vec3{0.36, 0.16, 7.35}, mgl32.Vec3{-0.04, 0.09, 0.01}, Channels{0.2, 1.06, 0.2, 0.16, 0.15}},
	{mgl32.Vec3{-0.32, -0.14, 6.88}, mgl32.Vec3{0.03, -0.1, -0.01}, Channels{0.38, 1.1, 0.34, 0.25, 0.31}},
	{mgl32.Vec3{0.24, 0.15, 6.42}, mgl32.Vec3{-0.02, 0.14, 0.0}, Channels{0.56, 1.15, 0.5, 0.35, 0.48}},
	{mgl32.Vec3{-0.18, 0.05, 6.1}, mgl32.Vec3{0.02, -0.12, 0.0}, Channels{0.72, 1.2, 0.66, 0.48, 0.68}},
	{mgl32.Vec3{0.08, -0.04, 5.78}, mgl32.Vec3{-0.01, 0.18, 0.01}, Channels{0.9, 1.26, 0.82, 0.62, 0.9}},
}

var mobileEntries = []shotEntry{
	{mgl32.Vec3{0.0, 0.0, 8.0}, mgl32.Vec3{0.0, 0.0, 0.0}, Channels{0.0, 1.0, 0.0, 0.08, 0.0}},
	{mgl32.Vec3{0.18, 0.06, 7.35}, mgl32.Vec3{-0.02, 0.04, 0.0}, Channels{0.18, 1.05, 0.18, 0.16, 0.14}},
	{mgl32.Vec3{-0.16, -0.08, 6.95}, mgl32.Vec3{0.02, -0.05, -0.01}, Channels{0.36, 1.08, 0.33, 0.24, 0.3}},
	{mgl32.Vec3{0.10, 0.10, 6.55}, mgl32.Vec3{-0.01, 0.09, 0.0}, Channels{0.52, 1.12, 0.48, 0.32, 0.46}},
	{mgl32.Vec3{-0.08, 0.02, 6.25}, mgl32.Vec3{0.01, -0.08, 0.0}, Channels{0.68, 1.16, 0.62, 0.42, 0.66}},
	{mgl32.Vec3{0.0, 0.0, 5.95}, mgl32.Vec3{0.0, 0.12, 0.0}, Channels{0.84, 1.2, 0.78, 0.55, 0.86}},
}

// DesktopShots returns the six-shot library used on large viewports.
func DesktopShots() []Shot {
	return buildLibrary(desktopEntries)
}

// MobileShots returns the six-shot library used in reduced-performance mode.
// Offsets and rotations are roughly halved so small screens do not swing as far.
func MobileShots() []Shot {
	return buildLibrary(mobileEntries)
}

func buildLibrary(entries []shotEntry) []Shot {
	shots := make([]Shot, len(entries))
	for i, s := range entries {
		shots[i] = NewShot(Sections[i], s.p, s.r, s.ch)
	}
	return shots
}
