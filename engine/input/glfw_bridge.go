package input

import (
	"github.com/Carmen-Shannon/cinescroll/engine/window"
)

// EventSource is the part of a host window the bridge binds to. window.Window satisfies it.
type EventSource interface {
	SetScrollCallback(callback func(dx, dy float32))
	SetCursorCallback(callback func(x, y float32))
	SetButtonCallback(callback func(button window.MouseButton, pressed bool, x, y float32))
	SetResizeCallback(callback func(width, height int))
	SetKeyDownCallback(callback func(keyCode uint32))
	Width() int
	Height() int
}

// Bind forwards a window's callbacks into the registry.
//
// Wheel notches become line-mode wheel events with the sign flipped so a downward scroll moves forward.
// Cursor motion becomes pointer events in normalized device coordinates. A left-button drag is reported as a
// touch gesture, so mouse users get the same drag and momentum as touch users.
// The callbacks are cleared when the registry is released.
//
// Parameters:
//   - src: the window
//   - r: the registry to dispatch into
func Bind(src EventSource, r Registry) {
	dragging := false

	src.SetScrollCallback(func(_, dy float32) {
		r.Dispatch(Event{Kind: KindWheel, DeltaY: -dy, Lines: true})
	})
	src.SetCursorCallback(func(x, y float32) {
		nx, ny := normalizedPointer(x, y, src.Width(), src.Height())
		r.Dispatch(Event{Kind: KindPointer, X: nx, Y: ny})
		if dragging {
			r.Dispatch(Event{Kind: KindTouchMove, X: x, Y: y})
		}
	})
	src.SetButtonCallback(func(button window.MouseButton, pressed bool, x, y float32) {
		if button != window.ButtonLeft {
			return
		}
		switch {
		case pressed && !dragging:
			dragging = true
			r.Dispatch(Event{Kind: KindTouchStart, X: x, Y: y})
		case !pressed && dragging:
			dragging = false
			r.Dispatch(Event{Kind: KindTouchEnd, X: x, Y: y})
		}
	})
	src.SetResizeCallback(func(width, height int) {
		r.Dispatch(Event{Kind: KindResize, Width: width, Height: height})
	})
	src.SetKeyDownCallback(func(keyCode uint32) {
		r.Dispatch(Event{Kind: KindKey, Key: keyCode})
	})

	r.OnRelease(func() {
		src.SetScrollCallback(nil)
		src.SetCursorCallback(nil)
		src.SetButtonCallback(nil)
		src.SetResizeCallback(nil)
		src.SetKeyDownCallback(nil)
	})
}

// normalizedPointer maps a pixel position to [-1, 1] with +y up. A zero-sized surface yields the center.
func normalizedPointer(x, y float32, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return x/float32(width)*2 - 1, -(y/float32(height)*2 - 1)
}
