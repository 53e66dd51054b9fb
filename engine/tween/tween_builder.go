package tween

import "github.com/Carmen-Shannon/cinescroll/common"

// TweenBuilderOption is a functional option for configuring a Tween.
type TweenBuilderOption func(*tweenImpl)

// WithDuration sets the tween duration in seconds. Negative values clamp to 0,
// which completes the tween on its first advance past the delay.
//
// Parameters:
//   - seconds: the tween duration
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithDuration(seconds float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.duration = max(0, seconds)
	}
}

// WithDelay sets how long the tween waits before starting.
//
// Parameters:
//   - seconds: the start delay, negative values clamp to 0
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithDelay(seconds float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.delay = max(0, seconds)
	}
}

// WithEase sets the easing curve. A nil curve keeps Linear.
//
// Parameters:
//   - ease: the easing curve
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithEase(ease common.EaseFunc) TweenBuilderOption {
	return func(t *tweenImpl) {
		if ease != nil {
			t.ease = ease
		}
	}
}

// OnStart registers a callback fired once when the delay has elapsed.
//
// Parameters:
//   - callback: the start callback
//
// Returns:
//   - TweenBuilderOption: option function to apply
func OnStart(callback func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onStart = callback
	}
}

// OnUpdate registers a callback fired with the eased progress on every advance after the delay.
//
// Parameters:
//   - callback: the update callback
//
// Returns:
//   - TweenBuilderOption: option function to apply
func OnUpdate(callback func(eased float32)) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onUpdate = callback
	}
}

// OnComplete registers a callback fired once when the tween reaches its end.
// It is not fired when the tween is cancelled.
//
// Parameters:
//   - callback: the completion callback
//
// Returns:
//   - TweenBuilderOption: option function to apply
func OnComplete(callback func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onComplete = callback
	}
}
