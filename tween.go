package sprig

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MatrixTween animates all 16 cells of a matrix over a fixed duration.
// Call Update(dt) each frame; values are written to the target matrix.
//
// Springs are the default way to move elements; tweens cover
// fixed-duration effects and camera resets.
type MatrixTween struct {
	tweens [16]*gween.Tween
	target *Mat4
	Done   bool
}

// TweenMat4 creates a MatrixTween that animates *m to `to` over duration
// seconds. A nil easing function is linear.
func TweenMat4(m *Mat4, to Mat4, duration float32, fn ease.TweenFunc) *MatrixTween {
	if fn == nil {
		fn = ease.Linear
	}
	t := &MatrixTween{target: m}
	for i := range t.tweens {
		t.tweens[i] = gween.New(m[i], to[i], duration, fn)
	}
	return t
}

// Update advances every cell by dt seconds and writes the result.
func (t *MatrixTween) Update(dt float32) {
	if t.Done {
		return
	}
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		t.target[i] = val
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
}
