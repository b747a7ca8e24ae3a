package sprig

import (
	"math"

	"github.com/tanema/gween/ease"
)

// maxTouches is the number of concurrently tracked fingers. Further touches
// are ignored until one of the tracked fingers lifts.
const maxTouches = 2

// Tap is a low-movement press and release, in viewport pixels.
type Tap struct {
	X, Y float64
}

// touchPoint is a tracked finger.
type touchPoint struct {
	id     int64
	pos    Vec2
	origin Vec2
	seq    uint64
}

// ScrollState accumulates pan and zoom gestures into the global (camera)
// transform and detects taps. Global is expressed in device space and is
// applied after every element matrix.
type ScrollState struct {
	Global Mat4

	cfg GestureConfig

	touches   [maxTouches]touchPoint
	touchUsed [maxTouches]bool
	touchSeq  uint64

	mouseDown bool
	last      Vec2

	// pressing is true from the first press until every pointer is up.
	pressing    bool
	pressOrigin Vec2
	moved       bool
	fingers     int

	anim *MatrixTween
}

// NewScrollState creates a ScrollState with an identity camera.
func NewScrollState(cfg GestureConfig) *ScrollState {
	return &ScrollState{Global: Identity(), cfg: cfg}
}

// PressOrigin returns where the current press started. ok is false when no
// pointer is down.
func (s *ScrollState) PressOrigin() (pos Vec2, ok bool) {
	return s.pressOrigin, s.pressing
}

// ActiveTouches returns the number of tracked fingers.
func (s *ScrollState) ActiveTouches() int {
	n := 0
	for _, used := range s.touchUsed {
		if used {
			n++
		}
	}
	return n
}

// Handle applies one input event. It returns a Tap when the event completes
// a press that never left UnmovedRadius and involved at most one finger.
func (s *ScrollState) Handle(ev Event, display Size) (Tap, bool) {
	pos := Vec2{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case EventPointerDown:
		s.mouseDown = true
		s.last = pos
		s.beginPress(pos)

	case EventPointerMove:
		if s.mouseDown {
			s.pan(pos.X-s.last.X, pos.Y-s.last.Y, display)
			s.trackMovement(s.pressOrigin, pos)
		}
		s.last = pos

	case EventPointerUp:
		if !s.mouseDown {
			return Tap{}, false
		}
		s.mouseDown = false
		s.pan(pos.X-s.last.X, pos.Y-s.last.Y, display)
		s.last = pos
		return s.endPress(pos, true)

	case EventWheel:
		s.zoom(1+ev.DY*s.cfg.WheelSensitivity, s.last, display)

	case EventTouch:
		return s.handleTouch(ev, pos, display)
	}
	return Tap{}, false
}

func (s *ScrollState) handleTouch(ev Event, pos Vec2, display Size) (Tap, bool) {
	switch ev.Phase {
	case TouchStarted:
		slot := s.freeSlot(ev.TouchID)
		if slot < 0 {
			return Tap{}, false
		}
		s.touchSeq++
		s.touches[slot] = touchPoint{id: ev.TouchID, pos: pos, origin: pos, seq: s.touchSeq}
		s.touchUsed[slot] = true
		if s.ActiveTouches() == 1 && !s.pressing {
			s.beginPress(pos)
		} else {
			s.fingers = max(s.fingers, s.ActiveTouches())
		}

	case TouchMoved:
		slot := s.slotOf(ev.TouchID)
		if slot < 0 {
			return Tap{}, false
		}
		prev := s.touches[slot].pos
		if s.ActiveTouches() == 1 {
			s.pan(pos.X-prev.X, pos.Y-prev.Y, display)
			s.touches[slot].pos = pos
		} else {
			other := s.touches[1-slot]
			before := distance(prev, other.pos)
			s.touches[slot].pos = pos
			after := distance(pos, other.pos)
			// The anchor is the finger pressed earliest.
			anchor := pos
			if other.seq < s.touches[slot].seq {
				anchor = other.pos
			}
			s.zoom(1+(after-before)*s.cfg.ZoomSensitivity, anchor, display)
		}
		s.trackMovement(s.touches[slot].origin, pos)

	case TouchEnded, TouchCancelled:
		slot := s.slotOf(ev.TouchID)
		if slot < 0 {
			return Tap{}, false
		}
		s.touchUsed[slot] = false
		s.touches[slot] = touchPoint{}
		if s.ActiveTouches() == 0 {
			return s.endPress(pos, ev.Phase == TouchEnded)
		}
	}
	return Tap{}, false
}

func (s *ScrollState) beginPress(pos Vec2) {
	s.pressing = true
	s.pressOrigin = pos
	s.moved = false
	s.fingers = 1
}

func (s *ScrollState) endPress(pos Vec2, allowTap bool) (Tap, bool) {
	if !s.pressing {
		return Tap{}, false
	}
	s.trackMovement(s.pressOrigin, pos)
	tap := allowTap && !s.moved && s.fingers <= 1
	s.pressing = false
	s.moved = false
	s.fingers = 0
	if tap {
		return Tap{X: pos.X, Y: pos.Y}, true
	}
	return Tap{}, false
}

// trackMovement latches moved once a pointer leaves UnmovedRadius of where
// it was pressed.
func (s *ScrollState) trackMovement(origin, pos Vec2) {
	if distance(origin, pos) > s.cfg.UnmovedRadius {
		s.moved = true
	}
}

func (s *ScrollState) freeSlot(id int64) int {
	if i := s.slotOf(id); i >= 0 {
		return i
	}
	for i := range s.touchUsed {
		if !s.touchUsed[i] {
			return i
		}
	}
	return -1
}

func (s *ScrollState) slotOf(id int64) int {
	for i := range s.touches {
		if s.touchUsed[i] && s.touches[i].id == id {
			return i
		}
	}
	return -1
}

// pan post-multiplies a translation by (dx, dy) pixels.
func (s *ScrollState) pan(dx, dy float64, display Size) {
	if !display.Valid() || (dx == 0 && dy == 0) {
		return
	}
	s.anim = nil
	t := Translate(float32(2*dx/display.Width), float32(2*dy/display.Height), 0)
	s.Global = t.Mul(s.Global)
}

// zoom post-multiplies a uniform scale by f about the anchor (pixels).
func (s *ScrollState) zoom(f float64, anchor Vec2, display Size) {
	if !display.Valid() || f == 1 || !(f > 0) {
		return
	}
	f = math.Max(0.5, math.Min(f, 2))
	s.anim = nil
	ax, ay := PixelToDevice(anchor, display)
	z := Translate(ax, ay, 0).Mul(Scale(float32(f), float32(f), 1)).Mul(Translate(-ax, -ay, 0))
	s.Global = z.Mul(s.Global)
}

// AnimateTo tweens the camera to target over duration seconds. Any pan or
// zoom input cancels the animation.
func (s *ScrollState) AnimateTo(target Mat4, duration float32, fn ease.TweenFunc) {
	s.anim = TweenMat4(&s.Global, target, duration, fn)
}

// Reset tweens the camera back to the identity.
func (s *ScrollState) Reset(duration float32) {
	s.AnimateTo(Identity(), duration, ease.OutCubic)
}

// Animating reports whether a camera tween is running.
func (s *ScrollState) Animating() bool {
	return s.anim != nil
}

// Update advances the camera tween by dt seconds.
func (s *ScrollState) Update(dt float32) {
	if s.anim == nil {
		return
	}
	s.anim.Update(dt)
	if s.anim.Done {
		s.anim = nil
	}
}

func distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
