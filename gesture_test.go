package sprig

import "testing"

func newScroll() (*ScrollState, Size) {
	return NewScrollState(DefaultGestureConfig()), Size{Width: 800, Height: 600}
}

// feed applies events in order and returns the taps produced.
func feed(s *ScrollState, d Size, events ...Event) []Tap {
	var taps []Tap
	for _, ev := range events {
		if tap, ok := s.Handle(ev, d); ok {
			taps = append(taps, tap)
		}
	}
	return taps
}

// --- taps ---

func TestTapWithinUnmovedRadius(t *testing.T) {
	tests := []struct {
		name  string
		upX   float64
		wantN int
	}{
		{"no movement", 100, 1},
		{"small wobble", 110, 1},
		{"exactly at radius", 140, 1},
		{"past radius", 141, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d := newScroll()
			taps := feed(s, d,
				PointerDownEvent(100, 100),
				PointerMoveEvent(tt.upX, 100),
				PointerUpEvent(tt.upX, 100),
			)
			if len(taps) != tt.wantN {
				t.Fatalf("taps = %v, want %d", taps, tt.wantN)
			}
			if tt.wantN == 1 && (taps[0].X != tt.upX || taps[0].Y != 100) {
				t.Errorf("tap at %v, want release position", taps[0])
			}
		})
	}
}

func TestTapMovedIsSticky(t *testing.T) {
	s, d := newScroll()
	taps := feed(s, d,
		PointerDownEvent(100, 100),
		PointerMoveEvent(300, 100),
		PointerMoveEvent(100, 100),
		PointerUpEvent(100, 100),
	)
	if len(taps) != 0 {
		t.Errorf("taps = %v, want none after leaving the radius", taps)
	}
}

func TestReleaseWithoutPressIsIgnored(t *testing.T) {
	s, d := newScroll()
	if taps := feed(s, d, PointerUpEvent(10, 10)); len(taps) != 0 {
		t.Errorf("taps = %v", taps)
	}
}

func TestPressOrigin(t *testing.T) {
	s, d := newScroll()
	if _, ok := s.PressOrigin(); ok {
		t.Error("PressOrigin ok before any press")
	}
	feed(s, d, PointerDownEvent(30, 40))
	if pos, ok := s.PressOrigin(); !ok || pos != (Vec2{30, 40}) {
		t.Errorf("PressOrigin = %v, %v", pos, ok)
	}
}

// --- pan ---

func TestMouseDragPans(t *testing.T) {
	s, d := newScroll()
	feed(s, d,
		PointerDownEvent(100, 100),
		PointerMoveEvent(200, 130),
		PointerUpEvent(200, 130),
	)
	x, y := s.Global.Translation()
	assertNear(t, "pan x", x, 2*100.0/800)
	assertNear(t, "pan y", y, 2*30.0/600)
}

func TestHoverDoesNotPan(t *testing.T) {
	s, d := newScroll()
	feed(s, d, PointerMoveEvent(100, 100), PointerMoveEvent(500, 400))
	assertMat4(t, "global", s.Global, Identity())
}

func TestReleaseCompletesDrag(t *testing.T) {
	s, d := newScroll()
	feed(s, d, PointerDownEvent(0, 0), PointerUpEvent(80, 0))
	x, _ := s.Global.Translation()
	assertNear(t, "pan x", x, 2*80.0/800)
}

func TestSingleTouchPansAndTaps(t *testing.T) {
	s, d := newScroll()
	taps := feed(s, d,
		TouchEvent(7, TouchStarted, 100, 100),
		TouchEvent(7, TouchMoved, 120, 100),
		TouchEvent(7, TouchEnded, 120, 100),
	)
	if len(taps) != 1 {
		t.Errorf("taps = %v, want 1", taps)
	}
	x, _ := s.Global.Translation()
	assertNear(t, "pan x", x, 2*20.0/800)
}

func TestCancelledTouchDoesNotTap(t *testing.T) {
	s, d := newScroll()
	taps := feed(s, d,
		TouchEvent(1, TouchStarted, 100, 100),
		TouchEvent(1, TouchCancelled, 100, 100),
	)
	if len(taps) != 0 {
		t.Errorf("taps = %v", taps)
	}
	if s.ActiveTouches() != 0 {
		t.Errorf("ActiveTouches = %d", s.ActiveTouches())
	}
}

// --- zoom ---

func TestPinchZoomsAboutFirstFinger(t *testing.T) {
	s, d := newScroll()
	taps := feed(s, d,
		TouchEvent(1, TouchStarted, 100, 100),
		TouchEvent(2, TouchStarted, 300, 100),
		TouchEvent(2, TouchMoved, 400, 100),
	)
	// Distance grew by 100 px.
	f := float32(1 + 100*DefaultZoomSensitivity)
	assertNear(t, "zoom", s.Global[0], f)
	assertNear(t, "zoom y", s.Global[5], f)

	// The first finger stays fixed on screen.
	ax, ay := PixelToDevice(Vec2{100, 100}, d)
	gx, gy := s.Global.TransformPoint(ax, ay)
	assertNear(t, "anchor x", gx, ax)
	assertNear(t, "anchor y", gy, ay)

	taps = append(taps, feed(s, d,
		TouchEvent(2, TouchEnded, 400, 100),
		TouchEvent(1, TouchEnded, 100, 100),
	)...)
	if len(taps) != 0 {
		t.Errorf("pinch produced taps %v", taps)
	}
}

func TestPinchAnchorsOnEarliestFinger(t *testing.T) {
	s, d := newScroll()
	feed(s, d,
		TouchEvent(1, TouchStarted, 100, 100),
		TouchEvent(2, TouchStarted, 300, 100),
		TouchEvent(1, TouchEnded, 100, 100),
		// Reuses the slot finger 1 freed, but finger 2 is older.
		TouchEvent(3, TouchStarted, 500, 100),
		TouchEvent(3, TouchMoved, 600, 100),
	)
	assertNear(t, "zoom", s.Global[0], float32(1+100*DefaultZoomSensitivity))

	ax, ay := PixelToDevice(Vec2{300, 100}, d)
	gx, gy := s.Global.TransformPoint(ax, ay)
	assertNear(t, "anchor x", gx, ax)
	assertNear(t, "anchor y", gy, ay)
}

func TestThirdTouchIgnored(t *testing.T) {
	s, d := newScroll()
	feed(s, d,
		TouchEvent(1, TouchStarted, 100, 100),
		TouchEvent(2, TouchStarted, 200, 100),
		TouchEvent(3, TouchStarted, 300, 100),
		TouchEvent(3, TouchMoved, 600, 500),
	)
	if s.ActiveTouches() != 2 {
		t.Errorf("ActiveTouches = %d, want 2", s.ActiveTouches())
	}
	assertMat4(t, "global", s.Global, Identity())
}

func TestWheelZoomsAtPointer(t *testing.T) {
	s, d := newScroll()
	feed(s, d, PointerMoveEvent(400, 300), WheelEvent(0, 1))
	assertNear(t, "zoom", s.Global[0], float32(1+DefaultWheelSensitivity))
	x, y := s.Global.Translation()
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 0)
}

func TestZoomIsClamped(t *testing.T) {
	s, d := newScroll()
	feed(s, d, WheelEvent(0, 1000))
	assertNear(t, "zoom in", s.Global[0], 2)

	s, d = newScroll()
	feed(s, d, WheelEvent(0, -1000))
	assertMat4(t, "zoom out", s.Global, Identity())
}

// --- camera animation ---

func TestResetAnimatesToIdentity(t *testing.T) {
	s, d := newScroll()
	feed(s, d, PointerDownEvent(0, 0), PointerMoveEvent(200, 0), PointerUpEvent(200, 0))
	s.Reset(0.5)
	if !s.Animating() {
		t.Fatal("not animating after Reset")
	}
	s.Update(0.25)
	s.Update(0.25)
	if s.Animating() {
		t.Error("still animating after the duration")
	}
	assertMat4(t, "global", s.Global, Identity())
}

func TestPanCancelsAnimation(t *testing.T) {
	s, d := newScroll()
	s.AnimateTo(Scale(2, 2, 1), 1, nil)
	feed(s, d, PointerDownEvent(0, 0), PointerMoveEvent(10, 0))
	if s.Animating() {
		t.Error("pan did not cancel the camera animation")
	}
}
