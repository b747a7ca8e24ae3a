package sprig

// InjectPress queues a pointer press at the given viewport coordinates.
// Injected events are consumed one per frame, ahead of real input.
func (v *View) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, PointerDownEvent(x, y))
}

// InjectMove queues a pointer move. Between InjectPress and InjectRelease
// it drags (pans the camera).
func (v *View) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, PointerMoveEvent(x, y))
}

// InjectRelease queues a pointer release at the given viewport coordinates.
// A release away from the last position completes the drag to it.
func (v *View) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, PointerUpEvent(x, y))
}

// InjectClick queues a press and a release at the same position. The
// pair plays over two frames.
func (v *View) InjectClick(x, y float64) {
	v.injectQueue = append(v.injectQueue, clickEvents(x, y)...)
}

// InjectDrag queues a press at from, evenly spaced moves and a release at
// to, spread over frames frames (at least two).
func (v *View) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	v.injectQueue = append(v.injectQueue, dragEvents(Vec2{X: fromX, Y: fromY}, Vec2{X: toX, Y: toY}, frames)...)
}

func clickEvents(x, y float64) []Event {
	return []Event{PointerDownEvent(x, y), PointerUpEvent(x, y)}
}

// dragEvents builds a press-move-release sequence with one event per frame.
// The moves split the segment into frames-1 equal parts.
func dragEvents(from, to Vec2, frames int) []Event {
	n := max(frames, 2)
	evs := make([]Event, 0, n)
	evs = append(evs, PointerDownEvent(from.X, from.Y))
	for i := 1; i < n-1; i++ {
		f := float64(i) / float64(n-1)
		evs = append(evs, PointerMoveEvent(from.X+(to.X-from.X)*f, from.Y+(to.Y-from.Y)*f))
	}
	return append(evs, PointerUpEvent(to.X, to.Y))
}

// InjectResize queues a viewport resize.
func (v *View) InjectResize(w, h float64) {
	v.injectQueue = append(v.injectQueue, ResizeEvent(w, h))
}

// InjectWheel queues a wheel event at the last pointer position.
func (v *View) InjectWheel(dx, dy float64) {
	v.injectQueue = append(v.injectQueue, WheelEvent(dx, dy))
}

// InjectTouch queues a raw touch event.
func (v *View) InjectTouch(id int64, phase TouchPhase, x, y float64) {
	v.injectQueue = append(v.injectQueue, TouchEvent(id, phase, x, y))
}

// Pending returns the number of queued synthetic events.
func (v *View) Pending() int {
	return len(v.injectQueue)
}

// popInjected removes the oldest synthetic event from the queue.
func (v *View) popInjected() (Event, bool) {
	if len(v.injectQueue) == 0 {
		return Event{}, false
	}
	ev := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]
	return ev, true
}
