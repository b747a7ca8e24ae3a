package ebitenrun

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sprig"
)

// pointerSample is the mouse state read in one tick.
type pointerSample struct {
	pos  sprig.Vec2
	down bool
}

// sampler converts polled ebiten input state into normalized sprig events.
// It remembers the previous tick so that only changes become events.
type sampler struct {
	mouse   pointerSample
	touches map[int64]sprig.Vec2
	size    sprig.Size
}

func newSampler() *sampler {
	return &sampler{touches: make(map[int64]sprig.Vec2)}
}

// poll reads the current ebiten input state. Touch input suppresses the
// emulated mouse so a single finger is not reported twice.
func (s *sampler) poll(size sprig.Size) []sprig.Event {
	var events []sprig.Event
	events = s.resize(events, size)

	cur := make(map[int64]sprig.Vec2, len(s.touches))
	for _, tid := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(tid)
		cur[int64(tid)] = sprig.Vec2{X: float64(x), Y: float64(y)}
	}
	for _, tid := range inpututil.AppendJustReleasedTouchIDs(nil) {
		if _, ok := s.touches[int64(tid)]; !ok {
			continue
		}
		x, y := inpututil.TouchPositionInPreviousTick(tid)
		s.touches[int64(tid)] = sprig.Vec2{X: float64(x), Y: float64(y)}
	}
	events = append(events, diffTouches(s.touches, cur)...)
	s.touches = cur

	if len(cur) == 0 {
		mx, my := ebiten.CursorPosition()
		next := pointerSample{
			pos:  sprig.Vec2{X: float64(mx), Y: float64(my)},
			down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		}
		events = append(events, diffPointer(s.mouse, next)...)
		s.mouse = next
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		events = append(events, sprig.WheelEvent(wx, wy))
	}
	return events
}

// resize appends an EventResize when the layout size changed.
func (s *sampler) resize(events []sprig.Event, size sprig.Size) []sprig.Event {
	if size == s.size || !size.Valid() {
		return events
	}
	s.size = size
	return append(events, sprig.ResizeEvent(size.Width, size.Height))
}

// diffPointer returns the events that take the mouse from prev to next.
// A move is reported before a press and before a release so gesture state
// sees the final position first.
func diffPointer(prev, next pointerSample) []sprig.Event {
	var events []sprig.Event
	if next.pos != prev.pos && !(prev.down && !next.down) {
		events = append(events, sprig.PointerMoveEvent(next.pos.X, next.pos.Y))
	}
	switch {
	case next.down && !prev.down:
		events = append(events, sprig.PointerDownEvent(next.pos.X, next.pos.Y))
	case !next.down && prev.down:
		events = append(events, sprig.PointerUpEvent(next.pos.X, next.pos.Y))
	}
	return events
}

// diffTouches returns touch events that take the active set from prev to
// cur. Events are ordered by touch id within each phase: ended, moved,
// started.
func diffTouches(prev, cur map[int64]sprig.Vec2) []sprig.Event {
	var events []sprig.Event
	for _, id := range sortedIDs(prev) {
		if _, ok := cur[id]; !ok {
			p := prev[id]
			events = append(events, sprig.TouchEvent(id, sprig.TouchEnded, p.X, p.Y))
		}
	}
	for _, id := range sortedIDs(cur) {
		p := cur[id]
		if old, ok := prev[id]; ok && old != p {
			events = append(events, sprig.TouchEvent(id, sprig.TouchMoved, p.X, p.Y))
		}
	}
	for _, id := range sortedIDs(cur) {
		if _, ok := prev[id]; !ok {
			p := cur[id]
			events = append(events, sprig.TouchEvent(id, sprig.TouchStarted, p.X, p.Y))
		}
	}
	return events
}

func sortedIDs(m map[int64]sprig.Vec2) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
