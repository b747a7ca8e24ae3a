// Package sprig turns annotated SVG documents into responsive, animated
// board-game views.
//
// Elements of an SVG are annotated through their id attribute:
//
//	die#clickable#layout{x={end=12}, y='center'}
//
// The part before the first '#' is the element id; the tags after it mark
// the element as hit-testable ([Tags.Clickable]) and anchor it to its
// enclosing layout (or the viewport) with a [Constraint]. The layout record
// is a TOML inline table; see [ParseConstraint].
//
// # Quick start
//
//	view, err := sprig.NewView(sprig.DefaultConfig())
//	if err != nil { ... }
//	if err := view.Load(doc); err != nil { ... }
//	view.SetHandler(game)
//
//	// every frame
//	frame := view.Tick(events)
//	// upload frame.Matrices (indexed by transform slot) when
//	// frame.Version changed, then draw with frame.Global applied last.
//
// The sprig/ebitenrun package wires a View to an Ebitengine window.
//
// # Layout
//
// A [LayoutMachine] owns every registered [Layout] and [Clickable]. On
// resize it compiles each layout's constraint into a device-space [Mat4] by
// folding its chain of enclosing layouts from the outermost inward. Device
// space spans -1..1 on both axes with y pointing down. Transform slot 0
// carries every element outside an annotated layout; layout i uses slot
// i+1.
//
// # Animation
//
// Element transforms move with critically or under-damped springs
// ([SpringMat4]) or fixed-duration tweens ([MatrixTween], via [gween]).
// Follow-up work is expressed as data: a [Command] carries the commands to
// apply once its animation completes, so chained animations (an avatar
// walking cell by cell) are plain nested values:
//
//	sprig.AnimateElement("avatar", sprig.Translate(40, 0, 0),
//		sprig.AnimateElement("avatar", sprig.Translate(80, 0, 0),
//			sprig.Notify("moved")))
//
// # Input
//
// [View.Tick] consumes normalized [Event] values. Presses are hit tested
// against the clickables in registration order, pointer and touch drags pan
// the camera, wheel and two-finger pinch zoom it, and a release that never
// left the unmoved radius is reported as a [Tap]. Synthetic input can be
// queued with [View.InjectClick] and friends, or scripted with a JSON
// [ScriptRunner].
//
// # Logging
//
// sprig logs through [github.com/charmbracelet/log]. Nothing is printed
// until [SetLogger] installs a logger.
//
// [gween]: https://github.com/tanema/gween
package sprig
