// Package ecs bridges sprig interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every click and tap as a typed event.
// Subscribe to [InteractionEventType] in your ECS systems to receive them,
// or bind entities to element ids with [NewElement] and let
// [TrackClicks] count the clicks each element receives.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	view.SetEntityStore(store)
//	ecs.TrackClicks(world)
//	// once per frame, after view.Tick:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
