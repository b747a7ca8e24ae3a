package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/sprig"
)

// InteractionEventType is the Donburi event type for sprig interaction
// events. Subscribe to this in your ECS systems to receive clicks and taps.
var InteractionEventType = events.NewEventType[sprig.InteractionEvent]()

// ElementData binds an entity to a sprig element id.
type ElementData struct {
	ID     string
	Clicks int
}

// Element is the component holding ElementData.
var Element = donburi.NewComponentType[ElementData]()

var elementQuery = donburi.NewQuery(filter.Contains(Element))

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are queued on InteractionEventType and delivered by
// events.ProcessEvents or events.ProcessAllEvents.
func NewDonburiStore(world donburi.World) sprig.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sprig.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// NewElement creates an entity bound to element id.
func NewElement(world donburi.World, id string) donburi.Entity {
	e := world.Create(Element)
	Element.SetValue(world.Entry(e), ElementData{ID: id})
	return e
}

// TrackClicks subscribes a handler that increments Clicks on every entity
// bound to a clicked element.
func TrackClicks(world donburi.World) {
	InteractionEventType.Subscribe(world, countClick)
}

func countClick(w donburi.World, e sprig.InteractionEvent) {
	if e.Type != sprig.InteractionClick {
		return
	}
	elementQuery.Each(w, func(entry *donburi.Entry) {
		data := Element.Get(entry)
		if data.ID == e.ID {
			data.Clicks++
		}
	})
}

// Clicks returns the click count of the first entity bound to id.
func Clicks(world donburi.World, id string) (int, bool) {
	n, found := 0, false
	elementQuery.Each(world, func(entry *donburi.Entry) {
		if data := Element.Get(entry); !found && data.ID == id {
			n, found = data.Clicks, true
		}
	})
	return n, found
}
