package hop

import "github.com/go-gl/mathgl/mgl64"

const (
	TAKEOFF EventType = iota
	BOUNCE
	STABILIZE
	LAND
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// TakeoffEvent is sent on the tick a jump starts
type TakeoffEvent struct {
	Tick     uint64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

func (e TakeoffEvent) Type() EventType { return TAKEOFF }

// BounceEvent is sent when the ground response reverses the vertical velocity
type BounceEvent struct {
	Tick         uint64
	Position     mgl64.Vec3
	ImpactSpeed  float64
	ReboundSpeed float64
}

func (e BounceEvent) Type() EventType { return BOUNCE }

// StabilizeEvent is sent when the friction damping has stopped the bounce
type StabilizeEvent struct {
	Tick     uint64
	Position mgl64.Vec3
}

func (e StabilizeEvent) Type() EventType { return STABILIZE }

// LandEvent is sent when the jump is over and the trigger is re-armed
type LandEvent struct {
	Tick     uint64
	Position mgl64.Vec3
	Bounces  int
	// Duration of the jump in ticks
	Airtime uint64
}

func (e LandEvent) Type() EventType { return LAND }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 8),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events, in emission order, and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
