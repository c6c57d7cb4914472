// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Session event types. Sinks such as audio subscribe to these; none of them
// feed back into the simulation.
const (
	SessionStarted  Type = "session_started"
	SessionEnded    Type = "session_ended"
	AmbientStart    Type = "ambient_start"
	ProjectileFired Type = "projectile_fired"
	Impact          Type = "impact"
	HostileSpawned  Type = "hostile_spawned"
	PlayerCaught    Type = "player_caught"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine in subscription order.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// Subscription identifies a registered handler so it can be cancelled
type Subscription struct {
	bus       *Bus
	eventType Type
	id        uint64
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{bus: b, eventType: eventType, id: id}
}

// Cancel removes the subscription's handler. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[s.eventType]
	for i, sub := range subs {
		if sub.id == s.id {
			b.handlers[s.eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(event)
	}
}

// HandlerCount returns the number of handlers registered for eventType
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Specific event implementations

// EntityEvent reports something that happened to one entity
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Variant  string
	X, Y     float64
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, variant string, x, y float64) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Variant:  variant,
		X:        x,
		Y:        y,
	}
}

// ImpactEvent reports a projectile destroying a hostile
type ImpactEvent struct {
	BaseEvent
	ProjectileID uint64
	HostileID    uint64
}

// NewImpactEvent creates a new impact event
func NewImpactEvent(source interface{}, projectileID, hostileID uint64) *ImpactEvent {
	return &ImpactEvent{
		BaseEvent: BaseEvent{
			EventType: Impact,
			Source:    source,
		},
		ProjectileID: projectileID,
		HostileID:    hostileID,
	}
}

// SessionEvent reports a session lifecycle change
type SessionEvent struct {
	BaseEvent
	Reason string
	Frames uint64
}

// NewSessionEvent creates a new session event
func NewSessionEvent(eventType Type, source interface{}, reason string, frames uint64) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Reason: reason,
		Frames: frames,
	}
}
