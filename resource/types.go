package resource

import (
	"context"
	"fmt"
)

// EventType identifies a block lifecycle step.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRetained
	EventReleased
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("event(%d)", uint8(t))
	}
}

// Event represents a block lifecycle event.
// Count is the reference count after the step.
type Event struct {
	Value    any
	TypeName string
	Block    uint64
	Count    uint32
	Type     EventType
}

// Observer receives notifications about block lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnResourceEvent calls f(e).
func (f ObserverFunc) OnResourceEvent(e Event) {
	f(e)
}

// Observers fans an event out to every non-nil observer in order.
type Observers []Observer

// OnResourceEvent implements Observer.
func (obs Observers) OnResourceEvent(e Event) {
	for _, o := range obs {
		if o != nil {
			o.OnResourceEvent(e)
		}
	}
}

// Dropper is optionally implemented by shared values that need cleanup.
type Dropper interface {
	Drop()
}

// ContextCloser is implemented by values whose cleanup takes a context,
// such as wazero runtimes and modules.
type ContextCloser interface {
	Close(ctx context.Context) error
}
