// Package timing provides the discrete event engine that drives simulated
// components such as the renderer behind the render view.
package timing

// VTimeInSec defines the time in the simulated space in the unit of second.
type VTimeInSec float64

// Handler processes events of various types. Events are plain data; handlers
// use a type switch to tell them apart:
//
//	func (h *MyHandler) Handle(event any) error {
//	    switch e := event.(type) {
//	    case TickEvent:
//	        // ...
//	    default:
//	        return fmt.Errorf("unknown event type: %T", e)
//	    }
//	    return nil
//	}
type Handler interface {
	Handle(event any) error
}

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller
	Schedule(evt ScheduledEvent)
}

// ScheduledEvent is the engine-facing wrapper of a user-defined event.
type ScheduledEvent struct {
	// Event is the payload delivered to the handler.
	Event any

	// Time is when the event should be processed.
	Time VTimeInSec

	// Handler is the component that processes the event.
	Handler Handler

	// IsSecondary events are handled after all the primary events of the
	// same time.
	IsSecondary bool

	seq uint64
}
