package timing

import "fmt"

// UnknownEventError is returned by a handler that receives an event type it
// does not handle.
type UnknownEventError struct {
	Component string
	Event     any
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("%s: unknown event type %T", e.Component, e.Event)
}
