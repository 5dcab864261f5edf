package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/discolight/hooking"
)

type named interface {
	Name() string
}

// EventLogger is a hook that prints the event information before each event
// is handled.
type EventLogger struct {
	*log.Logger
}

// NewEventLogger returns a new EventLogger that writes into the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{Logger: logger}
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*ScheduledEvent)
	if !ok {
		return
	}

	comp, ok := evt.Handler.(named)
	if ok {
		h.Printf("%.10f, %s -> %s",
			evt.Time, reflect.TypeOf(evt.Event), comp.Name())
	} else {
		h.Printf("%.10f, %s", evt.Time, reflect.TypeOf(evt.Event))
	}
}
