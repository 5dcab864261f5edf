package timing

import (
	"sync"

	"github.com/sarchlab/discolight/hooking"
)

// TickEvent is the event a TickScheduler sends to its handler.
type TickEvent struct{}

// A Ticker is an object that updates states with ticks. Tick returns true if
// it made progress and wants to be ticked again.
type Ticker interface {
	Tick() bool
}

// TickScheduler schedules tick events for a handler on a clock.
type TickScheduler struct {
	lock    sync.Mutex
	handler Handler
	Freq    Freq
	Engine  EventScheduler

	nextTickTime VTimeInSec
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(
	handler Handler,
	engine EventScheduler,
	freq Freq,
) *TickScheduler {
	if err := freq.Validate(); err != nil {
		panic(err)
	}

	return &TickScheduler{
		handler: handler,
		Engine:  engine,
		Freq:    freq,

		// Makes sure the first tick can always be scheduled.
		nextTickTime: -1,
	}
}

// TickLater schedules a tick at the cycle after the current time.
func (t *TickScheduler) TickLater() {
	t.scheduleAt(t.Freq.NextTick(t.CurrentTime()))
}

func (t *TickScheduler) scheduleAt(time VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.nextTickTime >= time {
		return
	}

	t.nextTickTime = time
	t.Engine.Schedule(ScheduledEvent{
		Event:   TickEvent{},
		Time:    time,
		Handler: t.handler,
	})
}

// CurrentTime returns the time of the engine.
func (t *TickScheduler) CurrentTime() VTimeInSec {
	return t.Engine.CurrentTime()
}

// TickingComponent is a component that updates its state cycle by cycle. It
// keeps ticking while the Ticker makes progress.
type TickingComponent struct {
	*hooking.HookableBase
	*TickScheduler

	name   string
	ticker Ticker
}

// NewTickingComponent creates a new ticking component.
func NewTickingComponent(
	name string,
	engine EventScheduler,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		ticker:       ticker,
	}
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)

	return tc
}

// Name returns the name of the component.
func (c *TickingComponent) Name() string {
	return c.name
}

// Handle triggers the tick function of the Ticker.
func (c *TickingComponent) Handle(event any) error {
	if _, ok := event.(TickEvent); !ok {
		return &UnknownEventError{Component: c.name, Event: event}
	}

	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}
