package timing

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/sarchlab/discolight/hooking"
)

// ErrInterrupted is returned by Run when Interrupt stopped it.
var ErrInterrupted = errors.New("timing: run interrupted")

// SerialEngine handles scheduled events one at a time in time order. At
// equal times primary events go first, and events of the same kind keep the
// order they were scheduled in.
type SerialEngine struct {
	*hooking.HookableBase

	primary   *scheduledEventQueue
	secondary *scheduledEventQueue

	// mu guards now, paused and interrupted.
	mu          sync.Mutex
	resumed     *sync.Cond
	now         VTimeInSec
	paused      bool
	interrupted bool
	runGuard    sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	e := &SerialEngine{
		HookableBase: hooking.NewHookableBase(),
		primary:      newScheduledEventQueue(),
		secondary:    newScheduledEventQueue(),
	}
	e.resumed = sync.NewCond(&e.mu)

	return e
}

// Schedule queues an event. Scheduling before the current time panics.
func (e *SerialEngine) Schedule(evt ScheduledEvent) {
	if now := e.CurrentTime(); evt.Time < now {
		panic(fmt.Sprintf(
			"timing: cannot schedule %s @ %.10f, now is %.10f",
			reflect.TypeOf(evt.Event), evt.Time, now))
	}

	queued := evt
	if evt.IsSecondary {
		e.secondary.Push(&queued)
	} else {
		e.primary.Push(&queued)
	}
}

// Run handles events until none is left. The first handler error or an
// Interrupt stops it and the remaining events stay queued.
func (e *SerialEngine) Run() error {
	e.runGuard.Lock()
	defer e.runGuard.Unlock()

	for {
		if err := e.waitWhilePaused(); err != nil {
			return err
		}

		evt := e.pop()
		if evt == nil {
			return nil
		}

		if err := e.dispatch(evt); err != nil {
			return err
		}
	}
}

func (e *SerialEngine) waitWhilePaused() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for e.paused && !e.interrupted {
		e.resumed.Wait()
	}

	if e.interrupted {
		e.interrupted = false
		return ErrInterrupted
	}

	return nil
}

func (e *SerialEngine) pop() *ScheduledEvent {
	p, s := e.primary.Peek(), e.secondary.Peek()

	switch {
	case p == nil && s == nil:
		return nil
	case s == nil || (p != nil && p.Time <= s.Time):
		return e.primary.Pop()
	default:
		return e.secondary.Pop()
	}
}

func (e *SerialEngine) dispatch(evt *ScheduledEvent) error {
	e.mu.Lock()
	e.now = evt.Time
	e.mu.Unlock()

	ctx := hooking.HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt}
	e.InvokeHook(ctx)

	if evt.Handler != nil {
		if err := evt.Handler.Handle(evt.Event); err != nil {
			return fmt.Errorf("timing: handling %s @ %.10f: %w",
				reflect.TypeOf(evt.Event), evt.Time, err)
		}
	}

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return nil
}

// Pause stops Run before its next event until Continue is called. The event
// being handled, if any, finishes.
func (e *SerialEngine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

// Continue lets a paused Run go on.
func (e *SerialEngine) Continue() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()

	e.resumed.Broadcast()
}

// Interrupt makes Run return ErrInterrupted before its next event, also
// while the engine is paused. The pause state is kept. If Run is not running,
// the next call returns at once.
func (e *SerialEngine) Interrupt() {
	e.mu.Lock()
	e.interrupted = true
	e.mu.Unlock()

	e.resumed.Broadcast()
}

// IsPaused tells if the engine is paused.
func (e *SerialEngine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.paused
}

// CurrentTime returns the time of the event handled last.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.now
}

var _ Engine = (*SerialEngine)(nil)
