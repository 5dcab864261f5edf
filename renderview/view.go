// Package renderview simulates the render view a disco script drives. It
// owns the render instance and progress counters, the status overlay slots
// and the light colour, and renders every scene update with a ticking
// component on a timing engine.
package renderview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/notify"
	"github.com/sarchlab/discolight/timing"
)

var (
	// HookPosSceneUpdate is triggered after a new colour has been applied and
	// the render instance bumped. The item is a SceneUpdate.
	HookPosSceneUpdate = &hooking.HookPos{Name: "SceneUpdate"}

	// HookPosOverlay is triggered when an overlay slot is written or the
	// overlay is cleared. The item is an OverlayChange.
	HookPosOverlay = &hooking.HookPos{Name: "Overlay"}

	// HookPosProgress is triggered whenever the render progress moves. The
	// item is the progress in percent.
	HookPosProgress = &hooking.HookPos{Name: "Progress"}
)

// SceneUpdate describes a colour change applied by the view.
type SceneUpdate struct {
	Instance int
	Color    colorful.Color
}

// OverlayChange describes a write into the status overlay. A negative Slot
// means the whole overlay was cleared.
type OverlayChange struct {
	Slot int
	Text string
}

// View is the simulated render view. Its host primitives are safe to call
// from any goroutine; hooks may therefore be invoked concurrently from the
// caller's goroutine and the goroutine running Run.
type View struct {
	*hooking.HookableBase

	name     string
	instance *notify.Value[int]
	progress *notify.Value[float64]

	overlayLock sync.Mutex
	overlay     []string

	lightLock   sync.Mutex
	light       colorful.Color
	renderStart time.Time

	updates chan colorful.Color

	// runLock serializes Run. done is only read by pace, which runs inside
	// Run's engine loop.
	runLock sync.Mutex
	done    <-chan struct{}

	logger          *log.Logger
	engine          timing.Engine
	renderer        *Renderer
	realTimePerTick time.Duration
	width, height   int
	now             func() time.Time
}

// Name returns the name of the view.
func (v *View) Name() string {
	return v.name
}

// Renderer returns the component that renders the scene.
func (v *View) Renderer() *Renderer {
	return v.renderer
}

// Engine returns the engine the renderer runs on.
func (v *View) Engine() timing.Engine {
	return v.engine
}

// Instance returns the current render instance.
func (v *View) Instance() int {
	return v.instance.Get()
}

// Progress returns the render progress of the current instance in percent.
func (v *View) Progress() float64 {
	return v.progress.Get()
}

// Light returns the colour the light currently has.
func (v *View) Light() colorful.Color {
	v.lightLock.Lock()
	defer v.lightLock.Unlock()

	return v.light
}

// WaitForInstance returns the current render instance without waiting.
func (v *View) WaitForInstance(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return v.instance.Get(), err
	}

	return v.instance.Get(), nil
}

// WaitForInstanceAtLeast blocks until the render instance is at least n.
func (v *View) WaitForInstanceAtLeast(ctx context.Context, n int) (int, error) {
	return v.instance.WaitAtLeast(ctx, n)
}

// WaitForPercentageDone blocks until the current render is at least pct
// percent done.
func (v *View) WaitForPercentageDone(
	ctx context.Context,
	pct float64,
) (float64, error) {
	return v.progress.WaitAtLeast(ctx, pct)
}

// Print writes a line into the view's log.
func (v *View) Print(args ...any) {
	v.logger.Println(args...)
}

// Sleep pauses the caller for d or until ctx is done.
func (v *View) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetNewColorSignal queues a new light colour. The colour is applied by Run,
// so the render instance has not necessarily changed when this returns.
func (v *View) SetNewColorSignal(red, green, blue float64) {
	v.updates <- colorful.Color{R: red, G: green, B: blue}
}

// Run applies queued colours and renders them until ctx is done. A paused
// engine does not keep Run from returning. Concurrent calls are serialized.
func (v *View) Run(ctx context.Context) error {
	v.runLock.Lock()
	defer v.runLock.Unlock()

	v.done = ctx.Done()
	stop := context.AfterFunc(ctx, v.engine.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-v.updates:
			v.applySceneUpdate(c)
		}

		if err := v.render(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return err
			}

			return fmt.Errorf("rendering instance %d: %w",
				v.instance.Get(), err)
		}
	}
}

// render runs the engine until it is out of events. An interrupt left over
// from an earlier Run is ignored.
func (v *View) render(ctx context.Context) error {
	for {
		err := v.engine.Run()
		if !errors.Is(err, timing.ErrInterrupted) {
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// applySceneUpdate follows the order of the real client: progress goes back
// to 0 before the instance moves, so a waiter that sees the new instance
// never sees the old render's progress.
func (v *View) applySceneUpdate(c colorful.Color) {
	v.lightLock.Lock()
	v.light = c
	v.renderStart = v.now()
	v.lightLock.Unlock()

	v.logger.Printf("New color (%.4f, %.4f, %.4f)", c.R, c.G, c.B)

	v.setProgress(0)
	instance := v.instance.Update(func(i int) int { return i + 1 })
	v.renderer.restart()

	v.invoke(HookPosSceneUpdate, SceneUpdate{Instance: instance, Color: c})
}

func (v *View) drainUpdates() {
	for {
		select {
		case c := <-v.updates:
			v.applySceneUpdate(c)
		default:
			return
		}
	}
}

func (v *View) pace() {
	if v.realTimePerTick <= 0 {
		return
	}

	timer := time.NewTimer(v.realTimePerTick)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-v.done:
	}
}

func (v *View) setProgress(pct float64) {
	if v.progress.Get() == pct {
		return
	}

	v.progress.Set(pct)
	v.invoke(HookPosProgress, pct)
}

func (v *View) invoke(pos *hooking.HookPos, item any) {
	if v.NumHooks() == 0 {
		return
	}

	v.InvokeHook(hooking.HookCtx{
		Domain: v,
		Pos:    pos,
		Item:   item,
	})
}

// renderDriver applies colours that arrive while the engine is rendering and
// paces the engine against the wall clock.
type renderDriver struct {
	view *View
}

func (d *renderDriver) Func(ctx hooking.HookCtx) {
	if ctx.Pos != timing.HookPosAfterEvent {
		return
	}

	d.view.drainUpdates()
	d.view.pace()
}
