package disco

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sarchlab/discolight/hooking"
	"github.com/sarchlab/discolight/light"
)

// Overlay slots written by the loop.
const (
	OverlaySlotTitle   = 1
	OverlaySlotRed     = 2
	OverlaySlotGreen   = 3
	OverlaySlotBlue    = 4
	OverlaySlotElapsed = 5
)

// OverlayTitle is the text of the title overlay slot.
const OverlayTitle = "Light Color"

// DefaultThreshold is the render progress, in percent, the loop waits for
// before moving to the next colour.
const DefaultThreshold = 2.0

var (
	// HookPosIterationStart is triggered after the loop learns the current
	// instance, before a colour is picked.
	HookPosIterationStart = &hooking.HookPos{Name: "IterationStart"}

	// HookPosColorPicked is triggered after the colour is sent to the view.
	HookPosColorPicked = &hooking.HookPos{Name: "ColorPicked"}

	// HookPosIterationEnd is triggered after the elapsed time is reported.
	HookPosIterationEnd = &hooking.HookPos{Name: "IterationEnd"}
)

// Iteration describes one pass of the loop.
type Iteration struct {
	// Seq counts iterations from 1.
	Seq int

	// Instance is the render instance observed when the iteration started.
	Instance int

	// Big is the channel forced to full intensity.
	Big light.Channel

	Color colorful.Color

	// Progress is the render progress observed when the wait finished.
	Progress float64

	Start   time.Time
	Elapsed time.Duration
}

// ElapsedMilliseconds returns the elapsed time truncated to whole
// milliseconds.
func (i Iteration) ElapsedMilliseconds() int64 {
	return i.Elapsed.Milliseconds()
}
