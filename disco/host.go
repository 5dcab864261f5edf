// Package disco runs the disco light loop: pick a colour, show it, wait for
// the render view to pick it up, report how long it took, repeat.
package disco

import "context"

// Host provides the primitives of the render client the loop runs against.
type Host interface {
	// WaitForInstance returns the current render instance.
	WaitForInstance(ctx context.Context) (int, error)

	// WaitForInstanceAtLeast blocks until the render instance is at least n
	// and returns it.
	WaitForInstanceAtLeast(ctx context.Context, n int) (int, error)

	// WaitForPercentageDone blocks until the render progress of the current
	// instance is at least pct percent and returns it.
	WaitForPercentageDone(ctx context.Context, pct float64) (float64, error)

	// SetStatusOverlay writes text into a numbered overlay slot.
	SetStatusOverlay(slot int, text string)

	// Print logs a line on the host.
	Print(args ...any)
}

// ImageView is the display surface that shows the light.
type ImageView interface {
	// SetNewColorSignal asks the view to render the light with a new colour.
	SetNewColorSignal(red, green, blue float64)
}
