package renderview

import (
	"math"

	"github.com/sarchlab/discolight/timing"
)

// Renderer advances the render progress of the view tick by tick until the
// image is complete.
type Renderer struct {
	*timing.TickingComponent

	view            *View
	progressPerTick float64
	progress        float64
}

func newRenderer(
	name string,
	view *View,
	engine timing.Engine,
	freq timing.Freq,
	progressPerTick float64,
) *Renderer {
	r := &Renderer{
		view:            view,
		progressPerTick: progressPerTick,
	}
	r.TickingComponent = timing.NewTickingComponent(name, engine, freq, r)

	return r
}

// Tick renders one more slice of the image.
func (r *Renderer) Tick() bool {
	if r.progress >= 100 {
		return false
	}

	r.progress = math.Min(100, r.progress+r.progressPerTick)
	r.view.setProgress(r.progress)

	return true
}

// Done tells if the current image is complete.
func (r *Renderer) Done() bool {
	return r.progress >= 100
}

func (r *Renderer) restart() {
	r.progress = 0
	r.TickLater()
}
