package monitoring

import (
	"github.com/sarchlab/discolight/disco"
	"github.com/sarchlab/discolight/hooking"
)

// IterationTracker is a hook that moves a progress bar as the loop
// iterates.
type IterationTracker struct {
	bar *ProgressBar
}

// NewIterationTracker creates a tracker feeding bar.
func NewIterationTracker(bar *ProgressBar) *IterationTracker {
	return &IterationTracker{bar: bar}
}

// Func updates the bar at the start and the end of every iteration.
func (t *IterationTracker) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case disco.HookPosIterationStart:
		t.bar.IncrementInProgress(1)
	case disco.HookPosIterationEnd:
		t.bar.MoveInProgressToFinished(1)
	}
}
