package disco

import (
	"log"

	"github.com/sarchlab/discolight/hooking"
)

// IterationLogger is a hook that prints a line for every finished iteration.
type IterationLogger struct {
	*log.Logger
}

// NewIterationLogger returns an IterationLogger writing into logger.
func NewIterationLogger(logger *log.Logger) *IterationLogger {
	return &IterationLogger{Logger: logger}
}

// Func logs the iteration if the hook fires at the end of an iteration.
func (h *IterationLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosIterationEnd {
		return
	}

	it, ok := ctx.Item.(Iteration)
	if !ok {
		return
	}

	h.Printf("iteration %d, instance %d, %s: R %.2f G %.2f B %.2f, %.1f%% in %s",
		it.Seq, it.Instance, it.Big,
		it.Color.R, it.Color.G, it.Color.B,
		it.Progress, it.Elapsed)
}
