package datarecording

import (
	"time"

	"github.com/sarchlab/discolight/disco"
	"github.com/sarchlab/discolight/hooking"
)

// IterationTable is the table that holds one row per loop iteration.
const IterationTable = "disco_iteration"

// IterationEntry is a row of the disco_iteration table.
type IterationEntry struct {
	Seq        int
	Instance   int
	Big        string
	Red        float64
	Green      float64
	Blue       float64
	Progress   float64
	StartTime  string
	ElapsedMs  int64
	ElapsedSec float64
}

// IterationRecorder is a hook that records every finished iteration.
type IterationRecorder struct {
	recorder Recorder
}

// NewIterationRecorder creates the disco_iteration table in recorder.
func NewIterationRecorder(recorder Recorder) *IterationRecorder {
	recorder.CreateTable(IterationTable, IterationEntry{})

	return &IterationRecorder{recorder: recorder}
}

// Func records the iteration when the hook fires at the end of an
// iteration.
func (r *IterationRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != disco.HookPosIterationEnd {
		return
	}

	it, ok := ctx.Item.(disco.Iteration)
	if !ok {
		return
	}

	r.recorder.InsertData(IterationTable, IterationEntry{
		Seq:        it.Seq,
		Instance:   it.Instance,
		Big:        it.Big.String(),
		Red:        it.Color.R,
		Green:      it.Color.G,
		Blue:       it.Color.B,
		Progress:   it.Progress,
		StartTime:  it.Start.Format(time.RFC3339Nano),
		ElapsedMs:  it.ElapsedMilliseconds(),
		ElapsedSec: it.Elapsed.Seconds(),
	})
}
