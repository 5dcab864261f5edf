package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how many items of a known total are done.
type ProgressBar struct {
	sync.Mutex `json:"-"`

	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementInProgress marks n more items as started.
func (b *ProgressBar) IncrementInProgress(n uint64) {
	b.update(func() { b.InProgress += n })
}

// IncrementFinished marks n more items as done.
func (b *ProgressBar) IncrementFinished(n uint64) {
	b.update(func() { b.Finished += n })
}

// MoveInProgressToFinished marks n started items as done.
func (b *ProgressBar) MoveInProgressToFinished(n uint64) {
	b.update(func() {
		b.InProgress -= min(n, b.InProgress)
		b.Finished += n
	})
}

func (b *ProgressBar) update(f func()) {
	b.Lock()
	f()
	b.Unlock()
}

func (b *ProgressBar) copy() *ProgressBar {
	b.Lock()
	defer b.Unlock()

	return &ProgressBar{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}
