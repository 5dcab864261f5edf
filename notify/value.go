// Package notify provides values that other goroutines can block on until
// they change or pass a threshold.
package notify

import (
	"cmp"
	"context"
	"sync"
)

// Value holds a value of type T and wakes waiters whenever it changes.
//
// A NaN never satisfies WaitAtLeast or WaitGreater.
type Value[T cmp.Ordered] struct {
	mu      sync.Mutex
	value   T
	changed chan struct{}
}

// NewValue creates a Value holding initial.
func NewValue[T cmp.Ordered](initial T) *Value[T] {
	return &Value[T]{
		value:   initial,
		changed: make(chan struct{}),
	}
}

// Set stores newValue. Waiters are only woken if the value actually changed.
func (v *Value[T]) Set(newValue T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setLocked(newValue)
}

// Update atomically replaces the value with fn(current) and returns the new
// value.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setLocked(fn(v.value))

	return v.value
}

func (v *Value[T]) setLocked(newValue T) {
	if v.value == newValue {
		return
	}

	v.value = newValue
	close(v.changed)
	v.changed = make(chan struct{})
}

// Get returns the current value. The result may be stale as soon as Get
// returns.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.value
}

// WaitAtLeast blocks until the value is greater than or equal to target.
func (v *Value[T]) WaitAtLeast(ctx context.Context, target T) (T, error) {
	return v.WaitUntil(ctx, func(cur T) bool { return cur >= target })
}

// WaitGreater blocks until the value is greater than target.
func (v *Value[T]) WaitGreater(ctx context.Context, target T) (T, error) {
	return v.WaitUntil(ctx, func(cur T) bool { return cur > target })
}

// WaitDifferent blocks until the value is no longer old. Transient changes
// that return to old before the waiter looks are not observed.
func (v *Value[T]) WaitDifferent(ctx context.Context, old T) (T, error) {
	return v.WaitUntil(ctx, func(cur T) bool { return cur != old })
}

// WaitUntil blocks until ready reports true for the current value or ctx is
// done. On cancellation it returns the last value seen and ctx.Err().
func (v *Value[T]) WaitUntil(
	ctx context.Context,
	ready func(T) bool,
) (T, error) {
	for {
		v.mu.Lock()
		cur := v.value
		changed := v.changed
		v.mu.Unlock()

		if ready(cur) {
			return cur, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return cur, ctx.Err()
		}
	}
}
