// Package hooking lets components expose points where external code can
// observe what they do without changing their behaviour.
package hooking

// HookPos names a point in a component's life where hooks fire.
type HookPos struct {
	Name string
}

// HookCtx describes one firing of a hook.
type HookCtx struct {
	// Domain is the object firing the hook.
	Domain Hookable

	Pos *HookPos

	// Item is the main subject, such as an event, an iteration or a scene
	// update.
	Item any

	// Detail is optional extra data.
	Detail any
}

// Hookable is implemented by objects that fire hooks.
type Hookable interface {
	// AcceptHook registers a hook. Hooks cannot be removed.
	AcceptHook(hook Hook)

	NumHooks() int

	Hooks() []Hook

	// InvokeHook calls every registered hook with ctx.
	InvokeHook(ctx HookCtx)
}

// Hook reacts to a hook firing.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase implements Hookable for embedding.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase creates a HookableBase with no hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{hooks: []Hook{}}
}

// NumHooks returns how many hooks are registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns the registered hooks in registration order.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// AcceptHook registers a hook. Registering the same hook twice panics.
// HookFunc values cannot be compared, so they are never duplicates.
func (h *HookableBase) AcceptHook(hook Hook) {
	if h.isRegistered(hook) {
		panic("duplicated hook")
	}

	h.hooks = append(h.hooks, hook)
}

func (h *HookableBase) isRegistered(hook Hook) bool {
	if _, isFunc := hook.(HookFunc); isFunc {
		return false
	}

	for _, registered := range h.hooks {
		if _, isFunc := registered.(HookFunc); isFunc {
			continue
		}

		if registered == hook {
			return true
		}
	}

	return false
}

// InvokeHook calls the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
