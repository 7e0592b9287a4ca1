package hooks

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Handler mutates and returns a Context. A handler that wants to stop
// the chain sets ctx.Abort before returning.
type Handler func(ctx *Context) *Context

type registration struct {
	priority int
	seq      int
	handler  Handler
	name     string
}

// Runtime is the priority-ordered, handler-isolating dispatch table
// (§4.8.3). The zero value is not usable; construct with New.
type Runtime struct {
	mu       sync.RWMutex
	handlers map[Point][]registration
	seq      int
	enabled  bool
	log      *zap.Logger
}

// New creates an enabled Runtime. A nil logger is replaced with a no-op
// logger so Dispatch never needs a nil check.
func New(log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{handlers: make(map[Point][]registration), enabled: true, log: log}
}

// SetEnabled toggles the process-wide hook switch (§4.8.3). When
// disabled, Dispatch returns its input context unchanged without invoking
// any handler.
func (r *Runtime) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// Enabled reports the current toggle state.
func (r *Runtime) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Register adds handler at the given priority (lower runs first), named
// for diagnostics and for AbortedBy reporting. Ties are broken by
// registration order.
func (r *Runtime) Register(point Point, priority int, name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.handlers[point] = append(r.handlers[point], registration{
		priority: priority, seq: r.seq, handler: handler, name: name,
	})
	sort.SliceStable(r.handlers[point], func(i, j int) bool {
		a, b := r.handlers[point][i], r.handlers[point][j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.seq < b.seq
	})
}

// Dispatch runs every handler registered at ctx.Point in priority order,
// isolating panics (P7) and stopping at the first abort (§4.8.3).
func (r *Runtime) Dispatch(ctx *Context) *Context {
	r.mu.RLock()
	enabled := r.enabled
	regs := append([]registration(nil), r.handlers[ctx.Point]...)
	r.mu.RUnlock()

	if !enabled {
		return ctx
	}

	for _, reg := range regs {
		pre := ctx.Clone()
		next := r.invoke(reg, ctx)
		if next == nil {
			// Handler panicked: continue with the unmodified pre-handler
			// context, per §4.8.3's isolation contract.
			r.log.Warn("hook handler recovered from panic", zap.String("point", string(ctx.Point)), zap.String("handler", reg.name))
			ctx = pre
			continue
		}
		ctx = next
		if ctx.Abort && ctx.AbortedBy == "" {
			ctx.AbortedBy = reg.name
		}
		if ctx.Abort {
			break
		}
	}
	return ctx
}

func (r *Runtime) invoke(reg registration, ctx *Context) (result *Context) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
		}
	}()
	return reg.handler(ctx)
}
