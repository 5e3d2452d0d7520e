// Package arch defines the architecture-specific context-switch contract
// consumed by the fiber scheduler. It is the only boundary between the
// scheduler and the underlying execution model; everything the scheduler
// needs to know about stacks and registers goes through Engine: its four
// context-switch primitives and its StackDepth estimate.
//
// The build carries two Engine implementations, selected by build tag the
// same way the host/tinygo boundary is drawn elsewhere in this module:
// engine_host.go (!tinygo) backs every Context with a real goroutine and an
// unbuffered wake channel, and engine_tinygo.go (tinygo && baremetal) is a
// placeholder for the real register-save/restore assembly a target port
// must supply.
package arch

// Context is an opaque, per-fiber saved execution state. Callers never
// inspect its fields; they only ever hold a *Context and pass it back to
// Engine methods.
type Context struct {
	// backend carries the implementation-specific state (on the host
	// engine, the wake channel and the goroutine's completion bookkeeping).
	backend any
}

// Entry is the function a freshly initialized Context begins running the
// first time it is woken.
type Entry func()

// Engine is the architecture contract. Its four context operations are
// described purely in terms of their effect on control flow; StackDepth is
// the one query about stack usage. See package doc.
type Engine interface {
	// SaveContext initializes ctx so that the first time it is woken it
	// begins running entry with fresh stack and register state.
	SaveContext(ctx *Context, entry Entry)

	// SaveRegisterContext snapshots the calling continuation into ctx and
	// suspends the caller until something later wakes ctx. It is the
	// primitive that makes "resume exactly here" possible without a
	// manual register/stack swap.
	SaveRegisterContext(ctx *Context)

	// RestoreRegisterContext wakes ctx's continuation. It does not return
	// control to its own caller in the usual sense: the calling goroutine
	// is expected to terminate (or be discarded) immediately afterward.
	RestoreRegisterContext(ctx *Context)

	// SwapContext wakes in, then suspends the caller on out until out is
	// later woken by someone else. This is the primitive the scheduler
	// uses to hand control from one fiber to the next.
	SwapContext(out, in *Context)

	// StackDepth reports an estimate of the currently used depth, in
	// bytes, of the stack the caller is presently running on. It backs
	// verifyStackSize's decision to grow a fiber's recorded stack size.
	StackDepth() int
}

// NewContext allocates a zero-value Context ready to be passed to
// SaveContext.
func NewContext() *Context {
	return &Context{}
}
