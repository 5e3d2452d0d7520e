// Package fiber implements a cooperative, non-preemptive scheduler of
// lightweight user-space threads ("fibers") for a single logical core. It
// exists to decouple interrupt-service-routine work from application
// callbacks and to give application code simple sleep / wait-for-event /
// fire-and-forget primitives, without the cost of a full fiber allocation
// for every short-lived handler.
package fiber

import "fibercore/arch"

// STACK_SIZE is the nominal stack region size, in bytes, recorded for a
// freshly allocated fiber. On the host engine this is bookkeeping only —
// the Go runtime grows goroutine stacks on its own — but it is still the
// quantity verifyStackSize doubles when a fiber is observed to have run
// deeper than its recorded allotment, matching the original contract.
const STACK_SIZE = 2048

// FIBER_TICK_PERIOD_MS is the millisecond period the driving timer is
// expected to call Tick at. Each Tick advances the millisecond clock by this
// amount; Sleep deadlines are in milliseconds on that clock.
const FIBER_TICK_PERIOD_MS = 6

// Sentinel filter values meaning "match any source" / "match any value" in
// WaitForEvent and in delivered events.
const (
	IDAny    uint16 = 0
	ValueAny uint16 = 0
)

// Flags records a fiber's role in the current fork-on-block episode, if
// any. All three bits are mutually exclusive in practice but are kept as
// independent bits to mirror the original bitset contract.
type Flags uint8

const (
	// FlagFOB marks a fiber that is currently executing inside a
	// ForkOnBlock handler.
	FlagFOB Flags = 1 << iota
	// FlagParent marks a fiber that forked a child to absorb a block and
	// is being resumed past that point.
	FlagParent
	// FlagChild marks a fiber that was spawned to absorb a parent's
	// block; it self-recycles once its handler invocation completes.
	FlagChild
)

// Event is the message-bus record the event dispatcher is fed: the id of
// the component that raised it and an associated value. A waiter's filter
// matches an event when waiter.id is IDAny or equal to evt.Source, and
// waiter.value is ValueAny or equal to evt.Value.
type Event struct {
	Source uint16
	Value  uint16
}

// frame holds what a newly created fiber's trampoline needs to run the
// caller-supplied entry point and completion callback. In the original
// design these are fixed-offset fields read off the fiber's own stack
// frame; here they are ordinary struct fields captured in a closure,
// since a Go fiber has no single memory layout to poke values into.
type frame struct {
	entry      func()
	entryParam func(any)
	param      any
	completion func()
}

// Fiber is a single cooperatively scheduled thread of control: linkage
// into at most one queue, a saved execution context, and the bookkeeping
// fork-on-block needs.
type Fiber struct {
	prev, next *Fiber
	queue      *Queue

	ctx *arch.Context

	// context is overloaded per original contract: a wake-at tick count
	// while queued on the sleep queue, a packed (value, id) event filter
	// while queued on the wait queue.
	context uint32

	flags Flags

	stackSize int

	fr frame
}
