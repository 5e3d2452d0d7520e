package fiber

import (
	"fibercore/arch"
	"fibercore/platform"
)

// Scheduler holds all process-wide state: the five queues, the current
// fiber, the tick counter, and the active fork-on-block episode, if any.
// There is no teardown; once Init returns, the scheduler runs for the
// lifetime of the process.
type Scheduler struct {
	cs criticalSection

	run   Queue
	sleep Queue
	wait  Queue
	pool  Queue

	idle    *Fiber
	current *Fiber

	// dataReadPending, when set, makes Schedule prefer the idle fiber
	// even if the run queue is non-empty, mirroring the original
	// contract's "a low-level driver has asked for a brief quiet window"
	// escape hatch. Set and cleared through SetDataReadPending.
	dataReadPending bool

	ticks uint64

	engine arch.Engine
	logger platform.Logger

	fork forkEpisode
}

// forkEpisode tracks the single in-flight fork-on-block handoff. Only one
// can be active per current fiber at a time.
type forkEpisode struct {
	active     bool
	original   *Fiber
	runningCtx *arch.Context

	// pendingQueue/pendingContext describe the block the handler is
	// trying to perform; Schedule consults them when materializing the
	// forked fiber.
	pendingQueue   *Queue
	pendingContext uint32
}

// Init constructs a scheduler around the calling goroutine: the caller
// becomes the first fiber (already running, never passed through
// SaveContext), the idle fiber is created and parked, and the returned
// Scheduler is ready to accept CreateFiber calls and Schedule yields.
//
// Init must be called exactly once, from what will become the program's
// main fiber. A second call is a programming error, not a race this
// package defends against.
func Init(idlePlatform platform.IdlePlatform, engine arch.Engine, logger platform.Logger) *Scheduler {
	s := &Scheduler{engine: engine, logger: logger}

	main := &Fiber{ctx: arch.NewContext(), stackSize: STACK_SIZE}
	s.current = main
	enqueueLocked(main, &s.run)

	s.idle = &Fiber{ctx: arch.NewContext(), stackSize: STACK_SIZE}
	engine.SaveContext(s.idle.ctx, func() { s.runIdle(idlePlatform) })

	return s
}

func (s *Scheduler) runIdle(p platform.IdlePlatform) {
	for {
		if ble, ok := p.(platform.BLEIdlePlatform); ok {
			ble.WaitForInterruptBLE()
		} else {
			p.WaitForInterrupt()
		}
		p.SystemTasks()
		s.Schedule()
	}
}

// Tick advances the scheduler's millisecond clock by FIBER_TICK_PERIOD_MS
// and wakes any sleeper whose deadline has passed. It is meant to be
// called from a periodic timer interrupt (or, on the host engine, from
// the goroutine driving a time.Ticker).
func (s *Scheduler) Tick() {
	s.cs.enter()
	s.ticks += FIBER_TICK_PERIOD_MS
	now := s.ticks

	var woken []*Fiber
	forEachLocked(&s.sleep, func(f *Fiber) {
		if uint64(f.context) <= now {
			dequeueLocked(f)
			woken = append(woken, f)
		}
	})
	for _, f := range woken {
		enqueueLocked(f, &s.run)
	}
	s.cs.exit()
}

// Dispatch delivers evt to every fiber waiting on a matching filter,
// moving each to the run queue. It is meant to be called from the
// message-bus ISR.
func (s *Scheduler) Dispatch(evt Event) {
	s.cs.enter()
	var woken []*Fiber
	forEachLocked(&s.wait, func(f *Fiber) {
		id, value := unpackFilter(f.context)
		if (id == IDAny || id == evt.Source) && (value == ValueAny || value == evt.Value) {
			dequeueLocked(f)
			woken = append(woken, f)
		}
	})
	for _, f := range woken {
		enqueueLocked(f, &s.run)
	}
	s.cs.exit()
}

// SetDataReadPending tells the scheduler whether a low-level driver has
// asked for a brief quiet window: while set, Schedule picks the idle fiber
// even with runnable fibers waiting, the same way a DMA or radio driver
// asks not to be preempted mid-transfer. Meant to be called from the
// driver's ISR around the transfer it needs undisturbed.
func (s *Scheduler) SetDataReadPending(pending bool) {
	s.cs.enter()
	s.dataReadPending = pending
	s.cs.exit()
}

func packFilter(id, value uint16) uint32 {
	return uint32(value)<<16 | uint32(id)
}

// unpackFilter extracts (id, value) from a packed filter word. The value
// mask is corrected to 0xFFFF0000 here; the original source packs with
// value<<16 but extracts with a mask that only recovers the low byte of
// value (0xFF00>>16), which is a bug against its own packing. This
// implementation matches the documented packing, not the typo.
func unpackFilter(context uint32) (id, value uint16) {
	id = uint16(context & 0xFFFF)
	value = uint16((context & 0xFFFF0000) >> 16)
	return id, value
}

// Schedule is the explicit yield point: it handles a pending fork-on-block
// materialization (if the current fiber is mid-handler and about to
// block), then picks the next runnable fiber and switches to it.
func (s *Scheduler) Schedule() {
	s.cs.enter()

	if s.fork.active && s.fork.pendingQueue != nil && s.fork.original == s.current {
		s.materializeFork()
		return // materializeFork releases the section and swaps itself.
	}

	next := s.pickNext()
	s.cs.exit()

	if next != s.current {
		s.verifyStackSize(s.current)
		out, in := s.current.ctx, next.ctx
		s.current = next
		s.engine.SwapContext(out, in)
	}
}

// pickNext must be called with the critical section held; it returns the
// fiber Schedule should switch to, applying the idle/round-robin rule.
func (s *Scheduler) pickNext() *Fiber {
	if s.run.empty() || s.dataReadPending {
		return s.idle
	}
	if s.current.queue == &s.run {
		if s.current.next != nil {
			return s.current.next
		}
		return s.run.head
	}
	return s.run.head
}
