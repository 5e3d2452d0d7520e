package fiber

import "fibercore/arch"

// ForkOnBlock runs handler as if it were called directly from the current
// fiber. If handler returns without blocking, no fiber is ever allocated
// for it — the common case for short event handlers pays only the cost of
// a context hop, not a pooled fiber. If handler blocks (calls Sleep or
// WaitForEvent), the scheduler materializes a fiber to carry the
// remainder of handler's execution, and ForkOnBlock returns to its caller
// immediately, exactly as if handler itself had returned.
//
// Nesting is not supported: calling ForkOnBlock from inside a handler
// that is itself running under ForkOnBlock falls back to an ordinary
// CreateFiber.
func (s *Scheduler) ForkOnBlock(handler func()) {
	if handler == nil {
		return
	}

	s.cs.enter()
	current := s.current
	if current.flags&FlagFOB != 0 {
		s.cs.exit()
		s.CreateFiber(handler, func() {})
		return
	}
	current.flags |= FlagFOB
	s.fork = forkEpisode{active: true, original: current}
	s.cs.exit()

	handlerCtx := arch.NewContext()
	s.cs.enter()
	s.fork.runningCtx = handlerCtx
	s.cs.exit()

	s.engine.SaveContext(handlerCtx, func() {
		handler()

		s.cs.enter()
		isChild := s.current.flags&FlagChild != 0
		s.cs.exit()

		if isChild {
			s.ReleaseFiber()
			return
		}
		s.engine.RestoreRegisterContext(current.ctx)
	})

	s.engine.SwapContext(current.ctx, handlerCtx)

	s.cs.enter()
	current.flags &^= FlagFOB | FlagParent
	// On the blocking path materializeFork already cleared this; on the
	// non-blocking path nothing else has, so the episode would otherwise
	// outlive the call that created it, left pointing at a handler
	// goroutine that has already run to completion.
	s.fork = forkEpisode{}
	s.cs.exit()
}

// materializeFork is entered from Schedule with the critical section
// held, exactly when the current fiber is running a fork-on-block handler
// that just tried to block. It promotes the handler's running context
// into a pooled Fiber record, marks the original/forked roles, and hands
// control back to the original fiber without returning to its own caller
// (the forked goroutine instead parks here, to be resumed later the same
// way any other scheduled fiber is).
func (s *Scheduler) materializeFork() {
	pendingQueue := s.fork.pendingQueue
	pendingContext := s.fork.pendingContext
	original := s.fork.original
	runningCtx := s.fork.runningCtx

	forked := s.getFiberContext()
	forked.ctx = runningCtx
	forked.context = pendingContext
	forked.flags = FlagChild

	// Measured now, while still running on the handler's own goroutine,
	// the same way Schedule verifies the outgoing fiber before every
	// ordinary SwapContext.
	s.verifyStackSize(forked)

	enqueueLocked(forked, pendingQueue)

	original.flags = (original.flags &^ FlagFOB) | FlagParent

	s.fork = forkEpisode{}

	s.cs.exit()
	s.engine.SwapContext(forked.ctx, original.ctx)
}
