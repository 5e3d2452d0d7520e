package fiber

// Sleep blocks the calling fiber until at least ms milliseconds of ticks
// have elapsed. Precision is bounded by FIBER_TICK_PERIOD_MS: the wake
// deadline is rounded up to the next tick boundary, never down.
func (s *Scheduler) Sleep(ms uint32) {
	s.cs.enter()
	deadline := s.ticks + uint64(ms)
	s.blockCurrentLocked(&s.sleep, uint32(deadline))
}

// WaitForEvent blocks the calling fiber until a matching event is
// delivered via Dispatch. IDAny/ValueAny match any id/value respectively.
func (s *Scheduler) WaitForEvent(id, value uint16) {
	s.cs.enter()
	s.blockCurrentLocked(&s.wait, packFilter(id, value))
}

// blockCurrentLocked is entered with the critical section held. If the
// current fiber is running inside a fork-on-block handler, the block is
// deferred to Schedule, which will materialize a forked fiber to carry it
// rather than blocking the fiber that is the synchronous caller's own
// continuation.
func (s *Scheduler) blockCurrentLocked(q *Queue, context uint32) {
	current := s.current
	if current.flags&FlagFOB != 0 {
		s.fork.pendingQueue = q
		s.fork.pendingContext = context
		s.cs.exit()
		s.Schedule()
		return
	}

	dequeueLocked(current)
	current.context = context
	enqueueLocked(current, q)
	s.cs.exit()
	s.Schedule()
}
