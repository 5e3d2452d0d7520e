package fiber

import "fibercore/arch"

// getFiberContext returns a fiber record with flags cleared, ready for a
// new trampoline frame. The caller must hold the scheduler's critical
// section on entry; getFiberContext preserves that invariant on return.
// It prefers a pooled record (O(1) head pop); on a miss it releases the
// section for the allocation itself, since allocation must never run with
// the section held, then re-acquires before returning.
func (s *Scheduler) getFiberContext() *Fiber {
	if f := s.pool.head; f != nil {
		dequeueLocked(f)
		f.flags = 0
		f.context = 0
		return f
	}

	s.cs.exit()
	f := &Fiber{
		ctx:       arch.NewContext(),
		stackSize: STACK_SIZE,
	}
	s.cs.enter()
	return f
}

// verifyStackSize asks the engine for the live depth of the stack f is
// currently running on and doubles f's recorded allotment if it no longer
// fits. This is the only place a fiber's stack size ever grows.
func (s *Scheduler) verifyStackSize(f *Fiber) {
	depth := s.engine.StackDepth()
	if depth <= f.stackSize {
		return
	}
	size := f.stackSize
	for size < depth {
		size *= 2
	}
	if s.logger != nil {
		s.logger.WriteLineString("fiber: growing recorded stack allotment")
	}
	f.stackSize = size
}
