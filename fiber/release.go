package fiber

// ReleaseFiber unlinks the current fiber and returns it to the pool, then
// transfers control to the next runnable fiber. Unlike Schedule, the
// outgoing goroutine is never parked: a released fiber's record may be
// handed a completely different entry point the next time it is reused,
// so there is nothing to resume it into. The goroutine underneath it
// terminates as soon as this call returns.
func (s *Scheduler) ReleaseFiber() {
	s.cs.enter()
	f := s.current
	dequeueLocked(f)
	f.flags = 0
	f.fr = frame{}
	enqueueLocked(f, &s.pool)

	next := s.pickNext()
	s.cs.exit()

	s.current = next
	s.engine.RestoreRegisterContext(next.ctx)
}
