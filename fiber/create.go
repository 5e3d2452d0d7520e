package fiber

// CreateFiber allocates a fiber that will run entry to completion, then
// invoke completion, then recycle itself. It returns (nil, false) if
// entry or completion is nil. Obtaining the record has no failure path:
// getFiberContext always returns a pooled or newly allocated record, and
// running out of memory is not detected here.
func (s *Scheduler) CreateFiber(entry, completion func()) (*Fiber, bool) {
	if entry == nil || completion == nil {
		return nil, false
	}
	s.cs.enter()
	f := s.getFiberContext()
	f.fr = frame{entry: entry, completion: completion}
	enqueueLocked(f, &s.run)
	s.cs.exit()

	s.engine.SaveContext(f.ctx, func() { s.launchNewFiber(f) })
	return f, true
}

// CreateFiberParam is CreateFiber for handlers that need a parameter
// carried through to both entry and completion.
func (s *Scheduler) CreateFiberParam(entry func(any), param any, completion func()) (*Fiber, bool) {
	if entry == nil || completion == nil {
		return nil, false
	}
	s.cs.enter()
	f := s.getFiberContext()
	f.fr = frame{entryParam: entry, param: param, completion: completion}
	enqueueLocked(f, &s.run)
	s.cs.exit()

	s.engine.SaveContext(f.ctx, func() { s.launchNewFiberParam(f) })
	return f, true
}

// launchNewFiber and launchNewFiberParam are the trampolines named in the
// original design: the nominal entry point of a freshly created fiber,
// reading its entry/param/completion out of its own trampoline frame
// rather than off fixed stack offsets.
func (s *Scheduler) launchNewFiber(f *Fiber) {
	f.fr.entry()
	f.fr.completion()
	s.ReleaseFiber()
}

func (s *Scheduler) launchNewFiberParam(f *Fiber) {
	f.fr.entryParam(f.fr.param)
	f.fr.completion()
	s.ReleaseFiber()
}
