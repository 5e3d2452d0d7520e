package fiber

import (
	"testing"

	"fibercore/arch"
	"fibercore/platform"
)

func TestForkOnBlockNonBlockingHandlerAllocatesNoFiber(t *testing.T) {
	s := Init(platform.NewHostIdle(nil), arch.NewHostEngine(), nil)

	ran := false
	s.ForkOnBlock(func() { ran = true })

	if !ran {
		t.Fatalf("expected handler to run")
	}
	if !s.pool.empty() {
		t.Fatalf("expected no fiber allocated for a non-blocking handler")
	}
	if s.current.flags != 0 {
		t.Fatalf("expected flags clear after a non-blocking fork-on-block episode, got %v", s.current.flags)
	}
}

func TestForkOnBlockBlockingHandlerMaterializesAndRecyclesAFiber(t *testing.T) {
	s := Init(platform.NewHostIdle(nil), arch.NewHostEngine(), nil)

	forkedRan := false
	s.ForkOnBlock(func() {
		s.Sleep(2 * FIBER_TICK_PERIOD_MS)
		forkedRan = true
	})

	// ForkOnBlock returns to the caller immediately once the handler
	// blocks, exactly as if it had returned synchronously.
	if forkedRan {
		t.Fatalf("handler must not have run to completion yet")
	}
	if s.current.flags != 0 {
		t.Fatalf("expected original fiber's flags clear after handing off, got %v", s.current.flags)
	}
	if s.sleep.empty() {
		t.Fatalf("expected a forked fiber parked on the sleep queue")
	}

	s.Tick()
	s.Tick()

	if s.sleep.empty() == false {
		t.Fatalf("expected forked fiber moved off the sleep queue")
	}

	s.Schedule() // main -> forked fiber resumes past Sleep, finishes, recycles -> back to main

	if !forkedRan {
		t.Fatalf("expected forked fiber to have resumed and completed")
	}
	if s.pool.empty() {
		t.Fatalf("expected forked fiber recycled into the pool")
	}
}

func TestForkOnBlockNestedCallFallsBackToCreateFiber(t *testing.T) {
	s := Init(platform.NewHostIdle(nil), arch.NewHostEngine(), nil)

	outerRan, innerRan := false, false
	s.ForkOnBlock(func() {
		outerRan = true
		s.ForkOnBlock(func() { innerRan = true })
	})

	if !outerRan {
		t.Fatalf("expected outer handler to run")
	}

	// The inner call falls back to CreateFiber, so it needs a turn of the
	// scheduler before it runs.
	s.Schedule()
	s.Schedule()

	if !innerRan {
		t.Fatalf("expected inner handler (via CreateFiber fallback) to have run")
	}
}
