//go:build !tinygo

package arch

import (
	"testing"
	"time"
)

func TestSwapContextHandsOffExactlyOnce(t *testing.T) {
	e := NewHostEngine()

	out := NewContext()
	in := NewContext()

	var ran bool
	done := make(chan struct{})
	e.SaveContext(in, func() {
		ran = true
		e.RestoreRegisterContext(out)
		close(done)
	})

	e.SwapContext(out, in)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for handoff")
	}
	if !ran {
		t.Fatalf("expected entry to have run")
	}
}

func TestSaveRegisterContextParksUntilWoken(t *testing.T) {
	e := NewHostEngine()
	ctx := NewContext()

	resumed := make(chan struct{})
	go func() {
		e.SaveRegisterContext(ctx)
		close(resumed)
	}()

	select {
	case <-resumed:
		t.Fatal("did not expect resumption before RestoreRegisterContext")
	case <-time.After(20 * time.Millisecond):
	}

	e.RestoreRegisterContext(ctx)

	select {
	case <-resumed:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for resumption")
	}
}
