//go:build !tinygo

package arch

import (
	"runtime/debug"
	"sync"
)

// hostBackend is the per-Context state on the host engine: a single
// unbuffered channel used as a wake baton, and a guard so two goroutines
// racing to lazily initialize the same Context don't create two batons.
type hostBackend struct {
	mu   sync.Mutex
	wake chan struct{}
}

func (b *hostBackend) ensure() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.wake == nil {
		b.wake = make(chan struct{})
	}
	return b.wake
}

// backendMu serializes the lazy creation of a Context's hostBackend, so the
// racing goroutines described above always end up sharing one backend.
var backendMu sync.Mutex

func backendOf(ctx *Context) *hostBackend {
	backendMu.Lock()
	defer backendMu.Unlock()
	if ctx.backend == nil {
		ctx.backend = &hostBackend{}
	}
	return ctx.backend.(*hostBackend)
}

// HostEngine backs every arch.Context with a real goroutine parked on an
// unbuffered wake channel. At most one fiber's goroutine is ever runnable
// at a time by construction: a context is only ever woken by exactly the
// operation that is about to park its own caller, so the handoff is
// strictly one-in, one-out.
type HostEngine struct{}

// NewHostEngine returns the development/test Engine implementation.
func NewHostEngine() *HostEngine { return &HostEngine{} }

func (HostEngine) SaveContext(ctx *Context, entry Entry) {
	wake := backendOf(ctx).ensure()
	go func() {
		<-wake
		entry()
	}()
}

func (HostEngine) SaveRegisterContext(ctx *Context) {
	wake := backendOf(ctx).ensure()
	<-wake
}

func (HostEngine) RestoreRegisterContext(ctx *Context) {
	wake := backendOf(ctx).ensure()
	wake <- struct{}{}
}

func (e HostEngine) SwapContext(out, in *Context) {
	inWake := backendOf(in).ensure()
	outWake := backendOf(out).ensure()
	inWake <- struct{}{}
	<-outWake
}

func (HostEngine) StackDepth() int {
	return len(debug.Stack())
}
