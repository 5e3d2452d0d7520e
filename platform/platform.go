// Package platform carries the small set of collaborators the scheduler's
// idle fiber and diagnostics need from the outside world, trimmed to
// exactly that surface.
package platform

// Logger writes newline-delimited log lines. It intentionally mirrors the
// teacher hardware-abstraction layer's own Logger contract rather than
// pulling in a structured-logging framework: a baremetal target has no
// business linking one in for a handful of diagnostic lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// IdlePlatform is what the idle fiber calls on every pass through its
// loop: a low-power wait, and a hook back into whatever periodic
// housekeeping the integrating application wants run when nothing else is
// runnable.
type IdlePlatform interface {
	// WaitForInterrupt parks the core (or, on the host, the calling
	// goroutine) until the next interrupt-equivalent event.
	WaitForInterrupt()

	// SystemTasks runs any periodic maintenance work that does not belong
	// to a fiber. It must not block for long.
	SystemTasks()
}

// BLEIdlePlatform is implemented by platforms that can distinguish a
// plain wait from one that should also service a radio stack. The idle
// fiber prefers this variant when available.
type BLEIdlePlatform interface {
	IdlePlatform
	WaitForInterruptBLE() bool
}
