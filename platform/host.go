//go:build !tinygo

package platform

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// StderrLogger is the host Logger implementation: each line is written to
// stderr with a wall-clock RFC 3339 timestamp prefix, a "just write lines" UART-logger
// style rather than a leveled framework.
type StderrLogger struct {
	mu sync.Mutex
}

// NewStderrLogger returns a Logger that writes to os.Stderr.
func NewStderrLogger() *StderrLogger { return &StderrLogger{} }

func (l *StderrLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(os.Stderr, "%s %s\n", time.Now().Format(time.RFC3339Nano), s)
}

func (l *StderrLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

// HostIdle is the development-machine IdlePlatform: it sleeps a short,
// fixed interval in place of a real low-power wait instruction, and runs
// an optional callback for system tasks.
type HostIdle struct {
	Tasks func()
	// Quantum bounds how long WaitForInterrupt sleeps when nothing else
	// wakes it sooner. Zero selects a 1ms default.
	Quantum time.Duration
}

// NewHostIdle returns a HostIdle with the given system-tasks callback,
// which may be nil.
func NewHostIdle(tasks func()) *HostIdle {
	return &HostIdle{Tasks: tasks}
}

func (h *HostIdle) WaitForInterrupt() {
	q := h.Quantum
	if q <= 0 {
		q = time.Millisecond
	}
	time.Sleep(q)
}

func (h *HostIdle) SystemTasks() {
	if h.Tasks != nil {
		h.Tasks()
	}
}
