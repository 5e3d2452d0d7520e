//go:build tinygo && baremetal

package main

import (
	"fibercore/arch"
	"fibercore/fiber"
	"fibercore/platform"
)

// main wires the scheduler to a baremetal target. arch.NewTinygoEngine and
// platform.NewNoopIdle are placeholders until a real port supplies the
// register-save/restore assembly and a true low-power wait instruction.
func main() {
	engine := arch.NewTinygoEngine()
	idle := platform.NewNoopIdle(nil)
	sched := fiber.Init(idle, engine, nil)

	sched.CreateFiber(func() {
		sched.Sleep(1000)
	}, func() {})

	for {
		sched.Schedule()
	}
}
