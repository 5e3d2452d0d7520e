//go:build tinygo && baremetal

package arch

// TinygoEngine is the target-port placeholder for the architecture
// contract. A real baremetal port must replace this file with code that
// snapshots and restores the callee-saved register set and stack pointer
// for the target core (e.g. Cortex-M), the way the original fiber
// scheduler's save_context/restore_register_context assembly does. That
// work is out of scope here: this module only needs the contract, not a
// specific silicon target.
type TinygoEngine struct{}

// NewTinygoEngine returns the baremetal Engine placeholder.
func NewTinygoEngine() *TinygoEngine { return &TinygoEngine{} }

func (TinygoEngine) SaveContext(ctx *Context, entry Entry) {
	panic("arch: TinygoEngine.SaveContext not implemented for this target")
}

func (TinygoEngine) SaveRegisterContext(ctx *Context) {
	panic("arch: TinygoEngine.SaveRegisterContext not implemented for this target")
}

func (TinygoEngine) RestoreRegisterContext(ctx *Context) {
	panic("arch: TinygoEngine.RestoreRegisterContext not implemented for this target")
}

func (TinygoEngine) SwapContext(out, in *Context) {
	panic("arch: TinygoEngine.SwapContext not implemented for this target")
}

func (TinygoEngine) StackDepth() int {
	return 0
}
