package lang

import "occir/internal/ir"

// Ccx is the compile-time context handed to Parse and BeginEmit: enough
// state for a plugin to intern constants and allocate fresh instruction
// ids in the function it is being lowered into, without giving it access
// to the whole IR. Grounded on lang.rs's Ccx/Pcx split, collapsed to one
// struct since this core has no separate parse-context type.
type Ccx struct {
	Pool *ir.Pool
	Func *ir.Func
}

// Emit appends ins to the context's function and returns its id, the Go
// equivalent of the Rust original's raw Func::push used from inside
// begin_emit/lower.
func (c *Ccx) Emit(ins ir.Ins) ir.InsId { return c.Func.Append(ins) }

// Ecx is the runtime context handed to Emit and FinishEmit. The id of the
// instruction being dispatched and the lop (language-specific opcode)
// packed into its CALLX are passed to Emit as separate arguments.
type Ecx struct {
	Pool *ir.Pool
}

// Language is the per-plugin contract a CALLX instruction's (Lang, lop)
// pair dispatches through (spec.md §5, lang.rs's `trait Language`):
//
//   - Parse turns source text into the plugin's internal representation.
//   - Lower rewrites that representation into a sequence of Ins appended
//     to the enclosing function, returning the entry id of the lowered
//     body (this becomes a CALLX's control successor).
//   - BeginEmit constructs whatever runtime state Emit/FinishEmit need
//     (e.g. a regexp.Regexp cache); it runs once per compilation, before
//     any Emit call for that language.
//   - Emit evaluates one lowered CALLX site at runtime.
//   - FinishEmit consumes the runtime state built by BeginEmit, draining
//     any resources it owns.
type Language interface {
	Parse(ccx *Ccx, source string) (any, error)
	Lower(ccx *Ccx, parsed any) (ir.InsId, error)
}

// Runtime is the live, per-compilation state a language plugin built via
// BeginEmit. It is consumed exactly once by FinishEmit — there is no
// implicit teardown (spec.md §5's "no implicit destructors" contract,
// grounded on lang.rs's `// note: this intentionally does *not* implement
// Drop. you "drop" it by calling finish.`).
type Runtime interface {
	Emit(ecx *Ecx, callID ir.InsId, lop byte) (any, error)
	FinishEmit(ecx *Ecx) error
}

// BeginEmitFunc constructs a Runtime for one language at the start of a
// compilation. Registered per language in registry.go.
type BeginEmitFunc func(ccx *Ccx) (Runtime, error)
