package ir

// This file holds the non-FOLD pass seams the driver (driver.go) iterates
// to a fixed point alongside Fold. spec.md §1 scopes GOTO, INLINE, LOOP,
// PHI and SWITCH out as "a black box the driver iterates, not specified
// here" — Goto is the one of the five with a real job to do against the
// instruction set this core defines (JUMP-chain collapsing); the other
// four are wired into the driver as no-op seams because the opcode set in
// opcode.go has no SWITCH, no loop header, no phi and no inter-function
// CALL instruction for them to act on. Each is grounded on the teacher's
// internal/ir.OptimizationPipeline pattern of one small struct per pass,
// registered into a pipeline and run to a fixed point
// (_examples/kanso-lang-kanso/internal/ir/optimizations.go).

// Goto collapses chains of JUMP instructions: a JUMP whose target is
// itself an unconditional JUMP is redirected straight to the final
// target, the modern equivalent of the commented-out GOTO rule in
// _examples/original_source/src/opt_fold.rs ("elide an intermediate
// jump"). It runs after Fold within an iteration, since Fold never
// collapses JUMP chains itself (JUMP is a control instruction, not CSE'd,
// and its target is fixed up rather than rewritten by rule).
type Goto struct{}

func (*Goto) Name() string { return "goto" }

func (g *Goto) Run(f *Func) bool {
	changed := false
	for id := range f.Code {
		ins := &f.Code[id]
		if ins.Op != JUMP {
			continue
		}
		target := InsId(ins.A)
		seen := map[InsId]bool{InsId(id): true}
		for {
			next := f.Code[target]
			if next.Op != JUMP || seen[target] {
				break
			}
			seen[target] = true
			target = InsId(next.A)
			changed = true
		}
		ins.A = int32(target)
	}
	if f.Entry < InsId(len(f.Code)) && f.Code[f.Entry].Op == JUMP {
		seen := map[InsId]bool{}
		target := f.Entry
		for {
			ins := f.Code[target]
			if ins.Op != JUMP || seen[target] {
				break
			}
			seen[target] = true
			target = InsId(ins.A)
			changed = true
		}
		f.Entry = target
	}
	return changed
}

// Loop is a no-op seam: this core's opcode set has no loop-header or
// back-edge instruction for a loop-rotation/LICM pass to act on, so there
// is nothing to rewrite. Kept as a pass so a future loop-carrying opcode
// can be wired in without changing the driver's pass list.
type Loop struct{}

func (*Loop) Name() string   { return "loop" }
func (*Loop) Run(*Func) bool { return false }

// Phi is a no-op seam: the IR has no PHI opcode (control-flow merges are
// expressed structurally via IF/JUMP targets rather than explicit phi
// nodes), so phi simplification has no instructions to act on.
type Phi struct{}

func (*Phi) Name() string   { return "phi" }
func (*Phi) Run(*Func) bool { return false }

// Switch is a no-op seam: the opcode set has no SWITCH instruction (multi-
// way branches lower to chains of IF), so switch-specific simplification
// (e.g. dense-range jump tables) has no target.
type Switch struct{}

func (*Switch) Name() string   { return "switch" }
func (*Switch) Run(*Func) bool { return false }

// Inline is a no-op seam at the whole-program level: this core has no
// inter-function CALL instruction (CALLX dispatches into a language
// plugin's lowered body, not into another IR function), so there is
// nothing for a call-site inliner to rewrite yet.
type Inline struct{}

func (*Inline) Name() string  { return "inline" }
func (*Inline) Run(*IR) bool { return false }
