package ir

import "fmt"

// Func owns a function's code vector, indexed by InsId, and its entry
// point. Invariant: every operand id of every instruction is a valid index
// less than len(Code); control successors of control instructions are also
// valid ids; exactly one Entry is reachable from outside.
type Func struct {
	Name  string
	Code  []Ins
	Entry InsId
}

// NewFunc creates an empty function named name.
func NewFunc(name string) *Func {
	return &Func{Name: name}
}

// Append adds ins to the end of the code vector and returns its id.
func (f *Func) Append(ins Ins) InsId {
	id := InsId(len(f.Code))
	f.Code = append(f.Code, ins)
	return id
}

// At returns the instruction at id.
func (f *Func) At(id InsId) Ins { return f.Code[id] }

// Len returns the number of instructions in the function.
func (f *Func) Len() int { return len(f.Code) }

// Validate checks the structural invariants spec.md §3/§8 require of a
// function: every operand and control-successor id is in range. It is not
// on the hot path — Fold's own construction guarantees this by
// construction — but is useful for tests and for sanity-checking
// externally supplied IR (e.g. a language plugin's Lower output).
func (f *Func) Validate() error {
	n := int32(len(f.Code))
	check := func(id int32, what string, at InsId) error {
		if id < 0 || id >= n {
			return fmt.Errorf("func %s: instruction %d: %s operand %d out of range [0,%d)", f.Name, at, what, id, n)
		}
		return nil
	}
	for id, ins := range f.Code {
		for _, op := range ins.Operands() {
			if err := check(op, "data", InsId(id)); err != nil {
				return err
			}
		}
		for _, c := range ins.Controls() {
			if err := check(int32(c), "control", InsId(id)); err != nil {
				return err
			}
		}
	}
	if int32(f.Entry) < 0 || int32(f.Entry) >= n {
		return fmt.Errorf("func %s: entry %d out of range [0,%d)", f.Name, f.Entry, n)
	}
	return nil
}

// FuncId is a dense index into an IR's Funcs slice.
type FuncId int

// IR is a whole compilation unit: a vector of functions. Intra-function
// ids never leak across functions.
type IR struct {
	Funcs []*Func
}

// Size implements the IR-size metric from spec.md §4.2: the sum, over all
// functions, of the function's instruction count plus a constant 37 per
// function. The constant biases the metric so that collapsing an entire
// function (e.g. via inlining) counts as a net reduction even when its
// code is empty. The exact value is irrelevant beyond equality checks
// across iterations.
func (ir *IR) Size() int {
	const perFuncBias = 37
	size := 0
	for _, f := range ir.Funcs {
		size += f.Len() + perFuncBias
	}
	return size
}
