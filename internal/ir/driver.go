package ir

import (
	"fmt"

	"github.com/tliron/commonlog"

	"occir/internal/diag"
)

// Flags selects a subset of optimizer passes (spec §6).
type Flags uint8

const (
	FOLD Flags = 1 << iota
	GOTO
	INLINE
	LOOP
	PHI
	SWITCH

	allFlags = FOLD | GOTO | INLINE | LOOP | PHI | SWITCH
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// ParseFlags parses a byte sequence of flag characters, optionally
// prefixed with '-', into a Flags set (spec §6):
//
//	f=FOLD g=GOTO i=INLINE l=LOOP p=PHI s=SWITCH a=all
//
// Unknown characters are ignored. A leading '-' complements the
// accumulated set, so "fg" -> {FOLD,GOTO}, "a" -> all, "-l" -> all\{LOOP},
// "-" -> all (empty set complemented).
func ParseFlags(flags []byte) Flags {
	var set Flags
	for _, f := range flags {
		switch f {
		case 'f':
			set |= FOLD
		case 'g':
			set |= GOTO
		case 'i':
			set |= INLINE
		case 'l':
			set |= LOOP
		case 'p':
			set |= PHI
		case 's':
			set |= SWITCH
		case 'a':
			set |= allFlags
		}
	}
	if len(flags) > 0 && flags[0] == '-' {
		set = allFlags &^ set
	}
	return set
}

// FuncPass is one pass invoked once per function per outer iteration.
// Implementations share mutable scratch across invocations for buffer
// reuse (spec §4.2).
type FuncPass interface {
	Name() string
	Run(f *Func) (changed bool)
}

// Pass is one pass invoked once per outer iteration over the whole IR.
type Pass interface {
	Name() string
	Run(ir *IR) (changed bool)
}

// MaxIter bounds the optimizer driver's outer iteration loop (spec §4.2).
const MaxIter = 100

// Optimizer drives a fixed-point iteration of the enabled passes over an
// IR. It owns the Fold rewrite arena and the constant pool, reused across
// every function and every outer iteration within one compilation.
//
// TODO(from _examples/original_source/src/optimize.rs): the original
// compiler's pass list also carries conditional constant propagation,
// dead parameter/return elimination, identical-function merging, and
// load/store elimination as future work; none of those are implemented
// here, consistent with spec.md treating non-FOLD passes as a black box.
type Optimizer struct {
	Pool *Pool
	Fold *Fold

	Inline Pass
	Goto   FuncPass
	Loop   FuncPass
	Phi    FuncPass
	Switch FuncPass

	Logger commonlog.Logger
}

// NewOptimizer constructs an Optimizer with fresh scratch state and the
// stock non-FOLD pass implementations (internal/ir/passes.go).
func NewOptimizer(pool *Pool) *Optimizer {
	return &Optimizer{
		Pool:   pool,
		Fold:   NewFold(),
		Inline: &Inline{},
		Goto:   &Goto{},
		Loop:   &Loop{},
		Phi:    &Phi{},
		Switch: &Switch{},
	}
}

// Run rewrites every function in ir until either the IR-size metric is
// unchanged from the previous full iteration, or MaxIter outer iterations
// have run (spec §4.2). It returns the number of outer iterations
// performed.
func (o *Optimizer) Run(ir *IR, flags Flags) int {
	size := ir.Size()
	for i := 0; i < MaxIter; i++ {
		o.runOnce(ir, flags)
		newSize := ir.Size()
		if newSize == size {
			o.trace("optimize: converged in %d iteration(s)", i+1)
			return i + 1
		}
		o.trace("optimize: IR size %d -> %d", size, newSize)
		size = newSize
	}
	note := diag.Notice(diag.Site{}, diag.NoteIterationCap,
		"optimizer iteration cap reached without convergence")
	note.Notes = []string{fmt.Sprintf("size metric still changing (last %d) after %d iterations", size, MaxIter)}
	o.warn(note)
	return MaxIter
}

// runOnce is one outer iteration: whole-program INLINE first, then per
// function (ascending FuncId) FOLD, SWITCH, LOOP, PHI, GOTO. Order matters
// because FOLD canonicalizes inputs that later passes pattern-match on
// (spec §4.2).
func (o *Optimizer) runOnce(ir *IR, flags Flags) {
	if flags.Has(INLINE) {
		o.Inline.Run(ir)
	}
	for _, f := range ir.Funcs {
		if flags.Has(FOLD) {
			o.Fold.Run(o.Pool, f)
		}
		if flags.Has(SWITCH) {
			o.Switch.Run(f)
		}
		if flags.Has(LOOP) {
			o.Loop.Run(f)
		}
		if flags.Has(PHI) {
			o.Phi.Run(f)
		}
		if flags.Has(GOTO) {
			o.Goto.Run(f)
		}
	}
}

func (o *Optimizer) trace(format string, args ...interface{}) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debugf(format, args...)
}

func (o *Optimizer) warn(d diag.Diagnostic) {
	if o.Logger == nil {
		return
	}
	o.Logger.Warningf("%s", diag.NewReporter().Format(d))
}
