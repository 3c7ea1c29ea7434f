// Package diag provides structured, Rust-style diagnostics for the
// optimizer core, adapted from the teacher compiler's
// internal/errors package (_examples/kanso-lang-kanso/internal/errors):
// the same leveled CompilerError/Reporter shape, generalized from
// ast.Position-rooted source diagnostics to the compact Site a
// dense-id IR and its language plugins can produce.
package diag

// Error code ranges, mirroring the teacher's E-code convention but
// rescoped to this core's concerns.
//
// D001-D099: Fold/driver invariant violations
// D100-D199: language plugin (internal/lang) errors
// D800-D899: notices (iteration cap, convergence)
const (
	// D001: an instruction's operand or control id pointed outside the
	// function's code vector.
	ErrInvalidOperand = "D001"

	// D002: Fold encountered a MOV whose source was itself a MOV, which
	// violates the invariant that MOV is always eliminated before its
	// uses are rewritten.
	ErrMovChain = "D002"

	// D003: a rewrite rule was asked to fold an arithmetic opcode it does
	// not define semantics for.
	ErrUnknownArith = "D003"

	// D100: a language plugin's Parse stage rejected its source text.
	ErrLangParse = "D100"

	// D101: BeginEmit failed after some other language's state was
	// already constructed; per spec the partially built LangState.data
	// is intentionally not rolled back (see DESIGN.md).
	ErrLangBeginEmit = "D101"

	// D102: FinishEmit reported at least one language's teardown failing.
	ErrLangFinishEmit = "D102"

	// D103: Lower received a parsed value of a type its own Parse never
	// produces — a broken Parse/Lower pairing within one plugin, not a
	// malformed source text, so this is an invariant violation rather
	// than a reportable compile error.
	ErrLangLower = "D103"

	// D104: a language plugin's Emit failed at a live CALLX dispatch site.
	ErrLangEmit = "D104"

	// D800: the optimizer driver reached MaxIter outer iterations without
	// the IR-size metric converging.
	NoteIterationCap = "D800"
)

// Description returns a human-readable description of a diagnostic code.
func Description(code string) string {
	switch code {
	case ErrInvalidOperand:
		return "instruction operand or control id out of range"
	case ErrMovChain:
		return "MOV instruction whose source is itself a MOV"
	case ErrUnknownArith:
		return "opcode has no defined arithmetic semantics"
	case ErrLangParse:
		return "language plugin failed to parse its source"
	case ErrLangBeginEmit:
		return "language plugin failed to begin code generation"
	case ErrLangFinishEmit:
		return "language plugin failed to finish code generation"
	case ErrLangLower:
		return "language plugin's Lower received a value its own Parse never produces"
	case ErrLangEmit:
		return "language plugin failed a live dispatch in Emit"
	case NoteIterationCap:
		return "optimizer iteration cap reached without convergence"
	default:
		return "unknown diagnostic code"
	}
}

// IsNote reports whether code identifies an informational notice rather
// than an error.
func IsNote(code string) bool {
	return len(code) == 4 && code[0] == 'D' && code[1] == '8'
}
