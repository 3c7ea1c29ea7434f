package lang

import "occir/internal/ir"

// registration pairs a language with the constructors its Runtime needs.
// Populated by each langs/*.go package's init() via Register, mirroring
// the static dispatch table the Rust foreach_lang! macro expands into at
// compile time — Go has no macro-time code generation, so the table is
// built at program-init time instead.
type registration struct {
	language Language
	beginErr BeginEmitFunc
}

var registry [numLangs]*registration

// Register installs the Language/BeginEmitFunc pair for l. Called from
// the init() of each package under internal/lang/langs; panics on a
// double registration since that can only be a programming error.
func Register(l Lang, language Language, begin BeginEmitFunc) {
	if registry[l] != nil {
		panic("lang: Register: " + l.Name() + " already registered")
	}
	registry[l] = &registration{language: language, beginErr: begin}
}

func languageFor(l Lang) Language {
	r := registry[l]
	if r == nil {
		panic("lang: " + l.Name() + " has no registered Language implementation")
	}
	return r.language
}

func beginEmitFor(l Lang) BeginEmitFunc {
	r := registry[l]
	if r == nil {
		panic("lang: " + l.Name() + " has no registered Language implementation")
	}
	return r.beginErr
}

// Parse dispatches to l's registered Language.Parse.
func Parse(l Lang, ccx *Ccx, source string) (any, error) {
	return languageFor(l).Parse(ccx, source)
}

// Lower dispatches to l's registered Language.Lower.
func Lower(l Lang, ccx *Ccx, parsed any) (ir.InsId, error) {
	return languageFor(l).Lower(ccx, parsed)
}
