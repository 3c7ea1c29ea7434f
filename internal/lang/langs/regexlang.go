package langs

import (
	"fmt"
	"regexp"

	"occir/internal/diag"
	"occir/internal/ir"
	"occir/internal/lang"
)

func init() {
	lang.Register(lang.Regex, &regexLanguage{}, beginRegexEmit)
}

type regexLanguage struct{}

// Parse compiles the source as a regexp.Regexp. Compilation itself is the
// plugin's "parse": the *regexp.Regexp is both the parsed form and, later,
// the thing Emit matches against.
func (*regexLanguage) Parse(ccx *lang.Ccx, source string) (any, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, diag.LangError("regex", diag.ErrLangParse, err)
	}
	return re, nil
}

// Lower emits one KINT holding the regexp's subexpression count, which is
// the only compile-time-knowable fact about a compiled pattern. Real work
// happens in Emit, at match time.
func (*regexLanguage) Lower(ccx *lang.Ccx, parsed any) (ir.InsId, error) {
	re, ok := parsed.(*regexp.Regexp)
	if !ok {
		panic(diag.Invariant(diag.Site{Func: "regex"}, diag.ErrLangLower, fmt.Sprintf("Lower: wrong parsed type %T", parsed)))
	}
	return ccx.Emit(ir.KIntIns(ir.I32, int32(re.NumSubexp()))), nil
}

// regexRuntime caches compiled patterns by lop so Emit never recompiles
// across calls within one compilation.
type regexRuntime struct {
	cache map[byte]*regexp.Regexp
}

func beginRegexEmit(ccx *lang.Ccx) (lang.Runtime, error) {
	return &regexRuntime{cache: make(map[byte]*regexp.Regexp)}, nil
}

func (r *regexRuntime) Emit(ecx *lang.Ecx, callID ir.InsId, lop byte) (any, error) {
	re, ok := r.cache[lop]
	if !ok {
		return nil, diag.LangError("regex", diag.ErrLangEmit, fmt.Errorf("no pattern registered for lop %d", lop))
	}
	return re.String(), nil
}

func (r *regexRuntime) FinishEmit(ecx *lang.Ecx) error {
	r.cache = nil
	return nil
}
