package langs

import (
	"fmt"
	"path"
	"strings"

	"occir/internal/diag"
	"occir/internal/ir"
	"occir/internal/lang"
)

func init() {
	lang.Register(lang.Path, &pathLanguage{}, beginPathEmit)
}

// pathPattern is a slash-separated glob pattern validated at parse time
// with path.Match's own syntax, the smallest "DSL" in this set.
type pathPattern struct {
	raw  string
	segs int
}

type pathLanguage struct{}

func (*pathLanguage) Parse(ccx *lang.Ccx, source string) (any, error) {
	if _, err := path.Match(source, "/"); err != nil {
		return nil, diag.LangError("path", diag.ErrLangParse, err)
	}
	return &pathPattern{raw: source, segs: len(strings.Split(source, "/"))}, nil
}

func (*pathLanguage) Lower(ccx *lang.Ccx, parsed any) (ir.InsId, error) {
	p, ok := parsed.(*pathPattern)
	if !ok {
		panic(diag.Invariant(diag.Site{Func: "path"}, diag.ErrLangLower, fmt.Sprintf("Lower: wrong parsed type %T", parsed)))
	}
	return ccx.Emit(ir.KIntIns(ir.I32, int32(p.segs))), nil
}

type pathRuntime struct {
	patterns map[byte]string
}

func beginPathEmit(ccx *lang.Ccx) (lang.Runtime, error) {
	return &pathRuntime{patterns: make(map[byte]string)}, nil
}

func (r *pathRuntime) Emit(ecx *lang.Ecx, callID ir.InsId, lop byte) (any, error) {
	pattern, ok := r.patterns[lop]
	if !ok {
		return nil, diag.LangError("path", diag.ErrLangEmit, fmt.Errorf("no pattern registered for lop %d", lop))
	}
	return pattern, nil
}

func (r *pathRuntime) FinishEmit(ecx *lang.Ecx) error {
	r.patterns = nil
	return nil
}
