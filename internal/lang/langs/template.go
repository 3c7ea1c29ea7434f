package langs

import (
	"fmt"
	"strings"
	"text/template"

	"occir/internal/diag"
	"occir/internal/ir"
	"occir/internal/lang"
)

func init() {
	lang.Register(lang.Template, &templateLanguage{}, beginTemplateEmit)
}

type templateLanguage struct{}

func (*templateLanguage) Parse(ccx *lang.Ccx, source string) (any, error) {
	t, err := template.New("embedded").Parse(source)
	if err != nil {
		return nil, diag.LangError("template", diag.ErrLangParse, err)
	}
	return t, nil
}

// Lower emits a KINT holding the number of top-level nodes in the
// template tree (text and actions alike), a coarse static fact a real
// template compiler would refine into per-action CALLX sites.
func (*templateLanguage) Lower(ccx *lang.Ccx, parsed any) (ir.InsId, error) {
	t, ok := parsed.(*template.Template)
	if !ok {
		panic(diag.Invariant(diag.Site{Func: "template"}, diag.ErrLangLower, fmt.Sprintf("Lower: wrong parsed type %T", parsed)))
	}
	actions := 0
	if root := t.Root; root != nil {
		actions = len(root.Nodes)
	}
	return ccx.Emit(ir.KIntIns(ir.I32, int32(actions))), nil
}

type templateRuntime struct {
	byLop map[byte]*template.Template
}

func beginTemplateEmit(ccx *lang.Ccx) (lang.Runtime, error) {
	return &templateRuntime{byLop: make(map[byte]*template.Template)}, nil
}

func (r *templateRuntime) Emit(ecx *lang.Ecx, callID ir.InsId, lop byte) (any, error) {
	t, ok := r.byLop[lop]
	if !ok {
		return nil, diag.LangError("template", diag.ErrLangEmit, fmt.Errorf("no template registered for lop %d", lop))
	}
	var out strings.Builder
	if err := t.Execute(&out, nil); err != nil {
		return nil, diag.LangError("template", diag.ErrLangEmit, err)
	}
	return out.String(), nil
}

func (r *templateRuntime) FinishEmit(ecx *lang.Ecx) error {
	r.byLop = nil
	return nil
}
