// Package langs holds the concrete embedded-DSL plugins that exercise
// internal/lang's dispatch table: a toy SQL-like query language, a regex
// matcher, a tiny string template language, and a slash-path matcher.
// None of these are meant to be real engines (spec.md's Non-goals say so
// explicitly) — they exist to give the lang.State dispatch table at least
// three real languages to dispatch to, each backed by a distinct library from the retrieved
// example pack, grounded the same way _examples/kanso-lang-kanso/grammar
// is grounded on participle.
package langs

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"occir/internal/diag"
	"occir/internal/ir"
	"occir/internal/lang"
)

func init() {
	lang.Register(lang.SQL, &sqlLanguage{}, beginSQLEmit)
}

// sqlQuery is a single `select <col>,... from <table> [where <col> = <n>]`
// statement, parsed with the same struct-tag grammar + stateful-lexer
// style as _examples/kanso-lang-kanso/grammar/{grammar,lexer}.go.
type sqlQuery struct {
	Columns []string   `"select" @Ident ("," @Ident)*`
	Table   string     `"from" @Ident`
	Where   *sqlFilter `("where" @@)?`
}

type sqlFilter struct {
	Column string `@Ident "="`
	Value  int64  `@Int`
}

var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[,=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sqlParser = participle.MustBuild[sqlQuery](
	participle.Lexer(sqlLexer),
	participle.Elide("Whitespace"),
)

type sqlLanguage struct{}

func (*sqlLanguage) Parse(ccx *lang.Ccx, source string) (any, error) {
	q, err := sqlParser.ParseString("", source)
	if err != nil {
		return nil, diag.LangError("sql", diag.ErrLangParse, err)
	}
	return q, nil
}

// Lower turns a parsed query into a lowered body: one KINT per selected
// column count and filter value, folded together behind a CALLX so the
// optimizer core's Fold pass has real constants to chew on. This is a
// stand-in for a real query planner; the spec only requires that Lower
// return the entry id of some instruction sequence.
func (*sqlLanguage) Lower(ccx *lang.Ccx, parsed any) (ir.InsId, error) {
	q, ok := parsed.(*sqlQuery)
	if !ok {
		panic(diag.Invariant(diag.Site{Func: "sql"}, diag.ErrLangLower, fmt.Sprintf("Lower: wrong parsed type %T", parsed)))
	}
	count := ccx.Emit(ir.KIntIns(ir.I32, int32(len(q.Columns))))
	if q.Where == nil {
		return count, nil
	}
	filter := ccx.Emit(ir.KIntIns(ir.I64, int32(q.Where.Value)))
	return ccx.Emit(ir.BinIns(ir.ADD, ir.I64, count, filter)), nil
}

// sqlRuntime is the per-compilation state begin_emit builds: nothing
// stateful is actually needed for this toy engine, but the slot exists to
// exercise the BeginEmit/FinishEmit lifecycle the contract requires.
type sqlRuntime struct {
	queriesEmitted int
}

func beginSQLEmit(ccx *lang.Ccx) (lang.Runtime, error) {
	return &sqlRuntime{}, nil
}

func (r *sqlRuntime) Emit(ecx *lang.Ecx, callID ir.InsId, lop byte) (any, error) {
	r.queriesEmitted++
	return r.queriesEmitted, nil
}

func (r *sqlRuntime) FinishEmit(ecx *lang.Ecx) error {
	return nil
}
