package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteString(t *testing.T) {
	assert.Equal(t, "<ir>", Site{}.String())
	assert.Equal(t, "demo:ins 3", Site{Func: "demo", Ins: 3}.String())
	assert.Equal(t, "sql:line 7", Site{Func: "sql", Line: 7}.String())
	assert.Equal(t, "sql", Site{Func: "sql"}.String(), "a plugin site with no ins/line should not print a misleading :ins 0")
}

func TestInvariantBuildsErrorLevelDiagnostic(t *testing.T) {
	d := Invariant(Site{Func: "demo", Ins: 3}, ErrMovChain, "MOV-of-MOV chain (invariant violation)")
	assert.Equal(t, Error, d.Level)
	assert.Equal(t, ErrMovChain, d.Code)
	assert.Contains(t, d.Message, "MOV-of-MOV")
}

func TestNoticeBuildsNoteLevelDiagnostic(t *testing.T) {
	d := Notice(Site{}, NoteIterationCap, "optimizer iteration cap reached without convergence")
	assert.Equal(t, Note, d.Level)
	assert.Equal(t, NoteIterationCap, d.Code)
	assert.True(t, IsNote(d.Code))
}

func TestDiagnosticSatisfiesError(t *testing.T) {
	var err error = Invariant(Site{Func: "demo"}, ErrInvalidOperand, "entry instruction was never visited")
	assert.ErrorContains(t, err, "entry instruction was never visited")
	assert.ErrorContains(t, err, ErrInvalidOperand)
}

func TestLangErrorWrapsCauseAndUnwraps(t *testing.T) {
	cause := errors.New("unexpected token")
	err := LangError("sql", ErrLangParse, cause)

	assert.ErrorContains(t, err, "unexpected token")
	assert.ErrorIs(t, err, cause)

	var d Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, ErrLangParse, d.Code)
	assert.Equal(t, "sql", d.Site.Func)
}

func TestReporterFormatIncludesCodeMessageAndSite(t *testing.T) {
	r := NewReporter()
	d := Diagnostic{
		Level:    Error,
		Code:     ErrUnknownArith,
		Message:  "opcode has no defined arithmetic semantics",
		Site:     Site{Func: "fold", Ins: 12},
		Notes:    []string{"left and right were both constant"},
		HelpText: "only ADD/SUB/MUL/DIV/UDIV fold at this type",
	}
	out := r.Format(d)
	assert.Contains(t, out, ErrUnknownArith)
	assert.Contains(t, out, "opcode has no defined arithmetic semantics")
	assert.Contains(t, out, "fold:ins 12")
	assert.Contains(t, out, "left and right were both constant")
	assert.Contains(t, out, "only ADD/SUB/MUL/DIV/UDIV fold at this type")
}

func TestReporterFormatOmitsCodeWhenEmpty(t *testing.T) {
	r := NewReporter()
	d := Diagnostic{Level: Warn, Message: "no code here", Site: Site{}}
	out := r.Format(d)
	assert.Contains(t, out, "no code here")
	assert.Contains(t, out, "<ir>")
}

func TestDescriptionCoversEveryCode(t *testing.T) {
	for _, code := range []string{
		ErrInvalidOperand, ErrMovChain, ErrUnknownArith,
		ErrLangParse, ErrLangBeginEmit, ErrLangFinishEmit, ErrLangLower, ErrLangEmit,
		NoteIterationCap,
	} {
		assert.NotEqual(t, "unknown diagnostic code", Description(code), code)
	}
	assert.Equal(t, "unknown diagnostic code", Description("D999"))
}
