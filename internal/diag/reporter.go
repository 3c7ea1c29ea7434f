package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a diagnostic.
type Level string

const (
	Error Level = "error"
	Warn  Level = "warning"
	Note  Level = "note"
	Help  Level = "help"
)

// Site locates a diagnostic within one compilation artifact: a function
// name and an instruction id, rather than the teacher's source line and
// column, since this core's diagnostics are about IR shape, not source
// text. Func is left empty when a diagnostic does not refer to any single
// function (e.g. a whole-IR notice); such a site renders as "<ir>".
type Site struct {
	Func string
	Ins  uint32
	Line int // 1-based source line, when the diagnostic comes from a language plugin's Parse stage
}

func (s Site) String() string {
	if s.Func == "" {
		return "<ir>"
	}
	if s.Line > 0 {
		return fmt.Sprintf("%s:line %d", s.Func, s.Line)
	}
	if s.Ins > 0 {
		return fmt.Sprintf("%s:ins %d", s.Func, s.Ins)
	}
	return s.Func
}

// Diagnostic is a structured, leveled compiler message, mirroring the
// teacher's CompilerError (_examples/kanso-lang-kanso/internal/errors/reporter.go)
// with Position/Length replaced by Site and the source-snippet rendering
// dropped, since there is no source text backing most of these sites.
//
// Diagnostic implements error (see Error/Unwrap below), so a Diagnostic
// can be returned directly from a fallible call site or passed to panic,
// and still compose with errors.Is/errors.As through the wrapped Err.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	Site     Site
	Notes    []string
	HelpText string
	Err      error // underlying cause, if this diagnostic wraps one
}

// Error implements the error interface with a plain, uncolored rendering;
// Reporter.Format is the pretty one used for CLI/log output.
func (d Diagnostic) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s[%s]: %s (%s)", d.Level, d.Code, d.Message, d.Site)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Level, d.Message, d.Site)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Invariant builds an Error-level Diagnostic for a Fold/driver invariant
// violation (spec §2.1): a condition the optimizer core's own construction
// guarantees, so failing it means a bug in Fold itself, not bad input.
// Callers panic with the result (panic(diag.Invariant(...))) rather than
// a bare string, so the panic value renders through Reporter.Format if a
// caller recovers and logs it.
func Invariant(site Site, code, message string) Diagnostic {
	return Diagnostic{Level: Error, Code: code, Message: message, Site: site}
}

func Notice(site Site, code, message string) Diagnostic {
	return Diagnostic{Level: Note, Code: code, Message: message, Site: site}
}

// LangError wraps err as an Error-level Diagnostic identified by one of
// the D1xx codes in codes.go, for a language plugin's
// Parse/BeginEmit/Emit/FinishEmit failure (spec §2.1's "Compile errors").
// langName identifies the failing plugin (e.g. "sql").
func LangError(langName, code string, err error) error {
	return Diagnostic{Level: Error, Code: code, Message: err.Error(), Site: Site{Func: langName}, Err: err}
}

// Reporter formats diagnostics with the teacher's Rust-like coloring
// (error[D001]: ... --> site) but without a source-file backing, since IR
// diagnostics locate an instruction id, not a byte offset.
type Reporter struct{}

func NewReporter() *Reporter { return &Reporter{} }

func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	levelColor := r.levelColor(d.Level)

	if d.Code != "" {
		b.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, bold(d.Message)))
	} else {
		b.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), bold(d.Message)))
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", dim("-->"), d.Site))

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		b.WriteString(fmt.Sprintf("  %s %s %s\n", dim("│"), noteColor("note:"), note))
	}
	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		b.WriteString(fmt.Sprintf("  %s %s %s\n", dim("│"), helpColor("help:"), d.HelpText))
	}
	return b.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warn:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
