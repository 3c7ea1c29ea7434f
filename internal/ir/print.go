package ir

import (
	"fmt"
	"strings"
)

// Dump renders f as a flat listing, one instruction per line, the
// equivalent job _examples/kanso-lang-kanso/internal/ir/printer.go did for
// the teacher's pointer-based SSA — adapted here to a dense id-indexed
// code vector instead of walking basic blocks.
func (f *Func) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s {\n", f.Name)
	for id, ins := range f.Code {
		marker := "  "
		if InsId(id) == f.Entry {
			marker = "->"
		}
		fmt.Fprintf(&b, "%s %%%d = %s\n", marker, id, ins.dump())
	}
	fmt.Fprintf(&b, "}\n")
	return b.String()
}

func (ins Ins) dump() string {
	switch ins.Op {
	case KINT:
		return fmt.Sprintf("KINT.%s %d", ins.Ty, ins.B)
	case KINT64:
		return fmt.Sprintf("KINT64.%s pool[%d]", ins.Ty, ins.B)
	case KFP64:
		return fmt.Sprintf("KFP64.%s pool[%d]", ins.Ty, ins.B)
	case PARAM:
		return fmt.Sprintf("PARAM.%s #%d", ins.Ty, ins.B)
	case ADD, SUB, MUL, DIV, UDIV, POW:
		return fmt.Sprintf("%s.%s %%%d, %%%d", ins.Op, ins.Ty, ins.A, ins.B)
	case MOV:
		return fmt.Sprintf("MOV.%s %%%d", ins.Ty, ins.A)
	case CALLX:
		lang, lop := ins.LangLop()
		return fmt.Sprintf("CALLX.%s entry=%%%d lang=%d lop=%d", ins.Ty, ins.A, lang, lop)
	case JUMP:
		return fmt.Sprintf("JUMP %%%d", ins.A)
	case IF:
		return fmt.Sprintf("IF %%%d ? %%%d : %%%d", ins.A, ins.B, ins.C)
	case RET:
		if ins.A < 0 {
			return "RET"
		}
		return fmt.Sprintf("RET.%s %%%d", ins.Ty, ins.A)
	default:
		return fmt.Sprintf("?(%d)", ins.Op)
	}
}

// Dump renders every function in the IR.
func (ir *IR) Dump() string {
	var b strings.Builder
	for _, f := range ir.Funcs {
		b.WriteString(f.Dump())
	}
	return b.String()
}
