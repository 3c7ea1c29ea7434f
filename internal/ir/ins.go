package ir

// InsId is a dense 32-bit index into a Func's code vector. Ids are not
// portable across functions.
type InsId uint32

// invalidID marks a not-yet-visited slot in Fold's old->new map. It is
// distinct from any valid InsId because code vectors never grow past
// math.MaxUint32-1 in practice and the sentinel is checked explicitly
// rather than relied on as a real index.
const invalidID InsId = 1<<32 - 1

// Ins is an opaque fixed-width instruction record: one opcode, one result
// type, and three polymorphic operand slots. Depending on the opcode, A/B/C
// hold instruction ids (operands or control successors), a packed 32-bit
// immediate, or a constant-pool handle.
type Ins struct {
	Op Opcode
	Ty Type
	A  int32
	B  int32
	C  int32
}

func mkIns(op Opcode, ty Type, a, b, c int32) Ins {
	return Ins{Op: op, Ty: ty, A: a, B: b, C: c}
}

// KIntIns builds a KINT instruction carrying a 32-bit immediate inline.
func KIntIns(ty Type, v int32) Ins { return mkIns(KINT, ty, 0, v, 0) }

// KInt64Ins builds a KINT64 instruction referencing an interned 64-bit
// integer.
func KInt64Ins(ty Type, ref uint32) Ins { return mkIns(KINT64, ty, 0, int32(ref), 0) }

// KFP64Ins builds a KFP64 instruction referencing an interned 64-bit float.
func KFP64Ins(ty Type, ref uint32) Ins { return mkIns(KFP64, ty, 0, int32(ref), 0) }

// ParamIns builds a PARAM instruction for the index-th function parameter.
func ParamIns(ty Type, index int32) Ins { return mkIns(PARAM, ty, 0, index, 0) }

// BinIns builds a binary arithmetic instruction (ADD/SUB/MUL/DIV/UDIV/POW).
func BinIns(op Opcode, ty Type, left, right InsId) Ins {
	return mkIns(op, ty, int32(left), int32(right), 0)
}

// MovIns builds a MOV instruction that aliases value.
func MovIns(ty Type, value InsId) Ins { return mkIns(MOV, ty, int32(value), 0, 0) }

// JumpIns builds an unconditional control link to target.
func JumpIns(target InsId) Ins { return mkIns(JUMP, ControlType, int32(target), 0, 0) }

// IfIns builds a conditional branch on cond to one of two successors.
func IfIns(cond, ifTrue, ifFalse InsId) Ins {
	return mkIns(IF, ControlType, int32(cond), int32(ifTrue), int32(ifFalse))
}

// RetIns builds a terminal return of value, or of nothing if value is -1.
func RetIns(ty Type, value int32) Ins { return mkIns(RET, ty, value, 0, 0) }

// CallXIns builds a call into a language plugin's lowered body: entry is
// the first instruction of the lowered sequence, lang/lop are packed into
// field B.
func CallXIns(ty Type, entry InsId, lang, lop byte) Ins {
	return mkIns(CALLX, ty, int32(entry), int32(uint32(lang)<<8|uint32(lop)), 0)
}

// LangLop unpacks the (lang, lop) pair packed into a CALLX's B field.
func (ins Ins) LangLop() (lang, lop byte) {
	return byte(uint32(ins.B) >> 8), byte(uint32(ins.B))
}

// DecodeV returns the single data operand of a unary instruction (MOV).
func (ins Ins) DecodeV() InsId { return InsId(ins.A) }

// DecodeVV returns the two data operands of a binary arithmetic
// instruction, in (left, right) order.
func (ins Ins) DecodeVV() (InsId, InsId) { return InsId(ins.A), InsId(ins.B) }

// Operands returns the instruction-id operand slots that Fold must
// recursively visit and possibly rewrite, in left-to-right order. It does
// not include control successors (see Controls) or immediates/pool
// handles.
func (ins Ins) Operands() []int32 {
	switch ins.Op {
	case ADD, SUB, MUL, DIV, UDIV, POW:
		return []int32{ins.A, ins.B}
	case MOV:
		return []int32{ins.A}
	case IF:
		return []int32{ins.A}
	case RET:
		if ins.A < 0 {
			return nil
		}
		return []int32{ins.A}
	default:
		return nil
	}
}

// SetOperand rewrites the i-th entry returned by Operands (same order).
func (ins *Ins) SetOperand(i int, id InsId) {
	switch ins.Op {
	case ADD, SUB, MUL, DIV, UDIV, POW:
		if i == 0 {
			ins.A = int32(id)
		} else {
			ins.B = int32(id)
		}
	case MOV, IF, RET:
		ins.A = int32(id)
	}
}

// SwapOperands exchanges the two binary operands in place; used by the
// commutative canonicalization rewrite rule.
func (ins *Ins) SwapOperands() { ins.A, ins.B = ins.B, ins.A }

// Controls returns the control-successor ids of a control instruction, to
// be enqueued by the BFS driver.
func (ins Ins) Controls() []InsId {
	switch ins.Op {
	case JUMP:
		return []InsId{InsId(ins.A)}
	case IF:
		return []InsId{InsId(ins.B), InsId(ins.C)}
	case CALLX:
		return []InsId{InsId(ins.A)}
	case RET:
		return nil
	default:
		return nil
	}
}

// RewriteControls maps every control-successor field through fn; used by
// the late fix-up pass after BFS traversal completes (spec §4.1 step 4).
func (ins *Ins) RewriteControls(fn func(InsId) InsId) {
	switch ins.Op {
	case JUMP:
		ins.A = int32(fn(InsId(ins.A)))
	case IF:
		ins.B = int32(fn(InsId(ins.B)))
		ins.C = int32(fn(InsId(ins.C)))
	case CALLX:
		ins.A = int32(fn(InsId(ins.A)))
	}
}
