package ir

import (
	"math"

	"occir/internal/diag"
)

// fold applies the rewrite rules of spec §4.1 to ins, whose operands have
// already been rewritten to point at ids in code (the new code vector
// under construction). code is read-only here: fold never mutates
// already-emitted instructions, only the one passed by value.
func fold(pool *Pool, code []Ins, ins Ins) foldStatus {
	switch ins.Op {

	case ADD, SUB, MUL, DIV, UDIV, POW:
		left, right := ins.DecodeVV()
		if isConstID(code, left) && isConstID(code, right) && !isZeroDivisor(pool, ins.Op, ins.Ty, code[right]) {
			return foldStatus{kind: foldDone, ins: foldArith(pool, ins, code[left], code[right])}
		}

		if ins.Op == ADD || ins.Op == MUL {
			if commuteNeeded(code, ins) {
				ins.SwapOperands()
				return foldStatus{kind: foldAgain, ins: ins}
			}
		}

		if ins.Op == ADD && isKInt(code, right, 0) {
			return foldStatus{kind: foldNew, id: left}
		}
		if (ins.Op == MUL || ins.Op == DIV || ins.Op == UDIV) && isKInt(code, right, 1) {
			return foldStatus{kind: foldNew, id: left}
		}
		if ins.Op == MUL && isKInt(code, right, 0) {
			return foldStatus{kind: foldDone, ins: KIntIns(ins.Ty, 0)}
		}

		return foldStatus{kind: foldDone, ins: ins}

	case MOV:
		value := ins.DecodeV()
		if code[value].Op == MOV {
			panic(diag.Invariant(diag.Site{}, diag.ErrMovChain, "MOV-of-MOV chain (invariant violation)"))
		}
		return foldStatus{kind: foldNew, id: value}

	default:
		return foldStatus{kind: foldDone, ins: ins}
	}
}

func isConstID(code []Ins, id InsId) bool { return code[id].Op.IsConst() }

// isZeroDivisor resolves spec §9's open question: division by a folded
// zero is left unfolded (the original instruction survives to fault at
// runtime) rather than panicking the compiler.
func isZeroDivisor(pool *Pool, op Opcode, ty Type, divisor Ins) bool {
	if op != DIV && op != UDIV {
		return false
	}
	if ty.IsFloat() {
		return kfpvalue(pool, divisor) == 0
	}
	return kintvalue(pool, divisor) == 0
}

func isKInt(code []Ins, id InsId, v int32) bool {
	ins := code[id]
	return ins.Op == KINT && ins.B == v
}

// commuteNeeded implements the canonicalization order of spec §4.1: a
// constant right-hand operand belongs on the right; among two
// non-constants, the lower InsId belongs on the left.
func commuteNeeded(code []Ins, ins Ins) bool {
	left, right := ins.DecodeVV()
	leftConst := isConstID(code, left)
	rightConst := isConstID(code, right)
	if leftConst && !rightConst {
		return true
	}
	if !leftConst && !rightConst && left > right {
		return true
	}
	return false
}

// foldArith evaluates a binary arithmetic instruction whose two operands
// are both compile-time constants, using the operand type's numeric
// domain (spec §4.1).
func foldArith(pool *Pool, ins Ins, left, right Ins) Ins {
	ty := ins.Ty
	if ty.IsFloat() {
		lv, rv := kfpvalue(pool, left), kfpvalue(pool, right)
		return newkfp(pool, ty, foldfparith(ins.Op, lv, rv))
	}
	lv, rv := kintvalue(pool, left), kintvalue(pool, right)
	return newkint(pool, ty, foldintarith(ins.Op, lv, rv))
}

func foldintarith(op Opcode, left, right int64) int64 {
	switch op {
	case ADD:
		return left + right
	case SUB:
		return left - right
	case MUL:
		return left * right
	case DIV:
		return left / right
	case UDIV:
		return int64(uint64(left) / uint64(right))
	default:
		// Integer POW has no arithmetic identity here: the ground-truth
		// fold_int_arith never defines one, so a POW reaching this
		// function (an int-typed POW with both operands constant) is
		// unreachable by construction, same as any other opcode.
		panic("ir: foldintarith: not an arithmetic opcode")
	}
}

func foldfparith(op Opcode, left, right float64) float64 {
	switch op {
	case ADD:
		return left + right
	case SUB:
		return left - right
	case MUL:
		return left * right
	case DIV:
		return left / right
	case POW:
		return math.Pow(left, right)
	default:
		panic("ir: foldfparith: not an arithmetic opcode")
	}
}

// newkint builds the smallest Ins that represents v: inline if it fits a
// signed 32-bit integer, else interned as KINT64 (spec §4.1 "Constant
// construction").
func newkint(pool *Pool, ty Type, v int64) Ins {
	if v == int64(int32(v)) {
		return KIntIns(ty, int32(v))
	}
	return KInt64Ins(ty, uint32(pool.InternInt64(v)))
}

// newkfp builds the smallest Ins that represents v: a KINT if v is exactly
// representable as an i32, else an interned KFP64.
func newkfp(pool *Pool, ty Type, v float64) Ins {
	if iv := int32(v); float64(iv) == v {
		return KIntIns(ty, iv)
	}
	return KFP64Ins(ty, uint32(pool.InternFloat64(v)))
}

// kintvalue dereferences a constant instruction as an integer, sign
// extending a 32-bit immediate.
func kintvalue(pool *Pool, ins Ins) int64 {
	switch ins.Op {
	case KINT:
		return int64(ins.B)
	case KINT64:
		return pool.Int64At(BumpRef(uint32(ins.B)))
	case KFP64:
		return int64(pool.Float64At(BumpRef(uint32(ins.B))))
	default:
		panic("ir: kintvalue: not a constant instruction")
	}
}

// kfpvalue dereferences a constant instruction as a float.
func kfpvalue(pool *Pool, ins Ins) float64 {
	switch ins.Op {
	case KINT:
		return float64(ins.B)
	case KINT64:
		return float64(pool.Int64At(BumpRef(uint32(ins.B))))
	case KFP64:
		return pool.Float64At(BumpRef(uint32(ins.B)))
	default:
		panic("ir: kfpvalue: not a constant instruction")
	}
}
