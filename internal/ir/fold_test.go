package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// retFunc is a small helper: runs build on a fresh function and makes its
// entry a RET of the value build returns.
func retFunc(name string, build func(f *Func) InsId) *Func {
	f := NewFunc(name)
	v := build(f)
	f.Entry = f.Append(RetIns(I32, int32(v)))
	return f
}

func runFold(t *testing.T, f *Func) *Func {
	t.Helper()
	pool := NewPool()
	fo := NewFold()
	fo.Run(pool, f)
	assert.NoError(t, f.Validate())
	return f
}

// S1 (spec §8): constant folding collapses `2 + 3` to a single KINT(5).
func TestFoldConstantAdd(t *testing.T) {
	f := retFunc("add_const", func(f *Func) InsId {
		a := f.Append(KIntIns(I32, 2))
		b := f.Append(KIntIns(I32, 3))
		return f.Append(BinIns(ADD, I32, a, b))
	})
	runFold(t, f)

	ret := f.At(f.Entry)
	assert.Equal(t, RET, ret.Op)
	folded := f.At(InsId(ret.A))
	assert.Equal(t, KINT, folded.Op)
	assert.Equal(t, int32(5), folded.B)
}

// S2: x + 0 collapses to x.
func TestFoldAddZeroIdentity(t *testing.T) {
	f := retFunc("add_zero", func(f *Func) InsId {
		p := f.Append(ParamIns(I32, 0))
		zero := f.Append(KIntIns(I32, 0))
		return f.Append(BinIns(ADD, I32, p, zero))
	})
	runFold(t, f)

	ret := f.At(f.Entry)
	result := f.At(InsId(ret.A))
	assert.Equal(t, PARAM, result.Op)
}

// S3: x * 0 collapses to the constant 0, even though x is not constant.
func TestFoldMulZeroAnnihilates(t *testing.T) {
	f := retFunc("mul_zero", func(f *Func) InsId {
		p := f.Append(ParamIns(I32, 0))
		zero := f.Append(KIntIns(I32, 0))
		return f.Append(BinIns(MUL, I32, p, zero))
	})
	runFold(t, f)

	ret := f.At(f.Entry)
	result := f.At(InsId(ret.A))
	assert.Equal(t, KINT, result.Op)
	assert.Equal(t, int32(0), result.B)
}

// S4: commutative canonicalization moves a constant operand to the right
// before the identity rule fires, so `0 + x` folds the same as `x + 0`.
func TestFoldCommutesConstantToRight(t *testing.T) {
	f := retFunc("zero_add", func(f *Func) InsId {
		zero := f.Append(KIntIns(I32, 0))
		p := f.Append(ParamIns(I32, 0))
		return f.Append(BinIns(ADD, I32, zero, p))
	})
	runFold(t, f)

	ret := f.At(f.Entry)
	result := f.At(InsId(ret.A))
	assert.Equal(t, PARAM, result.Op)
}

// S5: CSE unifies two structurally identical ADDs into one instruction.
func TestFoldCSEUnifiesDuplicateAdds(t *testing.T) {
	f := NewFunc("cse")
	p := f.Append(ParamIns(I32, 0))
	q := f.Append(ParamIns(I32, 1))
	add1 := f.Append(BinIns(ADD, I32, p, q))
	add2 := f.Append(BinIns(ADD, I32, p, q))
	ret := f.Append(BinIns(SUB, I32, add1, add2))
	f.Entry = f.Append(RetIns(I32, int32(ret)))
	runFold(t, f)

	retIns := f.At(f.Entry)
	sub := f.At(InsId(retIns.A))
	assert.Equal(t, SUB, sub.Op)
	left, right := sub.DecodeVV()
	assert.Equal(t, left, right, "the two identical ADDs must have been unified to one id")
}

// S6: an instruction unreachable from Entry is dropped (implicit DCE).
func TestFoldDropsUnreachableCode(t *testing.T) {
	f := NewFunc("dce")
	f.Append(KIntIns(I32, 999)) // never referenced, never reachable
	c := f.Append(KIntIns(I32, 1))
	f.Entry = f.Append(RetIns(I32, int32(c)))
	runFold(t, f)

	assert.Equal(t, 2, f.Len(), "unreferenced instruction should have been dropped")
}

// Division by a folded zero divisor is left unfolded rather than panicking
// (spec §9 open question).
func TestFoldDivisionByZeroLeftUnfolded(t *testing.T) {
	f := retFunc("div_zero", func(f *Func) InsId {
		a := f.Append(KIntIns(I32, 10))
		z := f.Append(KIntIns(I32, 0))
		return f.Append(BinIns(DIV, I32, a, z))
	})
	runFold(t, f)

	ret := f.At(f.Entry)
	result := f.At(InsId(ret.A))
	assert.Equal(t, DIV, result.Op, "DIV by a constant zero must survive Fold unfolded")
}

func TestFoldIsIdempotent(t *testing.T) {
	f := retFunc("idempotent", func(f *Func) InsId {
		a := f.Append(KIntIns(I32, 2))
		b := f.Append(KIntIns(I32, 3))
		return f.Append(BinIns(ADD, I32, a, b))
	})
	pool := NewPool()
	fo := NewFold()
	fo.Run(pool, f)
	before := append([]Ins(nil), f.Code...)

	fo2 := NewFold()
	fo2.Run(pool, f)
	assert.Equal(t, before, f.Code)
}

func TestFoldMovEliminated(t *testing.T) {
	f := retFunc("mov", func(f *Func) InsId {
		p := f.Append(ParamIns(I32, 0))
		return f.Append(MovIns(I32, p))
	})
	runFold(t, f)
	for _, ins := range f.Code {
		assert.NotEqual(t, MOV, ins.Op)
	}
}

func TestFoldDivByOneIdentity(t *testing.T) {
	f := retFunc("div_one", func(f *Func) InsId {
		p := f.Append(ParamIns(I32, 0))
		one := f.Append(KIntIns(I32, 1))
		return f.Append(BinIns(DIV, I32, p, one))
	})
	runFold(t, f)
	ret := f.At(f.Entry)
	assert.Equal(t, PARAM, f.At(InsId(ret.A)).Op)
}

// CALLX has "positional identity" per IsCSE's own doc comment: two call
// sites that happen to produce bitwise-identical instructions must still
// survive Fold as distinct ids, unlike an ADD/SUB/MUL with the same shape.
func TestFoldCALLXNotCSEd(t *testing.T) {
	f := NewFunc("callx_positional")
	ret := f.Append(RetIns(Void, -1))
	lowered := f.Append(JumpIns(ret))
	callA := f.Append(CallXIns(Void, lowered, 0, 0))
	callB := f.Append(CallXIns(Void, lowered, 0, 0)) // bitwise identical to callA
	cond := f.Append(KIntIns(I32, 1))
	f.Entry = f.Append(IfIns(cond, callA, callB))
	runFold(t, f)

	count := 0
	for _, ins := range f.Code {
		if ins.Op == CALLX {
			count++
		}
	}
	assert.Equal(t, 2, count, "two distinct CALLX call sites must not be unified by CSE")
}

func TestFoldFloatArithAndPool(t *testing.T) {
	pool := NewPool()
	r1 := pool.InternFloat64(1.5)
	r2 := pool.InternFloat64(2.25)
	f := retFunc("float_add", func(f *Func) InsId {
		a := f.Append(KFP64Ins(F64, uint32(r1)))
		b := f.Append(KFP64Ins(F64, uint32(r2)))
		return f.Append(BinIns(ADD, F64, a, b))
	})
	fo := NewFold()
	fo.Run(pool, f)

	ret := f.At(f.Entry)
	result := f.At(InsId(ret.A))
	assert.Equal(t, KFP64, result.Op)
	assert.Equal(t, 3.75, pool.Float64At(BumpRef(uint32(result.B))))
}
