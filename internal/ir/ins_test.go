package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperandsMatchSetOperand(t *testing.T) {
	cases := []Ins{
		BinIns(ADD, I32, 3, 4),
		MovIns(I32, 7),
		IfIns(1, 2, 3),
		RetIns(I32, 5),
		RetIns(Void, -1),
	}
	for _, ins := range cases {
		before := ins.Operands()
		for i := range before {
			ins.SetOperand(i, InsId(100+i))
		}
		after := ins.Operands()
		for i := range after {
			assert.Equal(t, InsId(100+i), InsId(after[i]))
		}
	}
}

func TestSwapOperands(t *testing.T) {
	ins := BinIns(ADD, I32, 3, 4)
	ins.SwapOperands()
	left, right := ins.DecodeVV()
	assert.Equal(t, InsId(4), left)
	assert.Equal(t, InsId(3), right)
}

func TestControlsJump(t *testing.T) {
	ins := JumpIns(9)
	assert.Equal(t, []InsId{9}, ins.Controls())
	ins.RewriteControls(func(id InsId) InsId { return id + 1 })
	assert.Equal(t, []InsId{10}, ins.Controls())
}

func TestControlsIf(t *testing.T) {
	ins := IfIns(1, 2, 3)
	assert.Equal(t, []InsId{2, 3}, ins.Controls())
	assert.Equal(t, []int32{1}, ins.Operands())
}

func TestCallXLangLopRoundTrip(t *testing.T) {
	ins := CallXIns(I64, 42, 2, 200)
	lang, lop := ins.LangLop()
	assert.Equal(t, byte(2), lang)
	assert.Equal(t, byte(200), lop)
	assert.Equal(t, []InsId{42}, ins.Controls())
}

func TestOpcodePredicates(t *testing.T) {
	assert.True(t, KINT.IsConst())
	assert.True(t, KINT64.IsConst())
	assert.True(t, KFP64.IsConst())
	assert.False(t, ADD.IsConst())

	assert.True(t, JUMP.IsControl())
	assert.True(t, IF.IsControl())
	assert.True(t, RET.IsControl())
	assert.True(t, CALLX.IsControl())
	assert.False(t, ADD.IsControl())

	assert.False(t, MOV.IsCSE())
	assert.False(t, JUMP.IsCSE())
	assert.False(t, IF.IsCSE())
	assert.False(t, RET.IsCSE())
	assert.False(t, CALLX.IsCSE(), "CALLX has positional identity like the other control terminators")
	assert.True(t, ADD.IsCSE())
	assert.True(t, KINT.IsCSE())
}
