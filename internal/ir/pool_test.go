package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolInternDeduplicates(t *testing.T) {
	p := NewPool()
	a := p.InternInt64(42)
	b := p.InternInt64(42)
	c := p.InternInt64(43)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, p.Len())
}

func TestPoolRoundTrip(t *testing.T) {
	p := NewPool()
	ref := p.InternInt64(-7)
	assert.Equal(t, int64(-7), p.Int64At(ref))

	fref := p.InternFloat64(3.5)
	assert.Equal(t, 3.5, p.Float64At(fref))
}

// Int and float interning share one byte-keyed arena: a zero int64 and a
// zero float64 have the same bit pattern and so the same handle. This is
// harmless because a BumpRef is only ever dereferenced through the
// opcode (KINT64 vs KFP64) that produced it, never compared across kinds.
func TestPoolIntAndFloatShareZeroBitPattern(t *testing.T) {
	p := NewPool()
	iref := p.InternInt64(0)
	fref := p.InternFloat64(0)
	assert.Equal(t, iref, fref)
	assert.Equal(t, int64(0), p.Int64At(iref))
	assert.Equal(t, 0.0, p.Float64At(fref))
}
