package ir

import (
	"encoding/binary"
	"math"
)

// BumpRef is a stable, 32-bit handle into a Pool's backing bytes. It fits
// inside an Ins's B field (spec.md §3).
type BumpRef uint32

// Pool is a byte-addressed bump arena plus a dedup map: interning equal
// byte slices returns equal handles (content addressing). Only 8-byte
// payloads are interned in this core (64-bit integer and float constants),
// so the arena is a flat slice of 8-byte records rather than a general
// variable-length bump allocator — the same observable contract, simpler
// for the closed set of payload sizes the Fold pass actually interns.
type Pool struct {
	data  []byte
	byKey map[[8]byte]BumpRef
}

// NewPool creates an empty constant pool.
func NewPool() *Pool {
	return &Pool{byKey: make(map[[8]byte]BumpRef)}
}

func (p *Pool) intern(key [8]byte) BumpRef {
	if ref, ok := p.byKey[key]; ok {
		return ref
	}
	ref := BumpRef(len(p.data) / 8)
	p.data = append(p.data, key[:]...)
	p.byKey[key] = ref
	return ref
}

// InternInt64 interns the little-endian bytes of v and returns a stable
// handle; interning equal values returns equal handles.
func (p *Pool) InternInt64(v int64) BumpRef {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], uint64(v))
	return p.intern(key)
}

// InternFloat64 interns the little-endian bytes of v's IEEE-754 bit pattern.
func (p *Pool) InternFloat64(v float64) BumpRef {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], math.Float64bits(v))
	return p.intern(key)
}

// Int64At dereferences a handle produced by InternInt64.
func (p *Pool) Int64At(ref BumpRef) int64 {
	off := int(ref) * 8
	return int64(binary.LittleEndian.Uint64(p.data[off : off+8]))
}

// Float64At dereferences a handle produced by InternFloat64.
func (p *Pool) Float64At(ref BumpRef) float64 {
	off := int(ref) * 8
	return math.Float64frombits(binary.LittleEndian.Uint64(p.data[off : off+8]))
}

// Len reports the number of distinct interned 8-byte records.
func (p *Pool) Len() int { return len(p.data) / 8 }
