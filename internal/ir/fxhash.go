package ir

// fxhash is a from-scratch port of the FxHash algorithm rustc and the
// original compiler this core is ported from (see
// _examples/original_source/src/opt_fold.rs, `crate::hash::fxhash`) use
// for cheap, non-cryptographic hashing of small fixed-size records. No
// third-party Go port of it turned up in the retrieved examples, and the
// algorithm is six lines of bit-twiddling with a well-known public-domain
// provenance, so it is reimplemented here rather than pulled from a
// general-purpose hash package (see DESIGN.md).
const fxSeed uint64 = 0x51_7c_c1_b7_27_22_0a_95

func fxHashWord(hash, word uint64) uint64 {
	return (rotl64(hash, 5) ^ word) * fxSeed
}

func rotl64(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

// fxhash hashes the bit pattern of an Ins: two 64-bit words built from its
// five fields. Fold only ever hashes IsCSE instructions, for which bitwise
// equality after operand rewriting is the correct semantic equality (spec
// §4.1), so this operates on the raw fields rather than a generic
// reflection-based hash.
func fxhash(ins Ins) uint64 {
	w1 := uint64(ins.Op) | uint64(ins.Ty)<<8 | uint64(uint32(ins.A))<<32
	w2 := uint64(uint32(ins.B)) | uint64(uint32(ins.C))<<32
	h := fxHashWord(0, w1)
	h = fxHashWord(h, w2)
	return h
}
