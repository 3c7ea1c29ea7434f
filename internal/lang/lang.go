// Package lang implements the embedded-DSL dispatch table: a closed
// enumeration of languages a CALLX instruction may name, and the bitset +
// dense-array state table that holds one per-language runtime across a
// compilation (spec.md §5, grounded on
// _examples/original_source/src/lang.rs's Lang/LangState).
//
// The Rust original represents the active set as an EnumSet<Lang> bitset
// and stores payloads in a raw, manually-managed Box<[AnyLang]> indexed by
// popcount of the bits below the queried language — i.e. a dense array
// parallel to the bitset's set bits, addressed without a union tag. Go has
// no raw union; State reproduces the same memory layout semantics (dense,
// popcount-indexed, no per-slot tag) using a slice of the Runtime
// interface instead of an untagged union, which costs one interface word
// but keeps the same O(1) "don't store a language you don't use" density.
package lang

// Lang is the closed set of embedded DSLs a CALLX instruction may
// dispatch to. Adding a language means adding a constant and its name
// here and a plugin under internal/lang/langs that calls Register for it;
// the registry table stands in for the foreach_lang! macro expansion in
// the Rust original.
type Lang byte

const (
	SQL Lang = iota
	Regex
	Template
	Path

	numLangs = int(Path) + 1
)

var names = [numLangs]string{"sql", "regex", "template", "path"}

// Name returns the language's canonical name, matching the CALLX plugin
// registration name used by Parse.
func (l Lang) Name() string { return names[l] }

// FromName looks up a Lang by its canonical name.
func FromName(name string) (Lang, bool) {
	for i, n := range names {
		if n == name {
			return Lang(i), true
		}
	}
	return 0, false
}

// FromByte reconstructs a Lang from the byte packed into a CALLX
// instruction's B field by ir.CallXIns. It panics on an out-of-range
// value, mirroring the Rust original's Lang::from_u8 assert.
func FromByte(raw byte) Lang {
	if int(raw) >= numLangs {
		panic("lang: Lang: value out of range")
	}
	return Lang(raw)
}

// Set is a bitset over Lang, small enough to pass by value.
type Set uint8

func (s Set) Contains(l Lang) bool { return s&(1<<uint(l)) != 0 }
func (s Set) With(l Lang) Set      { return s | (1 << uint(l)) }
func (s Set) Len() int {
	n := 0
	for b := Set(1); b != 0 && b <= 1<<(numLangs-1); b <<= 1 {
		if s&b != 0 {
			n++
		}
	}
	return n
}

// index returns the dense-array position of l within s: the number of
// set bits strictly below l's bit, matching the Rust original's popcount
// indexing (`self.present.as_u64_truncated() & ((1 << lang as u8) - 1)).count_ones()`).
func (s Set) index(l Lang) int {
	mask := Set((1 << uint(l)) - 1)
	count := 0
	for b := s & mask; b != 0; b &= b - 1 {
		count++
	}
	return count
}

// All ranges over the languages present in s in ascending Lang order,
// which is also dense-array order.
func (s Set) All(fn func(Lang)) {
	for l := Lang(0); int(l) < numLangs; l++ {
		if s.Contains(l) {
			fn(l)
		}
	}
}
