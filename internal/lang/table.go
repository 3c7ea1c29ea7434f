package lang

import "fmt"

// State holds one live Runtime per language present in a compilation, in
// a dense array parallel to the set bits of present — directly grounded
// on _examples/original_source/src/lang.rs's LangState: a bitset plus a
// Box<[AnyLang]> addressed by popcount. Go's Runtime interface replaces
// the Rust union, at the cost of one interface word per slot; the
// indexing scheme (dense array ordered by ascending Lang, addressed via
// Set.index) is unchanged.
//
// State has no Close/finalizer. You consume it exactly once by calling
// Finish — this is deliberate (spec.md §5): a partially constructed State
// (some languages' BeginEmit already ran when a later one fails) is
// *not* rolled back. Whatever those already-constructed Runtimes hold
// leaks. This matches lang.rs's own comment ("this intentionally does
// *not* implement Drop. you drop it by calling finish") and spec §9's
// open question, resolved in favor of preserving the leak rather than
// inventing a rollback the original never had.
type State struct {
	present Set
	data    []Runtime
}

// New constructs a State with one Runtime per language in langs, built by
// calling each registered BeginEmitFunc in ascending Lang order. On the
// first error, New returns immediately without invoking FinishEmit on any
// Runtime already constructed for an earlier language in the set — see
// the leak note on State.
func New(ccx *Ccx, langs Set) (*State, error) {
	if langs == 0 {
		return &State{}, nil
	}
	data := make([]Runtime, 0, langs.Len())
	var err error
	langs.All(func(l Lang) {
		if err != nil {
			return
		}
		var rt Runtime
		rt, err = beginEmitFor(l)(ccx)
		if err != nil {
			return
		}
		data = append(data, rt)
	})
	if err != nil {
		return nil, fmt.Errorf("lang: State.New: %w", err)
	}
	return &State{present: langs, data: data}, nil
}

// GetMut returns the live Runtime for l. It panics if l is not present in
// the set New was built with, mirroring the Rust original's
// `assert!(self.present.contains(lang))`.
func (s *State) GetMut(l Lang) Runtime {
	if !s.present.Contains(l) {
		panic("lang: State.GetMut: " + l.Name() + " not present")
	}
	return s.data[s.present.index(l)]
}

// Finish consumes the state, calling FinishEmit on every present
// language's Runtime in ascending Lang order and draining all of them
// even if one fails (first error wins, matching lang.rs's
// `result = result.and(Lang::finish_emit(l, ccx))` fold). After Finish
// returns, s must not be used again.
func (s *State) Finish(ecx *Ecx) error {
	var first error
	s.present.All(func(l Lang) {
		rt := s.data[s.present.index(l)]
		if err := rt.FinishEmit(ecx); err != nil && first == nil {
			first = fmt.Errorf("lang: %s: FinishEmit: %w", l.Name(), err)
		}
	})
	s.data = nil
	return first
}

// Count reports how many languages this state holds runtimes for.
func (s *State) Count() int { return s.present.Len() }
