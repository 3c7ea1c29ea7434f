package ir

import "occir/internal/diag"

// Fold is the rewrite arena: scratch buffers reused across functions
// within one compilation (spec §3 "Fold scratch"). It is constructed once
// per optimizer lifetime with empty buffers and cleared before each
// per-function run.
type Fold struct {
	oldNew []InsId // original InsId -> new InsId, invalidID if unvisited
	next   queue
	cseMap map[uint64][]InsId
	code   []Ins
}

// NewFold returns an empty Fold arena.
func NewFold() *Fold {
	return &Fold{cseMap: make(map[uint64][]InsId)}
}

// queue is a FIFO of control instruction ids, seeded at a function's entry
// and drained breadth-first (spec §4.1 step 2).
type queue struct {
	items []InsId
	head  int
}

func (q *queue) push(id InsId) { q.items = append(q.items, id) }

func (q *queue) pop() (InsId, bool) {
	if q.head >= len(q.items) {
		return 0, false
	}
	id := q.items[q.head]
	q.head++
	return id, true
}

func (q *queue) reset() {
	q.items = q.items[:0]
	q.head = 0
}

// foldStatus is the three-way result of applying a rewrite rule to one
// instruction (spec §4.1 step 3c).
type foldKind int

const (
	foldDone foldKind = iota
	foldAgain
	foldNew
)

type foldStatus struct {
	kind foldKind
	ins  Ins
	id   InsId
}

// Run rewrites f in place: constant folding, algebraic simplification,
// commutative canonicalization, MOV elimination, CSE, and (implicitly, as
// the complement of BFS reachability) DCE. The old function is replaced;
// pool is the shared constant pool used to materialize folded constants.
func (fo *Fold) Run(pool *Pool, f *Func) {
	fo.oldNew = growFill(fo.oldNew, len(f.Code), invalidID)
	fo.next.reset()
	for k := range fo.cseMap {
		delete(fo.cseMap, k)
	}
	fo.code = fo.code[:0]

	fo.next.push(f.Entry)
	for {
		id, ok := fo.next.pop()
		if !ok {
			break
		}
		fo.visit(pool, f, id)
	}

	fo.fixupControls(f.Name)

	newEntry := fo.oldNew[f.Entry]
	if newEntry == invalidID {
		panic(diag.Invariant(diag.Site{Func: f.Name}, diag.ErrInvalidOperand, "entry instruction was never visited"))
	}
	f.Entry = newEntry
	f.Code = append([]Ins(nil), fo.code...)
}

func growFill(s []InsId, n int, fill InsId) []InsId {
	if cap(s) < n {
		s = make([]InsId, n)
	} else {
		s = s[:n]
	}
	for i := range s {
		s[i] = fill
	}
	return s
}

// visit implements spec §4.1 step 3: recursively rewrite operands, apply
// fold, enqueue control successors of canonical control instructions,
// insert the result (CSE-deduplicated when eligible), and memoize.
func (fo *Fold) visit(pool *Pool, f *Func, id InsId) InsId {
	if new := fo.oldNew[id]; new != invalidID {
		return new
	}

	ins := f.At(id)
	operands := ins.Operands()
	for i, opnd := range operands {
		rewritten := fo.visit(pool, f, InsId(opnd))
		ins.SetOperand(i, rewritten)
	}

	var new InsId
loop:
	for {
		switch st := fold(pool, fo.code, ins); st.kind {
		case foldAgain:
			ins = st.ins
		case foldNew:
			new = st.id
			break loop
		case foldDone:
			ins = st.ins
			if ins.Op.IsControl() {
				for _, c := range ins.Controls() {
					fo.next.push(c)
				}
			}
			if ins.Op.IsCSE() {
				new = fo.cseInsert(ins)
			} else {
				new = fo.push(ins)
			}
			break loop
		}
	}

	fo.oldNew[id] = new
	return new
}

func (fo *Fold) push(ins Ins) InsId {
	id := InsId(len(fo.code))
	fo.code = append(fo.code, ins)
	return id
}

// cseInsert hashes ins (fxhash over its raw bit pattern) and either
// returns the id of a bitwise-equal instruction already in the new code,
// or inserts ins and returns its fresh id.
func (fo *Fold) cseInsert(ins Ins) InsId {
	h := fxhash(ins)
	for _, id := range fo.cseMap[h] {
		if fo.code[id] == ins {
			return id
		}
	}
	id := fo.push(ins)
	fo.cseMap[h] = append(fo.cseMap[h], id)
	return id
}

// fixupControls maps every control-successor field of every instruction in
// the new code through oldNew. This late fix-up is required because a
// control target may be enqueued before it is visited (spec §4.1 step 4).
func (fo *Fold) fixupControls(funcName string) {
	for i := range fo.code {
		fo.code[i].RewriteControls(func(old InsId) InsId {
			new := fo.oldNew[old]
			if new == invalidID {
				panic(diag.Invariant(diag.Site{Func: funcName}, diag.ErrInvalidOperand, "control successor was never visited"))
			}
			return new
		})
	}
}
