package sat

// watchKind tags a watcher entry with the clause shape it represents.
// Binary and ternary clauses are never pooled: their watcher entries carry
// every literal needed to explain a propagation or conflict inline, which
// is why a binary clause's reason halves the memory of a pooled one (see
// spec design note "Reasons as tagged union, not pointers").
type watchKind uint8

const (
	watchBinary watchKind = iota
	watchTernary
	watchLong
)

// watcher is one entry of a per-literal watch list: "when this literal's
// watched literal becomes true (i.e. its negation becomes false), wake this
// entry up".
type watcher struct {
	kind watchKind

	// otherA, otherB are the clause's remaining literals for binary/ternary
	// watchers (otherB is unused for binary). For ternary watchers,
	// otherA < otherB by literal value, matching the spec's canonical
	// ordering for Ternary watch entries.
	otherA, otherB Literal

	// handle and blocker are only meaningful for long watchers. blocker is
	// any literal of the watched clause, used as a hint: if it is already
	// true, propagation can skip the clause without touching the pool.
	// Implementations must never rely on the blocker for correctness, only
	// for speed — if stale, propagateLiteral re-derives truth from the clause.
	handle  ClauseHandle
	blocker Literal

	redundant bool
}

// watchLists is the per-literal array of watcher slices (C2). Index is the
// literal value: size 2*nVars.
type watchLists struct {
	lists [][]watcher
}

func newWatchLists() *watchLists {
	return &watchLists{}
}

// grow adds watch lists for one more variable (two more literals).
func (w *watchLists) grow() {
	w.lists = append(w.lists, nil, nil)
}

func (w *watchLists) of(l Literal) []watcher {
	return w.lists[l]
}

func (w *watchLists) append(l Literal, wa watcher) {
	w.lists[l] = append(w.lists[l], wa)
}

// removeLong drops the first long watcher for handle h found in l's list.
// Order of the remaining entries is preserved (swap-with-last is never
// used, per the propagator's ordering guarantee, see propagate.go).
func (w *watchLists) removeLong(l Literal, h ClauseHandle) {
	ws := w.lists[l]
	for i, e := range ws {
		if e.kind == watchLong && e.handle == h {
			copy(ws[i:], ws[i+1:])
			w.lists[l] = ws[:len(ws)-1]
			return
		}
	}
}

// removeBinary drops the first binary watcher pointing at "other" found in
// l's list.
func (w *watchLists) removeBinary(l, other Literal) {
	ws := w.lists[l]
	for i, e := range ws {
		if e.kind == watchBinary && e.otherA == other {
			copy(ws[i:], ws[i+1:])
			w.lists[l] = ws[:len(ws)-1]
			return
		}
	}
}

// watchBinaryClause registers a (l1 v l2) binary clause under both of its
// literals' watch lists.
func (w *watchLists) watchBinaryClause(l1, l2 Literal, redundant bool) {
	w.append(l1.Opposite(), watcher{kind: watchBinary, otherA: l2, redundant: redundant})
	w.append(l2.Opposite(), watcher{kind: watchBinary, otherA: l1, redundant: redundant})
}

// watchTernaryClause registers a (l1 v l2 v l3) ternary clause under all
// three of its literals' watch lists. Each entry carries the two *other*
// literals (sorted), per the spec's Ternary{other_lit_a, other_lit_b} shape.
func (w *watchLists) watchTernaryClause(l1, l2, l3 Literal, redundant bool) {
	add := func(self, a, b Literal) {
		if a > b {
			a, b = b, a
		}
		w.append(self.Opposite(), watcher{kind: watchTernary, otherA: a, otherB: b, redundant: redundant})
	}
	add(l1, l2, l3)
	add(l2, l1, l3)
	add(l3, l1, l2)
}

// watchLongClause registers a pooled long clause under its first two
// literals, satisfying the "exactly two watch entries" invariant.
func (w *watchLists) watchLongClause(h ClauseHandle, lits []Literal) {
	w.append(lits[0].Opposite(), watcher{kind: watchLong, handle: h, blocker: lits[1]})
	w.append(lits[1].Opposite(), watcher{kind: watchLong, handle: h, blocker: lits[0]})
}
