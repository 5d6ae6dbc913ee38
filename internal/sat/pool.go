package sat

// ClauseHandle is a stable opaque reference to a pooled clause. It stays
// valid until the clause is freed, or until a Compact() relocates it — in
// which case every holder of the handle is rewritten atomically by the
// relocation callback passed to Compact (trail reasons, watch entries and
// occurrence lists are the only long-lived holders).
//
// Only clauses of size >= 4 ever occupy the pool: binary and ternary
// clauses, redundant or irredundant, are encoded directly in the watch
// lists (see watch.go) and never get a handle.
type ClauseHandle int32

// poolClause is a pool-owned clause. poolClause values are never copied:
// all access goes through a *poolClause returned by (*ClausePool).Clause.
type poolClause struct {
	literals  []Literal
	activity  float32
	lbd       uint32
	prevPos   int // search cursor; propagateLiteral does not read it
	learnt    bool
	protected bool
	deleted   bool
}

// ClausePool is the pool-allocated clause store of C1. Alloc takes a handle
// from freeList when it holds one, but Free never adds to it, so freed slots
// are reclaimed only by an explicit Compact pass that shrinks the slice and
// relocates every surviving clause.
type ClausePool struct {
	slots    []*poolClause
	freeList []ClauseHandle
	size     int // number of live (non-deleted) handles
}

// NewClausePool returns an empty pool.
func NewClausePool() *ClausePool {
	return &ClausePool{}
}

// Alloc stores a new clause (copying lits) and returns its handle.
func (p *ClausePool) Alloc(lits []Literal, learnt bool) ClauseHandle {
	c := &poolClause{
		literals: append([]Literal(nil), lits...),
		prevPos:  2,
		learnt:   learnt,
	}

	if n := len(p.freeList); n > 0 {
		h := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.slots[h] = c
		p.size++
		return h
	}

	p.slots = append(p.slots, c)
	p.size++
	return ClauseHandle(len(p.slots) - 1)
}

// Clause returns the live clause for handle h. It panics if h was freed:
// callers must not dereference a handle past Free.
func (p *ClausePool) Clause(h ClauseHandle) *poolClause {
	c := p.slots[h]
	if c == nil || c.deleted {
		panic("sat: dereferencing freed clause handle")
	}
	return c
}

// Free releases the clause at h. The handle becomes invalid for
// dereferencing but is NOT reused until the next Compact (so that any watch
// entry or trail reason not yet unwound this round cannot alias a live
// clause).
func (p *ClausePool) Free(h ClauseHandle) {
	c := p.slots[h]
	if c == nil || c.deleted {
		return
	}
	c.deleted = true
	c.literals = nil
	p.size--
}

// Len returns the number of live clauses in the pool.
func (p *ClausePool) Len() int {
	return p.size
}

// Each calls f for every live handle, in handle order.
func (p *ClausePool) Each(f func(ClauseHandle, *poolClause)) {
	for h, c := range p.slots {
		if c != nil && !c.deleted {
			f(ClauseHandle(h), c)
		}
	}
}

// Compact discards freed slots, reassigning every surviving clause a new,
// densely-packed handle. relocate(old, new) is invoked once per surviving
// clause before the pool's own slice is swapped in, so the caller can
// rewrite every held handle (watch entries, trail reasons, occurrence
// lists) while both the old and new handle are still meaningful.
func (p *ClausePool) Compact(relocate func(old, newH ClauseHandle)) {
	newSlots := make([]*poolClause, 0, p.size)
	for h, c := range p.slots {
		if c == nil || c.deleted {
			continue
		}
		newH := ClauseHandle(len(newSlots))
		newSlots = append(newSlots, c)
		if relocate != nil && newH != ClauseHandle(h) {
			relocate(ClauseHandle(h), newH)
		}
	}
	p.slots = newSlots
	p.freeList = p.freeList[:0]
}
