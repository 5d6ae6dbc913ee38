package sat

// edgesOfAllBinary returns every literal m such that the binary clause
// (¬p v m) is currently live, i.e. p implies m in the binary implication
// graph. Binary watcher entries already carry exactly this adjacency (spec
// §4.9's stamping and §4.6's SCC search share this same graph).
func (s *Solver) edgesOfAllBinary(p Literal) []Literal {
	var out []Literal
	for _, w := range s.watches.of(p) {
		if w.kind == watchBinary {
			out = append(out, w.otherA)
		}
	}
	return out
}

// runEquivalenceElimination is C7: it finds strongly-connected components of
// the binary implication graph (each SCC is a class of literals forced
// equal), collapses every non-canonical variable onto a representative, and
// rewrites the clause database accordingly (spec §4.6). It returns false if
// a literal and its own negation land in the same SCC (unconditional
// contradiction).
func (s *Solver) runEquivalenceElimination() bool {
	n := 2 * s.nVars
	if n == 0 {
		return true
	}
	comp := tarjanSCC(n, s.edgesOfAllBinary)

	for v := 0; v < s.nVars; v++ {
		if s.removed[v].IsRemoved() {
			continue
		}
		if comp[PositiveLiteral(v)] == comp[NegativeLiteral(v)] {
			s.unsat = true
			return false
		}
	}

	numComps := 0
	for _, c := range comp {
		if int(c)+1 > numComps {
			numComps = int(c) + 1
		}
	}
	rep := make([]Literal, numComps)
	for i := range rep {
		rep[i] = UndefinedLiteral
	}
	for lit := 0; lit < n; lit++ {
		c := comp[lit]
		if rep[c] == UndefinedLiteral || Literal(lit) < rep[c] {
			rep[c] = Literal(lit)
		}
	}

	changed := false
	for v := 0; v < s.nVars; v++ {
		if s.removed[v].IsRemoved() {
			continue
		}
		r := rep[comp[PositiveLiteral(v)]]
		if r.VarID() == v {
			continue
		}
		s.equivalences[v] = equivalence{representative: r, sign: false}
		s.removed[v] = RemovedReplaced
		s.pushEquivalence(v, r, false)
		changed = true
	}

	if changed {
		s.rebuildClauseDatabase()
		s.stamps.invalidate()
		s.implCache = newImplicationCache()
		for i := 0; i < s.nVars; i++ {
			s.implCache.grow()
		}
	}
	return true
}

// eqLiteral returns the literal that is always equal in truth value to
// PositiveLiteral(v) for a variable replaced under eq.
func eqLiteral(eq equivalence) Literal {
	if eq.sign {
		return eq.representative.Opposite()
	}
	return eq.representative
}

// canonicalLiteral follows l's variable's replacement chain (if any) to the
// literal that now stands in for it.
func (s *Solver) canonicalLiteral(l Literal) Literal {
	v := l.VarID()
	positive := l.IsPositive()
	for s.removed[v] == RemovedReplaced {
		base := eqLiteral(s.equivalences[v])
		if !positive {
			base = base.Opposite()
		}
		l = base
		v = l.VarID()
		positive = l.IsPositive()
	}
	return l
}

// simplifyLiterals canonicalizes and simplifies a raw clause under the
// current equivalences and level-0 assignments: it drops already-false
// literals, reports the clause as trivially satisfied if any literal is
// already true or its negation also appears (tautology), and dedups.
func (s *Solver) simplifyLiterals(lits []Literal) (out []Literal, satisfied bool) {
	seen := map[Literal]bool{}
	for _, l := range lits {
		cl := s.canonicalLiteral(l)
		if s.assigns[cl] == True {
			return nil, true
		}
		if s.assigns[cl] == False {
			continue
		}
		if seen[cl.Opposite()] {
			return nil, true
		}
		if seen[cl] {
			continue
		}
		seen[cl] = true
		out = append(out, cl)
	}
	return out, false
}

// rebuildClauseDatabase snapshots every live binary/ternary/pooled clause,
// discards the watch lists and pool, and re-adds each clause through
// addClause after simplifyLiterals — the simplest correct way to apply a
// just-computed equivalence substitution across the whole database without
// surgically patching every watch entry in place. Every re-added clause is
// retraced to the DRUP sink, which is more verbose than a minimal
// incremental trace but still a sound proof (each addition is a valid
// implication of the original clause).
// rawClause is a materialized, storage-agnostic clause used when rebuilding
// the clause database after a structural change (equivalence substitution,
// variable elimination) touches too much of it to patch watch entries in
// place.
type rawClause struct {
	lits   []Literal
	learnt bool
}

// collectRawClauses snapshots every live binary/ternary/pooled clause.
func (s *Solver) collectRawClauses() []rawClause {
	var raws []rawClause

	for p := range s.watches.lists {
		pl := Literal(p)
		for _, w := range s.watches.of(pl) {
			if w.kind != watchBinary {
				continue
			}
			a := pl.Opposite()
			b := w.otherA
			if int(a) >= int(b) {
				continue
			}
			raws = append(raws, rawClause{lits: []Literal{a, b}, learnt: w.redundant})
		}
	}
	for p := range s.watches.lists {
		pl := Literal(p)
		for _, w := range s.watches.of(pl) {
			if w.kind != watchTernary {
				continue
			}
			self := pl.Opposite()
			if int(self) >= int(w.otherA) {
				continue
			}
			raws = append(raws, rawClause{lits: []Literal{self, w.otherA, w.otherB}, learnt: w.redundant})
		}
	}
	s.pool.Each(func(h ClauseHandle, c *poolClause) {
		raws = append(raws, rawClause{lits: append([]Literal(nil), c.literals...), learnt: c.learnt})
	})
	return raws
}

// installRawClauses discards the current watch lists and pool, then
// re-adds every clause in raws (each already simplified by the caller if
// needed: installRawClauses itself only runs simplifyLiterals, so callers
// that pre-filter — e.g. BVE dropping a variable's own clauses — can do so
// before calling in).
func (s *Solver) installRawClauses(raws []rawClause) {
	// The handles/watch entries backing any level-0 fact's reason are about
	// to be discarded; their provenance no longer matters once a fact is
	// permanent, so fall back to unitReason.
	for v := range s.reasons {
		if s.level[v] == 0 {
			switch s.reasons[v].kind {
			case reasonBinary, reasonTernary, reasonLong:
				s.reasons[v] = unitReason
			}
		}
	}

	s.watches = newWatchLists()
	for i := 0; i < s.nVars; i++ {
		s.watches.grow()
	}
	s.pool = NewClausePool()
	s.longIrr = nil
	s.longRed = nil

	for _, rc := range raws {
		out, satisfied := s.simplifyLiterals(rc.lits)
		if satisfied {
			continue
		}
		if len(out) == 0 {
			s.unsat = true
			continue
		}
		s.addClause(out, rc.learnt)
	}
}

// rebuildClauseDatabase re-adds every live clause through addClause after
// simplifyLiterals — the simplest correct way to apply a just-computed
// equivalence substitution across the whole database without surgically
// patching every watch entry in place. Every re-added clause is retraced to
// the DRUP sink, which is more verbose than a minimal incremental trace but
// still a sound proof (each addition is a valid implication of the
// original clause).
func (s *Solver) rebuildClauseDatabase() {
	s.installRawClauses(s.collectRawClauses())
}

// tarjanSCC computes strongly-connected components of a graph over nodes
// 0..n-1 (here, literals), using an explicit-stack iterative form of
// Tarjan's algorithm to avoid recursion-depth limits on large implication
// graphs. It returns a component id per node.
func tarjanSCC(n int, edgesOf func(Literal) []Literal) []int32 {
	index := make([]int32, n)
	low := make([]int32, n)
	onStack := make([]bool, n)
	comp := make([]int32, n)
	for i := range index {
		index[i] = -1
	}

	var tstack []Literal
	var nextIndex int32
	var nextComp int32

	type frame struct {
		v     Literal
		edges []Literal
		i     int
	}
	var call []frame

	for start := 0; start < n; start++ {
		if index[start] != -1 {
			continue
		}
		index[start] = nextIndex
		low[start] = nextIndex
		nextIndex++
		tstack = append(tstack, Literal(start))
		onStack[start] = true
		call = append(call, frame{v: Literal(start), edges: edgesOf(Literal(start))})

		for len(call) > 0 {
			top := &call[len(call)-1]
			if top.i < len(top.edges) {
				w := top.edges[top.i]
				top.i++
				if index[w] == -1 {
					index[w] = nextIndex
					low[w] = nextIndex
					nextIndex++
					tstack = append(tstack, w)
					onStack[w] = true
					call = append(call, frame{v: w, edges: edgesOf(w)})
				} else if onStack[w] {
					if index[w] < low[top.v] {
						low[top.v] = index[w]
					}
				}
				continue
			}

			v := top.v
			call = call[:len(call)-1]
			if len(call) > 0 {
				parent := &call[len(call)-1]
				if low[v] < low[parent.v] {
					low[parent.v] = low[v]
				}
			}
			if low[v] == index[v] {
				for {
					w := tstack[len(tstack)-1]
					tstack = tstack[:len(tstack)-1]
					onStack[w] = false
					comp[w] = nextComp
					if w == v {
						break
					}
				}
				nextComp++
			}
		}
	}
	return comp
}
