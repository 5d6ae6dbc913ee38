package sat

// runProbing is C9's failed-literal probing: tentatively assumes each
// unassigned literal at a fresh decision level and propagates. A conflict
// proves the literal's negation is a permanent fact ("failed literal");
// otherwise, any literal the probe forced true is recorded in the
// implication cache (C11), and a simultaneous both-prop agreement between
// l and ¬l yields another permanent fact (spec §4.9).
func (s *Solver) runProbing() bool {
	if !s.opts.EnableProbing || s.decisionLevel() != 0 {
		return true
	}

	for v := 0; v < s.nVars; v++ {
		if s.isAssignedOrRemoved(v) {
			continue
		}
		if s.shouldStop() {
			return true
		}

		posImplied, posFailed := s.probeLiteral(PositiveLiteral(v))
		if posFailed {
			s.traceAdd([]Literal{NegativeLiteral(v)})
			if !s.enqueueUnit(NegativeLiteral(v)) {
				return false
			}
			if _, conf := s.propagate(); conf {
				s.unsat = true
				return false
			}
			continue
		}

		negImplied, negFailed := s.probeLiteral(NegativeLiteral(v))
		if negFailed {
			s.traceAdd([]Literal{PositiveLiteral(v)})
			if !s.enqueueUnit(PositiveLiteral(v)) {
				return false
			}
			if _, conf := s.propagate(); conf {
				s.unsat = true
				return false
			}
			continue
		}

		for _, pl := range posImplied {
			s.implCache.add(PositiveLiteral(v), pl, true)
		}
		for _, nl := range negImplied {
			s.implCache.add(NegativeLiteral(v), nl, true)
		}

		// Both-prop: a literal forced by both polarities of v is forced
		// unconditionally.
		negSet := map[Literal]bool{}
		for _, nl := range negImplied {
			negSet[nl] = true
		}
		for _, pl := range posImplied {
			if negSet[pl] && s.assigns[pl] == Undef {
				s.traceAdd([]Literal{pl})
				if !s.enqueueUnit(pl) {
					return false
				}
			}
		}
		if _, conf := s.propagate(); conf {
			s.unsat = true
			return false
		}
	}
	return true
}

// probeLiteral assumes l, propagates, and reports every other literal
// forced true by the assumption (failed=false), or failed=true if
// propagation conflicted. The assumption is always undone before
// returning.
func (s *Solver) probeLiteral(l Literal) (implied []Literal, failed bool) {
	start := len(s.tr.lits)
	s.assume(l)
	_, conflict := s.propagate()
	if conflict {
		s.cancelUntil(s.decisionLevel() - 1)
		return nil, true
	}
	for i := start + 1; i < len(s.tr.lits); i++ {
		implied = append(implied, s.tr.lits[i])
	}
	s.cancelUntil(s.decisionLevel() - 1)
	return implied, false
}

// runTransitiveReduction removes binary clauses made redundant by a longer
// implication path already captured by the DFS stamps (spec §4.9,
// grounded on the original's stamp-based transitive reduction).
func (s *Solver) runTransitiveReduction() {
	if !s.opts.EnableTransitiveReduction || s.decisionLevel() != 0 {
		return
	}
	s.stamps.build(2*s.nVars, s.edgesOfAllBinary, s.edgesOfAllBinary)

	type edge struct{ u, v Literal }
	var toRemove []edge

	for u := 0; u < 2*s.nVars; u++ {
		ul := Literal(u)
		neighbors := s.edgesOfAllBinary(ul)
		for _, v := range neighbors {
			for _, w := range neighbors {
				if w == v {
					continue
				}
				if s.stamps.dominatesAll(w, v) {
					toRemove = append(toRemove, edge{u: ul, v: v})
					break
				}
			}
		}
	}

	seen := map[[2]Literal]bool{}
	for _, e := range toRemove {
		key := [2]Literal{e.u, e.v}
		if e.v < e.u {
			key = [2]Literal{e.v, e.u}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		s.removeBinaryClause(e.u.Opposite(), e.v)
	}
	if len(seen) > 0 {
		s.stamps.invalidate()
	}
}

// runVivification is C9's clause vivification (asymmetric branching): for
// each irredundant clause, assumes the negation of all-but-one of its
// literals and propagates; if that derives a conflict or falsifies another
// of the clause's own literals, the clause can be shortened (spec §4.9,
// grounded on ClauseVivifier.cpp).
func (s *Solver) runVivification() {
	if !s.opts.EnableVivification || s.decisionLevel() != 0 {
		return
	}

	for _, h := range append([]ClauseHandle(nil), s.longIrr...) {
		c := s.pool.Clause(h)
		if c.deleted {
			continue
		}
		shortened, newLits := s.vivifyClause(c.literals)
		if !shortened {
			continue
		}
		s.traceAdd(newLits)
		s.traceDelete(c.literals)
		s.removeClause(h)
		if len(newLits) == 0 {
			s.unsat = true
			return
		}
		s.addClause(newLits, false)
	}
}

// vivifyClause tries assuming the negation of each prefix of lits in turn;
// if propagation ever falsifies a later literal of lits or conflicts
// outright, every literal from that point on is redundant and the clause
// can be shortened to the literals assumed so far (plus the one that
// caused the stop, for a conflict).
func (s *Solver) vivifyClause(lits []Literal) (shortened bool, out []Literal) {
	start := s.decisionLevel()
	var kept []Literal

	for i, l := range lits {
		if s.assigns[l] == True {
			s.cancelUntil(start)
			return true, append([]Literal(nil), kept...)
		}
		if s.assigns[l] == False {
			continue
		}
		kept = append(kept, l)
		s.assume(l.Opposite())
		_, conflict := s.propagate()
		if conflict {
			s.cancelUntil(start)
			return true, append([]Literal(nil), kept...)
		}
		for _, rest := range lits[i+1:] {
			if s.assigns[rest] == False {
				s.cancelUntil(start)
				return true, append([]Literal(nil), kept...)
			}
		}
	}

	s.cancelUntil(start)
	if len(kept) < len(lits) {
		return true, kept
	}
	return false, nil
}
