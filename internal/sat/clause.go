package sat

// addClause installs lits as a new clause, irredundant (a problem clause)
// unless learnt is true. It dispatches to the binary/ternary/long storage
// form appropriate to len(lits), per C1/C2's "binary and ternary clauses
// never touch the pool" design. lits must already be simplified (deduped,
// not containing a tautology) by the caller for learnt clauses; AddClause
// (the public API, in model.go) does that simplification for problem
// clauses.
//
// It returns false if adding lits makes the formula immediately UNSAT
// (attaching a conflicting unit at level 0).
func (s *Solver) addClause(lits []Literal, learnt bool) bool {
	s.traceAdd(lits)

	switch len(lits) {
	case 0:
		s.unsat = true
		return false
	case 1:
		return s.enqueueUnit(lits[0])
	case 2:
		s.watches.watchBinaryClause(lits[0], lits[1], learnt)
	case 3:
		s.watches.watchTernaryClause(lits[0], lits[1], lits[2], learnt)
	default:
		h := s.pool.Alloc(lits, learnt)
		s.watches.watchLongClause(h, s.pool.Clause(h).literals)
		if learnt {
			s.longRed = append(s.longRed, h)
		} else {
			s.longIrr = append(s.longIrr, h)
		}
	}
	return true
}

// enqueueUnit assigns a decision-level-0 fact. If the unit contradicts an
// existing assignment the formula is UNSAT.
func (s *Solver) enqueueUnit(l Literal) bool {
	if s.assigns[l] == True {
		return true
	}
	if s.assigns[l] == False {
		s.unsat = true
		return false
	}
	return s.enqueue(l, unitReason)
}

// recordLearnt installs an asserting learnt clause found by analyze, sets
// its LBD/activity, and enqueues its asserting literal at the backtrack
// level the caller has already jumped to.
func (s *Solver) recordLearnt(lits []Literal, lbd uint32) {
	if len(lits) == 1 {
		s.traceAdd(lits)
		s.enqueue(lits[0], unitReason)
		return
	}
	if !s.addClause(lits, true) {
		return
	}
	if len(lits) >= 4 {
		h := s.longRed[len(s.longRed)-1]
		c := s.pool.Clause(h)
		c.lbd = lbd
		c.activity = s.clauseInc
		s.enqueue(lits[0], reason{kind: reasonLong, handle: h})
		return
	}
	var r reason
	if len(lits) == 2 {
		r = reason{kind: reasonBinary, a: lits[1], b: lits[0]}
	} else {
		r = reason{kind: reasonTernary, a: lits[1], b: lits[2]}
	}
	s.enqueue(lits[0], r)
}

// bumpClauseActivity increases a learnt long clause's activity and rescales
// every learnt clause's activity if it overflows (mirrors VarOrder's
// scoreInc/rescale scheme, spec design note "Activity as global mutable
// state").
func (s *Solver) bumpClauseActivity(h ClauseHandle) {
	c := s.pool.Clause(h)
	c.activity += s.clauseInc
	if c.activity > 1e20 {
		for _, rh := range s.longRed {
			rc := s.pool.Clause(rh)
			rc.activity *= 1e-20
		}
		s.clauseInc *= 1e-20
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.clauseDecay
}

// removeClause detaches lits from the watch structures and the pool (for
// long clauses), tracing the deletion to the DRUP sink.
func (s *Solver) removeClause(h ClauseHandle) {
	c := s.pool.Clause(h)
	s.traceDelete(c.literals)
	s.watches.removeLong(c.literals[0].Opposite(), h)
	s.watches.removeLong(c.literals[1].Opposite(), h)
	s.pool.Free(h)
}

// removeBinaryClause detaches a binary clause (l1 v l2) from both watch
// lists, tracing the deletion.
func (s *Solver) removeBinaryClause(l1, l2 Literal) {
	s.traceDelete([]Literal{l1, l2})
	s.watches.removeBinary(l1.Opposite(), l2)
	s.watches.removeBinary(l2.Opposite(), l1)
}
