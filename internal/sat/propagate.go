package sat

// enqueue pushes l onto the trail with the given reason and records its
// decision level, without propagating. Returns false if l contradicts an
// existing assignment.
func (s *Solver) enqueue(l Literal, r reason) bool {
	switch s.assigns[l] {
	case True:
		return true
	case False:
		return false
	}
	s.assigns[l] = True
	s.assigns[l.Opposite()] = False
	s.level[l.VarID()] = int32(s.decisionLevel())
	s.reasons[l.VarID()] = r
	s.tr.push(l)

	s.agility.add(boolToFloat(s.order.phases[l.VarID()] != Lift(l.IsPositive())))
	s.trailAvg.add(float64(len(s.tr.lits)))
	return true
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// assume opens a new decision level and enqueues l as a decision.
func (s *Solver) assume(l Literal) bool {
	s.tr.newDecisionLevel()
	s.xor.OnNewDecisionLevel(s.decisionLevel())
	return s.enqueue(l, decisionReason)
}

// cancelUntil unwinds the trail back to decision level, undoing assignments
// and restoring phase-saved activity order (spec §4.1 backtracking).
func (s *Solver) cancelUntil(level int) {
	if s.decisionLevel() <= level {
		return
	}
	pos := s.tr.levelStart(level)
	for i := len(s.tr.lits) - 1; i >= pos; i-- {
		l := s.tr.lits[i]
		v := l.VarID()
		s.assigns[l] = Undef
		s.assigns[l.Opposite()] = Undef
		s.level[v] = -1
		val := Undef
		if l.IsPositive() {
			val = True
		} else {
			val = False
		}
		s.order.Reinsert(v, val)
	}
	s.tr.truncateTo(pos)
	s.tr.levelPos = s.tr.levelPos[:level]
	s.xor.OnBacktrack(level)
}

// conflictInfo names the clause that falsified, in whatever shape it was
// found, so analyze() can walk it without the caller caring which watcher
// kind produced it.
type conflictInfo struct {
	kind     reasonKind // reasonBinary, reasonTernary, reasonLong, or reasonXor
	a, b     Literal
	handle   ClauseHandle
	xorRowID int32
}

// propagate runs unit propagation to fixpoint, applying the two-watched-
// literal rule for binary/ternary/long clauses (spec §4.2) and folding any
// newly-assigned variable into the XOR engine (spec §4.10). It returns the
// conflicting clause's info with conflict=true, or conflict=false if
// propagation reached a fixpoint without conflict.
func (s *Solver) propagate() (info conflictInfo, conflict bool) {
	for s.tr.qhead < len(s.tr.lits) {
		l := s.tr.lits[s.tr.qhead]
		s.tr.qhead++
		s.totalPropagations++
		s.bogoProps++

		if info, conflict = s.propagateLiteral(l); conflict {
			return info, true
		}
		if info, conflict = s.propagateXor(l); conflict {
			return info, true
		}
	}
	return conflictInfo{}, false
}

// propagateXor folds l's variable assignment into its XOR matrix (if any)
// and enqueues any newly-forced units.
func (s *Solver) propagateXor(l Literal) (info conflictInfo, conflict bool) {
	v := l.VarID()
	res := s.xor.OnAssign(v, l.IsPositive())
	if res.conflict {
		return conflictInfo{kind: reasonXor, xorRowID: res.conflictRowID}, true
	}
	for _, p := range res.propagated {
		pl := PositiveLiteral(p.variable)
		if !p.value {
			pl = NegativeLiteral(p.variable)
		}
		if s.assigns[pl] == True {
			continue
		}
		if s.assigns[pl] == False {
			return conflictInfo{kind: reasonXor, xorRowID: p.reasonRowID}, true
		}
		s.enqueue(pl, reason{kind: reasonXor, row: p.reasonRowID})
	}
	return conflictInfo{}, false
}

// propagateLiteral resolves every watcher registered for l: a clause
// registers its watched literal w under key w.Opposite(), so this list
// (keyed by l, the literal that was just assigned true) holds exactly the
// clauses whose watched literal w = l.Opposite() has just become false.
func (s *Solver) propagateLiteral(l Literal) (info conflictInfo, conflict bool) {
	falseLit := l.Opposite()
	ws := s.watches.of(l)

	write := 0
	for read := 0; read < len(ws); read++ {
		w := ws[read]

		switch w.kind {
		case watchBinary:
			switch s.assigns[w.otherA] {
			case True:
				ws[write] = w
				write++
			case False:
				ws[write] = w
				write++
				s.watches.lists[l] = append(ws[:write:write], ws[read+1:]...)
				return conflictInfo{kind: reasonBinary, a: falseLit, b: w.otherA}, true
			default:
				ws[write] = w
				write++
				s.enqueue(w.otherA, reason{kind: reasonBinary, a: falseLit, b: w.otherA})
			}

		case watchTernary:
			ws[write] = w
			write++
			va, vb := s.assigns[w.otherA], s.assigns[w.otherB]
			switch {
			case va == True || vb == True:
			case va == False && vb == False:
				s.watches.lists[l] = append(ws[:write:write], ws[read+1:]...)
				return conflictInfo{kind: reasonTernary, a: w.otherA, b: w.otherB}, true
			case va == Undef && vb == Undef:
			case va == Undef:
				s.enqueue(w.otherA, reason{kind: reasonTernary, a: falseLit, b: w.otherB})
			default:
				s.enqueue(w.otherB, reason{kind: reasonTernary, a: falseLit, b: w.otherA})
			}

		case watchLong:
			if s.assigns[w.blocker] == True {
				ws[write] = w
				write++
				continue
			}
			c := s.pool.Clause(w.handle)

			// Find which of the two watched slots holds falseLit; the other
			// watched slot holds this entry's candidate unit literal.
			otherWatchIdx := 0
			if c.literals[0] == falseLit {
				otherWatchIdx = 1
			}
			other := c.literals[otherWatchIdx]
			if s.assigns[other] == True {
				ws[write] = watcher{kind: watchLong, handle: w.handle, blocker: other, redundant: w.redundant}
				write++
				continue
			}

			moved := false
			watchSlot := 1 - otherWatchIdx
			for k := 2; k < len(c.literals); k++ {
				if s.assigns[c.literals[k]] != False {
					c.literals[watchSlot], c.literals[k] = c.literals[k], c.literals[watchSlot]
					s.watches.append(c.literals[watchSlot].Opposite(), watcher{
						kind: watchLong, handle: w.handle, blocker: other, redundant: w.redundant,
					})
					moved = true
					break
				}
			}
			if moved {
				continue
			}

			ws[write] = watcher{kind: watchLong, handle: w.handle, blocker: other, redundant: w.redundant}
			write++
			if s.assigns[other] == False {
				s.watches.lists[l] = append(ws[:write:write], ws[read+1:]...)
				return conflictInfo{kind: reasonLong, handle: w.handle}, true
			}
			s.enqueue(other, reason{kind: reasonLong, handle: w.handle})
		}
	}

	s.watches.lists[l] = ws[:write]
	return conflictInfo{}, false
}

// reasonLiterals returns the set of literals explaining why l is assigned,
// excluding l itself, for conflict analysis (spec §4.3). It is only valid
// for a non-decision l.
func (s *Solver) reasonLiterals(l Literal) []Literal {
	r := s.reasons[l.VarID()]
	switch r.kind {
	case reasonUnit:
		return nil
	case reasonBinary:
		return []Literal{otherOf(r, l)}
	case reasonTernary:
		return []Literal{r.a, r.b}
	case reasonLong:
		c := s.pool.Clause(r.handle)
		out := make([]Literal, 0, len(c.literals)-1)
		for _, x := range c.literals {
			if x != l {
				out = append(out, x)
			}
		}
		return out
	case reasonXor:
		vars := s.xor.ReasonVars(r.row)
		out := make([]Literal, 0, len(vars))
		for _, v := range vars {
			if v == l.VarID() {
				continue
			}
			lit := PositiveLiteral(v)
			if s.assigns[lit] != False {
				lit = NegativeLiteral(v)
			}
			out = append(out, lit)
		}
		return out
	}
	return nil
}

// otherOf returns whichever of r.a/r.b is not l, for a binary reason whose
// two watched slots are (falseLit, propagatedLit) and l is the propagated
// literal.
func otherOf(r reason, l Literal) Literal {
	if r.a == l {
		return r.b
	}
	return r.a
}

// conflictLiterals returns every literal of the conflicting clause/row,
// including the one whose assignment triggered it (for analyze()'s initial
// seed), given the falsifying literal f (the one just propagated when the
// conflict was detected).
func (s *Solver) conflictLiterals(info conflictInfo, f Literal) []Literal {
	switch info.kind {
	case reasonBinary:
		return []Literal{info.a, info.b}
	case reasonTernary:
		return []Literal{f, info.a, info.b}
	case reasonLong:
		c := s.pool.Clause(info.handle)
		return append([]Literal(nil), c.literals...)
	case reasonXor:
		vars := s.xor.ReasonVars(info.xorRowID)
		out := make([]Literal, 0, len(vars))
		for _, v := range vars {
			lit := PositiveLiteral(v)
			if s.assigns[lit] != False {
				lit = NegativeLiteral(v)
			}
			out = append(out, lit)
		}
		return out
	}
	return nil
}
