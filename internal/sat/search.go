package sat

// search runs CDCL to a fixpoint from the current trail: propagate,
// analyze any conflict and backjump, or decide and recurse, until either a
// full assignment is found, the formula is proven UNSAT, or the cooperative
// budget/interrupt fires (spec §4.1, §5). Restarts do not end the call:
// handleConflict backtracks to level 0 in place.
//
// It returns StatusSAT, StatusUNSAT, or StatusUnknown (budget/interrupt:
// the caller, in scheduler.go, decides what to do next).
func (s *Solver) search() Status {
	for {
		info, conflict := s.propagate()
		if conflict {
			if s.decisionLevel() == 0 {
				s.unsat = true
				return StatusUNSAT
			}
			s.handleConflict(info)
			continue
		}

		if s.shouldStop() {
			return StatusUnknown
		}
		if s.bogoProps >= s.bogoPropsBudget {
			return StatusUnknown
		}

		lit, ok := s.pickDecision()
		if !ok {
			return StatusSAT
		}
		s.totalDecisions++
		if !s.assume(lit) {
			// Contradicts an existing fact: treat as an immediate conflict on
			// the next propagate() call by re-enqueuing through propagate's
			// own path. enqueue only fails if already falsified, which
			// pickDecision must not hand back; defensively loop.
			continue
		}
	}
}

// pickDecision selects the next decision literal: with probability
// RandomVarFreq it samples uniformly among free variables, otherwise it
// takes the highest-activity free variable from VarOrder.
func (s *Solver) pickDecision() (Literal, bool) {
	isAssigned := func(v int) bool { return s.isAssignedOrRemoved(v) }

	if s.opts.RandomVarFreq > 0 && s.rnd.Float64() < s.opts.RandomVarFreq {
		if l, ok := s.randomFreeLiteral(); ok {
			return l, true
		}
	}
	return s.order.NextLiteral(isAssigned)
}

func (s *Solver) randomFreeLiteral() (Literal, bool) {
	if s.nVars == 0 {
		return UndefinedLiteral, false
	}
	start := s.rnd.Intn(s.nVars)
	for i := 0; i < s.nVars; i++ {
		v := (start + i) % s.nVars
		if !s.isAssignedOrRemoved(v) {
			val := s.order.phases[v] != False
			if val {
				return PositiveLiteral(v), true
			}
			return NegativeLiteral(v), true
		}
	}
	return UndefinedLiteral, false
}

// handleConflict runs analyze, backjumps, records the learnt clause, and
// applies the restart policy's verdict (spec §4.3-4.4).
func (s *Solver) handleConflict(info conflictInfo) {
	s.totalConflicts++
	s.conflictsInEpisode++

	trigger := s.tr.lits[s.tr.qhead-1]
	learnt, backtrackLevel, lbd := s.analyze(info, trigger)

	s.order.DecayScores()
	s.decayClauseActivity()

	s.cancelUntil(backtrackLevel)
	s.recordLearnt(learnt, lbd)

	if s.restart.conflict(lbd) {
		s.restart.restarted()
		s.totalRestarts++
		s.cancelUntil(0)
	}
}
