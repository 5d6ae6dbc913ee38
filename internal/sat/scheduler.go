package sat

import "time"

// Solve runs the scheduler (C12): it alternates bounded search episodes with
// inprocessing rounds (clause-DB cleaning, equivalence elimination,
// occurrence simplification, probing, transitive reduction, vivification)
// until the formula is decided or a stop condition fires (spec §4.11, §5).
//
// assumptions are treated as unit facts pushed before the first search
// episode; Solve reports StatusUNSAT immediately if they conflict.
//
// A failure reported by the DRUP observer (AddClause/DeleteClause returning
// an error) is treated as a fatal I/O failure per spec §7: Solve recovers
// the internal panic and surfaces it as err instead of letting it escape or
// silently continuing with an incomplete trace.
func (s *Solver) Solve(assumptions []Literal) (status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			if df, ok := r.(drupFatal); ok {
				status, err = StatusUnknown, df
				return
			}
			panic(r)
		}
	}()
	return s.solve(assumptions), nil
}

func (s *Solver) solve(assumptions []Literal) Status {
	if s.unsat {
		return StatusUNSAT
	}
	s.startTime = time.Now()

	if s.opts.EnableXOR && s.xor.HasClauses() {
		if !s.xor.Build() {
			s.unsat = true
			return StatusUNSAT
		}
	}

	for _, a := range assumptions {
		if !s.enqueueUnit(a) {
			s.unsat = true
			return StatusUNSAT
		}
	}
	if _, conflict := s.propagate(); conflict {
		s.unsat = true
		return StatusUNSAT
	}

	for {
		status := s.search()
		switch status {
		case StatusSAT:
			core := make([]bool, s.nVars)
			for v := 0; v < s.nVars; v++ {
				core[v] = s.VarValue(v) == True
			}
			s.model = s.reconstructModel(core)
			s.cancelUntil(0)
			s.reportStats("search")
			return StatusSAT
		case StatusUNSAT:
			s.reportStats("search")
			return StatusUNSAT
		}

		// StatusUnknown: either the clean/simplify schedule or an external
		// budget/interrupt fired. shouldStop wins outright; otherwise this
		// was a simplify checkpoint, so run one inprocessing round and
		// resume search with a larger budget.
		if s.shouldStop() {
			s.reportStats("search")
			return StatusUnknown
		}

		s.reportStats("search")
		if !s.runInprocessing() {
			s.reportStats("simplify")
			return StatusUNSAT
		}
		s.reportStats("simplify")

		s.bogoProps = 0
		s.bogoPropsBudget = int64(float64(s.bogoPropsBudget) * s.timeoutMul)
	}
}

// runInprocessing runs one round of the simplification pipeline at decision
// level 0, in this order: clean, equivalences, occurrence
// simplification, probing, transitive reduction, vivification. It returns
// false if any step proves the formula UNSAT.
func (s *Solver) runInprocessing() bool {
	s.cancelUntil(0)
	s.simplifyRounds++

	s.maybeClean()
	if s.unsat {
		return false
	}

	if !s.opts.EnableInprocessing {
		return true
	}
	if s.opts.NumCleanBetweenSimplify > 0 && s.simplifyRounds%s.opts.NumCleanBetweenSimplify != 0 {
		return true
	}

	if !s.runEquivalenceElimination() {
		return false
	}
	if s.shouldStop() {
		return true
	}

	if !s.runOccurrenceSimplification() {
		return false
	}
	if s.unsat {
		return false
	}
	if s.shouldStop() {
		return true
	}

	if !s.runProbing() {
		return false
	}
	if s.unsat {
		return false
	}
	if s.shouldStop() {
		return true
	}

	s.runTransitiveReduction()
	if s.shouldStop() {
		return true
	}

	s.runVivification()
	return !s.unsat
}

// GetModel returns the last satisfying assignment found by Solve, indexed by
// variable. It is only meaningful after Solve returned StatusSAT.
func (s *Solver) GetModel() []bool {
	return s.model
}
