package sat

// reconstructionKind tags one entry of the model-reconstruction stack
// (C13), which replays eliminations and equivalences to extend the core
// model to the full (input) variable set, per spec §4.12.
type reconstructionKind uint8

const (
	reconEquivalence reconstructionKind = iota
	reconBVEWitness
	reconBlockedClause
)

// reconstructionStep is one append-only entry of the stack built by C7
// (equivalences) and C8 (BVE witnesses, blocked-clause witnesses).
type reconstructionStep struct {
	kind reconstructionKind

	// reconEquivalence: var = val(representative) xor sign.
	variable       int
	representative Literal
	sign           bool

	// reconBVEWitness / reconBlockedClause: a sequence of original clauses
	// that mention variable, with the designated "blocked literal" of
	// variable in each. witnessLit[i] is the blocked literal that clauses[i]
	// contains; clauses are tried in order and the first currently
	// unsatisfied one is satisfied via its blocked literal.
	clauses    [][]Literal
	witnessLit []Literal
}

// pushEquivalence records that variable was replaced by representative
// (with the given sign) by the equivalence engine (C7).
func (s *Solver) pushEquivalence(variable int, representative Literal, sign bool) {
	s.reconstruction = append(s.reconstruction, reconstructionStep{
		kind:           reconEquivalence,
		variable:       variable,
		representative: representative,
		sign:           sign,
	})
}

// pushBVEWitness records the clauses blocked on variable by its
// elimination, so C13 can restore variable's value (C8, §4.7 step 3).
func (s *Solver) pushBVEWitness(variable int, clauses [][]Literal, witnessLit []Literal) {
	s.reconstruction = append(s.reconstruction, reconstructionStep{
		kind:       reconBVEWitness,
		variable:   variable,
		clauses:    clauses,
		witnessLit: witnessLit,
	})
}

// pushBlockedClauseWitness records a blocked clause removed by BCE (C8),
// treated identically to a BVE witness at reconstruction time.
func (s *Solver) pushBlockedClauseWitness(variable int, clause []Literal, blockedLit Literal) {
	s.reconstruction = append(s.reconstruction, reconstructionStep{
		kind:       reconBlockedClause,
		variable:   variable,
		clauses:    [][]Literal{clause},
		witnessLit: []Literal{blockedLit},
	})
}

// reconstructModel replays the reconstruction stack in reverse over core
// (the kernel's total assignment over the *current* variable set) and
// returns a total model over every variable ever declared.
func (s *Solver) reconstructModel(core []bool) []bool {
	model := make([]bool, s.nVars)
	copy(model, core)

	for i := len(s.reconstruction) - 1; i >= 0; i-- {
		step := &s.reconstruction[i]
		switch step.kind {
		case reconEquivalence:
			repVal := model[step.representative.VarID()]
			if !step.representative.IsPositive() {
				repVal = !repVal
			}
			model[step.variable] = repVal != step.sign
		case reconBVEWitness, reconBlockedClause:
			for ci, clause := range step.clauses {
				if clauseSatisfiedBy(clause, model) {
					continue
				}
				// This witness clause is not yet satisfied: assign the
				// blocked literal's polarity to satisfy it. Every later
				// (earlier-eliminated) witness clause for the same
				// variable is guaranteed satisfiable this way because the
				// blocked literal does not appear negated in any of them
				// (that is what "blocked" means).
				lit := step.witnessLit[ci]
				model[lit.VarID()] = lit.IsPositive()
				break
			}
			// If every witness clause is already satisfied, the variable's
			// zero-value default is a consistent assignment.
		}
	}

	return model
}

func clauseSatisfiedBy(clause []Literal, model []bool) bool {
	for _, l := range clause {
		if model[l.VarID()] == l.IsPositive() {
			return true
		}
	}
	return false
}

// sign is a small helper used by the equivalence engine: returns true if
// the literal is negative.
func sign(l Literal) bool {
	return !l.IsPositive()
}
