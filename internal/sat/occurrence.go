package sat

// occClause is one clause as seen by the occurrence-list simplifier (C8):
// a materialized literal list plus enough bookkeeping to decide whether it
// survives a round.
type occClause struct {
	lits    []Literal
	learnt  bool
	deleted bool
}

// occurrenceIndex maps each literal to the clauses currently containing it.
type occurrenceIndex struct {
	clauses []occClause
	byLit   [][]int // literal -> indices into clauses
}

func (s *Solver) buildOccurrenceIndex() *occurrenceIndex {
	idx := &occurrenceIndex{byLit: make([][]int, 2*s.nVars)}
	for _, rc := range s.collectRawClauses() {
		ci := len(idx.clauses)
		idx.clauses = append(idx.clauses, occClause{lits: rc.lits, learnt: rc.learnt})
		for _, l := range rc.lits {
			idx.byLit[l] = append(idx.byLit[l], ci)
		}
	}
	return idx
}

// toRawClauses converts the surviving occClauses back to the database.
func (idx *occurrenceIndex) toRawClauses() []rawClause {
	var out []rawClause
	for _, c := range idx.clauses {
		if c.deleted {
			continue
		}
		out = append(out, rawClause{lits: c.lits, learnt: c.learnt})
	}
	return out
}

// runOccurrenceSimplification is C8's entry point: subsumption/
// self-subsuming resolution, then bounded variable elimination, run over a
// snapshot of the clause database and installed back atomically. Only
// valid at decision level 0 (spec §4.7-4.8 run between search phases).
func (s *Solver) runOccurrenceSimplification() bool {
	if !s.opts.EnableSubsumption && !s.opts.EnableVarElim && !s.opts.EnableBVE {
		return true
	}
	idx := s.buildOccurrenceIndex()

	if s.opts.EnableSubsumption {
		s.subsumeAndStrengthen(idx)
	}
	if s.opts.EnableVarElim || s.opts.EnableBVE {
		if !s.boundedVariableElimination(idx) {
			return false
		}
	}

	s.installRawClauses(idx.toRawClauses())
	s.stamps.invalidate()
	return true
}

// subsumeAndStrengthen removes any clause subsumed by a smaller clause
// sharing a literal, and strengthens (shrinks) any clause D for which some
// smaller clause C satisfies (C \ {l}) subset D and not(l) in D, by
// dropping not(l) from D (spec §4.7, grounded on subsumeimplicit.cpp).
func (s *Solver) subsumeAndStrengthen(idx *occurrenceIndex) {
	for ci := range idx.clauses {
		c := &idx.clauses[ci]
		if c.deleted || len(c.lits) == 0 {
			continue
		}
		pivot := smallestOccurrenceLiteral(idx, c.lits)

		for _, di := range idx.byLit[pivot] {
			if di == ci {
				continue
			}
			d := &idx.clauses[di]
			if d.deleted || len(d.lits) < len(c.lits) {
				continue
			}
			if containsAll(d.lits, c.lits) {
				s.traceDelete(d.lits)
				d.deleted = true
				continue
			}
		}

		for _, l := range c.lits {
			neg := l.Opposite()
			for _, di := range idx.byLit[neg] {
				if di == ci {
					continue
				}
				d := &idx.clauses[di]
				if d.deleted {
					continue
				}
				if containsAllExcept(d.lits, c.lits, neg, l) {
					s.strengthen(idx, di, neg)
				}
			}
		}
	}
}

// strengthen drops lit from clause di, retracing the shrink as a delete of
// the old clause followed by an add of the new one (spec §6 DRUP order:
// additions before the deletions they enable — here the new, stronger
// clause implies the old one is safe to retire).
func (s *Solver) strengthen(idx *occurrenceIndex, di int, lit Literal) {
	d := &idx.clauses[di]
	newLits := make([]Literal, 0, len(d.lits)-1)
	for _, x := range d.lits {
		if x != lit {
			newLits = append(newLits, x)
		}
	}
	s.traceAdd(newLits)
	s.traceDelete(d.lits)

	for _, x := range d.lits {
		idx.byLit[x] = removeIdx(idx.byLit[x], di)
	}
	d.lits = newLits
	for _, x := range d.lits {
		idx.byLit[x] = append(idx.byLit[x], di)
	}
}

func removeIdx(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func smallestOccurrenceLiteral(idx *occurrenceIndex, lits []Literal) Literal {
	best := lits[0]
	for _, l := range lits[1:] {
		if len(idx.byLit[l]) < len(idx.byLit[best]) {
			best = l
		}
	}
	return best
}

// containsAll reports whether every literal of small is present in big.
func containsAll(big, small []Literal) bool {
	if len(small) > len(big) {
		return false
	}
	set := map[Literal]bool{}
	for _, l := range big {
		set[l] = true
	}
	for _, l := range small {
		if !set[l] {
			return false
		}
	}
	return true
}

// containsAllExcept reports whether big contains every literal of
// small\{posPivot}, given big is known to
// contain negPivot (the negation of the literal self-subsumption pivots
// on) instead of posPivot.
func containsAllExcept(big, small []Literal, negPivot, posPivot Literal) bool {
	set := map[Literal]bool{}
	for _, l := range big {
		set[l] = true
	}
	if !set[negPivot] {
		return false
	}
	for _, l := range small {
		if l == posPivot {
			continue
		}
		if !set[l] {
			return false
		}
	}
	return true
}

// boundedVariableElimination is C8's BVE: for each eligible variable,
// computes every non-tautological resolvent of its positive and negative
// occurrences, and eliminates the variable (replacing its clauses with the
// resolvents) if the result does not grow the clause count beyond the
// configured strategy's tolerance (spec §4.8, grounded on
// the original's heuristic/calculate dichotomy).
func (s *Solver) boundedVariableElimination(idx *occurrenceIndex) bool {
	for v := 0; v < s.nVars; v++ {
		if s.removed[v].IsRemoved() || s.isAssignedOrRemoved(v) {
			continue
		}
		if s.xor.varMatrix != nil && v < len(s.xor.varMatrix) && s.xor.varMatrix[v] >= 0 {
			// Leave XOR-matrix variables to decomposition (C10); eliminating
			// one here would desynchronize the matrix from the CNF view.
			continue
		}

		posIdx := liveIndices(idx, idx.byLit[PositiveLiteral(v)])
		negIdx := liveIndices(idx, idx.byLit[NegativeLiteral(v)])
		if len(posIdx) == 0 && len(negIdx) == 0 {
			continue
		}
		if len(posIdx)*len(negIdx) > 10_000 {
			continue // pathological fan-out, not worth the resolvent scan
		}

		limit := len(posIdx) + len(negIdx)
		var resolvents [][]Literal
		count := 0
		for _, pi := range posIdx {
			for _, ni := range negIdx {
				res, taut := resolveOn(v, idx.clauses[pi].lits, idx.clauses[ni].lits)
				if taut {
					continue
				}
				count++
				if s.opts.BVEStrategy == BVECalculate {
					resolvents = append(resolvents, res)
				}
			}
		}
		if count > limit {
			continue
		}
		if s.opts.BVEStrategy == BVEHeuristic {
			resolvents = resolvents[:0]
			for _, pi := range posIdx {
				for _, ni := range negIdx {
					res, taut := resolveOn(v, idx.clauses[pi].lits, idx.clauses[ni].lits)
					if !taut {
						resolvents = append(resolvents, res)
					}
				}
			}
		}

		s.eliminateVariable(idx, v, posIdx, negIdx, resolvents)
	}
	return true
}

func liveIndices(idx *occurrenceIndex, raw []int) []int {
	var out []int
	for _, i := range raw {
		if !idx.clauses[i].deleted {
			out = append(out, i)
		}
	}
	return out
}

// resolveOn resolves A and B on variable v, returning the merged,
// deduplicated clause, or taut=true if the resolvent is a tautology.
func resolveOn(v int, a, b []Literal) (res []Literal, taut bool) {
	seen := map[Literal]bool{}
	for _, l := range a {
		if l.VarID() == v {
			continue
		}
		seen[l] = true
	}
	for _, l := range b {
		if l.VarID() == v {
			continue
		}
		if seen[l.Opposite()] {
			return nil, true
		}
		seen[l] = true
	}
	res = make([]Literal, 0, len(seen))
	for l := range seen {
		res = append(res, l)
	}
	return res, false
}

// eliminateVariable retires every clause mentioning v, records a
// reconstruction witness from whichever side (pos/neg) has fewer clauses,
// and installs the resolvents.
func (s *Solver) eliminateVariable(idx *occurrenceIndex, v int, posIdx, negIdx []int, resolvents [][]Literal) {
	witnessSide := posIdx
	witnessLit := PositiveLiteral(v)
	if len(negIdx) < len(posIdx) {
		witnessSide = negIdx
		witnessLit = NegativeLiteral(v)
	}
	witnessClauses := make([][]Literal, len(witnessSide))
	witnessLits := make([]Literal, len(witnessSide))
	for i, ci := range witnessSide {
		witnessClauses[i] = append([]Literal(nil), idx.clauses[ci].lits...)
		witnessLits[i] = witnessLit
	}
	s.pushBVEWitness(v, witnessClauses, witnessLits)

	for _, ci := range posIdx {
		s.traceDelete(idx.clauses[ci].lits)
		idx.clauses[ci].deleted = true
	}
	for _, ci := range negIdx {
		s.traceDelete(idx.clauses[ci].lits)
		idx.clauses[ci].deleted = true
	}

	for _, res := range resolvents {
		s.traceAdd(res)
		newIdx := len(idx.clauses)
		idx.clauses = append(idx.clauses, occClause{lits: res})
		for _, l := range res {
			idx.byLit[l] = append(idx.byLit[l], newIdx)
		}
	}

	s.removed[v] = RemovedEliminated
}
