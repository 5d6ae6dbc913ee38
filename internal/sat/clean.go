package sat

import "sort"

// maybeClean runs clause-DB cleaning if the learnt-clause count has reached
// nextCleanAt, dropping the lowest-ranked fraction of unlocked, unprotected
// learnt clauses (spec §4.4).
func (s *Solver) maybeClean() {
	if int64(len(s.longRed)) < s.nextCleanAt {
		return
	}
	s.clean()
	s.cleanRounds++
	s.nextCleanAt = int64(float64(s.nextCleanAt) * s.opts.IncreaseClean)
}

// clean ranks every learnt long clause by the configured CleanMetric, keeps
// the best-ranked CleanKeepRatio fraction and discards the rest, skipping
// any clause that is currently a trail literal's reason (locked) or marked
// protected. A protected clause is spared once, since clean clears the flag;
// no search or inprocessing step sets it.
func (s *Solver) clean() {
	type ranked struct {
		h     ClauseHandle
		score float64
	}

	var candidates []ranked
	locked := s.lockedClauses()

	for _, h := range s.longRed {
		c := s.pool.Clause(h)
		if c.protected || locked[h] {
			c.protected = false
			continue
		}
		candidates = append(candidates, ranked{h: h, score: s.cleanScore(c)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	nDrop := int(float64(len(candidates)) * (1 - s.opts.CleanKeepRatio))
	toDrop := map[ClauseHandle]bool{}
	for i := 0; i < nDrop && i < len(candidates); i++ {
		toDrop[candidates[i].h] = true
	}

	kept := s.longRed[:0]
	for _, h := range s.longRed {
		if toDrop[h] {
			s.removeClause(h)
			continue
		}
		kept = append(kept, h)
	}
	s.longRed = kept

	s.pool.Compact(s.relocateClause)
}

// cleanScore ranks a clause for removal: lower score is removed first. A
// higher glue or size, or a lower activity, makes a clause a better removal
// candidate, so each metric is oriented to decrease with
// removal-worthiness.
func (s *Solver) cleanScore(c *poolClause) float64 {
	switch s.opts.CleanMetric {
	case CleanBySize:
		return -float64(len(c.literals))
	case CleanByActivity:
		return float64(c.activity)
	case CleanByPropConfl, CleanByPropPerDepth:
		// Without per-clause propagation/conflict counters wired into the
		// hot propagation loop, fall back to glue: both metrics are, like
		// glue, a proxy for "how useful has this clause been".
		return -float64(c.lbd)
	default: // CleanByGlue
		return -float64(c.lbd)
	}
}

// lockedClauses returns the set of long-clause handles currently serving as
// a trail literal's reason: these cannot be removed without invalidating
// the trail.
func (s *Solver) lockedClauses() map[ClauseHandle]bool {
	locked := map[ClauseHandle]bool{}
	for _, l := range s.tr.lits {
		r := s.reasons[l.VarID()]
		if r.kind == reasonLong {
			locked[r.handle] = true
		}
	}
	return locked
}

// relocateClause rewrites every handle-holding structure after a Compact
// pass moves a clause from old to newH.
func (s *Solver) relocateClause(old, newH ClauseHandle) {
	c := s.pool.Clause(old)
	s.watches.removeLong(c.literals[0].Opposite(), old)
	s.watches.removeLong(c.literals[1].Opposite(), old)
	s.watches.append(c.literals[0].Opposite(), watcher{kind: watchLong, handle: newH, blocker: c.literals[1]})
	s.watches.append(c.literals[1].Opposite(), watcher{kind: watchLong, handle: newH, blocker: c.literals[0]})

	for i, h := range s.longIrr {
		if h == old {
			s.longIrr[i] = newH
		}
	}
	for i, h := range s.longRed {
		if h == old {
			s.longRed[i] = newH
		}
	}
	for v := range s.reasons {
		if s.reasons[v].kind == reasonLong && s.reasons[v].handle == old {
			s.reasons[v].handle = newH
		}
	}
}
