package sat

import "testing"

func newLongLearnt(s *Solver, base int) []Literal {
	return []Literal{
		PositiveLiteral(base),
		PositiveLiteral(base + 1),
		PositiveLiteral(base + 2),
		PositiveLiteral(base + 3),
	}
}

func TestCleanDropsWorseScoredUnlockedClause(t *testing.T) {
	s := NewDefaultSolver()
	for i := 0; i < 8; i++ {
		s.AddVariable()
	}
	s.opts.CleanKeepRatio = 0.5

	good := newLongLearnt(s, 0)
	bad := newLongLearnt(s, 4)

	if !s.addClause(good, true) {
		t.Fatalf("addClause(good) reported UNSAT")
	}
	goodH := s.longRed[len(s.longRed)-1]
	s.pool.Clause(goodH).lbd = 2

	if !s.addClause(bad, true) {
		t.Fatalf("addClause(bad) reported UNSAT")
	}
	badH := s.longRed[len(s.longRed)-1]
	s.pool.Clause(badH).lbd = 10

	s.clean()

	if len(s.longRed) != 1 {
		t.Fatalf("longRed has %d clauses after clean, want 1", len(s.longRed))
	}
	if s.pool.Clause(s.longRed[0]).lbd != 2 {
		t.Errorf("surviving clause has lbd %d, want the low-lbd (good) clause kept", s.pool.Clause(s.longRed[0]).lbd)
	}
}

func TestCleanSparesLockedClause(t *testing.T) {
	s := NewDefaultSolver()
	for i := 0; i < 8; i++ {
		s.AddVariable()
	}
	s.opts.CleanKeepRatio = 0.0 // would drop every unlocked candidate

	good := newLongLearnt(s, 0)
	bad := newLongLearnt(s, 4)

	s.addClause(good, true)
	goodH := s.longRed[len(s.longRed)-1]
	s.pool.Clause(goodH).lbd = 2

	s.addClause(bad, true)
	badH := s.longRed[len(s.longRed)-1]
	s.pool.Clause(badH).lbd = 10
	// bad is the reason the asserting literal is on the trail: locked.
	s.enqueue(bad[0], reason{kind: reasonLong, handle: badH})

	s.clean()
	// clean() compacts the pool; the trail reason follows the relocated clause.
	badH = s.reasons[bad[0].VarID()].handle

	found := false
	for _, h := range s.longRed {
		if h == badH {
			found = true
		}
	}
	if !found {
		t.Errorf("locked clause was removed by clean()")
	}
	if len(s.longRed) != 1 {
		t.Errorf("longRed has %d clauses after clean, want only the locked one to survive", len(s.longRed))
	}
}

func TestCleanSparesProtectedClauseOnceThenDropsIt(t *testing.T) {
	s := NewDefaultSolver()
	for i := 0; i < 4; i++ {
		s.AddVariable()
	}
	s.opts.CleanKeepRatio = 0.0

	lits := newLongLearnt(s, 0)
	s.addClause(lits, true)
	h := s.longRed[len(s.longRed)-1]
	s.pool.Clause(h).protected = true

	s.clean()
	if len(s.longRed) != 1 {
		t.Fatalf("protected clause was dropped on its first clean")
	}
	if s.pool.Clause(s.longRed[0]).protected {
		t.Errorf("clean() did not clear the protected flag after sparing the clause")
	}

	s.clean()
	if len(s.longRed) != 0 {
		t.Errorf("clause with cleared protection survived a second clean, want it dropped")
	}
}
