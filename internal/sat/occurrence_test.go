package sat

import "testing"

func TestSubsumeAndStrengthenDropsSubsumedClause(t *testing.T) {
	s := NewDefaultSolver()
	a := PositiveLiteral(s.AddVariable())
	b := PositiveLiteral(s.AddVariable())
	c := PositiveLiteral(s.AddVariable())

	idx := &occurrenceIndex{byLit: make([][]int, 6)}
	idx.clauses = append(idx.clauses, occClause{lits: []Literal{a, b}})
	idx.clauses = append(idx.clauses, occClause{lits: []Literal{a, b, c}})
	for ci, cl := range idx.clauses {
		for _, l := range cl.lits {
			idx.byLit[l] = append(idx.byLit[l], ci)
		}
	}

	s.subsumeAndStrengthen(idx)

	if idx.clauses[0].deleted {
		t.Errorf("the smaller, subsuming clause (a v b) was deleted")
	}
	if !idx.clauses[1].deleted {
		t.Errorf("the subsumed clause (a v b v c) was not deleted")
	}
}

func TestSubsumeAndStrengthenShrinksClause(t *testing.T) {
	s := NewDefaultSolver()
	a := PositiveLiteral(s.AddVariable())
	b := PositiveLiteral(s.AddVariable())
	c := PositiveLiteral(s.AddVariable())

	// (a v !b) self-subsumes (a v b v c) on b, dropping b and leaving (a v c).
	idx := &occurrenceIndex{byLit: make([][]int, 6)}
	idx.clauses = append(idx.clauses, occClause{lits: []Literal{a, b.Opposite()}})
	idx.clauses = append(idx.clauses, occClause{lits: []Literal{a, b, c}})
	for ci, cl := range idx.clauses {
		for _, l := range cl.lits {
			idx.byLit[l] = append(idx.byLit[l], ci)
		}
	}

	s.subsumeAndStrengthen(idx)

	if idx.clauses[1].deleted {
		t.Fatalf("clause (a v b v c) was deleted, want strengthened")
	}
	if !containsAll(idx.clauses[1].lits, []Literal{a, c}) || len(idx.clauses[1].lits) != 2 {
		t.Errorf("strengthened clause = %v, want exactly {a, c}", idx.clauses[1].lits)
	}
}

func TestResolveOnTautology(t *testing.T) {
	a, b, v := PositiveLiteral(0), PositiveLiteral(1), 2
	pos := []Literal{PositiveLiteral(v), a}
	neg := []Literal{NegativeLiteral(v), a.Opposite(), b}

	_, taut := resolveOn(v, pos, neg)
	if !taut {
		t.Errorf("resolveOn() did not detect the tautology on variable %d's outer literals", a.VarID())
	}
}

func TestResolveOnMerge(t *testing.T) {
	v := 0
	a, b := PositiveLiteral(1), PositiveLiteral(2)
	pos := []Literal{PositiveLiteral(v), a}
	neg := []Literal{NegativeLiteral(v), b}

	res, taut := resolveOn(v, pos, neg)
	if taut {
		t.Fatalf("resolveOn() reported a tautology, want a clean merge")
	}
	if !containsAll(res, []Literal{a, b}) || len(res) != 2 {
		t.Errorf("resolveOn() = %v, want exactly {a, b}", res)
	}
}
