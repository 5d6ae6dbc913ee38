package sat

import (
	"sort"
	"testing"
)

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGaussMatrixEchelonizeSimple(t *testing.T) {
	// var0 xor var1 == true
	m := newGaussMatrix([][]int{{0, 1}}, []bool{true})
	if !m.echelonize() {
		t.Fatalf("echelonize() = false, want true")
	}
}

func TestGaussMatrixAssignPropagates(t *testing.T) {
	// var0 xor var1 == true
	m := newGaussMatrix([][]int{{0, 1}}, []bool{true})
	if !m.echelonize() {
		t.Fatalf("echelonize() = false, want true")
	}

	res := m.assign(0, true)
	if res.conflict {
		t.Fatalf("assign(0, true) reported a conflict")
	}
	if len(res.propagated) != 1 {
		t.Fatalf("assign(0, true) propagated %d vars, want 1", len(res.propagated))
	}
	p := res.propagated[0]
	if p.variable != 1 || p.value != false {
		t.Errorf("propagated %+v, want var=1 value=false", p)
	}
	if !intsEqual(sortedInts(p.rowVars), []int{0, 1}) {
		t.Errorf("propagation reason vars = %v, want [0 1]", p.rowVars)
	}
}

func TestGaussMatrixAssignConflict(t *testing.T) {
	// var0 == true, then assigning var0 = false must conflict.
	m := newGaussMatrix([][]int{{0}}, []bool{true})
	if !m.echelonize() {
		t.Fatalf("echelonize() = false, want true")
	}

	res := m.assign(0, false)
	if !res.conflict {
		t.Fatalf("assign(0, false) reported no conflict, want conflict")
	}
	if !intsEqual(sortedInts(res.conflictVars), []int{0}) {
		t.Errorf("conflictVars = %v, want [0]: the row's bit is fully cleared by the time the\nrow goes zero, so conflictVars must come from the frozen row membership, not a rescan of (now-empty) bits", res.conflictVars)
	}
}

// TestGaussMatrixAssignConflictRecordsFullRowVariables is the multi-step
// case where rowVariables-from-live-bits silently returns an empty slice:
// each of two sequential assigns clears one more bit, so by the time the
// row goes to zero only frozen row.vars still names every antecedent.
func TestGaussMatrixAssignConflictRecordsFullRowVariables(t *testing.T) {
	// var0 xor var1 xor var2 == true
	m := newGaussMatrix([][]int{{0, 1, 2}}, []bool{true})
	if !m.echelonize() {
		t.Fatalf("echelonize() = false, want true")
	}

	res := m.assign(0, true)
	if res.conflict {
		t.Fatalf("assign(0, true) reported a premature conflict")
	}
	if len(res.propagated) != 0 {
		t.Fatalf("assign(0, true) propagated %v, want none (two columns still live)", res.propagated)
	}

	res = m.assign(1, true)
	if res.conflict {
		t.Fatalf("assign(1, true) reported a premature conflict")
	}
	if len(res.propagated) != 1 {
		t.Fatalf("assign(1, true) propagated %d vars, want 1 (var2 forced)", len(res.propagated))
	}
	p := res.propagated[0]
	if p.variable != 2 {
		t.Fatalf("propagated var = %d, want 2", p.variable)
	}
	if !intsEqual(sortedInts(p.rowVars), []int{0, 1, 2}) {
		t.Errorf("propagation reason vars = %v, want [0 1 2] (the whole row, its antecedents)", p.rowVars)
	}

	// Assigning var2 to the wrong value makes the row go to zero with a
	// nonzero RHS: a genuine matrix conflict.
	res = m.assign(2, !p.value)
	if !res.conflict {
		t.Fatalf("assign(2, %v) reported no conflict, want conflict", !p.value)
	}
	if !intsEqual(sortedInts(res.conflictVars), []int{0, 1, 2}) {
		t.Errorf("conflictVars = %v, want [0 1 2]: every row variable is an antecedent of the conflict, not just the last one assigned", res.conflictVars)
	}
}

func TestGaussMatrixEchelonizeContradiction(t *testing.T) {
	// var0 xor var1 == true, var0 xor var1 == false: contradictory rows.
	m := newGaussMatrix([][]int{{0, 1}, {0, 1}}, []bool{true, false})
	if m.echelonize() {
		t.Fatalf("echelonize() = true, want false (contradiction)")
	}
}

func TestGaussMatrixSnapshotRestore(t *testing.T) {
	m := newGaussMatrix([][]int{{0, 1}}, []bool{true})
	m.echelonize()

	m.snapshot(1)
	m.assign(0, true)
	if m.rows[0].get(0) {
		t.Fatalf("column 0 should be cleared after assign(0, true)")
	}

	m.restore(0)
	if !m.rows[0].get(0) {
		t.Errorf("restore(0) did not undo the assignment of column 0")
	}
}

func TestPartitionByConnectivity(t *testing.T) {
	clauses := []xorClause{
		{vars: []int{0, 1}, rhs: true},
		{vars: []int{1, 2}, rhs: false},
		{vars: []int{5, 6}, rhs: true},
	}
	groups := partitionByConnectivity(clauses)
	if len(groups) != 2 {
		t.Fatalf("partitionByConnectivity() = %d groups, want 2", len(groups))
	}

	var sizes []int
	for _, g := range groups {
		sizes = append(sizes, len(g))
	}
	foundTwo, foundOne := false, false
	for _, sz := range sizes {
		if sz == 2 {
			foundTwo = true
		}
		if sz == 1 {
			foundOne = true
		}
	}
	if !foundTwo || !foundOne {
		t.Errorf("group sizes = %v, want one group of 2 and one of 1", sizes)
	}
}

func TestXorEngineBuildAndPropagate(t *testing.T) {
	e := newXOREngine()
	e.grow()
	e.grow()
	e.AddXorClause([]int{0, 1}, true)

	if !e.Build() {
		t.Fatalf("Build() = false, want true")
	}

	res := e.OnAssign(0, true)
	if res.conflict {
		t.Fatalf("OnAssign(0, true) reported a conflict")
	}
	if len(res.propagated) != 1 || res.propagated[0].variable != 1 || res.propagated[0].value != false {
		t.Errorf("OnAssign(0, true) propagated %+v, want var=1 value=false", res.propagated)
	}

	vars := e.ReasonVars(res.propagated[0].reasonRowID)
	if !intsEqual(sortedInts(vars), []int{0, 1}) {
		t.Errorf("ReasonVars(%d) = %v, want [0 1]", res.propagated[0].reasonRowID, vars)
	}
}

func TestXorEngineBuildContradiction(t *testing.T) {
	e := newXOREngine()
	e.grow()
	e.grow()
	e.AddXorClause([]int{0, 1}, true)
	e.AddXorClause([]int{0, 1}, false)

	if e.Build() {
		t.Fatalf("Build() = true, want false (contradictory rows)")
	}
}
