package sat

// xorEngine is C10: it owns every XOR (parity) constraint declared via
// AddXorClause, partitions them into independent matrices over connected
// variable sets (grounded on CryptoMiniSat's MatrixFinder), and folds in
// variable assignments to drive the Gauss-Jordan propagation and conflict
// detection described in spec §4.10.
//
// reasonRows stores, for every unit propagation the engine has ever derived,
// the row's variables at the moment of propagation. A reasonXor trail entry
// carries the index into this slice in its row field (the Solver formats
// the actual reason literals from current assignments when needed by
// conflict analysis, since a matrix row mutates after the fact).
type xorEngine struct {
	pending    []xorClause // raw clauses, collected until the first Build
	matrices   []*gaussMatrix
	varMatrix  []int32 // var -> matrix index, or -1
	reasonRows [][]int // propagation id -> row variables (excluding the propagated one's own row is included; solver filters)
	built      bool
}

type xorClause struct {
	vars []int
	rhs  bool
}

func newXOREngine() *xorEngine {
	return &xorEngine{}
}

func (e *xorEngine) grow() {
	e.varMatrix = append(e.varMatrix, -1)
}

// AddXorClause records a parity constraint "vars[0] xor vars[1] xor ... ==
// rhs" (spec's XOR extension, "x ..." DIMACS lines). Variables are 0-based.
// Clauses added after Build has already run force a rebuild on next Build.
func (e *xorEngine) AddXorClause(vars []int, rhs bool) {
	cp := append([]int(nil), vars...)
	e.pending = append(e.pending, xorClause{vars: cp, rhs: rhs})
	e.built = false
}

func (e *xorEngine) HasClauses() bool {
	return len(e.pending) > 0
}

// Build partitions the pending XOR clauses into connected components
// (MatrixFinder), builds one gaussMatrix per component, and echelonizes
// each. It returns false if echelonization finds an unconditional
// contradiction (an empty row with RHS 1), i.e. the formula is UNSAT
// regardless of any other clause.
func (e *xorEngine) Build() (ok bool) {
	if e.built {
		return true
	}
	e.matrices = nil
	for i := range e.varMatrix {
		e.varMatrix[i] = -1
	}

	groups := partitionByConnectivity(e.pending)
	for _, g := range groups {
		rowVars := make([][]int, len(g))
		rowRHS := make([]bool, len(g))
		for i, idx := range g {
			rowVars[i] = e.pending[idx].vars
			rowRHS[i] = e.pending[idx].rhs
		}
		m := newGaussMatrix(rowVars, rowRHS)
		if !m.echelonize() {
			return false
		}
		mi := int32(len(e.matrices))
		e.matrices = append(e.matrices, m)
		for _, v := range m.varOfCol {
			e.varMatrix[v] = mi
		}
	}
	e.built = true
	return true
}

// partitionByConnectivity groups XOR-clause indices into connected
// components by shared variables, via union-find (MatrixFinder.cpp's
// approach of grouping rows that touch a common column into one matrix).
func partitionByConnectivity(clauses []xorClause) [][]int {
	parent := map[int]int{}
	var find func(int) int
	find = func(x int) int {
		p, ok := parent[x]
		if !ok {
			parent[x] = x
			return x
		}
		if p != x {
			parent[x] = find(p)
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	firstClauseOfVar := map[int]int{}
	for ci, c := range clauses {
		parent[ci] = ci
		for _, v := range c.vars {
			if first, ok := firstClauseOfVar[v]; ok {
				union(first, ci)
			} else {
				firstClauseOfVar[v] = ci
			}
		}
	}

	groups := map[int][]int{}
	for ci := range clauses {
		r := find(ci)
		groups[r] = append(groups[r], ci)
	}

	var out [][]int
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

type xorPropagation struct {
	variable    int
	value       bool
	reasonRowID int32
}

type xorAssignResult struct {
	conflict      bool
	conflictRowID int32
	propagated    []xorPropagation
}

// OnAssign folds the assignment of variable v to value b into v's matrix (if
// any), recording any newly-forced units or a reached contradiction.
func (e *xorEngine) OnAssign(v int, b bool) xorAssignResult {
	if v >= len(e.varMatrix) || e.varMatrix[v] < 0 {
		return xorAssignResult{}
	}
	m := e.matrices[e.varMatrix[v]]
	r := m.assign(v, b)

	var out xorAssignResult
	if r.conflict {
		out.conflict = true
		out.conflictRowID = int32(len(e.reasonRows))
		e.reasonRows = append(e.reasonRows, r.conflictVars)
		return out
	}
	for _, p := range r.propagated {
		id := int32(len(e.reasonRows))
		e.reasonRows = append(e.reasonRows, p.rowVars)
		out.propagated = append(out.propagated, xorPropagation{
			variable:    p.variable,
			value:       p.value,
			reasonRowID: id,
		})
	}
	return out
}

// ReasonVars returns the row variables recorded under reasonRowID.
func (e *xorEngine) ReasonVars(reasonRowID int32) []int {
	return e.reasonRows[reasonRowID]
}

// OnNewDecisionLevel snapshots every matrix, so a later backtrack can
// restore their row state without replaying every intervening assignment.
func (e *xorEngine) OnNewDecisionLevel(level int) {
	for _, m := range e.matrices {
		m.snapshot(level)
	}
}

// OnBacktrack restores every matrix to the state saved when decision level
// level+1 was opened, so only assignments of levels 0..level stay folded in.
func (e *xorEngine) OnBacktrack(level int) {
	for _, m := range e.matrices {
		m.restore(level)
	}
}
