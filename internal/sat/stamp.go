package sat

// stampState holds the DFS timestamps on the binary implication graph (C11).
// Transitive reduction (C9) is their only user; no pass removes clauses or
// literals by stamps. Two passes are kept, one per edge function given to
// build; its one caller, runTransitiveReduction, passes all binary edges to
// both (spec §4.9).
type stampState struct {
	// enter/leave are indexed by literal. irr is the pass over build's
	// edgesOfIrr, all is the pass over its edgesOfAll.
	enterIrr, leaveIrr []int32
	enterAll, leaveAll []int32
	valid              bool // false until the next build
}

func newStampState() *stampState {
	return &stampState{}
}

func (st *stampState) grow() {
	st.enterIrr = append(st.enterIrr, 0, 0)
	st.leaveIrr = append(st.leaveIrr, 0, 0)
	st.enterAll = append(st.enterAll, 0, 0)
	st.leaveAll = append(st.leaveAll, 0, 0)
	st.valid = false
}

// invalidate marks the stamps stale; they are rebuilt on next use by the
// caller (typically after the binary implication graph changes).
func (st *stampState) invalidate() {
	st.valid = false
}

// dominates reports whether [enter(a),leave(a)] contains [enter(b),leave(b)]
// in the given pass's timestamps, i.e. every path reaching b in the DFS
// forest passed through a. runTransitiveReduction uses it, through
// dominatesAll, to find redundant binary edges (spec §4.9).
func dominatesRange(enter, leave []int32, a, b Literal) bool {
	return enter[a] <= enter[b] && leave[b] <= leave[a]
}

func (st *stampState) dominatesIrr(a, b Literal) bool {
	return st.valid && dominatesRange(st.enterIrr, st.leaveIrr, a, b)
}

func (st *stampState) dominatesAll(a, b Literal) bool {
	return st.valid && dominatesRange(st.enterAll, st.leaveAll, a, b)
}

// build runs the two DFS stamp passes over the current binary implication
// graph. edgesOf(l) must yield every literal m such that the binary clause
// (¬l v m) is live (i.e. l implies m).
func (st *stampState) build(nLits int, edgesOfIrr, edgesOfAll func(Literal) []Literal) {
	st.enterIrr, st.leaveIrr = splitTimestamps(nLits, edgesOfIrr)
	st.enterAll, st.leaveAll = splitTimestamps(nLits, edgesOfAll)
	st.valid = true
}

// splitTimestamps runs one DFS stamping pass and returns (enter, leave)
// timestamps indexed by literal.
func splitTimestamps(nLits int, edgesOf func(Literal) []Literal) (enter, leave []int32) {
	enter = make([]int32, nLits)
	leave = make([]int32, nLits)
	visited := make([]bool, nLits)
	clock := int32(0)

	type frame struct {
		lit  Literal
		next int
		adj  []Literal
	}
	var stack []frame

	for start := 0; start < nLits; start++ {
		l := Literal(start)
		if visited[l] {
			continue
		}
		visited[l] = true
		clock++
		enter[l] = clock
		stack = append(stack, frame{lit: l, adj: edgesOf(l)})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.adj) {
				next := top.adj[top.next]
				top.next++
				if !visited[next] {
					visited[next] = true
					clock++
					enter[next] = clock
					stack = append(stack, frame{lit: next, adj: edgesOf(next)})
				}
				continue
			}
			clock++
			leave[top.lit] = clock
			stack = stack[:len(stack)-1]
		}
	}

	return enter, leave
}

// implicationCache holds, for each literal, the set of literals known to be
// implied by it through binary propagation (C11). Populated during probing
// (C9). No solver pass reads it: clause minimization (C5) walks the binary
// watch lists, and implies is only called from tests.
type implicationCache struct {
	implied [][]Literal // implied[l] = literals implied by l
	irrOnly [][]bool    // parallel: whether the implication path is irredundant-only
}

func newImplicationCache() *implicationCache {
	return &implicationCache{}
}

func (c *implicationCache) grow() {
	c.implied = append(c.implied, nil, nil)
	c.irrOnly = append(c.irrOnly, nil, nil)
}

// add records that l implies m (irredundant-only path iff irr).
func (c *implicationCache) add(l, m Literal, irr bool) {
	for i, x := range c.implied[l] {
		if x == m {
			if irr {
				c.irrOnly[l][i] = true
			}
			return
		}
	}
	c.implied[l] = append(c.implied[l], m)
	c.irrOnly[l] = append(c.irrOnly[l], irr)
}

// clear drops every implication recorded for variable v's two literals.
// No solver pass calls it: equivalence elimination replaces the whole
// cache, and bounded variable elimination leaves the rows in place.
func (c *implicationCache) clear(v int) {
	for _, l := range [2]Literal{PositiveLiteral(v), NegativeLiteral(v)} {
		c.implied[l] = nil
		c.irrOnly[l] = nil
	}
}

// implies reports whether l is known (from the cache) to imply m.
func (c *implicationCache) implies(l, m Literal) bool {
	for _, x := range c.implied[l] {
		if x == m {
			return true
		}
	}
	return false
}
