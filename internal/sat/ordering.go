package sat

import (
	"github.com/rhartert/yagh"
)

// VarOrder maintains the max-activity heap used for decision selection
// (spec C6: "a max-heap on activities; the top decision-eligible,
// unassigned variable wins"). The solver holds a single instance, used for
// decisions only: bounded variable elimination (C8) and probing (C9) visit
// variables in index order.
type VarOrder struct {
	heap *yagh.IntMap[float64] // min-heap on -score, so Pop returns max score

	scores     []float64
	scoreInc   float64
	scoreDecay float64

	phases      []LBool
	phaseSaving bool
}

// NewVarOrder returns an empty VarOrder. decay is the per-conflict score
// decay factor (e.g. Options.VariableDecay); phaseSaving enables restoring
// a variable's last value as its preferred polarity.
func NewVarOrder(decay float64, phaseSaving bool) *VarOrder {
	return &VarOrder{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		scoreDecay:  decay,
		phaseSaving: phaseSaving,
	}
}

// AddVar registers one more variable (assumed to equal len(vo.scores), i.e.
// variables are always added in ID order) with the given initial score and
// preferred phase, and makes it immediately decision-eligible.
func (vo *VarOrder) AddVar(initScore float64, initPhase bool) {
	v := len(vo.phases)
	vo.scores = append(vo.scores, initScore)
	vo.phases = append(vo.phases, Lift(initPhase))
	vo.heap.GrowBy(1)
	vo.heap.Put(v, -initScore)
}

// Reinsert makes v a decision candidate again (e.g. on backtrack
// unassigning it). val, if not Undef, updates the saved phase.
func (vo *VarOrder) Reinsert(v int, val LBool) {
	if vo.phaseSaving && val != Undef {
		vo.phases[v] = val
	}
	if !vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.scores[v])
	}
}

// DecayScores scales the bump increment rather than every score, an O(1)
// substitute for scaling the whole table on every conflict (spec design
// note "Activity as global mutable state").
func (vo *VarOrder) DecayScores() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

// BumpScore increases v's activity score.
func (vo *VarOrder) BumpScore(v int) {
	newScore := vo.scores[v] + vo.scoreInc
	vo.scores[v] = newScore
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -newScore)
	}
	if newScore > 1e100 {
		vo.rescale()
	}
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, s := range vo.scores {
		news := s * 1e-100
		vo.scores[v] = news
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -news)
		}
	}
}

// score exposes v's current activity. No solver code calls it.
func (vo *VarOrder) score(v int) float64 {
	return vo.scores[v]
}

// NextLiteral pops the decision-eligible, unassigned variable with the
// highest activity and returns the literal matching its preferred phase.
// isAssigned is supplied by the solver so VarOrder stays independent of the
// assignment representation.
func (vo *VarOrder) NextLiteral(isAssigned func(v int) bool) (Literal, bool) {
	for {
		top, ok := vo.heap.Pop()
		if !ok {
			return UndefinedLiteral, false
		}
		if isAssigned(top.Elem) {
			continue // stale entry: variable was assigned without removal
		}
		if vo.phases[top.Elem] == False {
			return NegativeLiteral(top.Elem), true
		}
		return PositiveLiteral(top.Elem), true
	}
}

// Top returns the candidate NextLiteral would return, leaving it on the
// heap so the next NextLiteral call still sees it. No solver code calls
// it: the random_var_freq decision rule scans the free variables directly
// (randomFreeLiteral).
func (vo *VarOrder) Top(isAssigned func(v int) bool) (Literal, bool) {
	for {
		top, ok := vo.heap.Pop()
		if !ok {
			return UndefinedLiteral, false
		}
		if isAssigned(top.Elem) {
			continue
		}
		vo.heap.Put(top.Elem, -vo.scores[top.Elem])
		if vo.phases[top.Elem] == False {
			return NegativeLiteral(top.Elem), true
		}
		return PositiveLiteral(top.Elem), true
	}
}
