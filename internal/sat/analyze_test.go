package sat

import "testing"

// TestLitRedundantRollsBackProvisionalMarksOnFailure exercises two calls
// to litRedundant that both walk through the same intermediate variable x
// down to a decision variable d. The first call must fail (x's chain
// bottoms out at a decision) and must not leave x (or any other
// intermediate variable) marked in s.seen afterwards: a later, unrelated
// litRedundant call walking through the same x must re-examine x's chain
// rather than short-circuit on a stale mark and wrongly report redundant.
func TestLitRedundantRollsBackProvisionalMarksOnFailure(t *testing.T) {
	s := NewDefaultSolver()
	var vars [5]int
	for i := range vars {
		vars[i] = s.AddVariable()
	}
	d, y, x, lTarget, mTarget := vars[0], vars[1], vars[2], vars[3], vars[4]

	for _, v := range vars {
		s.level[v] = 1
	}

	dLit := PositiveLiteral(d)
	yLit := PositiveLiteral(y)
	xLit := PositiveLiteral(x)
	lLit := PositiveLiteral(lTarget)
	mLit := PositiveLiteral(mTarget)

	s.reasons[d] = decisionReason
	s.reasons[y] = reason{kind: reasonBinary, a: dLit, b: yLit}
	s.reasons[x] = reason{kind: reasonBinary, a: yLit, b: xLit}
	s.reasons[lTarget] = reason{kind: reasonBinary, a: xLit, b: lLit}
	s.reasons[mTarget] = reason{kind: reasonBinary, a: xLit, b: mLit}

	s.seen.Clear()

	if s.litRedundant(lLit) {
		t.Fatalf("litRedundant(l) = true, want false: l's chain bottoms out at decision var d")
	}
	if s.seen.Contains(x) {
		t.Errorf("x left marked seen after a failed litRedundant walk, want it rolled back")
	}
	if s.seen.Contains(y) {
		t.Errorf("y left marked seen after a failed litRedundant walk, want it rolled back")
	}

	if s.litRedundant(mLit) {
		t.Errorf("litRedundant(m) = true, want false: m's chain also bottoms out at decision var d " +
			"via the same x; a stale seen-mark on x from the first call would wrongly short-circuit this")
	}
}
