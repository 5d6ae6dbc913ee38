package sat

// RestartPolicyKind selects one of the mutually-exclusive restart policies
// of spec §4.4.
type RestartPolicyKind uint8

const (
	RestartGeometric RestartPolicyKind = iota
	RestartGlucose
	RestartAgility
	RestartGlucoseAgility
)

// restartPolicy decides, after every conflict, whether the search should
// restart. Conflict is called once per conflict with that conflict's
// learnt-clause glue; Restarted resets any per-episode state.
type restartPolicy interface {
	// conflict records one conflict (with its learnt clause's glue) and
	// reports whether a restart should now happen.
	conflict(glue uint32) bool
	// restarted notifies the policy that a restart just occurred.
	restarted()
}

// boundedQueue is a fixed-capacity window of recent glues with a running
// sum, used by the glucose restart policy's short window (grounded on
// CryptoMiniSat's Solver/BoundedQueue.h). The ring-buffer mechanics are the
// teacher's Queue[T]; boundedQueue adds the capacity-bound eviction and
// running sum Queue[T] itself doesn't provide.
type boundedQueue struct {
	q        *Queue[float64]
	capacity int
	sum      float64
}

func newBoundedQueue(capacity int) *boundedQueue {
	return &boundedQueue{q: NewQueue[float64](capacity), capacity: capacity}
}

func (q *boundedQueue) push(x float64) {
	if q.q.Size() == q.capacity {
		q.sum -= q.q.Pop()
	}
	q.q.Push(x)
	q.sum += x
}

func (q *boundedQueue) size() int {
	return q.q.Size()
}

func (q *boundedQueue) avg() float64 {
	n := q.size()
	if n == 0 {
		return 0
	}
	return q.sum / float64(n)
}

// geometricRestartPolicy restarts every time the conflict count since the
// last restart passes a threshold that itself grows geometrically.
type geometricRestartPolicy struct {
	threshold    float64
	multiplier   float64
	initial      float64
	sinceRestart int64
}

func newGeometricRestartPolicy(initialThreshold, multiplier float64) *geometricRestartPolicy {
	return &geometricRestartPolicy{threshold: initialThreshold, multiplier: multiplier, initial: initialThreshold}
}

func (p *geometricRestartPolicy) conflict(uint32) bool {
	p.sinceRestart++
	return float64(p.sinceRestart) >= p.threshold
}

func (p *geometricRestartPolicy) restarted() {
	p.sinceRestart = 0
	p.threshold *= p.multiplier
}

// glucoseRestartPolicy (Glucose-style) restarts when k times the short-term
// average glue exceeds the long-term average, once enough conflicts have
// accumulated to trust the short window.
type glucoseRestartPolicy struct {
	short     *boundedQueue
	long      ema
	k         float64
	minConfl  int64
	conflicts int64
}

func newGlucoseRestartPolicy(windowSize int, k float64, minConflicts int64) *glucoseRestartPolicy {
	return &glucoseRestartPolicy{
		short:    newBoundedQueue(windowSize),
		long:     newEMA(1.0 - 1.0/4096.0),
		k:        k,
		minConfl: minConflicts,
	}
}

func (p *glucoseRestartPolicy) conflict(glue uint32) bool {
	p.conflicts++
	p.short.push(float64(glue))
	p.long.add(float64(glue))
	if p.conflicts < p.minConfl || p.short.size() < p.short.capacity {
		return false
	}
	return p.short.avg()*p.k > p.long.val()
}

func (p *glucoseRestartPolicy) restarted() {
	// The short window is intentionally NOT cleared: Glucose restarts are
	// triggered by local glue degradation, which the next window continues
	// to track.
}

// agilityRestartPolicy restarts when the agility EMA (rate of polarity
// flips on assignment) stays below a limit across consecutive conflicts.
type agilityRestartPolicy struct {
	agility      *ema
	limit        float64
	belowStreak  int
	streakNeeded int
}

func newAgilityRestartPolicy(agility *ema, limit float64, streakNeeded int) *agilityRestartPolicy {
	return &agilityRestartPolicy{agility: agility, limit: limit, streakNeeded: streakNeeded}
}

func (p *agilityRestartPolicy) conflict(uint32) bool {
	if p.agility.val() < p.limit {
		p.belowStreak++
	} else {
		p.belowStreak = 0
	}
	return p.belowStreak >= p.streakNeeded
}

func (p *agilityRestartPolicy) restarted() {
	p.belowStreak = 0
}

// glucoseAgilityRestartPolicy restarts only when both the glucose and
// agility conditions agree (the conjunction named in spec §4.4).
type glucoseAgilityRestartPolicy struct {
	glucose *glucoseRestartPolicy
	agility *agilityRestartPolicy
}

func newGlucoseAgilityRestartPolicy(g *glucoseRestartPolicy, a *agilityRestartPolicy) *glucoseAgilityRestartPolicy {
	return &glucoseAgilityRestartPolicy{glucose: g, agility: a}
}

func (p *glucoseAgilityRestartPolicy) conflict(glue uint32) bool {
	g := p.glucose.conflict(glue)
	a := p.agility.conflict(glue)
	return g && a
}

func (p *glucoseAgilityRestartPolicy) restarted() {
	p.glucose.restarted()
	p.agility.restarted()
}

// newRestartPolicy builds the configured policy.
func newRestartPolicy(o *Options, agility *ema) restartPolicy {
	switch o.RestartPolicy {
	case RestartGlucose:
		return newGlucoseRestartPolicy(o.GlucoseWindowSize, o.GlucoseK, o.GlucoseMinConflicts)
	case RestartAgility:
		return newAgilityRestartPolicy(agility, o.AgilityLimit, o.AgilityStreak)
	case RestartGlucoseAgility:
		return newGlucoseAgilityRestartPolicy(
			newGlucoseRestartPolicy(o.GlucoseWindowSize, o.GlucoseK, o.GlucoseMinConflicts),
			newAgilityRestartPolicy(agility, o.AgilityLimit, o.AgilityStreak),
		)
	default:
		return newGeometricRestartPolicy(o.GeometricInitialThreshold, o.GeometricMultiplier)
	}
}
