package sat

import (
	"math/rand"
	"time"
)

// Status is the three-valued outcome of a solve, distinct from LBool (which
// is only ever a variable's value). UNKNOWN is only returned on interrupt or
// budget exhaustion, per spec §6.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusSAT
	StatusUNSAT
)

func (s Status) String() string {
	switch s {
	case StatusSAT:
		return "SAT"
	case StatusUNSAT:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Solver is the CDCL+XOR engine (C1-C13). All of its state is touched from
// a single goroutine; see §5 for the cooperative-cancellation model.
type Solver struct {
	opts Options

	// C1/C2: clause storage and watch lists.
	pool     *ClausePool
	watches  *watchLists
	longIrr  []ClauseHandle // irredundant long clauses (problem clauses)
	longRed  []ClauseHandle // redundant (learnt) long clauses

	// C3: trail and variable state.
	tr            trail
	assigns       []LBool // indexed by literal
	level         []int32 // indexed by var
	reasons       []reason
	removed       []RemovedState
	equivalences  map[int]equivalence // var -> representative, for RemovedReplaced
	nVars         int

	// C6: decision ordering and activity.
	order       *VarOrder
	varInc      float64
	varDecay    float64
	agility     ema
	rnd         *rand.Rand

	// C5/C6: clause activity.
	clauseInc   float32
	clauseDecay float32

	// Restart / clean control (C6).
	restart           restartPolicy
	conflictsInEpisode int64
	totalConflicts     int64
	totalRestarts      int64
	totalDecisions     int64
	totalPropagations  int64
	nextCleanAt        int64
	cleanRounds        int64
	trailAvg           ema

	// Scheduler (C12).
	bogoProps       int64
	bogoPropsBudget int64
	timeoutMul      float64
	simplifyRounds  int64

	// Status.
	unsat       bool
	interrupted bool
	startTime   time.Time

	// C13: reconstruction stack.
	reconstruction []reconstructionStep

	// C7: equivalence / stamping support.
	stamps *stampState

	// C11: implication cache.
	implCache *implicationCache

	// C10: XOR engine.
	xor *xorEngine

	// Models (last solution, extended to input variables).
	model []bool

	// Observers (external collaborators, spec §6).
	drup  DrupSink
	stats StatsSink

	// Scratch buffers, reused across calls to avoid reallocating on the
	// hot path (mirrors the teacher's tmpWatchers/tmpLearnts/tmpReason).
	seen        *ResetSet
	tmpLearnt   []Literal
	tmpAnalyze  []Literal
	tmpWatchers []watcher
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NewSolver returns a solver configured with the given options.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:         opts,
		pool:         NewClausePool(),
		watches:      newWatchLists(),
		equivalences: map[int]equivalence{},
		varInc:       1,
		varDecay:     opts.VariableDecay,
		clauseInc:    1,
		clauseDecay:  float32(opts.ClauseDecay),
		agility:      newEMA(opts.AgilityDecay),
		trailAvg:     newEMA(1 - 1.0/100.0),
		rnd:          rand.New(rand.NewSource(opts.RandomSeed)),
		nextCleanAt:  opts.StartClean,
		bogoPropsBudget: opts.InitialBogoPropsBudget,
		timeoutMul:   opts.GlobalTimeoutMultiplier,
		seen:         &ResetSet{},
		drup:         noopDrupSink{},
		stats:        noopStatsSink{},
	}
	s.order = NewVarOrder(opts.VariableDecay, opts.PhaseSaving)
	s.restart = newRestartPolicy(&opts, &s.agility)
	s.stamps = newStampState()
	s.implCache = newImplicationCache()
	s.xor = newXOREngine()
	return s
}

// SetDrup installs an observer receiving clause-addition and clause-deletion
// events, per spec §6. Pass nil to disable (restores the no-op sink).
func (s *Solver) SetDrup(sink DrupSink) {
	if sink == nil {
		sink = noopDrupSink{}
	}
	s.drup = sink
}

// SetStatsSink installs the observer receiving periodic search statistics.
func (s *Solver) SetStatsSink(sink StatsSink) {
	if sink == nil {
		sink = noopStatsSink{}
	}
	s.stats = sink
}

func (s *Solver) decisionLevel() int {
	return s.tr.decisionLevel()
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return s.nVars
}

// NumAssigns returns the number of literals currently on the trail.
func (s *Solver) NumAssigns() int {
	return len(s.tr.lits)
}

// NumIrredundant returns the number of irredundant (problem) long clauses.
func (s *Solver) NumIrredundant() int {
	return len(s.longIrr)
}

// NumLearnts returns the number of redundant (learnt) long clauses.
func (s *Solver) NumLearnts() int {
	return len(s.longRed)
}

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v int) LBool {
	return s.assigns[PositiveLiteral(v)]
}

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

func (s *Solver) isAssignedOrRemoved(v int) bool {
	return s.assigns[PositiveLiteral(v)] != Undef || s.removed[v].IsRemoved()
}

// AddVariable declares one more variable and returns its 0-based ID.
func (s *Solver) AddVariable() int {
	v := s.nVars
	s.nVars++

	s.assigns = append(s.assigns, Undef, Undef)
	s.level = append(s.level, -1)
	s.reasons = append(s.reasons, reason{})
	s.removed = append(s.removed, RemovedNone)
	s.watches.grow()
	s.seen.Expand()
	s.order.AddVar(0, false)
	s.stamps.grow()
	s.implCache.grow()
	s.xor.grow()

	return v
}

// AddVariables declares n more variables.
func (s *Solver) AddVariables(n int) {
	for i := 0; i < n; i++ {
		s.AddVariable()
	}
}

func (s *Solver) shouldStop() bool {
	if s.interrupted {
		return true
	}
	if s.opts.MaxConflicts >= 0 && s.totalConflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && !s.startTime.IsZero() && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

// InterruptAsap sets the cooperative cancellation flag read by shouldStop:
// the search loop checks it after each propagation fixpoint, probing before
// each variable, and the scheduler between inprocessing steps (spec §5).
func (s *Solver) InterruptAsap() {
	s.interrupted = true
}
