package sat

import "time"

// CleanMetric selects the ranking used by clause-DB cleaning (spec §4.4)
// to decide which learnt clauses to keep.
type CleanMetric uint8

const (
	CleanByGlue CleanMetric = iota
	CleanBySize
	CleanByActivity
	CleanByPropConfl
	CleanByPropPerDepth
)

// BVEStrategy selects how bounded variable elimination (spec §4.7) decides
// whether eliminating a variable is profitable.
type BVEStrategy uint8

const (
	// BVEHeuristic accepts an elimination when the exact number of
	// non-tautological resolvents does not exceed |P|+|N|, and builds the
	// resolvents only after accepting.
	BVEHeuristic BVEStrategy = iota
	// BVECalculate applies the same acceptance test but keeps every
	// resolvent while counting; both strategies accept the same eliminations.
	BVECalculate
)

// Options configures every tunable named by the spec. DefaultOptions
// supplies CryptoMiniSat-like defaults.
type Options struct {
	// Activity / restart tuning (C5, C6).
	ClauseDecay   float64
	VariableDecay float64
	RestartPolicy RestartPolicyKind

	GeometricInitialThreshold float64
	GeometricMultiplier       float64

	GlucoseWindowSize   int
	GlucoseK            float64
	GlucoseMinConflicts int64

	AgilityDecay  float64
	AgilityLimit  float64
	AgilityStreak int

	BlockingRestart      bool
	BlockingRestartRatio float64

	// Decision policy (C6).
	PhaseSaving    bool
	RandomVarFreq  float64
	RandomSeed     int64
	InitialPolarityFromOccurrence bool

	// Clause-DB cleaning (C6).
	StartClean      int64
	IncreaseClean   float64
	CleanMetric     CleanMetric
	CleanKeepRatio  float64

	// Conflict analysis (C5).
	MinimizeRecursive bool
	MinimizeBinary    bool

	// Lazy hyper-binary resolution (C4).
	HyperBinaryResolution bool

	// Inprocessing scheduler (C12).
	EnableInprocessing      bool
	NumCleanBetweenSimplify int64
	GlobalTimeoutMultiplier float64
	InitialBogoPropsBudget  int64

	// Equivalence engine (C7).
	SCCFindPercent float64

	// Occurrence simplifier (C8).
	EnableSubsumption bool
	EnableVarElim     bool
	EnableBVE         bool // alias kept distinct from EnableVarElim for clarity in callers
	BVEStrategy       BVEStrategy
	EnableBCE         bool
	EnableBVA         bool
	OccurrenceRedundantBudget int

	// Probing / vivification (C9).
	EnableProbing           bool
	EnableVivification      bool
	EnableTransitiveReduction bool

	// XOR engine (C10).
	EnableXOR        bool
	XORMaxExtractLen int

	// Resource model (§5).
	MaxConflicts int64
	Timeout      time.Duration
}

// DefaultOptions mirrors the teacher's DefaultOptions, extended with
// CryptoMiniSat-like defaults for every tunable spec.md names.
var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	RestartPolicy: RestartGlucoseAgility,

	GeometricInitialThreshold: 100,
	GeometricMultiplier:       1.1,

	GlucoseWindowSize:   50,
	GlucoseK:            0.8,
	GlucoseMinConflicts: 50,

	AgilityDecay:  0.9999,
	AgilityLimit:  0.25,
	AgilityStreak: 1,

	BlockingRestart:      true,
	BlockingRestartRatio: 1.4,

	PhaseSaving:   true,
	RandomVarFreq: 0.02,
	RandomSeed:    1,

	StartClean:     2000,
	IncreaseClean:  1.1,
	CleanMetric:    CleanByGlue,
	CleanKeepRatio: 0.5,

	MinimizeRecursive: true,
	MinimizeBinary:    true,

	HyperBinaryResolution: true,

	EnableInprocessing:      true,
	NumCleanBetweenSimplify: 2,
	GlobalTimeoutMultiplier: 1.4,
	InitialBogoPropsBudget:  1_000_000,

	SCCFindPercent: 0.01,

	EnableSubsumption:         true,
	EnableVarElim:             true,
	BVEStrategy:               BVEHeuristic,
	EnableBCE:                 false,
	EnableBVA:                 false,
	OccurrenceRedundantBudget: 4_000_000,

	EnableProbing:             true,
	EnableVivification:        true,
	EnableTransitiveReduction: true,

	EnableXOR:        true,
	XORMaxExtractLen: 10,

	MaxConflicts: -1,
	Timeout:      -1,
}
