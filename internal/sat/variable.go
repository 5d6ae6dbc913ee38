package sat

// RemovedState tags why a variable is no longer part of the live search
// space. Transitions form a strict partial order: none -> queued-for-replace
// -> replaced, or none -> eliminated, or none -> decomposed. Nothing checks
// these transitions at run time.
type RemovedState uint8

const (
	// RemovedNone is the state of every ordinary, still-searchable variable.
	RemovedNone RemovedState = iota
	// RemovedEliminated means the variable was removed by bounded variable
	// elimination (C8); its value is restored by replaying BVE witnesses.
	RemovedEliminated
	// RemovedReplaced means the variable was collapsed onto an equivalence
	// class representative by the equivalence engine (C7).
	RemovedReplaced
	// RemovedDecomposed means the variable belonged to a connected XOR
	// component that was fully resolved and removed from the active matrix.
	RemovedDecomposed
	// RemovedQueuedForReplace marks a variable that has been assigned a
	// representative but whose occurrences have not yet all been rewritten.
	RemovedQueuedForReplace
)

func (r RemovedState) String() string {
	switch r {
	case RemovedEliminated:
		return "eliminated"
	case RemovedReplaced:
		return "replaced"
	case RemovedDecomposed:
		return "decomposed"
	case RemovedQueuedForReplace:
		return "queued-for-replace"
	default:
		return "none"
	}
}

// IsRemoved reports whether the state is anything other than RemovedNone.
func (r RemovedState) IsRemoved() bool {
	return r != RemovedNone
}

// equivalence records the reconstruction data for a RemovedReplaced
// variable: var's value equals representative's value XOR sign.
type equivalence struct {
	representative Literal
	sign           bool
}
