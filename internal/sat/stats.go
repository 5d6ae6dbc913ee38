package sat

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Stats is a snapshot of search progress, reported to a StatsSink by Solve
// after each search episode and each inprocessing round. Formatting itself is an
// external collaborator (spec §1); the core only fixes this struct's shape.
type Stats struct {
	Elapsed     time.Duration
	Conflicts   int64
	Decisions   int64
	Restarts    int64
	Propagations int64
	Learnts     int
	Irredundant int
	Phase       string // "search" or "simplify"
}

// StatsSink receives periodic Stats snapshots. Implementations must not
// retain the Stats value beyond the call (it may be reused).
type StatsSink interface {
	Report(Stats)
}

type noopStatsSink struct{}

func (noopStatsSink) Report(Stats) {}

// TextStatsSink reproduces the teacher's tabular "c ..." banner using
// text/tabwriter instead of raw Printf column padding, over an arbitrary
// io.Writer (typically os.Stdout from the CLI).
type TextStatsSink struct {
	w           *tabwriter.Writer
	wroteHeader bool
}

// NewTextStatsSink returns a TextStatsSink writing to w.
func NewTextStatsSink(w io.Writer) *TextStatsSink {
	return &TextStatsSink{w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (t *TextStatsSink) Report(st Stats) {
	if !t.wroteHeader {
		fmt.Fprintln(t.w, "c\ttime\tconflicts\tdecisions\trestarts\tlearnts\tphase")
		t.wroteHeader = true
	}
	fmt.Fprintf(t.w, "c\t%.3fs\t%d\t%d\t%d\t%d\t%s\n",
		st.Elapsed.Seconds(), st.Conflicts, st.Decisions, st.Restarts, st.Learnts, st.Phase)
	t.w.Flush()
}

func (s *Solver) reportStats(phase string) {
	s.stats.Report(Stats{
		Elapsed:      time.Since(s.startTime),
		Conflicts:    s.totalConflicts,
		Decisions:    s.totalDecisions,
		Restarts:     s.totalRestarts,
		Propagations: s.totalPropagations,
		Learnts:      len(s.longRed),
		Irredundant:  len(s.longIrr),
		Phase:        phase,
	})
}
