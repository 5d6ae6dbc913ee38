package sat

import (
	"fmt"
	"io"
	"sort"
)

// DumpLearnts writes every learnt long clause to w in DIMACS clause format,
// sorted by LBD (glue) ascending then size ascending (spec §6 "Persisted
// files").
func (s *Solver) DumpLearnts(w io.Writer) error {
	type entry struct {
		lits []Literal
		lbd  uint32
	}
	entries := make([]entry, 0, len(s.longRed))
	for _, h := range s.longRed {
		c := s.pool.Clause(h)
		entries = append(entries, entry{lits: c.literals, lbd: c.lbd})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].lbd != entries[j].lbd {
			return entries[i].lbd < entries[j].lbd
		}
		return len(entries[i].lits) < len(entries[j].lits)
	})
	for _, e := range entries {
		if err := writeClauseLine(w, e.lits); err != nil {
			return err
		}
	}
	return nil
}

// DumpSimplified writes every live irredundant clause (binary, ternary, and
// pooled) to w in DIMACS clause format, using the original variable
// numbering: the solver never renumbers variables on elimination or
// replacement, so no inter/outer map is needed to preserve it.
func (s *Solver) DumpSimplified(w io.Writer) error {
	for _, rc := range s.collectRawClauses() {
		if rc.learnt {
			continue
		}
		if err := writeClauseLine(w, rc.lits); err != nil {
			return err
		}
	}
	return nil
}

func writeClauseLine(w io.Writer, lits []Literal) error {
	for _, l := range lits {
		n := l.VarID() + 1
		if !l.IsPositive() {
			n = -n
		}
		if _, err := fmt.Fprintf(w, "%d ", n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "0")
	return err
}
