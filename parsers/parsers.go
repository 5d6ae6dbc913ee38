// Package parsers adapts internal/dimacs to embedders that only want to
// load an instance into a solver without depending on internal packages
// directly.
package parsers

import (
	"github.com/parity-sat/satx/internal/dimacs"
	"github.com/parity-sat/satx/internal/sat"
)

// SATSolver is the surface a caller's solver must expose to LoadDIMACS.
// *sat.Solver satisfies this, plus the optional XOR-clause and
// library-debugging extensions internal/dimacs recognizes when present.
type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// LoadDIMACS parses the DIMACS CNF file (extended with XOR-clause lines and
// library-debugging directives, spec §6) and loads it into solver.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	return dimacs.LoadDIMACS(filename, gzipped, solver)
}

// ReadModels returns the list of models (if any) contained in the given
// models file, one model per line (spec's test fixture format).
func ReadModels(filename string) ([][]bool, error) {
	return dimacs.ParseModels(filename)
}
