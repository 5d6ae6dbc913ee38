package dimacs

import (
	_ "embed"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/parity-sat/satx/internal/sat"
)

type instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func (i *instance) AddVariable() int {
	i.Variables++
	return i.Variables - 1
}

func (i *instance) AddClause(tmpClause []sat.Literal) error {
	clause := make([]sat.Literal, len(tmpClause))
	copy(clause, tmpClause)
	i.Clauses = append(i.Clauses, clause)
	return nil
}

var want = instance{
	Variables: 3,
	Clauses: [][]sat.Literal{
		{0, 2, 4},
		{0, 2, 5},
		{0, 3, 4},
		{1, 2, 4},
		{1, 3, 4},
		{1, 2, 5},
		{0, 3, 5},
		{1, 3, 5},
	},
}

func TestParseDIMACS_cnf(t *testing.T) {
	got := instance{}
	gotErr := LoadDIMACS("testdata/test_instance.cnf", false, &got)

	if gotErr != nil {
		t.Errorf("ParseDIMACS(): want no error, got %s", gotErr)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDIMACS_gzip(t *testing.T) {
	got := instance{}
	gotErr := LoadDIMACS("testdata/test_instance.cnf.gz", true, &got)

	if gotErr != nil {
		t.Errorf("ParseDIMACS(): want no error, got %s", gotErr)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDIMACS_noFile(t *testing.T) {
	got := instance{}
	gotErr := LoadDIMACS("", false, &got)

	if gotErr == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
}

func TestParseDIMACS_gzip_notGzipFile(t *testing.T) {
	got := instance{}
	gotErr := LoadDIMACS("testdata/test_instance.cnf", true, &got)

	if gotErr == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
}

func TestParseDIMACS_xorRequiresXorWriter(t *testing.T) {
	got := instance{}
	gotErr := LoadDIMACS("testdata/xor_instance.cnf", false, &got)

	if gotErr == nil {
		t.Errorf("LoadDIMACS() with an XOR line and a non-XOR solver: want error, got none")
	}
}

func TestParseDIMACS_xorLoadsIntoSolver(t *testing.T) {
	s := sat.NewDefaultSolver()
	if err := LoadDIMACS("testdata/xor_instance.cnf", false, s); err != nil {
		t.Fatalf("LoadDIMACS(): %s", err)
	}

	status, err := s.Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if status != sat.StatusSAT {
		t.Fatalf("Solve() = %v, want StatusSAT", status)
	}

	model := s.GetModel()
	if !model[0] {
		t.Errorf("model[0] (var 1, forced true) = false")
	}
	if model[1] != model[2] {
		t.Errorf("model = %v, want var 2 and var 3 equal (a xor b xor c == true, a == true)", model)
	}
}

func TestParseDIMACS_newVarDirective(t *testing.T) {
	s := sat.NewDefaultSolver()
	if err := LoadDIMACS("testdata/new_var_instance.cnf", false, s); err != nil {
		t.Fatalf("LoadDIMACS(): %s", err)
	}
	if s.NumVariables() != 2 {
		t.Fatalf("NumVariables() = %d, want 2 (one declared, one from Solver::new_var())", s.NumVariables())
	}

	status, err := s.Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if status != sat.StatusSAT {
		t.Fatalf("Solve() = %v, want StatusSAT", status)
	}
}
