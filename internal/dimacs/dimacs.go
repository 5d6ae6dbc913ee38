package dimacs

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/parity-sat/satx/internal/sat"
)

// ErrDebugTimeout is returned by LoadDIMACS when a library-debugging
// "c Solver::solve()" directive invokes the solver and it returns
// StatusUnknown (interrupt or budget exhaustion), matching the original's
// exit(15) behavior without calling os.Exit from inside the parser.
var ErrDebugTimeout = errors.New("dimacs: Solver::solve() directive timed out")

// dimacsWritter is the minimal surface needed to load a plain CNF instance.
type dimacsWritter interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// xorWriter is implemented by solvers that accept native XOR constraints
// (spec §6's "x ..." line extension). LoadDIMACS only requires it of dw if
// the input actually contains an XOR line.
type xorWriter interface {
	AddXorClause(vars []int, rhs bool) error
}

// debugWriter is implemented by solvers that support the library-debugging
// directives `c Solver::solve()` / `c Solver::new_var()` (spec §6).
// LoadDIMACS only requires it of dw if the input actually contains one.
type debugWriter interface {
	Solve(assumptions []sat.Literal) (sat.Status, error)
	GetModel() []bool
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses a DIMACS CNF file, extended with XOR-clause lines ("x
// ..." terminated by 0, spec §6) and library-debugging comment directives
// ("c Solver::solve()", "c Solver::new_var()"). Extra clauses past the
// header's declared count are accepted; the header is advisory only.
func LoadDIMACS(filename string, gzipped bool, dw dimacsWritter) error {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	nVars := 0
	for {
		if !scanner.Scan() {
			return fmt.Errorf("header line not found")
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 || parts[0] != "p" || parts[1] != "cnf" {
			return fmt.Errorf("unsupported header line %q", line)
		}
		nVars, err = strconv.Atoi(parts[2])
		if err != nil {
			return fmt.Errorf("could not parse header: %w", err)
		}
		// parts[3] (declared clause count) is advisory only; extra clauses
		// past it are always accepted.
		break
	}

	for i := 0; i < nVars; i++ {
		dw.AddVariable()
	}

	debugLibPart := 1
	litBuffer := make([]sat.Literal, 0, 32)
	varBuffer := make([]int, 0, 32)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == 'c' {
			if err := handleComment(line, dw, &debugLibPart); err != nil {
				return err
			}
			continue
		}

		isXor := line[0] == 'x'
		if isXor {
			line = strings.TrimSpace(line[1:])
		}

		litBuffer = litBuffer[:0]
		varBuffer = varBuffer[:0]
		rhs := false

		for _, p := range strings.Fields(line) {
			l, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("could not parse literal %q: %w", p, err)
			}
			if l == 0 {
				break
			}
			if isXor {
				v := l
				if v < 0 {
					v = -v
					rhs = !rhs
				}
				varBuffer = append(varBuffer, v-1)
				continue
			}
			if l < 0 {
				litBuffer = append(litBuffer, sat.NegativeLiteral(-l-1))
			} else {
				litBuffer = append(litBuffer, sat.PositiveLiteral(l-1))
			}
		}

		if isXor {
			xw, ok := dw.(xorWriter)
			if !ok {
				return fmt.Errorf("dimacs: instance uses XOR clauses but the solver does not support them")
			}
			if err := xw.AddXorClause(varBuffer, rhs); err != nil {
				return err
			}
		} else {
			if err := dw.AddClause(litBuffer); err != nil {
				return err
			}
		}
	}

	return nil
}

// handleComment dispatches a "c ..." line to the library-debugging directive
// handlers if it matches one, otherwise it is ignored per spec §6.
func handleComment(line string, dw dimacsWritter, debugLibPart *int) error {
	body := strings.TrimSpace(strings.TrimPrefix(line, "c"))
	switch {
	case body == "Solver::new_var()":
		dw.AddVariable()
	case strings.HasPrefix(body, "Solver::solve"):
		return handleSolveDirective(body, dw, debugLibPart)
	}
	return nil
}

// handleSolveDirective parses the optional assumption literals between
// parentheses in "Solver::solve( 1 -2 )", invokes the solver, and writes the
// checkpoint file debugLibPart<N>.output in the format the original tool
// produces (spec §6).
func handleSolveDirective(body string, dw dimacsWritter, debugLibPart *int) error {
	dbg, ok := dw.(debugWriter)
	if !ok {
		return fmt.Errorf("dimacs: Solver::solve() directive requires a solver supporting Solve/GetModel")
	}

	var assumps []sat.Literal
	if open := strings.IndexByte(body, '('); open >= 0 {
		if closeIdx := strings.IndexByte(body[open:], ')'); closeIdx >= 0 {
			for _, p := range strings.Fields(body[open+1 : open+closeIdx]) {
				l, err := strconv.Atoi(p)
				if err != nil {
					return fmt.Errorf("could not parse assumption literal %q: %w", p, err)
				}
				if l < 0 {
					assumps = append(assumps, sat.NegativeLiteral(-l-1))
				} else {
					assumps = append(assumps, sat.PositiveLiteral(l-1))
				}
			}
		}
	}

	status, err := dbg.Solve(assumps)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("debugLibPart%d.output", *debugLibPart)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("dimacs: cannot open part file %q: %w", name, err)
	}
	defer f.Close()

	switch status {
	case sat.StatusSAT:
		fmt.Fprintln(f, "s SATISFIABLE")
		model := dbg.GetModel()
		fmt.Fprint(f, "v ")
		for i, b := range model {
			if b {
				fmt.Fprintf(f, "%d ", i+1)
			} else {
				fmt.Fprintf(f, "-%d ", i+1)
			}
		}
		fmt.Fprintln(f, "0")
	case sat.StatusUNSAT:
		fmt.Fprintln(f, "s UNSAT")
	default:
		*debugLibPart++
		return ErrDebugTimeout
	}

	*debugLibPart++
	return nil
}
