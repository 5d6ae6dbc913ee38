package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/parity-sat/satx/internal/dimacs"
	"github.com/parity-sat/satx/internal/sat"
)

var (
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile in cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile in memprof")
	flagGzip       = flag.Bool("gzip", false, "treat the instance file as gzip-compressed")
	flagDrup       = flag.String("drup", "", "write a DRUP proof trace to the given file")
	flagLearnts    = flag.String("dump-learnts", "", "dump learnt clauses (DIMACS format) to the given file")
	flagSimplified = flag.String("dump-simplified", "", "dump the post-simplification CNF to the given file")
)

// Exit codes per spec §6.
const (
	exitSAT     = 10
	exitUNSAT   = 20
	exitUnknown = 15
)

type config struct {
	instanceFile   string
	gzipped        bool
	memProfile     bool
	cpuProfile     bool
	drupFile       string
	learntsFile    string
	simplifiedFile string
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile:   flag.Arg(0),
		gzipped:        *flagGzip,
		memProfile:     *flagMemProfile,
		cpuProfile:     *flagCPUProfile,
		drupFile:       *flagDrup,
		learntsFile:    *flagLearnts,
		simplifiedFile: *flagSimplified,
	}, nil
}

func run(cfg *config) (sat.Status, error) {
	s := sat.NewDefaultSolver()
	s.SetStatsSink(sat.NewTextStatsSink(os.Stdout))

	if cfg.drupFile != "" {
		f, err := os.Create(cfg.drupFile)
		if err != nil {
			return sat.StatusUnknown, fmt.Errorf("could not create drup file: %w", err)
		}
		defer f.Close()
		sink := sat.NewTextDrupSink(f)
		defer sink.Flush()
		s.SetDrup(sink)
	}

	if err := dimacs.LoadDIMACS(cfg.instanceFile, cfg.gzipped, s); err != nil {
		return sat.StatusUnknown, fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumIrredundant())

	t := time.Now()
	status, err := s.Solve(nil)
	elapsed := time.Since(t)
	if err != nil {
		return sat.StatusUnknown, fmt.Errorf("solve failed: %w", err)
	}

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c status:     %s\n", status.String())

	if cfg.learntsFile != "" {
		if err := dumpToFile(cfg.learntsFile, s.DumpLearnts); err != nil {
			return status, fmt.Errorf("could not dump learnts: %w", err)
		}
	}
	if cfg.simplifiedFile != "" {
		if err := dumpToFile(cfg.simplifiedFile, s.DumpSimplified); err != nil {
			return status, fmt.Errorf("could not dump simplified CNF: %w", err)
		}
	}

	return status, nil
}

func dumpToFile(filename string, dump func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return dump(f)
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	status, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	switch status {
	case sat.StatusSAT:
		os.Exit(exitSAT)
	case sat.StatusUNSAT:
		os.Exit(exitUNSAT)
	default:
		os.Exit(exitUnknown)
	}
}
