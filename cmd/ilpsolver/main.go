// Command ilpsolver generates a random integer program and solves it,
// optionally splitting the branch-and-bound search across a worker pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	ilp "github.com/mkaspr/ilp-solver"
)

func main() {
	workers := flag.Int("workers", 0, "number of worker goroutines (0 runs the serial driver)")
	verbose := flag.Bool("verbose", false, "print periodic branch-and-bound progress")
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: ilpsolver [-workers N] [-verbose] rows cols seed")
		os.Exit(1)
	}

	rows, err1 := strconv.Atoi(args[0])
	cols, err2 := strconv.Atoi(args[1])
	seed, err3 := strconv.ParseInt(args[2], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Fprintln(os.Stderr, "ERROR: rows, cols, and seed must be integers")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	problem := ilp.Generate(rows, cols, seed)
	fmt.Println(problem.ToAMPL())

	start := time.Now()
	solution, err := solve(ctx, problem, *workers, *verbose, logger)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "search canceled: %v\n", err)
	case math.IsInf(solution.Value, -1):
		fmt.Println("No solution found")
	default:
		fmt.Println(solution)
	}
	fmt.Printf("RUNTIME: %v\n", elapsed)
}

func solve(ctx context.Context, problem ilp.Problem, workers int, verbose bool, logger *log.Logger) (ilp.Solution, error) {
	report := func(counts ilp.Counters, pending int) {
		if verbose {
			logger.Printf("branches %+v, jobs left: %d", counts, pending)
		}
	}

	if workers <= 0 {
		driver := ilp.NewSerial(problem, ilp.SmallestFractionalRow)
		driver.OnProgress(report)
		return driver.Solve(ctx)
	}

	driver := ilp.NewMaster(problem, ilp.SmallestFractionalRow, workers)
	driver.OnProgress(report)
	return driver.Solve(ctx)
}
