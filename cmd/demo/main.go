// Command demo runs a fixed-size sum-of-scores subset problem through
// steepest descent to a local optimum, for manual inspection of the
// engine end to end. It is not part of the library's API surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"optframe/algo"
	"optframe/core"
	"optframe/stopcrit"
	"optframe/subset"
)

// sumScoresObjective scores a subset solution by the sum of a static
// per-ID score table, supporting O(1) delta evaluation from a
// subset.Move's own added/deleted ID lists.
type sumScoresObjective struct {
	scores map[int]float64
}

func (o sumScoresObjective) Evaluate(sol core.Solution, _ any) core.Evaluation {
	s := sol.(*subset.Solution)
	var total float64
	for _, id := range s.Selected() {
		total += o.scores[id]
	}
	return core.SimpleEvaluation(total)
}

func (o sumScoresObjective) EvaluateDelta(move core.Move, _ core.Solution, curEval core.Evaluation, _ any) (core.Evaluation, error) {
	mv, ok := move.(*subset.Move)
	if !ok {
		return nil, &core.IncompatibleDeltaValidationError{Component: "sumScoresObjective", Move: move}
	}
	total := curEval.Value()
	for _, id := range mv.Added() {
		total += o.scores[id]
	}
	for _, id := range mv.Deleted() {
		total -= o.scores[id]
	}
	return core.SimpleEvaluation(total), nil
}

func main() {
	var (
		universeSize = flag.Int("universe", 10, "size of the ID universe {0..universe-1}")
		subsetSize   = flag.Int("subset_size", 3, "fixed selected subset size")
		seed         = flag.Int64("seed", 1, "RNG seed for the initial random solution")
		maxSteps     = flag.Int("max_steps", 1000, "fallback step cap, in case no local optimum is ever reached")
		verbose      = flag.Bool("verbose", false, "log lifecycle events at debug level")
	)
	flag.Parse()

	universe := make([]int, *universeSize)
	scores := make(map[int]float64, *universeSize)
	for i := range universe {
		universe[i] = i
		scores[i] = float64(i)
	}

	objective := sumScoresObjective{scores: scores}
	factory := subset.RandomSolutionFactory(universe, *subsetSize)

	inner, err := core.New(objective, nil, factory, nil, nil, false)
	if err != nil {
		log.Fatalf("building inner problem: %v", err)
	}
	problem, err := subset.NewProblem(inner, *subsetSize, *subsetSize)
	if err != nil {
		log.Fatalf("building subset problem: %v", err)
	}

	neighbourhood := subset.NewSingleSwapNeighbourhood()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}

	search, err := algo.NewSteepestDescent(problem, neighbourhood,
		core.WithName("sum-of-scores-demo"),
		core.WithSeed(*seed),
		core.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("building search: %v", err)
	}

	maxStepsCriterion, err := stopcrit.NewMaxSteps(*maxSteps)
	if err != nil {
		log.Fatalf("building stop criterion: %v", err)
	}
	if err := search.AddStopCriterion(maxStepsCriterion); err != nil {
		log.Fatalf("registering stop criterion: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := search.Start(ctx); err != nil {
		log.Fatalf("starting search: %v", err)
	}
	if err := search.Await(); err != nil {
		log.Fatalf("search run failed: %v", err)
	}

	best := search.BestSolution().(*subset.Solution)
	metrics := search.Metrics()
	fmt.Printf("selected=%v evaluation=%v steps=%d runtime=%s\n",
		best.Selected(), search.BestEvaluation().Value(), metrics.Steps, metrics.Runtime)
}

