package algo

import (
	"context"
	"errors"

	"optframe/core"
)

// LocalSearchFactory produces a fresh local search bound to problem,
// for VNS to construct, seed, run and dispose of on each of its own
// steps. Each invocation must return an independently-configured
// Search; the factory itself must be safe to call repeatedly.
type LocalSearchFactory func(problem core.ProblemDef) (*core.Search, error)

// NewVNS builds a Variable Neighbourhood Search over a list of shaking
// neighbourhoods and a factory for the embedded local search it runs
// to completion on every step. Each step: deep-copies the current
// solution, shakes it with one random move from the current shaking
// neighbourhood, runs a freshly constructed embedded search seeded
// from the shaken solution to its own completion, and adopts the
// embedded search's best solution as the new current solution if it
// strictly improves on the outer search's current one. The shaking
// index always cycles back to the first neighbourhood once exhausted;
// VNS never stops itself.
func NewVNS(problem core.ProblemDef, shaking []core.Neighbourhood, factory LocalSearchFactory, opts ...core.Option) (*core.Search, error) {
	if factory == nil {
		return nil, errors.New("optframe: vns requires a non-nil local search factory")
	}
	mns, err := core.NewMultiNeighbourhoodSearch(shaking)
	if err != nil {
		return nil, err
	}
	s, err := core.NewSearch(problem, opts...)
	if err != nil {
		return nil, err
	}
	s.SetStep(func(ctx context.Context) error {
		shaken := s.CurrentSolutionRef().CheckedCopy()

		move := mns.Current().RandomMove(shaken, s.Rng())
		if move == nil {
			mns.AdvanceCyclic()
			return nil
		}
		if err := move.Apply(shaken); err != nil {
			return err
		}

		best, bestEval, bestVal, err := runEmbedded(ctx, s, factory, problem, shaken)
		if err != nil {
			return err
		}

		if best != nil && bestVal != nil && bestVal.Passed() && isBetterFor(problem, bestEval, s.CurrentEvaluation()) {
			if err := s.SetCurrentSolution(best); err != nil {
				return err
			}
			mns.Reset()
			return nil
		}
		mns.AdvanceCyclic()
		return nil
	})
	return s, nil
}

// runEmbedded constructs, seeds, runs to completion, and disposes of
// one embedded local search, returning its best solution/evaluation/
// validation. VNS owns this lifecycle end to end.
func runEmbedded(ctx context.Context, outer *core.Search, factory LocalSearchFactory, problem core.ProblemDef, shaken core.Solution) (core.Solution, core.Evaluation, core.Validation, error) {
	embedded, err := factory(problem)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := embedded.SetSeed(outer.Rng().Int63()); err != nil {
		return nil, nil, nil, err
	}
	if err := embedded.SetCurrentSolution(shaken); err != nil {
		return nil, nil, nil, err
	}
	if err := embedded.Start(ctx); err != nil {
		return nil, nil, nil, err
	}
	runErr := embedded.Await()

	best := embedded.BestSolution()
	bestEval := embedded.BestEvaluation()
	bestVal := embedded.BestValidation()

	if disposeErr := embedded.Dispose(); disposeErr != nil && runErr == nil {
		runErr = disposeErr
	}
	if runErr != nil {
		return nil, nil, nil, runErr
	}
	return best, bestEval, bestVal, nil
}

func isBetterFor(problem core.ProblemDef, a, b core.Evaluation) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if problem.IsMinimizing() {
		return a.Value() < b.Value()
	}
	return a.Value() > b.Value()
}
