package algo_test

import (
	"math/rand"

	"optframe/core"
)

// counterSolution is a single mutable int.
type counterSolution struct{ value int }

func (s *counterSolution) CheckedCopy() core.Solution { return &counterSolution{value: s.value} }
func (s *counterSolution) Equals(other core.Solution) bool {
	o, ok := other.(*counterSolution)
	return ok && o.value == s.value
}

// counterMove adds a fixed delta to a counterSolution's value.
type counterMove struct{ delta int }

func (m *counterMove) Apply(sol core.Solution) error {
	sol.(*counterSolution).value += m.delta
	return nil
}
func (m *counterMove) Undo(sol core.Solution) error {
	sol.(*counterSolution).value -= m.delta
	return nil
}

type counterObjective struct{}

func (counterObjective) Evaluate(sol core.Solution, _ any) core.Evaluation {
	return core.SimpleEvaluation(float64(sol.(*counterSolution).value))
}

func (counterObjective) EvaluateDelta(move core.Move, _ core.Solution, curEval core.Evaluation, _ any) (core.Evaluation, error) {
	return core.SimpleEvaluation(curEval.Value() + float64(move.(*counterMove).delta)), nil
}

func counterFactory(start int) core.SolutionFactory {
	return func(_ *rand.Rand) core.Solution { return &counterSolution{value: start} }
}

// patternNeighbourhood deterministically cycles through pattern,
// independent of the rng it is given, and never reports nil.
type patternNeighbourhood struct {
	pattern []int
	i       int
}

func (n *patternNeighbourhood) RandomMove(_ core.Solution, _ *rand.Rand) core.Move {
	delta := n.pattern[n.i%len(n.pattern)]
	n.i++
	return &counterMove{delta: delta}
}

func (n *patternNeighbourhood) AllMoves(sol core.Solution) []core.Move {
	out := make([]core.Move, len(n.pattern))
	for i, d := range n.pattern {
		out[i] = &counterMove{delta: d}
	}
	return out
}

// fixedDeltaNeighbourhood always offers exactly one counterMove of a
// fixed delta, regardless of the current solution.
type fixedDeltaNeighbourhood struct{ delta int }

func (n fixedDeltaNeighbourhood) RandomMove(core.Solution, *rand.Rand) core.Move {
	return &counterMove{delta: n.delta}
}
func (n fixedDeltaNeighbourhood) AllMoves(core.Solution) []core.Move {
	return []core.Move{&counterMove{delta: n.delta}}
}

// minCapConstraint rejects a counterSolution whose value exceeds cap.
type minCapConstraint struct{ cap int }

func (c minCapConstraint) Validate(sol core.Solution, _ any) core.Validation {
	return core.SimpleValidation(sol.(*counterSolution).value <= c.cap)
}

// nilNeighbourhood always reports an empty candidate set.
type nilNeighbourhood struct{}

func (nilNeighbourhood) RandomMove(core.Solution, *rand.Rand) core.Move { return nil }
func (nilNeighbourhood) AllMoves(core.Solution) []core.Move             { return nil }

// stopAtStep calls Stop synchronously from StepCompleted, which runs on
// the search's own worker goroutine right after the step counter is
// incremented, giving tests an exact step count instead of one bounded
// only up to a stop-criterion poll period's worth of overshoot.
type stopAtStep struct {
	core.BaseListener
	n int
}

func (l stopAtStep) StepCompleted(s *core.Search, step int) error {
	if step >= l.n {
		s.Stop()
	}
	return nil
}
