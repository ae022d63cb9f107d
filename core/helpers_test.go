package core_test

import (
	"math/rand"

	"optframe/core"
)

// counterSolution is a single mutable int, used across core's tests as
// the simplest possible Solution that still exercises CheckedCopy's
// independence requirement.
type counterSolution struct {
	value int
}

func (s *counterSolution) CheckedCopy() core.Solution {
	return &counterSolution{value: s.value}
}

func (s *counterSolution) Equals(other core.Solution) bool {
	o, ok := other.(*counterSolution)
	return ok && o.value == s.value
}

// counterMove adds delta to a counterSolution's value.
type counterMove struct {
	delta int
}

func (m *counterMove) Apply(sol core.Solution) error {
	s := sol.(*counterSolution)
	s.value += m.delta
	return nil
}

func (m *counterMove) Undo(sol core.Solution) error {
	s := sol.(*counterSolution)
	s.value -= m.delta
	return nil
}

// counterObjective scores a counterSolution by its raw value and
// delta-evaluates a counterMove in O(1).
type counterObjective struct{}

func (counterObjective) Evaluate(sol core.Solution, _ any) core.Evaluation {
	return core.SimpleEvaluation(float64(sol.(*counterSolution).value))
}

func (counterObjective) EvaluateDelta(move core.Move, _ core.Solution, curEval core.Evaluation, _ any) (core.Evaluation, error) {
	m := move.(*counterMove)
	return core.SimpleEvaluation(curEval.Value() + float64(m.delta)), nil
}

func counterFactory(start int) core.SolutionFactory {
	return func(_ *rand.Rand) core.Solution { return &counterSolution{value: start} }
}

// patternNeighbourhood always returns a counterMove whose delta cycles
// deterministically through pattern, never nil, regardless of rng.
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
	return []core.Move{n.RandomMove(sol, nil)}
}

// countingListener records how many times each lifecycle callback fired.
type countingListener struct {
	core.BaseListener
	started, stopped, newBest, newCurrent, stepCompleted int
}

func (l *countingListener) SearchStarted(*core.Search) error { l.started++; return nil }
func (l *countingListener) SearchStopped(*core.Search) error { l.stopped++; return nil }
func (l *countingListener) NewBestSolution(*core.Search, core.Solution, core.Evaluation, core.Validation) error {
	l.newBest++
	return nil
}
func (l *countingListener) NewCurrentSolution(*core.Search, core.Solution, core.Evaluation, core.Validation) error {
	l.newCurrent++
	return nil
}
func (l *countingListener) StepCompleted(*core.Search, int) error { l.stepCompleted++; return nil }

// minCapConstraint rejects any counterSolution whose value exceeds cap.
type minCapConstraint struct {
	cap int
}

func (c minCapConstraint) Validate(sol core.Solution, _ any) core.Validation {
	return core.SimpleValidation(sol.(*counterSolution).value <= c.cap)
}

// stopAtStep calls Stop synchronously from StepCompleted, which runs on
// the search's own worker goroutine immediately after the step counter
// is incremented — unlike a StopCriterion, which is only observed by a
// separate poller goroutine on its own timer, so this gives tests an
// exact, race-free step count rather than one bounded only up to a
// poll-period's worth of overshoot.
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
