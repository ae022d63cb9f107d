package subset

import (
	"fmt"
	"math/rand"

	"optframe/core"
)

// Problem wraps a *core.Problem with a minimum and maximum selected
// size, implementing core.ProblemDef by additionally checking that
// bound on top of the wrapped problem's own constraints. A solution is
// valid iff it satisfies the wrapped problem's mandatory constraints
// and its selected size falls within [minSize, maxSize].
type Problem struct {
	inner   *core.Problem
	minSize int
	maxSize int
}

// NewProblem builds a Problem. inner must be non-nil and
// 0 <= minSize <= maxSize.
func NewProblem(inner *core.Problem, minSize, maxSize int) (*Problem, error) {
	if inner == nil {
		return nil, fmt.Errorf("optframe/subset: problem requires a non-nil inner problem")
	}
	if minSize < 0 || maxSize < minSize {
		return nil, fmt.Errorf("optframe/subset: invalid size bounds [%d,%d]", minSize, maxSize)
	}
	return &Problem{inner: inner, minSize: minSize, maxSize: maxSize}, nil
}

// Inner returns the wrapped problem.
func (p *Problem) Inner() *core.Problem { return p.inner }

// IsMinimizing implements core.ProblemDef.
func (p *Problem) IsMinimizing() bool { return p.inner.IsMinimizing() }

// CreateRandomSolution implements core.ProblemDef.
func (p *Problem) CreateRandomSolution(rng *rand.Rand) core.Solution {
	return p.inner.CreateRandomSolution(rng)
}

// Evaluate implements core.ProblemDef.
func (p *Problem) Evaluate(sol core.Solution) core.Evaluation {
	return p.inner.Evaluate(sol)
}

// EvaluateMove implements core.ProblemDef.
func (p *Problem) EvaluateMove(move core.Move, sol core.Solution, curEval core.Evaluation) (core.Evaluation, error) {
	return p.inner.EvaluateMove(move, sol, curEval)
}

// Validate implements core.ProblemDef, additionally checking sol's
// selected size against [minSize, maxSize].
func (p *Problem) Validate(sol core.Solution) core.Validation {
	return NewValidation(p.sizeValid(sol), p.inner.Validate(sol))
}

// ValidateMove implements core.ProblemDef, computing the projected
// size of the move's result in O(1) from the move's own added/deleted
// counts rather than materializing the neighbouring solution.
func (p *Problem) ValidateMove(move core.Move, sol core.Solution, curVal core.Validation) (core.Validation, error) {
	var innerPrior core.Validation
	if prior, ok := curVal.(Validation); ok {
		innerPrior = prior.inner
	}
	innerNext, err := p.inner.ValidateMove(move, sol, innerPrior)
	if err != nil {
		return nil, err
	}
	size, err := p.projectedSize(sol, move)
	if err != nil {
		return nil, err
	}
	return NewValidation(size >= p.minSize && size <= p.maxSize, innerNext), nil
}

func (p *Problem) sizeValid(sol core.Solution) bool {
	s, ok := sol.(*Solution)
	if !ok {
		return false
	}
	size := s.Size()
	return size >= p.minSize && size <= p.maxSize
}

func (p *Problem) projectedSize(sol core.Solution, move core.Move) (int, error) {
	s, ok := sol.(*Solution)
	if !ok {
		return 0, &core.IncompatibleDeltaValidationError{Component: "subset.Problem", Move: move}
	}
	mv, ok := move.(*Move)
	if !ok {
		return 0, &core.IncompatibleDeltaValidationError{Component: "subset.Problem", Move: move}
	}
	return s.Size() + len(mv.added) - len(mv.deleted), nil
}
