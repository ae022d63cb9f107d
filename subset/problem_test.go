package subset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optframe/core"
	"optframe/subset"
)

type countObjective struct{}

func (countObjective) Evaluate(sol core.Solution, _ any) core.Evaluation {
	return core.SimpleEvaluation(float64(sol.(*subset.Solution).Size()))
}

func newCountProblem(t *testing.T, minSize, maxSize int) *subset.Problem {
	t.Helper()
	factory := subset.RandomSolutionFactory(universe(6), minSize)
	inner, err := core.New(countObjective{}, nil, factory, nil, nil, false)
	require.NoError(t, err)
	p, err := subset.NewProblem(inner, minSize, maxSize)
	require.NoError(t, err)
	return p
}

func TestNewProblemRejectsInvalidBounds(t *testing.T) {
	inner, err := core.New(countObjective{}, nil, subset.RandomSolutionFactory(universe(3), 1), nil, nil, false)
	require.NoError(t, err)

	_, err = subset.NewProblem(inner, -1, 2)
	assert.Error(t, err)

	_, err = subset.NewProblem(inner, 3, 1)
	assert.Error(t, err)

	_, err = subset.NewProblem(nil, 0, 1)
	assert.Error(t, err)
}

func TestValidateRejectsSolutionOutsideSizeBounds(t *testing.T) {
	p := newCountProblem(t, 2, 3)

	tooSmall, err := subset.NewSolution(universe(6), []int{0})
	require.NoError(t, err)
	assert.False(t, p.Validate(tooSmall).Passed())

	justRight, err := subset.NewSolution(universe(6), []int{0, 1})
	require.NoError(t, err)
	assert.True(t, p.Validate(justRight).Passed())

	tooBig, err := subset.NewSolution(universe(6), []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.False(t, p.Validate(tooBig).Passed())
}

func TestValidateMoveProjectsSizeWithoutMaterializingNeighbour(t *testing.T) {
	p := newCountProblem(t, 2, 2)

	sol, err := subset.NewSolution(universe(6), []int{0, 1})
	require.NoError(t, err)
	curVal := p.Validate(sol)

	swap := subset.NewSwap(2, 0)
	next, err := p.ValidateMove(swap, sol, curVal)
	require.NoError(t, err)
	assert.True(t, next.(subset.Validation).Passed(), "a swap preserves size")

	addition := subset.NewAddition(2)
	next, err = p.ValidateMove(addition, sol, curVal)
	require.NoError(t, err)
	assert.False(t, next.(subset.Validation).Passed(), "an addition alone grows size past the max")
}

func TestCreateRandomSolutionDelegatesToInnerFactory(t *testing.T) {
	p := newCountProblem(t, 3, 3)
	sol := p.CreateRandomSolution(rand.New(rand.NewSource(7))).(*subset.Solution)
	assert.Equal(t, 3, sol.Size())
}
