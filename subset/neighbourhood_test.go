package subset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optframe/subset"
)

func TestSingleAdditionNeighbourhoodExcludesFixedIDs(t *testing.T) {
	sol, err := subset.NewSolution(universe(5), nil)
	require.NoError(t, err)

	n := subset.NewSingleAdditionNeighbourhood(0, 1)
	for _, mv := range n.AllMoves(sol) {
		assert.NotContains(t, []int{0, 1}, mv.(*subset.Move).Added()[0])
	}
}

func TestSingleDeletionNeighbourhoodExcludesFixedIDs(t *testing.T) {
	sol, err := subset.NewSolution(universe(5), []int{0, 1, 2})
	require.NoError(t, err)

	n := subset.NewSingleDeletionNeighbourhood(0)
	for _, mv := range n.AllMoves(sol) {
		assert.NotEqual(t, 0, mv.(*subset.Move).Deleted()[0])
	}
	assert.Len(t, n.AllMoves(sol), 2)
}

func TestSingleAdditionNeighbourhoodRandomMoveNilWhenExhausted(t *testing.T) {
	sol, err := subset.NewSolution(universe(2), []int{0, 1})
	require.NoError(t, err)

	n := subset.NewSingleAdditionNeighbourhood()
	mv := n.RandomMove(sol, rand.New(rand.NewSource(1)))
	assert.Nil(t, mv)
}

func TestSingleSwapNeighbourhoodGeneratesFullCrossProduct(t *testing.T) {
	sol, err := subset.NewSolution(universe(5), []int{0, 1})
	require.NoError(t, err)

	n := subset.NewSingleSwapNeighbourhood()
	moves := n.AllMoves(sol)
	assert.Len(t, moves, 2*3) // 2 selected * 3 unselected
}

func TestSingleSwapNeighbourhoodRespectsFixedIDsOnBothSides(t *testing.T) {
	sol, err := subset.NewSolution(universe(5), []int{0, 1})
	require.NoError(t, err)

	n := subset.NewSingleSwapNeighbourhood(0, 2)
	for _, mv := range n.AllMoves(sol) {
		assert.NotEqual(t, 0, mv.(*subset.Move).Deleted()[0])
		assert.NotEqual(t, 2, mv.(*subset.Move).Added()[0])
	}
}

func TestDisjointMultiSwapNeighbourhoodRequiresPositiveK(t *testing.T) {
	_, err := subset.NewDisjointMultiSwapNeighbourhood(0)
	assert.Error(t, err)
}

func TestDisjointMultiSwapNeighbourhoodNilWhenInsufficientCandidates(t *testing.T) {
	sol, err := subset.NewSolution(universe(3), []int{0})
	require.NoError(t, err)

	n, err := subset.NewDisjointMultiSwapNeighbourhood(2)
	require.NoError(t, err)
	mv := n.RandomMove(sol, rand.New(rand.NewSource(1)))
	assert.Nil(t, mv, "only 1 selected id is available but k=2")
}

func TestDisjointMultiSwapNeighbourhoodAllMovesEnumeratesEveryCombination(t *testing.T) {
	sol, err := subset.NewSolution(universe(5), []int{0, 1})
	require.NoError(t, err)

	n, err := subset.NewDisjointMultiSwapNeighbourhood(2)
	require.NoError(t, err)
	moves := n.AllMoves(sol)
	// C(2,2) selected combos * C(3,2) unselected combos = 1 * 3
	assert.Len(t, moves, 3)

	for _, mv := range moves {
		assert.ElementsMatch(t, []int{0, 1}, mv.(*subset.Move).Deleted())
	}
}

func TestNeighbourhoodsNeverMutateTheSolutionTheyAreGiven(t *testing.T) {
	sol, err := subset.NewSolution(universe(5), []int{0, 1})
	require.NoError(t, err)
	before := sol.CheckedCopy()

	n := subset.NewSingleSwapNeighbourhood()
	_ = n.AllMoves(sol)
	_ = n.RandomMove(sol, rand.New(rand.NewSource(1)))

	assert.True(t, sol.Equals(before))
}
