package algo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"optframe/algo"
	"optframe/core"
)

func TestRVNSEmptyCandidateSetAdvancesWithoutCountingAsRejected(t *testing.T) {
	problem, err := core.New(counterObjective{}, nil, counterFactory(0), nil, nil, false)
	require.NoError(t, err)

	// n1 never offers a move; n2 always offers an improving one. Cyclic
	// mode alternates (nil, improve) forever: every pair of steps yields
	// exactly one acceptance and zero rejections.
	s, err := algo.NewRVNS(problem, []core.Neighbourhood{nilNeighbourhood{}, fixedDeltaNeighbourhood{delta: 1}}, true)
	require.NoError(t, err)
	require.NoError(t, s.AddListener(stopAtStep{n: 10}))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Await())

	require.Equal(t, 10, s.Metrics().Steps)
	require.Equal(t, 5, s.Metrics().Accepted)
	require.Equal(t, 0, s.Metrics().Rejected)
}

func TestRVNSNonCyclicStopsOnceEveryNeighbourhoodIsExhausted(t *testing.T) {
	problem, err := core.New(counterObjective{}, nil, counterFactory(0), nil, nil, false)
	require.NoError(t, err)

	s, err := algo.NewRVNS(problem, []core.Neighbourhood{
		fixedDeltaNeighbourhood{delta: -1},
		fixedDeltaNeighbourhood{delta: -1},
	}, false)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Await())

	require.Equal(t, core.StatusIdle, s.Status())
	require.Equal(t, 2, s.Metrics().Steps)
	require.Equal(t, 2, s.Metrics().Rejected)
	require.Equal(t, 0, s.Metrics().Accepted)
}

func TestRVNSCyclicNeverStopsItself(t *testing.T) {
	problem, err := core.New(counterObjective{}, nil, counterFactory(0), nil, nil, false)
	require.NoError(t, err)
	s, err := algo.NewRVNS(problem, []core.Neighbourhood{
		fixedDeltaNeighbourhood{delta: -1},
		fixedDeltaNeighbourhood{delta: -1},
	}, true)
	require.NoError(t, err)
	require.NoError(t, s.AddListener(stopAtStep{n: 20}))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Await())

	require.Equal(t, 20, s.Metrics().Steps, "only the registered listener should have ended the run")
}
