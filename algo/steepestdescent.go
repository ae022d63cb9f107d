package algo

import (
	"context"
	"errors"

	"optframe/core"
)

// NewSteepestDescent builds a Search that, each step, enumerates every
// move neighbourhood can generate and accepts the one with the largest
// strictly-improving delta. When no improving move exists it stops
// itself: the current solution is a local optimum with respect to
// neighbourhood.
func NewSteepestDescent(problem core.ProblemDef, neighbourhood core.Neighbourhood, opts ...core.Option) (*core.Search, error) {
	if neighbourhood == nil {
		return nil, errors.New("optframe: steepest descent requires a non-nil neighbourhood")
	}
	s, err := core.NewSearch(problem, opts...)
	if err != nil {
		return nil, err
	}
	s.SetStep(func(ctx context.Context) error {
		candidates := neighbourhood.AllMoves(s.CurrentSolutionRef())
		best, found, err := s.GetBestMove(candidates, true)
		if err != nil {
			return err
		}
		if !found {
			s.Stop()
			return nil
		}
		return s.AcceptMove(best)
	})
	return s, nil
}
