package algo

import (
	"context"

	"optframe/core"
)

// NewVND builds a Variable Neighbourhood Descent search over an
// ordered list of neighbourhoods. Each step enumerates every move from
// the current neighbourhood and accepts the steepest improving one; an
// improvement resets to the first neighbourhood, a non-improving scan
// advances to the next and counts as one rejected move (a neighbourhood
// that offers no candidate at all advances without touching the
// counters). Once every neighbourhood has been exhausted without an
// improvement, the search stops: the current solution is a local
// optimum with respect to all of them.
func NewVND(problem core.ProblemDef, neighbourhoods []core.Neighbourhood, opts ...core.Option) (*core.Search, error) {
	mns, err := core.NewMultiNeighbourhoodSearch(neighbourhoods)
	if err != nil {
		return nil, err
	}
	s, err := core.NewSearch(problem, opts...)
	if err != nil {
		return nil, err
	}
	s.SetStep(func(ctx context.Context) error {
		if mns.Exhausted() {
			s.Stop()
			return nil
		}
		candidates := mns.Current().AllMoves(s.CurrentSolutionRef())
		best, found, err := s.GetBestMove(candidates, true)
		if err != nil {
			return err
		}
		if !found {
			if len(candidates) > 0 {
				s.RejectMove()
			}
			mns.Advance()
			if mns.Exhausted() {
				s.Stop()
			}
			return nil
		}
		if err := s.AcceptMove(best); err != nil {
			return err
		}
		mns.Reset()
		return nil
	})
	return s, nil
}
