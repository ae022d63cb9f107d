package algo

import (
	"context"

	"optframe/core"
)

// NewRVNS builds a Reduced Variable Neighbourhood Search over an
// ordered list of neighbourhoods. Each step samples one random move
// from the current neighbourhood. An empty candidate set or a rejected
// move both advance to the next neighbourhood; an accepted improvement
// resets to the first. Once every neighbourhood has been exhausted, the
// index either wraps back to the first (cyclic, the default) or the
// search stops, per the toggle the original design exposes for RVNS
// only — VNS itself always cycles.
//
// Note: an empty candidate set advances the index exactly as a
// rejected move would, but is not itself counted as a rejection in the
// search's accepted/rejected counters, since no move was ever actually
// evaluated.
func NewRVNS(problem core.ProblemDef, neighbourhoods []core.Neighbourhood, cyclic bool, opts ...core.Option) (*core.Search, error) {
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
			advanceRVNS(mns, cyclic, s)
			return nil
		}
		move := mns.Current().RandomMove(s.CurrentSolutionRef(), s.Rng())
		if move == nil {
			advanceRVNS(mns, cyclic, s)
			return nil
		}
		outcome, improves, err := s.IsImprovingMove(move)
		if err != nil {
			return err
		}
		if improves {
			if err := s.AcceptMove(outcome); err != nil {
				return err
			}
			mns.Reset()
			return nil
		}
		s.RejectMove()
		advanceRVNS(mns, cyclic, s)
		return nil
	})
	return s, nil
}

func advanceRVNS(mns *core.MultiNeighbourhoodSearch, cyclic bool, s *core.Search) {
	mns.Advance()
	if mns.Exhausted() {
		if cyclic {
			mns.Reset()
		} else {
			s.Stop()
		}
	}
}
