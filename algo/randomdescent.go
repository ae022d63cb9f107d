// Package algo implements the algorithm family atop core.Search: each
// constructor builds a Search and binds it to a Step closure that
// captures its own neighbourhood(s), rather than overriding a template
// method the way the original design's subclasses do.
package algo

import (
	"context"
	"errors"

	"optframe/core"
)

// NewRandomDescent builds a Search that, each step, samples one random
// move from neighbourhood and accepts it iff it strictly improves the
// current solution, rejecting it otherwise. It never stops itself;
// termination is left entirely to the search's registered stop
// criteria.
func NewRandomDescent(problem core.ProblemDef, neighbourhood core.Neighbourhood, opts ...core.Option) (*core.Search, error) {
	if neighbourhood == nil {
		return nil, errors.New("optframe: random descent requires a non-nil neighbourhood")
	}
	s, err := core.NewSearch(problem, opts...)
	if err != nil {
		return nil, err
	}
	s.SetStep(func(ctx context.Context) error {
		move := neighbourhood.RandomMove(s.CurrentSolutionRef(), s.Rng())
		if move == nil {
			return nil
		}
		outcome, improves, err := s.IsImprovingMove(move)
		if err != nil {
			return err
		}
		if improves {
			return s.AcceptMove(outcome)
		}
		s.RejectMove()
		return nil
	})
	return s, nil
}
