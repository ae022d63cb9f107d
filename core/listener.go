package core

// Listener receives lifecycle notifications from a Search. Dispatch is
// synchronous on the search's own worker goroutine, in registration
// order. A listener that returns an error does not prevent the rest of
// the listeners in the same dispatch round from running; every error
// raised during a round is accumulated and returned together (see
// Search's use of go.uber.org/multierr) once the round finishes.
type Listener interface {
	SearchStarted(s *Search) error
	SearchStopped(s *Search) error
	NewBestSolution(s *Search, sol Solution, eval Evaluation, val Validation) error
	NewCurrentSolution(s *Search, sol Solution, eval Evaluation, val Validation) error
	StepCompleted(s *Search, step int) error
}

// BaseListener implements Listener with no-op methods, so that
// implementations only need to override the callbacks they care about.
type BaseListener struct{}

func (BaseListener) SearchStarted(*Search) error { return nil }
func (BaseListener) SearchStopped(*Search) error { return nil }
func (BaseListener) NewBestSolution(*Search, Solution, Evaluation, Validation) error {
	return nil
}
func (BaseListener) NewCurrentSolution(*Search, Solution, Evaluation, Validation) error {
	return nil
}
func (BaseListener) StepCompleted(*Search, int) error { return nil }
