package core

import "time"

// MoveOutcome is the delta evaluation and validation a candidate move
// would produce if applied to the current solution, computed without
// mutating it. Algorithms evaluate candidates into MoveOutcomes, decide
// whether to accept, then hand the chosen one to AcceptMove.
type MoveOutcome struct {
	Move       Move
	Evaluation Evaluation
	Validation Validation
}

// isBetter reports whether a is strictly preferred to b under the
// problem's optimization direction. A nil b is never preferred to,
// since there is nothing yet to compare against.
func (s *Search) isBetter(a, b Evaluation) bool {
	if b == nil {
		return true
	}
	if s.problem.IsMinimizing() {
		return a.Value() < b.Value()
	}
	return a.Value() > b.Value()
}

// EvaluateMove delta-evaluates and delta-validates move against the
// current solution, without mutating it.
func (s *Search) EvaluateMove(move Move) (MoveOutcome, error) {
	s.mu.Lock()
	cur := s.current
	curEval := s.currentEval
	curVal := s.currentVal
	s.mu.Unlock()

	eval, err := s.problem.EvaluateMove(move, cur, curEval)
	if err != nil {
		return MoveOutcome{}, err
	}
	val, err := s.problem.ValidateMove(move, cur, curVal)
	if err != nil {
		return MoveOutcome{}, err
	}
	return MoveOutcome{Move: move, Evaluation: eval, Validation: val}, nil
}

// IsImprovingMove delta-evaluates move and reports whether the
// resulting neighbour is valid and strictly better than the current
// solution.
func (s *Search) IsImprovingMove(move Move) (MoveOutcome, bool, error) {
	outcome, err := s.EvaluateMove(move)
	if err != nil {
		return MoveOutcome{}, false, err
	}
	s.mu.Lock()
	curEval := s.currentEval
	s.mu.Unlock()
	improves := outcome.Validation.Passed() && s.isBetter(outcome.Evaluation, curEval)
	return outcome, improves, nil
}

// SetCurrentSolution installs sol as the current solution, fully
// evaluating and validating it, updating best if it qualifies, and
// firing newCurrentSolution. Used once per run to seed the initial
// solution (accounting for the "1" in the newCurrentSolution count
// invariant); VNS also uses it to seed an embedded search's shaken
// starting point.
func (s *Search) SetCurrentSolution(sol Solution) error {
	eval := s.problem.Evaluate(sol)
	val := s.problem.Validate(sol)

	s.mu.Lock()
	s.current = sol
	s.currentEval = eval
	s.currentVal = val
	bestEval := s.bestEval
	s.mu.Unlock()

	if val.Passed() && s.isBetter(eval, bestEval) {
		if err := s.recordBest(sol.CheckedCopy(), eval, val); err != nil {
			return err
		}
	}
	return s.fireNewCurrentSolution(sol.CheckedCopy(), eval, val)
}

// AcceptMove applies outcome's move to the current solution, adopts
// its precomputed evaluation/validation, updates best if it qualifies,
// fires newCurrentSolution (and newBestSolution, if applicable), and
// increments the accepted counter.
func (s *Search) AcceptMove(outcome MoveOutcome) error {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if err := outcome.Move.Apply(cur); err != nil {
		return err
	}

	s.mu.Lock()
	s.currentEval = outcome.Evaluation
	s.currentVal = outcome.Validation
	bestEval := s.bestEval
	s.mu.Unlock()

	if outcome.Validation.Passed() && s.isBetter(outcome.Evaluation, bestEval) {
		if err := s.recordBest(cur.CheckedCopy(), outcome.Evaluation, outcome.Validation); err != nil {
			return err
		}
	}
	if err := s.fireNewCurrentSolution(cur.CheckedCopy(), outcome.Evaluation, outcome.Validation); err != nil {
		return err
	}
	s.recordAccepted()
	return nil
}

// RejectMove increments the rejected counter. The candidate move that
// was evaluated and found wanting is never applied.
func (s *Search) RejectMove() {
	s.recordRejected()
}

// GetBestMove scans candidates, delta-evaluating each against the
// current solution, and returns the valid candidate whose delta is
// maximal under the problem's direction (and, if requirePositiveDelta,
// strictly improving). Ties are broken by first-encountered. The
// second return value is false if no candidate qualifies.
func (s *Search) GetBestMove(candidates []Move, requirePositiveDelta bool) (MoveOutcome, bool, error) {
	s.mu.Lock()
	curEval := s.currentEval
	s.mu.Unlock()

	var best MoveOutcome
	found := false
	for _, mv := range candidates {
		outcome, err := s.EvaluateMove(mv)
		if err != nil {
			return MoveOutcome{}, false, err
		}
		if !outcome.Validation.Passed() {
			continue
		}
		if requirePositiveDelta && !s.isBetter(outcome.Evaluation, curEval) {
			continue
		}
		if !found || s.isBetter(outcome.Evaluation, best.Evaluation) {
			best = outcome
			found = true
		}
	}
	return best, found, nil
}

func (s *Search) recordBest(sol Solution, eval Evaluation, val Validation) error {
	s.mu.Lock()
	s.best = sol
	s.bestEval = eval
	s.bestVal = val
	s.lastImprovement = time.Now()
	s.lastImprovementStep = s.steps
	s.mu.Unlock()
	return s.fireNewBestSolution(sol, eval, val)
}
