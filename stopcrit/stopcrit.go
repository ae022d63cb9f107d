// Package stopcrit implements the stop criteria a Search polls for on
// its dedicated poller goroutine: MaxRuntime, MaxSteps,
// MaxStepsWithoutImprovement, MaxTimeWithoutImprovement, MinDelta,
// TargetValue, and Composite.
package stopcrit

import (
	"errors"
	"time"

	"optframe/core"
)

// MaxRuntime stops a search once its runtime reaches limit. The limit
// is a plain time.Duration; no time unit is checked. The granularity at
// which the limit is actually observed is governed by the search's own
// stop-criterion check period, which is never below
// core.MinStopCriterionCheckPeriod (one millisecond).
type MaxRuntime struct {
	limit time.Duration
}

// NewMaxRuntime builds a MaxRuntime criterion. limit must be positive.
func NewMaxRuntime(limit time.Duration) (MaxRuntime, error) {
	if limit <= 0 {
		return MaxRuntime{}, errors.New("optframe: max runtime must be positive")
	}
	return MaxRuntime{limit: limit}, nil
}

// ShouldStop implements core.StopCriterion.
func (c MaxRuntime) ShouldStop(s *core.Search) bool {
	return s.Metrics().Runtime >= c.limit
}

// MaxSteps stops a search once its step counter reaches limit.
type MaxSteps struct {
	limit int
}

// NewMaxSteps builds a MaxSteps criterion. limit must be positive.
func NewMaxSteps(limit int) (MaxSteps, error) {
	if limit <= 0 {
		return MaxSteps{}, errors.New("optframe: max steps must be positive")
	}
	return MaxSteps{limit: limit}, nil
}

// ShouldStop implements core.StopCriterion.
func (c MaxSteps) ShouldStop(s *core.Search) bool {
	return s.Steps() >= c.limit
}

// MaxStepsWithoutImprovement stops a search once limit steps have
// elapsed since the best solution last improved.
type MaxStepsWithoutImprovement struct {
	limit int
}

// NewMaxStepsWithoutImprovement builds the criterion. limit must be
// positive.
func NewMaxStepsWithoutImprovement(limit int) (MaxStepsWithoutImprovement, error) {
	if limit <= 0 {
		return MaxStepsWithoutImprovement{}, errors.New("optframe: max steps without improvement must be positive")
	}
	return MaxStepsWithoutImprovement{limit: limit}, nil
}

// ShouldStop implements core.StopCriterion.
func (c MaxStepsWithoutImprovement) ShouldStop(s *core.Search) bool {
	return s.StepsSinceImprovement() >= c.limit
}

// MaxTimeWithoutImprovement stops a search once limit has elapsed
// since the best solution last improved.
type MaxTimeWithoutImprovement struct {
	limit time.Duration
}

// NewMaxTimeWithoutImprovement builds the criterion. limit must be
// positive.
func NewMaxTimeWithoutImprovement(limit time.Duration) (MaxTimeWithoutImprovement, error) {
	if limit <= 0 {
		return MaxTimeWithoutImprovement{}, errors.New("optframe: max time without improvement must be positive")
	}
	return MaxTimeWithoutImprovement{limit: limit}, nil
}

// ShouldStop implements core.StopCriterion.
func (c MaxTimeWithoutImprovement) ShouldStop(s *core.Search) bool {
	return s.Metrics().TimeSinceLastImprovement >= c.limit
}

// MinDelta stops a search once its best evaluation changes by less
// than epsilon between two consecutive calls to ShouldStop. Unlike the
// other criteria it keeps state of its own: the best evaluation it saw
// on the previous call. It is not a core.Listener and does not look at
// individual steps, so the change it measures covers every step run
// between two polls.
type MinDelta struct {
	epsilon float64
	last    *float64
}

// NewMinDelta builds a MinDelta criterion. epsilon must be positive.
func NewMinDelta(epsilon float64) (*MinDelta, error) {
	if epsilon <= 0 {
		return nil, errors.New("optframe: min delta must be positive")
	}
	return &MinDelta{epsilon: epsilon}, nil
}

// ShouldStop implements core.StopCriterion. It reports false until it
// has sampled a best evaluation on two calls to compare.
func (c *MinDelta) ShouldStop(s *core.Search) bool {
	eval := s.BestEvaluation()
	if eval == nil {
		return false
	}
	v := eval.Value()
	if c.last == nil {
		c.last = &v
		return false
	}
	delta := v - *c.last
	if delta < 0 {
		delta = -delta
	}
	c.last = &v
	return delta < c.epsilon
}

// TargetValue stops a search once its best evaluation reaches target,
// in the direction problem optimizes for.
type TargetValue struct {
	problem core.ProblemDef
	target  float64
}

// NewTargetValue builds a TargetValue criterion bound to problem's
// optimization direction.
func NewTargetValue(problem core.ProblemDef, target float64) (TargetValue, error) {
	if problem == nil {
		return TargetValue{}, errors.New("optframe: target value requires a non-nil problem")
	}
	return TargetValue{problem: problem, target: target}, nil
}

// ShouldStop implements core.StopCriterion.
func (c TargetValue) ShouldStop(s *core.Search) bool {
	eval := s.BestEvaluation()
	if eval == nil {
		return false
	}
	if c.problem.IsMinimizing() {
		return eval.Value() <= c.target
	}
	return eval.Value() >= c.target
}

// Composite stops a search once any one of its member criteria does.
type Composite struct {
	members []core.StopCriterion
}

// NewComposite builds a Composite over members, which must be
// non-empty.
func NewComposite(members ...core.StopCriterion) (Composite, error) {
	if len(members) == 0 {
		return Composite{}, errors.New("optframe: composite stop criterion requires at least one member")
	}
	return Composite{members: append([]core.StopCriterion(nil), members...)}, nil
}

// ShouldStop implements core.StopCriterion.
func (c Composite) ShouldStop(s *core.Search) bool {
	for _, m := range c.members {
		if m.ShouldStop(s) {
			return true
		}
	}
	return false
}
