package core

import (
	"fmt"
	"time"
)

// MinStopCriterionCheckPeriod is the smallest period a Search will
// accept between stop-criterion polls; registering a smaller one is a
// contract violation.
const MinStopCriterionCheckPeriod = time.Millisecond

// StopCriterion decides whether a running Search should stop.
// Implementations must be safe to call concurrently with the search's
// own worker goroutine, since ShouldStop runs on a dedicated poller
// goroutine while the search thread is between (or inside) steps.
type StopCriterion interface {
	ShouldStop(s *Search) bool
}

// validateCheckPeriod enforces the minimum poll period at registration
// time, matching the contract-violation-at-construction policy of
// spec.md §7.
func validateCheckPeriod(period time.Duration) error {
	if period < MinStopCriterionCheckPeriod {
		return fmt.Errorf("optframe: stop criterion check period must be >= %s (got %s)", MinStopCriterionCheckPeriod, period)
	}
	return nil
}
