package subset

import "optframe/core"

// Validation carries a boolean validSize alongside the inner
// core.Validation produced by the wrapped Problem's own constraints.
// Passed() requires both; PassedIgnoringSize reports only the inner
// result, for callers that want to tolerate an out-of-range size.
type Validation struct {
	validSize bool
	inner     core.Validation
}

// NewValidation builds a Validation.
func NewValidation(validSize bool, inner core.Validation) Validation {
	return Validation{validSize: validSize, inner: inner}
}

// Passed implements core.Validation: inner.Passed() ∧ validSize.
func (v Validation) Passed() bool {
	return v.validSize && v.inner.Passed()
}

// PassedIgnoringSize reports inner.Passed() alone.
func (v Validation) PassedIgnoringSize() bool { return v.inner.Passed() }

// ValidSize reports whether the solution's size is within bounds.
func (v Validation) ValidSize() bool { return v.validSize }

// Inner returns the wrapped Problem's own constraint validation.
func (v Validation) Inner() core.Validation { return v.inner }
