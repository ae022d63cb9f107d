package core

// Validation is a boolean pass/fail outcome produced by validating a
// solution against a constraint.
type Validation interface {
	Passed() bool
}

// SimpleValidation wraps a plain boolean outcome.
type SimpleValidation bool

// Passed implements Validation.
func (v SimpleValidation) Passed() bool { return bool(v) }

// PenalizingValidation is a pass/fail outcome that additionally carries
// a non-negative penalty. A passed validation must carry a zero
// penalty: Passed() ⇒ Penalty() == 0 is an invariant every constructor
// in this package enforces (spec open question, resolved in DESIGN.md).
type PenalizingValidation struct {
	passed  bool
	penalty float64
}

// NewPenalizingValidation builds a PenalizingValidation. If passed is
// true, the penalty is forced to zero regardless of the value supplied,
// preserving the passed()⇒penalty==0 invariant.
func NewPenalizingValidation(passed bool, penalty float64) PenalizingValidation {
	if passed {
		penalty = 0
	} else if penalty < 0 {
		penalty = 0
	}
	return PenalizingValidation{passed: passed, penalty: penalty}
}

// Passed implements Validation.
func (v PenalizingValidation) Passed() bool { return v.passed }

// Penalty returns the assigned penalty, always zero when Passed().
func (v PenalizingValidation) Penalty() float64 { return v.penalty }

// constraintResult pairs a mandatory constraint with the Validation it
// produced, so a later delta validation round can hand each constraint
// back its own prior result.
type constraintResult struct {
	constraint Constraint
	validation Validation
}

// CompositeValidation is the aggregate outcome of validating a solution
// against every mandatory constraint of a Problem: it passes iff all of
// them do, and it remembers which ones did not for
// Problem.ViolatedConstraints.
type CompositeValidation struct {
	passed   bool
	violated []Constraint
	results  []constraintResult
}

// Passed implements Validation.
func (v CompositeValidation) Passed() bool { return v.passed }

// ViolatedConstraints returns the mandatory constraints that failed.
func (v CompositeValidation) ViolatedConstraints() []Constraint { return v.violated }

// resultFor returns the Validation previously produced for c, if any.
func (v CompositeValidation) resultFor(c Constraint) (Validation, bool) {
	for _, r := range v.results {
		if r.constraint == c {
			return r.validation, true
		}
	}
	return nil, false
}

