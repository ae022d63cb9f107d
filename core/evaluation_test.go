package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optframe/core"
)

func TestPenalizedEvaluationLawMinimizing(t *testing.T) {
	pe := core.NewPenalizedEvaluation(core.SimpleEvaluation(10), true)
	pe.AddPenalty("a", core.NewPenalizingValidation(false, 3))
	pe.AddPenalty("b", core.NewPenalizingValidation(false, 4))

	assert.Equal(t, 17.0, pe.Value())
}

func TestPenalizedEvaluationLawMaximizing(t *testing.T) {
	pe := core.NewPenalizedEvaluation(core.SimpleEvaluation(10), false)
	pe.AddPenalty("a", core.NewPenalizingValidation(false, 7.8))

	assert.Equal(t, 2.2, pe.Value())
	assert.InDelta(t, 7.8, pe.Inner().Value()-pe.Value(), 1e-10)
}

func TestPenalizedEvaluationCacheInvalidatedOnMutation(t *testing.T) {
	pe := core.NewPenalizedEvaluation(core.SimpleEvaluation(10), true)
	require.Equal(t, 10.0, pe.Value())

	pe.AddPenalty("a", core.NewPenalizingValidation(false, 5))
	assert.Equal(t, 15.0, pe.Value(), "Value must re-derive after AddPenalty invalidates the cache")
}

func TestPenalizedEvaluationOverwriteKeepsInsertionOrder(t *testing.T) {
	pe := core.NewPenalizedEvaluation(core.SimpleEvaluation(0), true)
	pe.AddPenalty("a", core.NewPenalizingValidation(false, 1))
	pe.AddPenalty("b", core.NewPenalizingValidation(false, 2))
	pe.AddPenalty("a", core.NewPenalizingValidation(false, 5))

	penalties := pe.Penalties()
	require.Len(t, penalties, 2)
	assert.Equal(t, 5.0, penalties[0].Penalty())
	assert.Equal(t, 2.0, penalties[1].Penalty())
}

func TestPenalizedEvaluationStringOmitsSuffixWhenAllPassed(t *testing.T) {
	pe := core.NewPenalizedEvaluation(core.SimpleEvaluation(10), true)
	pe.AddPenalty("a", core.NewPenalizingValidation(true, 0))

	assert.NotContains(t, pe.String(), "unpenalized")
}

func TestPenalizedEvaluationStringIncludesSuffixWhenAnyFailed(t *testing.T) {
	pe := core.NewPenalizedEvaluation(core.SimpleEvaluation(10), true)
	pe.AddPenalty("a", core.NewPenalizingValidation(false, 3))

	assert.Contains(t, pe.String(), "unpenalized")
}

func TestNewPenalizingValidationEnforcesPassedImpliesZeroPenalty(t *testing.T) {
	v := core.NewPenalizingValidation(true, 99)
	assert.True(t, v.Passed())
	assert.Equal(t, 0.0, v.Penalty())
}
