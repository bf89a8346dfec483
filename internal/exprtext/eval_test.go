package exprtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEvalWith_Arithmetic tests the arithmetic vocabulary against a
// known variable binding.
func TestEvalWith_Arithmetic(t *testing.T) {
	resolve := resolverFor(map[string]float64{"foo": 257.6})

	tests := []struct {
		in   string
		want float64
	}{
		{"floor(foo / 10) * 2", 50},
		{"foo / 10 + foo * 2", 540.96},
		{"smaller(23 17)", 17},
		{"bigger(23 17)", 23},
		{"ceil(foo / 100)", 3},
		{"round(foo)", 258},
		{"abs(0 - foo)", 257.6},
		{"foo + -7.6", 250},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, EvalWith(tt.in, resolve), 1e-9, "input %q", tt.in)
	}
}

// TestEvalWith_DivisionIsFloat tests that integer-looking division
// still produces fractional results.
func TestEvalWith_DivisionIsFloat(t *testing.T) {
	resolve := resolverFor(nil)
	assert.InDelta(t, 2.5, EvalWith("5 / 2", resolve), 1e-9)
}

// TestEvalWith_AbsentVariableIsZero tests the absent-name default.
func TestEvalWith_AbsentVariableIsZero(t *testing.T) {
	resolve := resolverFor(nil)
	assert.InDelta(t, 1, EvalWith("missing + 1", resolve), 1e-9)
}

// TestEvalWith_Garbage tests that unparseable text yields the invalid
// sentinel instead of an error or a zero.
func TestEvalWith_Garbage(t *testing.T) {
	resolve := resolverFor(map[string]float64{"foo": 257.6})

	garbage := []string{
		"smaller(17 foo 18) * [foo (bar smaller **",
		"+ + +",
		"(",
	}
	for _, in := range garbage {
		assert.True(t, IsInvalid(EvalWith(in, resolve)), "input %q", in)
	}
}

// TestEval_Empty tests that the empty expression is invalid.
func TestEval_Empty(t *testing.T) {
	assert.True(t, IsInvalid(Eval("")))
}
