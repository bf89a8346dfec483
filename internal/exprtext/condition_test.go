package exprtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxa/partscript/internal/vars"
)

// TestSplitComparator tests comparator extraction, including the
// two-character forms that contain a one-character comparator.
func TestSplitComparator(t *testing.T) {
	tests := []struct {
		in    string
		left  string
		op    string
		right string
	}{
		{"gold >= 5", "gold", ">=", "5"},
		{"gold <= 5", "gold", "<=", "5"},
		{"gold =< 5", "gold", "=<", "5"},
		{"gold == 5", "gold", "==", "5"},
		{"gold <> 5", "gold", "<>", "5"},
		{"gold != 5", "gold", "!=", "5"},
		{"gold >< 5", "gold", "><", "5"},
		{"gold = 5", "gold", "=", "5"},
		{"gold < 5", "gold", "<", "5"},
		{"a + 1 > b * 2", "a + 1", ">", "b * 2"},
	}
	for _, tt := range tests {
		left, op, right, found := SplitComparator(tt.in)
		require.True(t, found, "input %q", tt.in)
		assert.Equal(t, tt.left, left, "input %q", tt.in)
		assert.Equal(t, tt.op, op, "input %q", tt.in)
		assert.Equal(t, tt.right, right, "input %q", tt.in)
	}

	_, _, _, found := SplitComparator("no comparator here")
	assert.False(t, found)
}

// TestCompare tests comparator semantics including the alias forms.
func TestCompare(t *testing.T) {
	assert.True(t, Compare("=", 5, 5))
	assert.True(t, Compare("==", 5, 5))
	assert.False(t, Compare("=", 5, 6))
	assert.True(t, Compare("<>", 5, 6))
	assert.True(t, Compare("><", 5, 6))
	assert.True(t, Compare("!=", 5, 6))
	assert.True(t, Compare("<=", 5, 5))
	assert.True(t, Compare("=<", 4, 5))
	assert.True(t, Compare(">=", 5, 5))
	assert.True(t, Compare("=>", 6, 5))
	assert.True(t, Compare("<", 4, 5))
	assert.True(t, Compare(">", 6, 5))
}

// TestCompare_InvalidOperands tests that an invalid side always fails.
func TestCompare_InvalidOperands(t *testing.T) {
	assert.False(t, Compare("=", Invalid, Invalid))
	assert.False(t, Compare("<>", Invalid, 5))
	assert.False(t, Compare("<", 5, Invalid))
}

// TestMatchCondition tests both the comparator form and the bare
// nonzero form.
func TestMatchCondition(t *testing.T) {
	resolve := resolverFor(map[string]float64{"gold": 6})

	assert.True(t, MatchCondition("gold >= 5", resolve))
	assert.False(t, MatchCondition("gold > 6", resolve))
	assert.True(t, MatchCondition("gold", resolve))
	assert.False(t, MatchCondition("missing", resolve), "absent resolves to zero")
	assert.False(t, MatchCondition("[garbage", resolve))
}

// TestParseAssignment tests assignment splitting and scope detection.
func TestParseAssignment(t *testing.T) {
	a, ok := ParseAssignment("gold = gold + 1")
	require.True(t, ok)
	assert.Equal(t, "gold", a.Name)
	assert.Equal(t, vars.ScopeThing, a.Scope)
	assert.Equal(t, "gold + 1", a.Expr)

	a, ok = ParseAssignment("area.gold = 7")
	require.True(t, ok)
	assert.Equal(t, "area.gold", a.Name)
	assert.Equal(t, vars.ScopeArea, a.Scope)

	a, ok = ParseAssignment("person.score = score * 2")
	require.True(t, ok)
	assert.Equal(t, vars.ScopePerson, a.Scope)
}

// TestParseAssignment_Rejections tests the shapes that are not
// assignments.
func TestParseAssignment_Rejections(t *testing.T) {
	rejected := []string{
		"gold == 5",     // comparison, not assignment
		"gold >= 5",
		"= 5",           // no target
		"gold =",        // no expression
		"true = 5",      // reserved target
		"2gold = 5",     // invalid name
		"no assignment",
	}
	for _, in := range rejected {
		_, ok := ParseAssignment(in)
		assert.False(t, ok, "input %q", in)
	}
}
