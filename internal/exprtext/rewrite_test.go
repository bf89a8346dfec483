package exprtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolverFor(values map[string]float64) Resolver {
	return func(name string) (float64, bool) {
		v, ok := values[name]
		return v, ok
	}
}

// TestAddSpaces tests token boundary insertion.
func TestAddSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo+1", "foo + 1"},
		{"foo + 1", "foo + 1"},
		{"smaller(23 17)", "smaller ( 23 17 )"},
		{"area.gold*2", "area.gold * 2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AddSpaces(tt.in), "input %q", tt.in)
	}
}

// TestSubstitute_Variables tests variable replacement with values and
// the zero default for absent names.
func TestSubstitute_Variables(t *testing.T) {
	resolve := resolverFor(map[string]float64{
		"foo":       257.6,
		"area.gold": 6,
	})

	tests := []struct {
		in   string
		want string
	}{
		{"foo + 1", "257.6 + 1"},
		{"area.gold + 1", "6 + 1"},
		{"missing + 1", "0 + 1"},
		{"smaller(23 17)", "smaller(23, 17)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Substitute(tt.in, resolve), "input %q", tt.in)
	}
}

// TestSubstitute_PlusMinusCleanup tests that adding a negative literal
// collapses to a subtraction.
func TestSubstitute_PlusMinusCleanup(t *testing.T) {
	resolve := resolverFor(map[string]float64{"foo": 5})
	assert.Equal(t, "5 - 2", Substitute("foo + -2", resolve))
}

// TestSubstitute_CallNamesSurvive tests that function names are never
// substituted even when a variable shares the name.
func TestSubstitute_CallNamesSurvive(t *testing.T) {
	resolve := resolverFor(map[string]float64{"floor": 99, "foo": 10})
	got := Substitute("floor(foo)", resolve)
	assert.Equal(t, "floor(10)", got)
}
