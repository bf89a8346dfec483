package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_Empty(t *testing.T) {
	var nilRule *Rule
	assert.True(t, nilRule.Empty())
	assert.True(t, (&Rule{}).Empty())
	assert.False(t, (&Rule{Event: OnTouches}).Empty())
}

func TestRule_HasVariableWork(t *testing.T) {
	assert.True(t, (&Rule{Event: OnVariableChange}).HasVariableWork())
	assert.True(t, (&Rule{
		Event:   OnTouches,
		Actions: []Action{PlaySound{}, SetVariable{Expr: "gold = 1"}},
	}).HasVariableWork())
	assert.False(t, (&Rule{
		Event:   OnTouches,
		Actions: []Action{PlaySound{}, Become{}},
	}).HasVariableWork())
}

func TestRule_HasTurnWork(t *testing.T) {
	assert.True(t, (&Rule{Actions: []Action{Turn{}}}).HasTurnWork())
	assert.False(t, (&Rule{Actions: []Action{Become{}}}).HasTurnWork())
}

// TestEventKind_RoundTrip tests that every keyword resolves to a kind
// whose String form is the keyword again.
func TestEventKind_RoundTrip(t *testing.T) {
	for word := range eventWords {
		kind, ok := EventKindForWord(word)
		assert.True(t, ok, word)
		assert.Equal(t, word, kind.String())
	}
}

func TestEventKind_Unknown(t *testing.T) {
	_, ok := EventKindForWord("frobnicated")
	assert.False(t, ok)
	assert.Equal(t, "unknown", EventKind(999).String())
}
