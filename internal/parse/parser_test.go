package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxa/partscript/internal/rule"
)

// TestParseLine_TouchPlayBecome tests the canonical two-action line.
func TestParseLine_TouchPlayBecome(t *testing.T) {
	r := ParseLine("when touched then play bump, become 2 in 1s", Context{Version: 9})
	require.False(t, r.Empty())

	assert.Equal(t, rule.OnTouches, r.Event)
	assert.Empty(t, r.EventArg)
	require.Len(t, r.Actions, 2)

	play, ok := r.Actions[0].(rule.PlaySound)
	require.True(t, ok)
	assert.Equal(t, "bump", play.Sound.Name)
	assert.Equal(t, 1.0, play.Sound.Volume)

	become, ok := r.Actions[1].(rule.Become)
	require.True(t, ok)
	assert.Equal(t, 1, become.Target, "state numbers are 1-based in script text")
	assert.Equal(t, 1.0, become.Seconds)
	assert.Equal(t, -1, become.ViaState)
}

// TestParseLine_SharedWhenClause tests that every comma sentence after
// the first inherits the trigger.
func TestParseLine_SharedWhenClause(t *testing.T) {
	r := ParseLine("when told go then play bump, tell nearby advance, become next", Context{Version: 9})
	require.False(t, r.Empty())

	assert.Equal(t, rule.OnTold, r.Event)
	assert.Equal(t, "go", r.EventArg)
	require.Len(t, r.Actions, 3)

	tell, ok := r.Actions[1].(rule.Tell)
	require.True(t, ok)
	assert.Equal(t, rule.TellNearby, tell.Via)
	assert.Equal(t, "advance", tell.Data)

	become, ok := r.Actions[2].(rule.Become)
	require.True(t, ok)
	assert.Equal(t, rule.RelativeNext, become.Relative)
}

// TestParseLine_NoThen tests that a line without a then-clause yields
// nothing.
func TestParseLine_NoThen(t *testing.T) {
	r := ParseLine("when touched play bump", Context{Version: 9})
	assert.True(t, r.Empty())
}

// TestParseLine_UnknownTrigger tests that an unresolvable when-clause
// discards the whole line.
func TestParseLine_UnknownTrigger(t *testing.T) {
	r := ParseLine("when frobnicated then play bump", Context{Version: 9})
	assert.True(t, r.Empty())
}

// TestParseLine_ValueFilter tests the " and is " filter split.
func TestParseLine_ValueFilter(t *testing.T) {
	r := ParseLine("when told score and is > 5 then play fanfare", Context{Version: 9})
	require.False(t, r.Empty())

	assert.Equal(t, rule.OnTold, r.Event)
	assert.Equal(t, "score", r.EventArg)
	assert.Equal(t, "> 5", r.ValueFilter)
}

// TestParseLine_VariableChange tests the when-is trigger and is-action.
func TestParseLine_VariableChange(t *testing.T) {
	r := ParseLine("when is gold > 5 then play fanfare", Context{Version: 9})
	require.False(t, r.Empty())
	assert.Equal(t, rule.OnVariableChange, r.Event)
	assert.Equal(t, "gold > 5", r.EventArg)

	r = ParseLine("when touched then is gold = gold + 1", Context{Version: 9})
	require.False(t, r.Empty())
	require.Len(t, r.Actions, 1)
	set, ok := r.Actions[0].(rule.SetVariable)
	require.True(t, ok)
	assert.Equal(t, "gold = gold + 1", set.Expr)
}

// TestParseLine_AnyState tests the when-any-state flag.
func TestParseLine_AnyState(t *testing.T) {
	r := ParseLine("when any state touched then play bump", Context{Version: 9})
	require.False(t, r.Empty())
	assert.True(t, r.AnyState)
	assert.Equal(t, rule.OnTouches, r.Event)
}

// TestParseLine_QuotedCommaSurvives tests that a comma inside quotes
// does not split the sentence.
func TestParseLine_QuotedCommaSurvives(t *testing.T) {
	r := ParseLine(`when touched then write "a, b"`, Context{Version: 9})
	require.False(t, r.Empty())
	require.Len(t, r.Actions, 1)

	write, ok := r.Actions[0].(rule.WriteText)
	require.True(t, ok)
	assert.Contains(t, write.Text, ",")
}

// TestParseLine_SayKeepsCommas tests the say comma shield end to end.
func TestParseLine_SayKeepsCommas(t *testing.T) {
	r := ParseLine("when touched then say hello, world", Context{Version: 9})
	require.False(t, r.Empty())
	require.Len(t, r.Actions, 1)

	say, ok := r.Actions[0].(rule.Say)
	require.True(t, ok)
	assert.Equal(t, "hello, world", say.Text)
}

// TestParseLine_ThenInsidePayload tests that only the first " then "
// splits the clause.
func TestParseLine_ThenInsidePayload(t *testing.T) {
	r := ParseLine(`when touched then type "when touched then play bump"`, Context{Version: 9})
	require.False(t, r.Empty())
	require.Len(t, r.Actions, 1)

	typed, ok := r.Actions[0].(rule.TypeText)
	require.True(t, ok)
	assert.Contains(t, typed.Text, "then play bump")
}

// TestParseLine_BodyDialogNames tests dialog name collapsing on body
// tell triggers.
func TestParseLine_BodyDialogNames(t *testing.T) {
	r := ParseLine("when told by body dialog own profile opened then play bump", Context{Version: 9})
	require.False(t, r.Empty())
	assert.Equal(t, rule.OnToldByBody, r.Event)
	assert.Equal(t, "dialog ownprofile opened", r.EventArg)
}

// TestParseLine_TellWebLegacyExpansion tests the pre-v6 web tell
// compatibility expansion.
func TestParseLine_TellWebLegacyExpansion(t *testing.T) {
	r := ParseLine("when touched then tell web refresh", Context{Version: 5})
	require.False(t, r.Empty())
	require.Len(t, r.Actions, 2)

	first := r.Actions[0].(rule.Tell)
	second := r.Actions[1].(rule.Tell)
	assert.Equal(t, rule.TellSelf, first.Via)
	assert.Equal(t, "webrefresh", first.Data)
	assert.Equal(t, "web refresh", second.Data)

	r = ParseLine("when touched then tell web refresh", Context{Version: 9})
	require.Len(t, r.Actions, 1)
	assert.Equal(t, rule.TellWeb, r.Actions[0].(rule.Tell).Via)
}

// TestParseLine_EmptyLine tests blank input.
func TestParseLine_EmptyLine(t *testing.T) {
	assert.True(t, ParseLine("", Context{}).Empty())
	assert.True(t, ParseLine("   ", Context{}).Empty())
}
