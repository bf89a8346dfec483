package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalize_CollapsesKeywords tests multi-word phrase collapsing.
func TestNormalize_CollapsesKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"when touched then tell nearby go", "when touches then tell_nearby go"},
		{"when told hi then tell any web data", "when told hi then tell_any_web data"},
		{"when blown at then become 2", "when blown_at then become 2"},
		{"when any part touches then play bump", "when any_part_touches then play bump"},
		{"when touched then set constant rotation to 1 2 3", "when touches then set_constant_rotation_to 1 2 3"},
		{"when someone new in vicinity then play hello", "when someone_new_in_vicinity then play hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in, 9), "input %q", tt.in)
	}
}

// TestNormalize_Idempotent tests that normalizing twice changes nothing.
func TestNormalize_Idempotent(t *testing.T) {
	lines := []string{
		"when touched then play bump, become 2 in 1s",
		"when told hi then tell nearby go",
		"when starts then set light intensity to 50",
	}
	for _, line := range lines {
		once := Normalize(line, 9)
		assert.Equal(t, once, Normalize(once, 9), "line %q", line)
	}
}

// TestNormalize_Lowercases tests case folding, and the exemptions for
// case-sensitive payloads.
func TestNormalize_Lowercases(t *testing.T) {
	assert.Equal(t, "when touches then play bump", Normalize("When Touched then Play Bump", 9))

	// Video ids and URLs must keep their case.
	got := Normalize(`when touched then show video [youtube: AbCdEf]`, 9)
	assert.Equal(t, `when touches then show_video [youtube: AbCdEf]`, got)
}

// TestNormalize_LegacyRewrites tests the compatibility phrase table.
func TestNormalize_LegacyRewrites(t *testing.T) {
	assert.Equal(t,
		"when hitting then play bump",
		Normalize("when hit then play bump", 9))
	assert.Equal(t,
		"when touches then all parts turn invisible",
		Normalize("when touched then turn all parts invisible", 9))
	assert.Equal(t,
		"when told_by_body dialog own profile opened then play bump",
		Normalize("when told by body dialog me opened then play bump", 9))
}

// TestNormalize_TellInFrontVersionGate tests that "tell in front" only
// collapses for format version 8 and newer.
func TestNormalize_TellInFrontVersionGate(t *testing.T) {
	line := "when touched then tell in front go"
	assert.Contains(t, Normalize(line, 9), "tell_in_front")
	assert.NotContains(t, Normalize(line, 7), "tell_in_front")
}

// TestNormalize_SayCommaShield tests that commas after a say action are
// shielded from the sentence split.
func TestNormalize_SayCommaShield(t *testing.T) {
	got := Normalize("when touched then say hello, world", 9)
	assert.NotContains(t, got, ", world")
	assert.Contains(t, got, commaToken)
}

// TestEscapeCommasInQuotes tests comma shielding inside quoted text.
func TestEscapeCommasInQuotes(t *testing.T) {
	got := escapeCommasInQuotes(`when touched then type "a, b", play bump`)
	assert.Equal(t, `when touched then type "a`+commaToken+` b", play bump`, got)
}
