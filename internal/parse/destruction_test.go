package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmaxa/partscript/internal/rule"
)

// TestParseActions_DestroyDefaults tests the bare destroy keyword.
func TestParseActions_DestroyDefaults(t *testing.T) {
	destroy := firstAction(t, "when touched then destroy all parts").(rule.DestroySelf)
	d := destroy.Destruction
	assert.False(t, d.Burst)
	assert.True(t, d.Gravity)
	assert.True(t, d.Collides)
	assert.True(t, d.CollidesSiblings)
}

// TestParseActions_DestroyModifiers tests the modifier grammar and its
// clamps.
func TestParseActions_DestroyModifiers(t *testing.T) {
	destroy := firstAction(t, "when touched then destroy all parts with 5000 force 20 parts bouncy").(rule.DestroySelf)
	d := destroy.Destruction
	assert.True(t, d.Burst)
	assert.Equal(t, 1000.0, d.BurstVelocity)
	assert.Equal(t, 20, d.MaxParts)
	assert.True(t, d.Bouncy)

	destroy = firstAction(t, "when touched then destroy all parts with gravity-free uncollidable self-uncollidable").(rule.DestroySelf)
	d = destroy.Destruction
	assert.False(t, d.Gravity)
	assert.False(t, d.Collides)
	assert.False(t, d.CollidesSiblings)

	destroy = firstAction(t, "when touched then destroy all parts with 500 parts 0.01 disappear").(rule.DestroySelf)
	d = destroy.Destruction
	assert.Equal(t, 250, d.MaxParts)
	assert.Equal(t, 0.1, d.HidePartsSeconds)
}

// TestParseActions_DestroyGrowShrink tests the growth sign flip.
func TestParseActions_DestroyGrowShrink(t *testing.T) {
	destroy := firstAction(t, "when touched then destroy all parts with 2 grow").(rule.DestroySelf)
	assert.Equal(t, 2.0, destroy.Destruction.Growth)

	destroy = firstAction(t, "when touched then destroy all parts with 2 shrink").(rule.DestroySelf)
	assert.Equal(t, -2.0, destroy.Destruction.Growth)
}

// TestParseActions_DestroyRestore tests that restore keeps the object
// breakable without forcing a burst.
func TestParseActions_DestroyRestore(t *testing.T) {
	destroy := firstAction(t, "when touched then destroy all parts with 3s restore").(rule.DestroySelf)
	assert.Equal(t, 3.0, destroy.Destruction.RestoreInSeconds)
	assert.False(t, destroy.Destruction.Burst)
}

// TestParseActions_DestroyNearby tests search bound parsing.
func TestParseActions_DestroyNearby(t *testing.T) {
	destroy := firstAction(t, "when touched then destroy nearby").(rule.DestroyNearby)
	assert.Equal(t, 5.0, destroy.Destruction.Radius)
	assert.Equal(t, 10000.0, destroy.Destruction.MaxThingSize)

	destroy = firstAction(t, "when touched then destroy nearby with 2m radius 4m max-size").(rule.DestroyNearby)
	assert.Equal(t, 2.0, destroy.Destruction.Radius)
	assert.Equal(t, 4.0, destroy.Destruction.MaxThingSize)

	destroy = firstAction(t, "when touched then destroy nearby with 99999 radius").(rule.DestroyNearby)
	assert.Equal(t, 10000.0, destroy.Destruction.Radius)
}

// TestParseActions_TrailStart tests trail parameter parsing.
func TestParseActions_TrailStart(t *testing.T) {
	trail := firstAction(t, "when touched then trail start").(rule.Trail)
	assert.True(t, trail.Start)

	trail = firstAction(t, "when touched then trail start with thick-start 5s").(rule.Trail)
	assert.True(t, trail.ThickStart)
	assert.Equal(t, 5.0, trail.DurationSeconds)

	trail = firstAction(t, "when touched then trail start with 500s").(rule.Trail)
	assert.Equal(t, rule.MaxTrailDurationSeconds, trail.DurationSeconds)

	trail = firstAction(t, "when touched then trail end").(rule.Trail)
	assert.False(t, trail.Start)
}

// TestParseActions_Project tests projection parameter parsing.
func TestParseActions_Project(t *testing.T) {
	project := firstAction(t, "when starts then project").(rule.Project)
	assert.Equal(t, rule.Project{}, project)

	project = firstAction(t, "when starts then project with 150% reach 2 default 8 max alignment").(rule.Project)
	assert.InDelta(t, 1.5, project.RelativeReach, 1e-9)
	assert.Equal(t, 2.0, project.DefaultDistance)
	assert.Equal(t, 8.0, project.MaxDistance)
	assert.Equal(t, rule.ProjectAlignTowardsSurface, project.Align)
}

// TestParseActions_ShowLine tests width parsing.
func TestParseActions_ShowLine(t *testing.T) {
	line := firstAction(t, "when starts then show line with 2 width").(rule.ShowLine)
	assert.Equal(t, 2.0, line.StartWidth)
	assert.Equal(t, 2.0, line.EndWidth)

	line = firstAction(t, "when starts then show line with 1 start-width 50 end-width").(rule.ShowLine)
	assert.Equal(t, 1.0, line.StartWidth)
	assert.Equal(t, rule.MaxLineWidth, line.EndWidth)
}
