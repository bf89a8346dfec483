package harness

import (
	"github.com/tmaxa/partscript/internal/engine"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/world"
)

// EffectRecord is one applied action as seen by the effects sink.
type EffectRecord struct {
	Tick      int64  `json:"tick"`
	ThingName string `json:"thing_name"`
	PartID    string `json:"part_id"`
	Kind      string `json:"kind"`
}

// RecordingEffects captures every applied action in order, for
// assertions and golden snapshots. The harness advances the tick stamp
// between engine ticks; the recorder itself has no clock.
type RecordingEffects struct {
	tick      int64
	Records   []EffectRecord
	AbuseCues int
}

// NewRecordingEffects returns an empty recorder.
func NewRecordingEffects() *RecordingEffects {
	return &RecordingEffects{Records: []EffectRecord{}}
}

// SetTick stamps subsequent records with the given tick.
func (r *RecordingEffects) SetTick(tick int64) { r.tick = tick }

// Apply records the action.
func (r *RecordingEffects) Apply(part *world.ThingPart, act rule.Action) {
	r.Records = append(r.Records, EffectRecord{
		Tick:      r.tick,
		ThingName: part.Owner().Name,
		PartID:    part.ID,
		Kind:      string(act.Kind()),
	})
}

// AbuseCue counts throttle notifications.
func (r *RecordingEffects) AbuseCue() { r.AbuseCues++ }

// CountKind returns how many recorded actions have the given kind.
func (r *RecordingEffects) CountKind(kind string) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Kind == kind {
			n++
		}
	}
	return n
}

// MemoryTracer collects firings in order.
type MemoryTracer struct {
	Firings []engine.Firing
}

// NewMemoryTracer returns an empty tracer.
func NewMemoryTracer() *MemoryTracer {
	return &MemoryTracer{Firings: []engine.Firing{}}
}

// Record appends the firing.
func (t *MemoryTracer) Record(f engine.Firing) {
	t.Firings = append(t.Firings, f)
}
