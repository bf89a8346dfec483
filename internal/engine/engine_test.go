package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxa/partscript/internal/config"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/world"
)

// recorder collects applied actions and abuse cues.
type recorder struct {
	kinds []rule.ActionKind
	cues  int
}

func (r *recorder) Apply(_ *world.ThingPart, act rule.Action) {
	r.kinds = append(r.kinds, act.Kind())
}

func (r *recorder) AbuseCue() { r.cues++ }

func (r *recorder) count(kind rule.ActionKind) int {
	n := 0
	for _, k := range r.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

// memTracer keeps firings in memory.
type memTracer struct {
	firings []Firing
}

func (m *memTracer) Record(f Firing) { m.firings = append(m.firings, f) }

func (m *memTracer) events() []string {
	out := make([]string, len(m.firings))
	for i, f := range m.firings {
		out[i] = f.Event
	}
	return out
}

func newTestEngine(w *world.World, opts ...Option) (*Engine, *recorder, *memTracer) {
	rec := &recorder{}
	tracer := &memTracer{}
	opts = append([]Option{
		WithEffects(rec),
		WithTracer(tracer),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(w, config.Default(), opts...), rec, tracer
}

func TestEngine_StartFiresWhenStarts(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("chime", 9)
	thing.AddPart("p1", []string{
		"when starts then play bump",
		"when touched then play bump",
	})
	w.AddThing(thing)

	eng, rec, tracer := newTestEngine(w)
	eng.Start()

	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
	require.Len(t, tracer.firings, 1)
	assert.Equal(t, "starts", tracer.firings[0].Event)
	assert.Equal(t, "chime", tracer.firings[0].ThingName)
	assert.Equal(t, int64(1), tracer.firings[0].Seq)
}

func TestEngine_TouchRunsEnteredStatesStarts(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("door", 9)
	part := thing.AddPart("p1",
		[]string{"when touched then become 2"},
		[]string{"when starts then play bump"},
	)
	w.AddThing(thing)

	eng, rec, tracer := newTestEngine(w)
	eng.Touch(thing, nil)

	assert.Equal(t, 1, part.Current)
	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
	assert.Equal(t, []string{"touches", "starts"}, tracer.events())
}

func TestEngine_BecomeChainIsBounded(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("flipper", 9)
	part := thing.AddPart("p1",
		[]string{
			"when touched then become untweened 2",
			"when starts then become untweened 2",
		},
		[]string{"when starts then become untweened 1"},
	)
	w.AddThing(thing)

	eng, rec, _ := newTestEngine(w)
	eng.Touch(thing, nil)

	// The chain flips between the two states until the depth bound stops
	// it; the test completing at all is the point.
	assert.Equal(t, 0, part.Current)
	assert.Equal(t, maxBecomeDepth+1, rec.count(rule.KindBecome))
}

func TestEngine_TellSelf(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("radio", 9)
	thing.AddPart("sender", []string{"when touched then tell ping"})
	thing.AddPart("receiver", []string{"when told ping then play bump"})
	w.AddThing(thing)

	eng, rec, _ := newTestEngine(w)
	eng.Touch(thing, nil)

	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
}

func TestEngine_TellNearbyRespectsRadius(t *testing.T) {
	w := world.New("test area")
	sender := world.NewThing("sender", 9)
	sender.AddPart("p1", []string{"when touched then tell nearby ping"})
	w.AddThing(sender)

	near := world.NewThing("near", 9)
	near.Position = world.Vec3{X: 5}
	near.AddPart("p1", []string{"when told by nearby ping then play bump"})
	w.AddThing(near)

	far := world.NewThing("far", 9)
	far.Position = world.Vec3{X: 50}
	far.AddPart("p1", []string{"when told by nearby ping then play bump"})
	w.AddThing(far)

	eng, rec, _ := newTestEngine(w)
	eng.Touch(sender, nil)

	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
}

func TestEngine_TellFirstOfAnyStopsAtFirstHandler(t *testing.T) {
	w := world.New("test area")
	sender := world.NewThing("sender", 9)
	sender.AddPart("p1", []string{"when touched then tell first of any ping"})
	w.AddThing(sender)

	// Closest thing has no handler and is skipped.
	deaf := world.NewThing("deaf", 9)
	deaf.Position = world.Vec3{X: 1}
	deaf.AddPart("p1", []string{"when touched then play bump"})
	w.AddThing(deaf)

	first := world.NewThing("first", 9)
	first.Position = world.Vec3{X: 2}
	first.AddPart("p1", []string{"when told by any ping then play bump"})
	w.AddThing(first)

	second := world.NewThing("second", 9)
	second.Position = world.Vec3{X: 3}
	second.AddPart("p1", []string{"when told by any ping then play bump"})
	w.AddThing(second)

	eng, rec, _ := newTestEngine(w)
	eng.Touch(sender, nil)

	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
}

func TestEngine_TellBudgetDropsOverflow(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("spammer", 9)
	thing.AddPart("p1", []string{"when touched then tell a, tell b"})
	thing.AddPart("p2", []string{
		"when told a then play bump",
		"when told b then play bump",
	})
	w.AddThing(thing)

	cfg := config.Default()
	cfg.MaxTellsPerTick = 1
	rec := &recorder{}
	eng := New(w, cfg,
		WithEffects(rec),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	eng.Touch(thing, nil)

	assert.Equal(t, 1, rec.count(rule.KindPlaySound), "second tell exceeds the tick budget")
}

func TestEngine_SetVariableFansOutChange(t *testing.T) {
	w := world.New("test area")
	counter := world.NewThing("counter", 9)
	counter.AddPart("p1", []string{"when touched then is area.gold = area.gold + 1"})
	w.AddThing(counter)

	watcher := world.NewThing("watcher", 9)
	watcher.AddPart("p1", []string{"when is area.gold > 0 then play bump"})
	w.AddThing(watcher)

	eng, rec, _ := newTestEngine(w)
	eng.Touch(counter, nil)

	gold, ok := w.Area.Vars.Get("area.gold")
	require.True(t, ok)
	assert.Equal(t, 1.0, gold)
	assert.Equal(t, 1, rec.count(rule.KindPlaySound))

	// Setting the same value again is not a change.
	rec.kinds = nil
	counter.Vars.Reset()
	w.Area.Vars.Set("area.gold", 2)
	counter.Parts[0].SetScript(0, []string{"when touched then is area.gold = 2"})
	eng.Touch(counter, nil)
	assert.Zero(t, rec.count(rule.KindPlaySound))
}

func TestEngine_VariableConditionUsesThingScopeFirst(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("gate", 9)
	thing.AddPart("p1", []string{
		"when touched then is unlocked = 1",
		"when is unlocked = 1 then play bump",
	})
	w.AddThing(thing)

	eng, rec, _ := newTestEngine(w)
	eng.Touch(thing, nil)

	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
	value, ok := thing.Vars.Get("unlocked")
	require.True(t, ok)
	assert.Equal(t, 1.0, value)
}

func TestEngine_ValueFilterComparesPayload(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("lock", 9)
	thing.AddPart("p1", []string{"when told and is 5 then play bump"})
	w.AddThing(thing)

	eng, rec, _ := newTestEngine(w)
	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "5.0"})
	assert.Equal(t, 1, rec.count(rule.KindPlaySound), "numeric payloads compare as numbers")

	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "6"})
	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
}

func TestEngine_ValueFilterComparatorReadsVariable(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("scorekeeper", 9)
	thing.AddPart("p1", []string{"when told score and is > 5 then play bump"})
	w.AddThing(thing)

	eng, rec, _ := newTestEngine(w)

	thing.Vars.Set("score", 3)
	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "score"})
	assert.Zero(t, rec.count(rule.KindPlaySound))

	thing.Vars.Set("score", 7)
	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "score"})
	assert.Equal(t, 1, rec.count(rule.KindPlaySound))
}

func TestEngine_AnyStateRulesFireFromEveryState(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("door", 9)
	part := thing.AddPart("p1",
		[]string{"when any state told open then become 2"},
		[]string{},
		[]string{},
	)
	w.AddThing(thing)

	eng, _, _ := newTestEngine(w)
	part.SetState(2)
	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "open"})

	assert.Equal(t, 1, part.Current)
}

func TestEngine_HearRespectsHeadRadius(t *testing.T) {
	w := world.New("test area")
	near := world.NewThing("near", 9)
	near.AddPart("p1", []string{
		"when hears hello then play bump",
		"when hears anywhere hello then play munch",
	})
	w.AddThing(near)

	far := world.NewThing("far", 9)
	far.Position = world.Vec3{X: 100}
	far.AddPart("p1", []string{
		"when hears hello then play bump",
		"when hears anywhere hello then play munch",
	})
	w.AddThing(far)

	person := world.NewPerson("philipp")
	w.AddPerson(person)

	eng, rec, _ := newTestEngine(w)
	eng.Hear(person, "hello")

	assert.Equal(t, 3, rec.count(rule.KindPlaySound), "one hears, two hears-anywhere")
}

func TestEngine_PositionEvents(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("statue", 9)
	thing.AddPart("p1", []string{
		"when someone in vicinity then play a",
		"when someone new in vicinity then play b",
		"when neared then play c",
		"when walked into then play d",
	})
	w.AddThing(thing)

	person := world.NewPerson("philipp")
	person.Position = world.Vec3{X: 5}
	w.AddPerson(person)

	eng, _, tracer := newTestEngine(w)

	// In vicinity but not close enough for neared or walked-into.
	eng.BeginTick()
	assert.ElementsMatch(t, []string{"someone_new_in_vicinity", "someone_in_vicinity"}, tracer.events())

	// The new-in-vicinity trigger is one-shot.
	tracer.firings = nil
	eng.BeginTick()
	assert.Equal(t, []string{"someone_in_vicinity"}, tracer.events())

	// Right next to it everything fires.
	tracer.firings = nil
	person.Position = world.Vec3{X: 1}
	eng.BeginTick()
	assert.Equal(t, []string{"walked_into", "neared", "someone_in_vicinity"}, tracer.events())
}

func TestEngine_ResetAreaClearsVariablesAndStates(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("board", 9)
	part := thing.AddPart("p1",
		[]string{"when told wipe then reset area"},
		[]string{},
	)
	w.AddThing(thing)

	thing.Vars.Set("gold", 9)
	w.Area.Vars.Set("area.gold", 9)
	part.SetState(1)

	eng, _, _ := newTestEngine(w)
	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "wipe"})

	assert.Equal(t, 0, part.Current)
	_, ok := thing.Vars.Get("gold")
	assert.False(t, ok)
	_, ok = w.Area.Vars.Get("area.gold")
	assert.False(t, ok)
}

func TestEngine_AbuseCueAfterCooldown(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("spinner", 9)
	thing.AddPart("p1", []string{"when touched then is n = n + 1"})
	w.AddThing(thing)

	cfg := config.Default()
	cfg.MaxCalcsPerTick = 1
	cfg.MaxLimitHits = 0
	cfg.CalcCooldownSeconds = 0.15
	rec := &recorder{}
	eng := New(w, cfg,
		WithEffects(rec),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	eng.BeginTick()
	eng.Touch(thing, nil)

	// Cooldown has not passed after one tick.
	eng.BeginTick()
	assert.Zero(t, rec.cues)

	// Two ticks of 0.1s exceed the 0.15s cooldown.
	eng.BeginTick()
	assert.Equal(t, 1, rec.cues)
}

// sayCapture records spoken text alongside the usual action kinds.
type sayCapture struct {
	recorder
	texts []string
}

func (s *sayCapture) Apply(part *world.ThingPart, act rule.Action) {
	if say, ok := act.(rule.Say); ok {
		s.texts = append(s.texts, say.Text)
	}
	s.recorder.Apply(part, act)
}

func TestEngine_SayExpandsVariablePlaceholders(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("counter", 9)
	thing.AddPart("p1", []string{
		"when told add then is gold = gold + 5",
		"when touched then say you have [gold value] gold",
	})
	w.AddThing(thing)

	captured := &sayCapture{}
	eng, _, _ := newTestEngine(w, WithEffects(captured))

	eng.BeginTick()
	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "add"})
	eng.Touch(thing, nil)

	require.Len(t, captured.texts, 1)
	assert.Equal(t, "you have 5 gold", captured.texts[0])
}

func TestEngine_ToldPayloadCarriesValueForFilter(t *testing.T) {
	w := world.New("test area")
	thing := world.NewThing("button", 9)
	thing.AddPart("p1", []string{"when told button_pressed and is 5 then tell hello"})
	w.AddThing(thing)

	eng, rec, _ := newTestEngine(w)

	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "button_pressed 5"})
	assert.Equal(t, 1, rec.count(rule.KindTell))

	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "button_pressed 6"})
	assert.Equal(t, 1, rec.count(rule.KindTell), "wrong carried value must not match")

	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "button_pressed"})
	assert.Equal(t, 1, rec.count(rule.KindTell), "payload without a value must not match")

	eng.TriggerThing(thing, Event{Kind: rule.OnTold, Arg: "other_button 5"})
	assert.Equal(t, 1, rec.count(rule.KindTell), "argument must still match")
}

func TestEngine_TurnUncollidableLeavesInFrontRay(t *testing.T) {
	w := world.New("test area")

	button := world.NewThing("button", 9)
	button.AddPart("p1", []string{"when touched then tell in front ping"})
	w.AddThing(button)

	wall := world.NewThing("wall", 9)
	wp := wall.AddPart("p2", []string{
		"when told by any ping then play bump",
		"when told by any shut then turn thing uncollidable",
		"when told by any wipe then reset area",
	})
	wall.Position = world.Vec3{Z: 2}
	wp.Position = world.Vec3{Z: 2}
	w.AddThing(wall)

	eng, rec, _ := newTestEngine(w)

	eng.Touch(button, nil)
	assert.Equal(t, 1, rec.count(rule.KindPlaySound))

	eng.TriggerThing(wall, Event{Kind: rule.OnToldByAny, Arg: "shut"})
	require.True(t, wall.TurnedUncollidable)

	eng.Touch(button, nil)
	assert.Equal(t, 1, rec.count(rule.KindPlaySound), "uncollidable walls drop out of the ray")

	eng.TriggerThing(wall, Event{Kind: rule.OnToldByAny, Arg: "wipe"})
	assert.False(t, wall.TurnedUncollidable, "area reset restores collidability")

	eng.Touch(button, nil)
	assert.Equal(t, 2, rec.count(rule.KindPlaySound))
}
