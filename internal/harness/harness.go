// Package harness runs declarative scenarios against the script engine.
//
// A scenario builds a world from YAML, runs the engine for a fixed
// number of ticks while injecting events, and validates the resulting
// firings, part states and variables. Snapshots of complete runs are
// compared against golden files for regression coverage.
package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tmaxa/partscript/internal/config"
	"github.com/tmaxa/partscript/internal/engine"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/testutil"
	"github.com/tmaxa/partscript/internal/vars"
	"github.com/tmaxa/partscript/internal/world"
)

// defaultVersion is the script format version used when a scenario
// omits one. It matches the newest format the parser knows.
const defaultVersion = 9

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every assertion held.
	Pass bool `json:"pass"`

	// Firings lists every rule firing in order.
	Firings []engine.Firing `json:"firings"`

	// Effects lists every applied action in order.
	Effects []EffectRecord `json:"effects"`

	// AbuseCues counts throttle notifications.
	AbuseCues int `json:"abuse_cues,omitempty"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	world *world.World
}

// World returns the final world, for ad-hoc inspection in tests.
func (r *Result) World() *world.World { return r.world }

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario under the default runtime limits.
//
// Each run builds a fresh world with sequentially generated IDs, so
// repeated runs produce identical traces.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(scenario, config.Default())
}

// RunWith executes a scenario under the given runtime limits.
func RunWith(scenario *Scenario, cfg config.Runtime) (*Result, error) {
	w, err := buildWorld(scenario)
	if err != nil {
		return nil, err
	}

	rec := NewRecordingEffects()
	tracer := NewMemoryTracer()
	eng := engine.New(w, cfg,
		engine.WithEffects(rec),
		engine.WithTracer(tracer),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	byTick := make(map[int64][]Step)
	for _, step := range scenario.Steps {
		byTick[step.Tick] = append(byTick[step.Tick], step)
	}

	// Tick zero is the load moment: start rules fire, then any
	// tick-zero steps run.
	rec.SetTick(0)
	eng.Start()
	for _, step := range byTick[0] {
		if err := applyStep(eng, w, step); err != nil {
			return nil, err
		}
	}

	for tick := int64(1); tick <= scenario.Ticks; tick++ {
		rec.SetTick(tick)
		eng.BeginTick()
		for _, step := range byTick[tick] {
			if err := applyStep(eng, w, step); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{
		Pass:      true,
		Firings:   tracer.Firings,
		Effects:   rec.Records,
		AbuseCues: rec.AbuseCues,
		Errors:    []string{},
		world:     w,
	}
	evaluateAssertions(scenario, result, rec)
	return result, nil
}

// buildWorld constructs the world a scenario describes.
func buildWorld(scenario *Scenario) (*world.World, error) {
	ids := testutil.NewSequentialIDs()

	area := scenario.Area
	if area == "" {
		area = "test-area"
	}
	w := world.New(area)

	for _, spec := range scenario.Things {
		version := spec.Version
		if version == 0 {
			version = defaultVersion
		}

		thing := world.NewThing(spec.Name, version)
		thing.ID = spec.ID
		if thing.ID == "" {
			thing.ID = ids.Next("thing")
		}
		thing.Position = spec.Position
		thing.Passable = spec.Passable
		thing.IncludedNameIDs = spec.IncludedNames

		for _, partSpec := range spec.Parts {
			id := partSpec.ID
			if id == "" {
				id = ids.Next("part")
			}
			part := thing.AddPart(id, partSpec.States...)
			part.Name = partSpec.Name
			part.Position = partSpec.Position
			if part.Position == (world.Vec3{}) {
				part.Position = spec.Position
			}
		}

		w.AddThing(thing)
	}

	for _, spec := range scenario.Persons {
		person := world.NewPerson(spec.Name)
		if spec.ID != "" {
			person.ID = spec.ID
		}
		person.Position = spec.Position
		person.HeadPosition = spec.Head
		if person.HeadPosition == (world.Vec3{}) {
			person.HeadPosition = spec.Position
		}
		w.AddPerson(person)
	}

	return w, nil
}

// applyStep injects one event into the running engine.
func applyStep(eng *engine.Engine, w *world.World, step Step) error {
	switch {
	case step.Touch != nil:
		thing := findThing(w, step.Touch.Thing)
		if thing == nil {
			return fmt.Errorf("touch step: unknown thing %q", step.Touch.Thing)
		}
		person := w.PersonByName(step.Touch.Person)
		eng.Touch(thing, person)

	case step.Tell != nil:
		thing := findThing(w, step.Tell.Thing)
		if thing == nil {
			return fmt.Errorf("tell step: unknown thing %q", step.Tell.Thing)
		}
		eng.TriggerThing(thing, engine.Event{Kind: rule.OnTold, Arg: step.Tell.Data})

	case step.Say != nil:
		person := w.PersonByName(step.Say.Person)
		if person == nil {
			return fmt.Errorf("say step: unknown person %q", step.Say.Person)
		}
		eng.Hear(person, step.Say.Text)

	case step.Move != nil:
		person := w.PersonByName(step.Move.Person)
		if person == nil {
			return fmt.Errorf("move step: unknown person %q", step.Move.Person)
		}
		person.Position = step.Move.Position
		person.HeadPosition = step.Move.Position

	case step.Event != nil:
		kind, ok := rule.EventKindForWord(step.Event.Kind)
		if !ok {
			return fmt.Errorf("event step: unknown event %q", step.Event.Kind)
		}
		thing := findThing(w, step.Event.Thing)
		if thing == nil {
			return fmt.Errorf("event step: unknown thing %q", step.Event.Thing)
		}
		eng.TriggerThing(thing, engine.Event{
			Kind:   kind,
			Arg:    step.Event.Arg,
			Person: w.PersonByName(step.Event.Person),
		})
	}

	return nil
}

// findThing resolves a scenario thing reference by name or ID.
func findThing(w *world.World, ref string) *world.Thing {
	for _, t := range w.Things {
		if t.Name == ref || t.ID == ref {
			return t
		}
	}
	return nil
}

// evaluateAssertions checks every assertion against the finished run.
func evaluateAssertions(scenario *Scenario, result *Result, rec *RecordingEffects) {
	for i, a := range scenario.Assertions {
		switch a.Type {
		case AssertFired:
			n := 0
			for _, f := range result.Firings {
				if f.ThingName == a.Thing && f.Event == a.Event {
					n++
				}
			}
			checkCount(result, i, a.Count, n, fmt.Sprintf("firings of %q on %q", a.Event, a.Thing))

		case AssertState:
			part := findPart(result.world, a.Thing, a.Part)
			if part == nil {
				result.AddError(fmt.Sprintf("assertions[%d]: no part %q on thing %q", i, a.Part, a.Thing))
				continue
			}
			if got := part.Current + 1; got != a.State {
				result.AddError(fmt.Sprintf("assertions[%d]: thing %q is in state %d, want %d", i, a.Thing, got, a.State))
			}

		case AssertVariable:
			store, label, err := variableStore(result.world, a)
			if err != nil {
				result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
				continue
			}
			got, _ := store.Get(vars.Normalize(a.Variable))
			if got != a.Value {
				result.AddError(fmt.Sprintf("assertions[%d]: %s %q is %v, want %v", i, label, a.Variable, got, a.Value))
			}

		case AssertEffect:
			checkCount(result, i, a.Count, rec.CountKind(a.Action), fmt.Sprintf("%q effects", a.Action))
		}
	}
}

// checkCount applies the count convention: zero means "at least once",
// anything else is exact.
func checkCount(result *Result, index, want, got int, what string) {
	if want == 0 {
		if got == 0 {
			result.AddError(fmt.Sprintf("assertions[%d]: expected %s, got none", index, what))
		}
		return
	}
	if got != want {
		result.AddError(fmt.Sprintf("assertions[%d]: %d %s, want %d", index, got, what, want))
	}
}

// findPart resolves a part reference on a thing. An empty ref means the
// thing's first part.
func findPart(w *world.World, thingRef, partRef string) *world.ThingPart {
	thing := findThing(w, thingRef)
	if thing == nil || len(thing.Parts) == 0 {
		return nil
	}
	if partRef == "" {
		return thing.Parts[0]
	}
	for _, p := range thing.Parts {
		if p.ID == partRef || p.Name == partRef {
			return p
		}
	}
	return nil
}

// variableStore picks the store an assertion's variable lives in.
func variableStore(w *world.World, a Assertion) (*vars.Store, string, error) {
	switch {
	case a.Thing != "":
		thing := findThing(w, a.Thing)
		if thing == nil {
			return nil, "", fmt.Errorf("unknown thing %q", a.Thing)
		}
		return thing.Vars, "thing variable", nil
	case a.Person != "":
		person := w.PersonByName(a.Person)
		if person == nil {
			return nil, "", fmt.Errorf("unknown person %q", a.Person)
		}
		return person.Vars, "person variable", nil
	default:
		return w.Area.Vars, "area variable", nil
	}
}
