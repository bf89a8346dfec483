package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tmaxa/partscript/internal/world"
)

// Scenario defines one scripted-world conformance scenario.
// Scenarios build a world from declarative YAML, run the engine for a
// fixed number of ticks while injecting events, and assert on the
// resulting firings, states and variables.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Area is the area name the world is created with.
	Area string `yaml:"area"`

	// Ticks is how many ticks to run after the initial start pass.
	Ticks int64 `yaml:"ticks"`

	// Things describes the placed things and their scripts.
	Things []ThingSpec `yaml:"things"`

	// Persons describes the people present in the area.
	Persons []PersonSpec `yaml:"persons,omitempty"`

	// Steps injects events at specific ticks. Steps whose tick is zero
	// run before the first tick, right after the start pass.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions validate the final trace and world state.
	Assertions []Assertion `yaml:"assertions"`
}

// ThingSpec declares one thing to place in the world.
type ThingSpec struct {
	// ID is optional; omitted IDs are generated sequentially so golden
	// snapshots stay byte-identical across runs.
	ID            string            `yaml:"id,omitempty"`
	Name          string            `yaml:"name"`
	Version       int               `yaml:"version,omitempty"`
	Position      world.Vec3        `yaml:"position,omitempty"`
	Passable      bool              `yaml:"passable,omitempty"`
	IncludedNames map[string]string `yaml:"included_names,omitempty"`
	Parts         []PartSpec        `yaml:"parts"`
}

// PartSpec declares one part of a thing. States holds the script lines
// per state, in state order.
type PartSpec struct {
	ID       string     `yaml:"id,omitempty"`
	Name     string     `yaml:"name,omitempty"`
	Position world.Vec3 `yaml:"position,omitempty"`
	States   [][]string `yaml:"states"`
}

// PersonSpec declares one person in the area.
type PersonSpec struct {
	ID       string     `yaml:"id,omitempty"`
	Name     string     `yaml:"name"`
	Position world.Vec3 `yaml:"position,omitempty"`
	Head     world.Vec3 `yaml:"head,omitempty"`
}

// Step injects one event at a given tick. Exactly one of the event
// fields must be set.
type Step struct {
	Tick int64 `yaml:"tick"`

	// Touch delivers a touch to a thing, as a hand entering it would.
	Touch *TouchStep `yaml:"touch,omitempty"`

	// Tell delivers told data to a thing directly.
	Tell *TellStep `yaml:"tell,omitempty"`

	// Say makes a person speak, reaching when-hears listeners.
	Say *SayStep `yaml:"say,omitempty"`

	// Move teleports a person, so proximity triggers see the new spot.
	Move *MoveStep `yaml:"move,omitempty"`

	// Event fires an arbitrary trigger by its script keyword.
	Event *EventStep `yaml:"event,omitempty"`
}

// TouchStep identifies the touched thing and the toucher.
type TouchStep struct {
	Thing  string `yaml:"thing"`
	Person string `yaml:"person,omitempty"`
}

// TellStep carries told data to one thing.
type TellStep struct {
	Thing string `yaml:"thing"`
	Data  string `yaml:"data"`
}

// SayStep makes a person say something out loud.
type SayStep struct {
	Person string `yaml:"person"`
	Text   string `yaml:"text"`
}

// MoveStep repositions a person.
type MoveStep struct {
	Person   string     `yaml:"person"`
	Position world.Vec3 `yaml:"position"`
}

// EventStep fires a trigger by its collapsed when-clause keyword,
// e.g. "touched", "pointed_at", "told" with an arg.
type EventStep struct {
	Thing  string `yaml:"thing"`
	Kind   string `yaml:"kind"`
	Arg    string `yaml:"arg,omitempty"`
	Person string `yaml:"person,omitempty"`
}

// Assertion validates trace or final world state.
type Assertion struct {
	// Type is one of the Assert* constants below.
	Type string `yaml:"type"`

	// Thing names the thing (by spec name) for fired, state and
	// thing-scoped variable assertions.
	Thing string `yaml:"thing,omitempty"`

	// Part names the part for state assertions. Empty means the first part.
	Part string `yaml:"part,omitempty"`

	// Event is the event name for fired assertions, e.g. "touches".
	Event string `yaml:"event,omitempty"`

	// Count is the expected occurrence count for fired and effect
	// assertions.
	Count int `yaml:"count,omitempty"`

	// State is the expected 1-based state number for state assertions.
	State int `yaml:"state,omitempty"`

	// Variable is the variable name. Thing scope when Thing is set,
	// person scope when Person is set, area scope otherwise.
	Variable string `yaml:"variable,omitempty"`

	// Person names the person for person-scoped variable assertions.
	Person string `yaml:"person,omitempty"`

	// Value is the expected variable value.
	Value float64 `yaml:"value,omitempty"`

	// Action is the action kind for effect assertions, e.g. "play_sound".
	Action string `yaml:"action,omitempty"`
}

// Assertion type constants.
const (
	AssertFired    = "fired"
	AssertState    = "state"
	AssertVariable = "variable"
	AssertEffect   = "effect"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative")
	}

	if len(s.Things) == 0 {
		return fmt.Errorf("things list is required and must be non-empty")
	}

	for i, t := range s.Things {
		if t.Name == "" {
			return fmt.Errorf("things[%d]: name is required", i)
		}
		if len(t.Parts) == 0 {
			return fmt.Errorf("things[%d]: parts list is required and must be non-empty", i)
		}
		for j, p := range t.Parts {
			if len(p.States) == 0 {
				return fmt.Errorf("things[%d].parts[%d]: states list is required and must be non-empty", i, j)
			}
		}
	}

	for i, p := range s.Persons {
		if p.Name == "" {
			return fmt.Errorf("persons[%d]: name is required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step, s); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks one step and that its references resolve.
func validateStep(index int, step *Step, s *Scenario) error {
	if step.Tick < 0 {
		return fmt.Errorf("steps[%d]: tick must be non-negative", index)
	}
	if step.Tick > s.Ticks {
		return fmt.Errorf("steps[%d]: tick %d is past the last tick %d", index, step.Tick, s.Ticks)
	}

	set := 0
	if step.Touch != nil {
		set++
		if step.Touch.Thing == "" {
			return fmt.Errorf("steps[%d].touch: thing is required", index)
		}
	}
	if step.Tell != nil {
		set++
		if step.Tell.Thing == "" || step.Tell.Data == "" {
			return fmt.Errorf("steps[%d].tell: thing and data are required", index)
		}
	}
	if step.Say != nil {
		set++
		if step.Say.Person == "" || step.Say.Text == "" {
			return fmt.Errorf("steps[%d].say: person and text are required", index)
		}
	}
	if step.Move != nil {
		set++
		if step.Move.Person == "" {
			return fmt.Errorf("steps[%d].move: person is required", index)
		}
	}
	if step.Event != nil {
		set++
		if step.Event.Thing == "" || step.Event.Kind == "" {
			return fmt.Errorf("steps[%d].event: thing and kind are required", index)
		}
	}

	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one event field is required", index)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFired:
		if a.Thing == "" || a.Event == "" {
			return fmt.Errorf("assertions[%d]: thing and event are required for fired", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for fired", index)
		}
	case AssertState:
		if a.Thing == "" {
			return fmt.Errorf("assertions[%d]: thing is required for state", index)
		}
		if a.State < 1 {
			return fmt.Errorf("assertions[%d]: state must be 1 or higher", index)
		}
	case AssertVariable:
		if a.Variable == "" {
			return fmt.Errorf("assertions[%d]: variable is required for variable", index)
		}
		if a.Thing != "" && a.Person != "" {
			return fmt.Errorf("assertions[%d]: variable takes thing or person, not both", index)
		}
	case AssertEffect:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for effect", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for effect", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
