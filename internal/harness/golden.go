package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tmaxa/partscript/internal/engine"
)

// Snapshot captures a finished run for golden comparison. Slices keep
// execution order; maps serialize with sorted keys, so the encoded form
// is deterministic.
type Snapshot struct {
	Scenario  string          `json:"scenario"`
	Firings   []engine.Firing `json:"firings"`
	Effects   []EffectRecord  `json:"effects"`
	AbuseCues int             `json:"abuse_cues,omitempty"`
	Things    []ThingSnapshot `json:"things"`
	Persons   []PersonSnapshot `json:"persons,omitempty"`
	Area      map[string]float64 `json:"area,omitempty"`
}

// ThingSnapshot is one thing's final state.
type ThingSnapshot struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	States    []int              `json:"states"`
	Variables map[string]float64 `json:"variables,omitempty"`
}

// PersonSnapshot is one person's final variables.
type PersonSnapshot struct {
	Name      string             `json:"name"`
	Variables map[string]float64 `json:"variables,omitempty"`
}

// TakeSnapshot condenses a result into its golden form.
func TakeSnapshot(scenarioName string, result *Result) Snapshot {
	snap := Snapshot{
		Scenario:  scenarioName,
		Firings:   result.Firings,
		Effects:   result.Effects,
		AbuseCues: result.AbuseCues,
		Things:    []ThingSnapshot{},
	}

	w := result.world
	for _, thing := range w.Things {
		ts := ThingSnapshot{ID: thing.ID, Name: thing.Name}
		for _, part := range thing.Parts {
			ts.States = append(ts.States, part.Current+1)
		}
		if thing.Vars.Len() > 0 {
			ts.Variables = thing.Vars.Snapshot()
		}
		snap.Things = append(snap.Things, ts)
	}

	for _, person := range w.Persons {
		if person.Vars.Len() == 0 {
			continue
		}
		snap.Persons = append(snap.Persons, PersonSnapshot{
			Name:      person.Name,
			Variables: person.Vars.Snapshot(),
		})
	}

	if w.Area.Vars.Len() > 0 {
		snap.Area = w.Area.Vars.Snapshot()
	}

	return snap
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snap := TakeSnapshot(scenario.Name, result)
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, encoded)

	return result, nil
}
