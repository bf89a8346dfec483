package world

import (
	"github.com/google/uuid"

	"github.com/tmaxa/partscript/internal/parse"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/vars"
)

// PartState is one state of a part: its raw script lines and the rules
// parsed from them. Rules are rebuilt wholesale whenever the lines
// change; there is no incremental editing.
type PartState struct {
	Lines []string     `json:"lines" yaml:"lines"`
	Rules []*rule.Rule `json:"-" yaml:"-"`
}

// ThingPart is the scripted unit. Each part owns a list of states,
// exactly one of which is current; rules attach to states.
type ThingPart struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	States   []*PartState `json:"states" yaml:"states"`
	Current  int     `json:"current" yaml:"current"`
	Position Vec3    `json:"position" yaml:"position"`
	Forward  Vec3    `json:"forward" yaml:"forward"`

	owner *Thing

	// anyStateRules collects rules flagged when_any_state across all
	// states, matched regardless of Current.
	anyStateRules []*rule.Rule
}

// Thing is a placed object made of parts. Its variable store backs the
// unprefixed variable scope for every script the thing runs.
type Thing struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Version         int               `json:"version" yaml:"version"`
	Position        Vec3              `json:"position" yaml:"position"`
	Passable        bool              `json:"passable,omitempty" yaml:"passable,omitempty"`
	IncludedNameIDs map[string]string `json:"included_name_ids,omitempty" yaml:"included_name_ids,omitempty"`
	Parts           []*ThingPart      `json:"parts" yaml:"parts"`

	Vars *vars.Store `json:"-" yaml:"-"`

	// ContainsVariables marks things that react to variable changes, so
	// change fan-out can skip everything else.
	ContainsVariables bool `json:"-" yaml:"-"`

	// ContainsTurnCommands marks things whose scripts can change their
	// collidability at runtime, so resets can skip everything else.
	ContainsTurnCommands bool `json:"-" yaml:"-"`

	// TurnedUncollidable is the runtime override from "turn thing
	// uncollidable". Area resets clear it.
	TurnedUncollidable bool `json:"-" yaml:"-"`

	// SeenInVicinity backs the one-shot someone_new_in_vicinity trigger.
	SeenInVicinity bool `json:"-" yaml:"-"`
}

// NewThing returns an empty thing with a fresh id and variable store.
func NewThing(name string, version int) *Thing {
	return &Thing{
		ID:      uuid.NewString(),
		Name:    name,
		Version: version,
		Vars:    vars.NewStore(),
	}
}

// AddPart appends a part with the given states' script lines and parses
// them.
func (t *Thing) AddPart(id string, states ...[]string) *ThingPart {
	if id == "" {
		id = uuid.NewString()
	}
	part := &ThingPart{ID: id, owner: t, Forward: Vec3{Z: 1}}
	for _, lines := range states {
		part.States = append(part.States, &PartState{Lines: lines})
	}
	t.Parts = append(t.Parts, part)
	part.Rebuild()
	return part
}

// Init wires and parses a thing that was built field-by-field, such as
// one decoded from YAML.
func (t *Thing) Init() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Vars == nil {
		t.Vars = vars.NewStore()
	}
	for _, part := range t.Parts {
		part.owner = t
		if part.ID == "" {
			part.ID = uuid.NewString()
		}
		if part.Forward == (Vec3{}) {
			part.Forward = Vec3{Z: 1}
		}
		part.Rebuild()
	}
}

// Owner returns the thing the part belongs to.
func (p *ThingPart) Owner() *Thing { return p.owner }

// CurrentState returns the active state, or nil for a part with none.
func (p *ThingPart) CurrentState() *PartState {
	if p.Current < 0 || p.Current >= len(p.States) {
		return nil
	}
	return p.States[p.Current]
}

// SetScript replaces one state's lines and re-parses the whole part.
func (p *ThingPart) SetScript(state int, lines []string) {
	if state < 0 || state >= len(p.States) {
		return
	}
	p.States[state].Lines = lines
	p.Rebuild()
}

// SetState moves the part to another state, clamped into range.
func (p *ThingPart) SetState(state int) {
	if len(p.States) == 0 {
		return
	}
	if state < 0 {
		state = 0
	}
	if state >= len(p.States) {
		state = len(p.States) - 1
	}
	p.Current = state
}

// AnyStateRules returns the rules that match regardless of current state.
func (p *ThingPart) AnyStateRules() []*rule.Rule { return p.anyStateRules }

// Rebuild re-parses every state's lines and refreshes the derived flags
// on the owning thing.
func (p *ThingPart) Rebuild() {
	ctx := parse.Context{}
	if p.owner != nil {
		ctx.Version = p.owner.Version
		ctx.IncludedNameIDs = p.owner.IncludedNameIDs
	}

	p.anyStateRules = p.anyStateRules[:0]
	for _, state := range p.States {
		state.Rules = state.Rules[:0]
		for _, line := range state.Lines {
			r := parse.ParseLine(line, ctx)
			if r.Empty() {
				continue
			}
			state.Rules = append(state.Rules, r)
			if r.AnyState {
				p.anyStateRules = append(p.anyStateRules, r)
			}
		}
	}

	if p.owner != nil {
		p.owner.refreshDerivedFlags()
	}
}

func (t *Thing) refreshDerivedFlags() {
	t.ContainsVariables = false
	t.ContainsTurnCommands = false
	for _, part := range t.Parts {
		for _, state := range part.States {
			for _, r := range state.Rules {
				if r.HasVariableWork() {
					t.ContainsVariables = true
				}
				if r.HasTurnWork() {
					t.ContainsTurnCommands = true
				}
			}
		}
	}
}
