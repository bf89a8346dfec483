// Package world models the objects, people and area a script engine
// dispatches over: parts with stateful rule lists, the spatial queries
// behind proximity fan-out, and the variable stores of each scope.
package world

import (
	"sort"

	"github.com/google/uuid"

	"github.com/tmaxa/partscript/internal/vars"
)

// Person is someone present in the area. People carry the person-scoped
// variable store and can wear attachment things and hold one thing per
// hand, all of which receive body tells.
type Person struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Position     Vec3   `json:"position" yaml:"position"`
	HeadPosition Vec3   `json:"head_position" yaml:"head_position"`

	Attachments []*Thing `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	HeldLeft    *Thing   `json:"held_left,omitempty" yaml:"held_left,omitempty"`
	HeldRight   *Thing   `json:"held_right,omitempty" yaml:"held_right,omitempty"`

	Vars *vars.Store `json:"-" yaml:"-"`
}

// NewPerson returns a person with a fresh id and variable store.
func NewPerson(name string) *Person {
	return &Person{ID: uuid.NewString(), Name: name, Vars: vars.NewStore()}
}

// BodyThings returns the person's attachments and held things, the
// delivery set of a body tell.
func (p *Person) BodyThings() []*Thing {
	out := make([]*Thing, 0, len(p.Attachments)+2)
	out = append(out, p.Attachments...)
	if p.HeldLeft != nil {
		out = append(out, p.HeldLeft)
	}
	if p.HeldRight != nil {
		out = append(out, p.HeldRight)
	}
	return out
}

// Area is the enclosing space, owner of the area-scoped variables.
type Area struct {
	Name string      `json:"name" yaml:"name"`
	Vars *vars.Store `json:"-" yaml:"-"`
}

// World is the complete dispatch surface: one area, its placed things
// and the people in it.
type World struct {
	Area    *Area
	Things  []*Thing
	Persons []*Person
}

// New returns an empty world for the named area.
func New(areaName string) *World {
	return &World{Area: &Area{Name: areaName, Vars: vars.NewStore()}}
}

// AddThing places a thing into the world, initializing it if needed.
func (w *World) AddThing(t *Thing) {
	if t.Vars == nil {
		t.Init()
	}
	w.Things = append(w.Things, t)
}

// AddPerson brings a person into the world.
func (w *World) AddPerson(p *Person) {
	if p.Vars == nil {
		p.Vars = vars.NewStore()
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	w.Persons = append(w.Persons, p)
}

// AllThings returns the placed things plus everything worn or held,
// since scripts run on attachments too.
func (w *World) AllThings() []*Thing {
	out := make([]*Thing, 0, len(w.Things))
	out = append(out, w.Things...)
	for _, person := range w.Persons {
		out = append(out, person.BodyThings()...)
	}
	return out
}

// ThingsNear returns things within radius of a position, in world order.
func (w *World) ThingsNear(position Vec3, radius float64) []*Thing {
	var out []*Thing
	for _, thing := range w.AllThings() {
		if thing.Position.Distance(position) <= radius {
			out = append(out, thing)
		}
	}
	return out
}

// ThingsByDistance returns all things sorted by ascending distance from
// a position. The sort is stable so equidistant things keep world order.
func (w *World) ThingsByDistance(position Vec3) []*Thing {
	things := w.AllThings()
	sort.SliceStable(things, func(i, j int) bool {
		return things[i].Position.Distance(position) < things[j].Position.Distance(position)
	})
	return things
}

// rayHitRadius is how far a part's center may sit off the ray and still
// count as hit.
const rayHitRadius = 0.5

// RayHits returns the parts a forward ray from origin passes through,
// nearest first. Parts behind the origin never hit.
func (w *World) RayHits(origin, direction Vec3) []*ThingPart {
	direction = direction.Normalized()

	type hit struct {
		part     *ThingPart
		distance float64
	}
	var hits []hit
	for _, thing := range w.AllThings() {
		for _, part := range thing.Parts {
			toPart := part.Position.Sub(origin)
			along := toPart.Dot(direction)
			if along <= 0 {
				continue
			}
			offAxis := toPart.Sub(direction.Scale(along)).Length()
			if offAxis <= rayHitRadius {
				hits = append(hits, hit{part, along})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	out := make([]*ThingPart, len(hits))
	for i, h := range hits {
		out[i] = h.part
	}
	return out
}

// ClosestPerson returns the person nearest to a position, or nil in an
// empty area.
func (w *World) ClosestPerson(position Vec3) *Person {
	var closest *Person
	best := 0.0
	for _, person := range w.Persons {
		d := person.Position.Distance(position)
		if closest == nil || d < best {
			closest, best = person, d
		}
	}
	return closest
}

// PersonByName finds a person by name, or nil.
func (w *World) PersonByName(name string) *Person {
	for _, person := range w.Persons {
		if person.Name == name {
			return person
		}
	}
	return nil
}
