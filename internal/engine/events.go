package engine

import (
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/world"
)

// triggerPositionEvents fires the proximity triggers for every person
// against every placed thing: vicinity (with its one-shot first-seen
// variant), neared, and walked-into, from widest radius inward.
func (e *Engine) triggerPositionEvents() {
	for _, person := range e.world.Persons {
		for _, thing := range e.world.Things {
			distance := thing.Position.Distance(person.Position)
			if distance > e.cfg.VicinityRadius {
				continue
			}
			if distance <= e.cfg.NearedRadius {
				if distance <= e.cfg.WalkIntoRadius {
					e.TriggerThing(thing, Event{Kind: rule.OnWalkedInto, Person: person})
				}
				e.TriggerThing(thing, Event{Kind: rule.OnNeared, Person: person})
			}
			if !thing.SeenInVicinity {
				thing.SeenInVicinity = true
				e.TriggerThing(thing, Event{Kind: rule.OnSomeoneNewInVicinity, Person: person})
			}
			e.TriggerThing(thing, Event{Kind: rule.OnSomeoneInVicinity, Person: person})
		}
	}
}

// Hear delivers speech: things near the speaker's head hear it, and
// everything hears it anywhere.
func (e *Engine) Hear(person *world.Person, speech string) {
	for _, thing := range e.world.AllThings() {
		if thing.Position.Distance(person.HeadPosition) <= e.cfg.HearsRadius {
			e.TriggerThing(thing, Event{Kind: rule.OnHears, Arg: speech, Person: person})
		}
		e.TriggerThing(thing, Event{Kind: rule.OnHearsAnywhere, Arg: speech, Person: person})
	}
}

// Touch is a convenience for the common contact trigger pair.
func (e *Engine) Touch(t *world.Thing, person *world.Person) {
	e.TriggerThing(t, Event{Kind: rule.OnTouches, Person: person})
	e.TriggerThing(t, Event{Kind: rule.OnAnyPartTouches, Person: person})
}
