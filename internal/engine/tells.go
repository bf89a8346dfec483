package engine

import (
	"github.com/tmaxa/partscript/internal/metrics"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/world"
)

// tell fans one tell action out according to its delivery policy. Every
// tell spends one unit of the tick's tell budget; a refused tell is
// dropped whole.
func (e *Engine) tell(part *world.ThingPart, a rule.Tell, ev Event) {
	if !e.budget.AllowTell() {
		metrics.TellsRefused.Inc()
		e.log.Debug("tell budget exhausted, tell dropped",
			"thing", part.Owner().Name, "via", a.Via.String(), "data", a.Data)
		return
	}

	owner := part.Owner()

	switch a.Via {
	case rule.TellSelf:
		e.TriggerThing(owner, Event{Kind: rule.OnTold, Arg: a.Data, Person: ev.Person})

	case rule.TellNearby:
		for _, thing := range e.world.ThingsNear(part.Position, e.cfg.NearbyRadius) {
			e.TriggerThing(thing, Event{Kind: rule.OnToldByNearby, Arg: a.Data, Person: ev.Person})
		}

	case rule.TellAny:
		for _, thing := range e.world.AllThings() {
			e.TriggerThing(thing, Event{Kind: rule.OnToldByAny, Arg: a.Data, Person: ev.Person})
		}

	case rule.TellFirstOfAny:
		for _, thing := range e.world.ThingsByDistance(part.Position) {
			if thing == owner {
				continue
			}
			if e.TriggerThing(thing, Event{Kind: rule.OnToldByAny, Arg: a.Data, Person: ev.Person}) {
				break
			}
		}

	case rule.TellBody:
		person := e.relevantPerson(part, ev)
		if person == nil {
			return
		}
		for _, thing := range person.BodyThings() {
			e.TriggerThing(thing, Event{Kind: rule.OnToldByBody, Arg: a.Data, Person: person})
		}

	case rule.TellInFront, rule.TellFirstInFront:
		firstOnly := a.Via == rule.TellFirstInFront
		for _, hit := range e.world.RayHits(part.Position, part.Forward) {
			if hit == part {
				continue
			}
			hitThing := hit.Owner()
			if hitThing == nil || hitThing.Passable || hitThing.TurnedUncollidable {
				continue
			}
			e.Deliver(hit, Event{Kind: rule.OnToldByAny, Arg: a.Data, Person: ev.Person})
			if firstOnly {
				break
			}
		}

	case rule.TellWeb, rule.TellAnyWeb:
		// Web tells leave the simulation; the Effects sink already
		// received the action.
	}
}
