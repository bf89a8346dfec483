package engine

import (
	"strings"

	"github.com/tmaxa/partscript/internal/exprtext"
	"github.com/tmaxa/partscript/internal/metrics"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/vars"
	"github.com/tmaxa/partscript/internal/world"
)

// maxBecomeDepth bounds become chains within one tick.
const maxBecomeDepth = 50

// execute runs one action. Every action reaches the Effects sink;
// variable writes, tells, state changes and resets additionally have
// engine-side semantics.
func (e *Engine) execute(part *world.ThingPart, act rule.Action, ev Event) {
	act = e.expandText(part, act, ev)
	metrics.ActionsExecuted.WithLabelValues(string(act.Kind())).Inc()
	e.effects.Apply(part, act)

	switch a := act.(type) {
	case rule.SetVariable:
		e.setVariable(part, a, ev)
	case rule.Tell:
		e.tell(part, a, ev)
	case rule.Become:
		e.become(part, a, ev, 0)
	case rule.Turn:
		e.turn(part, a)
	case rule.Reset:
		e.reset(a, ev)
	}
}

// turn applies the simulation side of a turn directive: thing-scope
// collidability changes affect ray queries, so they live in the world
// rather than only in the render sink.
func (e *Engine) turn(part *world.ThingPart, a rule.Turn) {
	if a.Scope != rule.TurnThing {
		return
	}
	switch a.Mode {
	case "uncollidable":
		part.Owner().TurnedUncollidable = true
	case "collidable":
		part.Owner().TurnedUncollidable = false
	}
}

// expandText resolves variable placeholders like "[gold value]" in
// actions that speak or display text.
func (e *Engine) expandText(part *world.ThingPart, act rule.Action, ev Event) rule.Action {
	expand := func(s string) string {
		if !strings.Contains(s, "value") {
			return s
		}
		v := exprtext.Variables{
			Thing: part.Owner().Vars.Snapshot(),
			Area:  e.world.Area.Vars.Snapshot(),
		}
		if person := e.relevantPerson(part, ev); person != nil {
			v.Person = person.Vars.Snapshot()
		}
		return exprtext.ExpandPlaceholders(s, v)
	}

	switch a := act.(type) {
	case rule.Say:
		a.Text = expand(a.Text)
		return a
	case rule.WriteText:
		a.Text = expand(a.Text)
		return a
	case rule.TypeText:
		a.Text = expand(a.Text)
		return a
	case rule.ShowDialog:
		a.Data = expand(a.Data)
		return a
	}
	return act
}

func (e *Engine) setVariable(part *world.ThingPart, a rule.SetVariable, ev Event) {
	if !e.budget.AllowCalculation(e.now()) {
		metrics.CalcDenials.Inc()
		e.log.Debug("calculation budget exhausted, assignment dropped",
			"thing", part.Owner().Name, "expr", a.Expr)
		return
	}

	assign, ok := exprtext.ParseAssignment(a.Expr)
	if !ok {
		return
	}

	thing := part.Owner()
	person := e.relevantPerson(part, ev)
	value := exprtext.EvalWith(assign.Expr, e.resolverFor(thing, person))
	if exprtext.IsInvalid(value) {
		return
	}

	var changed bool
	switch assign.Scope {
	case vars.ScopeThing:
		changed = thing.Vars.Set(assign.Name, value)
	case vars.ScopeArea:
		changed = e.world.Area.Vars.Set(assign.Name, value)
	case vars.ScopePerson:
		if person == nil {
			return
		}
		changed = person.Vars.Set(assign.Name, value)
	}

	if changed {
		e.triggerVariableChange(person)
	}
}

// triggerVariableChange fans a variable-change event out to everything
// that reacts to variables. Recursive writes re-enter here; the
// calculation budget bounds the cascade.
func (e *Engine) triggerVariableChange(person *world.Person) {
	for _, thing := range e.world.AllThings() {
		if thing.ContainsVariables {
			e.TriggerThing(thing, Event{Kind: rule.OnVariableChange, Person: person})
		}
	}
}

func (e *Engine) become(part *world.ThingPart, a rule.Become, ev Event, depth int) {
	if depth >= maxBecomeDepth {
		e.log.Debug("become chain too deep, stopping",
			"thing", part.Owner().Name, "part", part.ID)
		return
	}

	target := a.Target
	switch a.Relative {
	case rule.RelativeCurrent:
		target = part.Current
	case rule.RelativePrevious:
		target = part.Current - 1
	case rule.RelativeNext:
		target = part.Current + 1
	}
	if target < 0 && a.Relative == rule.RelativeNone {
		return
	}

	part.SetState(target)

	// Entering a state runs its when-starts rules, with the tween
	// treated as settled within the tick. Chained becomes recurse
	// under the depth guard.
	state := part.CurrentState()
	if state == nil {
		return
	}
	for _, r := range state.Rules {
		if r.Event != rule.OnStarts {
			continue
		}
		if !e.matches(r, part, ev) {
			continue
		}
		metrics.RulesFired.WithLabelValues(r.Event.String()).Inc()
		e.record(part, part.Current, Event{Kind: rule.OnStarts}, len(r.Actions))
		for _, act := range r.Actions {
			if next, ok := act.(rule.Become); ok {
				metrics.ActionsExecuted.WithLabelValues(string(act.Kind())).Inc()
				e.effects.Apply(part, act)
				e.become(part, next, ev, depth+1)
				continue
			}
			e.execute(part, act, ev)
		}
	}
}

func (e *Engine) reset(a rule.Reset, ev Event) {
	switch a.Target {
	case rule.ResetArea:
		e.world.Area.Vars.Reset()
		for _, thing := range e.world.AllThings() {
			thing.Vars.Reset()
			for _, part := range thing.Parts {
				part.Current = 0
			}
			if thing.ContainsTurnCommands {
				thing.TurnedUncollidable = false
			}
		}
		e.triggerVariableChange(ev.Person)
	case rule.ResetPersons:
		for _, person := range e.world.Persons {
			person.Vars.Reset()
		}
		e.triggerVariableChange(ev.Person)
	}
	// Position, rotation, body and leg resets are physical; the
	// Effects sink already received them.
}
