package engine

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tmaxa/partscript/internal/exprtext"
	"github.com/tmaxa/partscript/internal/metrics"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/world"
)

// Event is one occurrence delivered to parts: a trigger kind, its text
// payload, and the person it concerns when known.
type Event struct {
	Kind   rule.EventKind
	Arg    string
	Person *world.Person
}

// TriggerThing delivers an event to every part of a thing. It reports
// whether any rule fired.
func (e *Engine) TriggerThing(t *world.Thing, ev Event) bool {
	handled := false
	for _, part := range t.Parts {
		if e.Deliver(part, ev) {
			handled = true
		}
	}
	return handled
}

// Deliver matches an event against one part's rules and executes the
// matches: the current state's rules plus the part's any-state rules
// homed in other states. It reports whether any rule fired.
func (e *Engine) Deliver(part *world.ThingPart, ev Event) bool {
	handled := false

	current := part.CurrentState()
	if current != nil {
		for _, r := range current.Rules {
			if e.tryFire(part, r, ev) {
				handled = true
			}
		}
	}
	for _, r := range part.AnyStateRules() {
		if current != nil && slices.Contains(current.Rules, r) {
			continue
		}
		if e.tryFire(part, r, ev) {
			handled = true
		}
	}
	return handled
}

func (e *Engine) tryFire(part *world.ThingPart, r *rule.Rule, ev Event) bool {
	if r.Event != ev.Kind || !e.matches(r, part, ev) {
		return false
	}
	e.fire(part, part.Current, r, ev)
	return true
}

// matches checks a rule's argument and value filter against the event.
// A payload may carry a value after the argument, as in a tell of
// "button_pressed 5" reaching "when told button_pressed and is 5"; the
// remainder feeds the value filter.
func (e *Engine) matches(r *rule.Rule, part *world.ThingPart, ev Event) bool {
	if r.Event == rule.OnVariableChange {
		if r.EventArg != "" && !e.conditionHolds(r.EventArg, part, ev) {
			return false
		}
	} else if r.EventArg != "" {
		value, ok := splitEventValue(r.EventArg, ev.Arg)
		if !ok {
			return false
		}
		if value != "" {
			ev.Arg = value
		}
	}

	if r.ValueFilter != "" && !e.filterHolds(r.ValueFilter, part, ev) {
		return false
	}
	return true
}

// splitEventValue matches a rule argument against an event payload and
// returns the carried value, the payload text past the argument. A bare
// payload carries no value.
func splitEventValue(arg, payload string) (string, bool) {
	if payload == arg {
		return "", true
	}
	if strings.HasPrefix(payload, arg+" ") {
		return strings.TrimSpace(payload[len(arg):]), true
	}
	return "", false
}

// conditionHolds evaluates a variable condition such as "gold >= 5".
// Evaluation spends calculation budget; over budget, conditions fail.
func (e *Engine) conditionHolds(condition string, part *world.ThingPart, ev Event) bool {
	if !e.budget.AllowCalculation(e.now()) {
		metrics.CalcDenials.Inc()
		e.log.Debug("calculation budget exhausted, condition fails",
			"thing", part.Owner().Name, "condition", condition)
		return false
	}
	resolve := e.resolverFor(part.Owner(), e.relevantPerson(part, ev))
	return exprtext.MatchCondition(condition, resolve)
}

// filterHolds evaluates an "and is" value filter against the event
// payload. A filter with a comparator compares numerically; a plain
// filter compares numbers when both sides are numbers and text
// otherwise.
func (e *Engine) filterHolds(filter string, part *world.ThingPart, ev Event) bool {
	filter = strings.TrimSpace(filter)

	if left, op, right, found := exprtext.SplitComparator(filter); found {
		if !e.budget.AllowCalculation(e.now()) {
			metrics.CalcDenials.Inc()
			return false
		}
		resolve := e.resolverFor(part.Owner(), e.relevantPerson(part, ev))
		leftValue := exprtext.EvalWith(ev.Arg, resolve)
		if left != "" {
			leftValue = exprtext.EvalWith(left, resolve)
		}
		return exprtext.Compare(op, leftValue, exprtext.EvalWith(right, resolve))
	}

	if a, errA := strconv.ParseFloat(strings.TrimSpace(ev.Arg), 64); errA == nil {
		if b, errB := strconv.ParseFloat(filter, 64); errB == nil {
			return a == b
		}
	}
	return strings.EqualFold(strings.TrimSpace(ev.Arg), filter)
}

func (e *Engine) fire(part *world.ThingPart, state int, r *rule.Rule, ev Event) {
	metrics.RulesFired.WithLabelValues(r.Event.String()).Inc()
	e.record(part, state, ev, len(r.Actions))

	for _, act := range r.Actions {
		e.execute(part, act, ev)
	}
}

// resolverFor builds the variable lookup for expressions evaluated on
// behalf of a thing: own variables first, then the prefixed area and
// person scopes.
func (e *Engine) resolverFor(t *world.Thing, person *world.Person) exprtext.Resolver {
	return func(name string) (float64, bool) {
		if v, ok := t.Vars.Get(name); ok {
			return v, true
		}
		if strings.HasPrefix(name, "area.") {
			if v, ok := e.world.Area.Vars.Get(name); ok {
				return v, true
			}
		}
		if strings.HasPrefix(name, "person.") && person != nil {
			if v, ok := person.Vars.Get(name); ok {
				return v, true
			}
		}
		return 0, false
	}
}

// relevantPerson is the person an event concerns, falling back to
// whoever is closest to the part.
func (e *Engine) relevantPerson(part *world.ThingPart, ev Event) *world.Person {
	if ev.Person != nil {
		return ev.Person
	}
	return e.world.ClosestPerson(part.Position)
}
