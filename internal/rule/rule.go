package rule

// Clamping bounds for numeric action arguments. Every numeric field on an
// Action is stored pre-clamped to these ranges; out-of-range or
// unparseable input leaves the field at its type default.
const (
	MinStateSeconds = 0.05
	MaxStateSeconds = 30.0

	MinRelativeSoundVolume = 0.001
	MaxRelativeSoundVolume = 5.0

	MaxTrailDurationSeconds = 60.0

	// MaxPartStates bounds the "via" state index on tweened transitions.
	MaxPartStates = 50

	MaxAttractStrength = 100.0
)

// Variable name prefixes selecting the Area and Person scopes.
const (
	AreaVariablePrefix   = "area."
	PersonVariablePrefix = "person."
)

// Rule is the parsed form of one script line: one trigger plus the
// ordered actions it fires. Actions execute left to right; later actions
// observe state mutated by earlier ones in the same firing.
type Rule struct {
	Event    EventKind `json:"event"`
	EventArg string    `json:"event_arg,omitempty"`

	// ValueFilter carries the text after " and is " in the when-clause.
	// At fire time it additionally gates the rule against the event's
	// carried value.
	ValueFilter string `json:"value_filter,omitempty"`

	// AnyState makes the rule fire regardless of the owning part's
	// current state index.
	AnyState bool `json:"any_state,omitempty"`

	Actions []Action `json:"actions"`
}

// Empty reports whether parsing produced no usable rule. A rule without a
// resolved trigger is discarded wholesale, never kept partially.
func (r *Rule) Empty() bool {
	return r == nil || r.Event == EventNone
}

// HasVariableWork reports whether dispatch needs the variable subsystem
// for this rule. Computed once at parse time so the runtime can skip
// variable fan-out for unaffected objects.
func (r *Rule) HasVariableWork() bool {
	if r.Event == OnVariableChange {
		return true
	}
	for _, act := range r.Actions {
		if _, ok := act.(SetVariable); ok {
			return true
		}
	}
	return false
}

// HasTurnWork reports whether the rule contains any turn directive.
func (r *Rule) HasTurnWork() bool {
	for _, act := range r.Actions {
		if _, ok := act.(Turn); ok {
			return true
		}
	}
	return false
}
