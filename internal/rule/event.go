package rule

// EventKind identifies the trigger that makes a rule fire.
//
// EventNone marks a malformed when-clause; a Rule with EventNone is
// discarded by the parser and never reaches dispatch.
type EventKind int

const (
	EventNone EventKind = iota
	OnStarts
	OnTouches
	OnTouchEnds
	OnTriggered
	OnUntriggered
	OnTold
	OnToldByNearby
	OnToldByAny
	OnToldByBody
	OnTaken
	OnGrabbed
	OnConsumed
	OnBlownAt
	OnTalkedFrom
	OnTalkedTo
	OnTurnedAround
	OnLetGo
	OnHighSpeed
	OnGets
	OnNeared
	OnSomeoneInVicinity
	OnSomeoneNewInVicinity
	OnHitting
	OnShaken
	OnWalkedInto
	OnPointedAt
	OnLookedAt
	OnRaised
	OnLowered
	OnHears
	OnHearsAnywhere
	OnJoystickControlled
	OnDestroyed
	OnDestroyedRestored
	OnTyped
	OnVariableChange
	OnSettingEnabled
	OnSettingDisabled

	OnAnyPartTouches
	OnAnyPartConsumed
	OnAnyPartHitting
	OnAnyPartBlownAt
	OnAnyPartPointedAt
	OnAnyPartLookedAt
)

// eventWords maps the first when-clause token (after keyword collapsing)
// to its event kind. An unknown first token yields no rule.
var eventWords = map[string]EventKind{
	"starts":                 OnStarts,
	"touches":                OnTouches,
	"any_part_touches":       OnAnyPartTouches,
	"touch_ends":             OnTouchEnds,
	"triggered":              OnTriggered,
	"trigger_let_go":         OnUntriggered,
	"neared":                 OnNeared,
	"hitting":                OnHitting,
	"any_part_hitting":       OnAnyPartHitting,
	"told":                   OnTold,
	"told_by_nearby":         OnToldByNearby,
	"told_by_any":            OnToldByAny,
	"told_by_body":           OnToldByBody,
	"taken":                  OnTaken,
	"grabbed":                OnGrabbed,
	"let_go":                 OnLetGo,
	"consumed":               OnConsumed,
	"any_part_consumed":      OnAnyPartConsumed,
	"talked_to":              OnTalkedTo,
	"talked_from":            OnTalkedFrom,
	"pointed_at":             OnPointedAt,
	"any_part_pointed_at":    OnAnyPartPointedAt,
	"looked_at":              OnLookedAt,
	"any_part_looked_at":     OnAnyPartLookedAt,
	"turned_around":          OnTurnedAround,
	"shaken":                 OnShaken,
	"high_speed":             OnHighSpeed,
	"gets":                   OnGets,
	"walked_into":            OnWalkedInto,
	"raised":                 OnRaised,
	"lowered":                OnLowered,
	"blown_at":               OnBlownAt,
	"typed":                  OnTyped,
	"any_part_blown_at":      OnAnyPartBlownAt,
	"someone_in_vicinity":    OnSomeoneInVicinity,
	"someone_new_in_vicinity": OnSomeoneNewInVicinity,
	"hears":                  OnHears,
	"hears_anywhere":         OnHearsAnywhere,
	"destroyed":              OnDestroyed,
	"controlled":             OnJoystickControlled,
	"is":                     OnVariableChange,
	"destroyed_restores":     OnDestroyedRestored,
	"enable_setting":         OnSettingEnabled,
	"disable_setting":        OnSettingDisabled,
}

// EventKindForWord resolves a collapsed when-clause token to its event
// kind. The boolean reports whether the token is a known trigger.
func EventKindForWord(word string) (EventKind, bool) {
	kind, ok := eventWords[word]
	return kind, ok
}

var eventNames = map[EventKind]string{
	EventNone:              "none",
	OnStarts:               "starts",
	OnTouches:              "touches",
	OnTouchEnds:            "touch_ends",
	OnTriggered:            "triggered",
	OnUntriggered:          "trigger_let_go",
	OnTold:                 "told",
	OnToldByNearby:         "told_by_nearby",
	OnToldByAny:            "told_by_any",
	OnToldByBody:           "told_by_body",
	OnTaken:                "taken",
	OnGrabbed:              "grabbed",
	OnConsumed:             "consumed",
	OnBlownAt:              "blown_at",
	OnTalkedFrom:           "talked_from",
	OnTalkedTo:             "talked_to",
	OnTurnedAround:         "turned_around",
	OnLetGo:                "let_go",
	OnHighSpeed:            "high_speed",
	OnGets:                 "gets",
	OnNeared:               "neared",
	OnSomeoneInVicinity:    "someone_in_vicinity",
	OnSomeoneNewInVicinity: "someone_new_in_vicinity",
	OnHitting:              "hitting",
	OnShaken:               "shaken",
	OnWalkedInto:           "walked_into",
	OnPointedAt:            "pointed_at",
	OnLookedAt:             "looked_at",
	OnRaised:               "raised",
	OnLowered:              "lowered",
	OnHears:                "hears",
	OnHearsAnywhere:        "hears_anywhere",
	OnJoystickControlled:   "controlled",
	OnDestroyed:            "destroyed",
	OnDestroyedRestored:    "destroyed_restores",
	OnTyped:                "typed",
	OnVariableChange:       "is",
	OnSettingEnabled:       "enable_setting",
	OnSettingDisabled:      "disable_setting",
	OnAnyPartTouches:       "any_part_touches",
	OnAnyPartConsumed:      "any_part_consumed",
	OnAnyPartHitting:       "any_part_hitting",
	OnAnyPartBlownAt:       "any_part_blown_at",
	OnAnyPartPointedAt:     "any_part_pointed_at",
	OnAnyPartLookedAt:      "any_part_looked_at",
}

// String returns the script keyword for the event kind.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}
