package rule

// ActionKind names an action variant. The set is closed: the parser's
// keyword table is the only producer of Actions.
type ActionKind string

const (
	KindBecome           ActionKind = "become"
	KindTell             ActionKind = "tell"
	KindPlaySound        ActionKind = "play"
	KindLoopSound        ActionKind = "loop"
	KindEndLoop          ActionKind = "end_loop"
	KindPlayTrack        ActionKind = "play_track"
	KindSay              ActionKind = "say"
	KindSetVoice         ActionKind = "set_voice"
	KindEmit             ActionKind = "emit"
	KindPropelForward    ActionKind = "propel_forward"
	KindRotateForward    ActionKind = "rotate_forward"
	KindDestroySelf      ActionKind = "destroy_all_parts"
	KindDestroyNearby    ActionKind = "destroy_nearby"
	KindSend             ActionKind = "send"
	KindSetVariable      ActionKind = "is"
	KindReset            ActionKind = "reset"
	KindFace             ActionKind = "face"
	KindRights           ActionKind = "rights"
	KindShowDialog       ActionKind = "show_dialog"
	KindShowNameTags     ActionKind = "show_name_tags"
	KindShowVideo        ActionKind = "show_video"
	KindShowWeb          ActionKind = "show_web"
	KindShowLine         ActionKind = "show_line"
	KindInventoryPage    ActionKind = "go_to_inventory_page"
	KindCrumbles         ActionKind = "add_crumbles"
	KindLight            ActionKind = "set_light"
	KindMovement         ActionKind = "movement"
	KindSpeedChange      ActionKind = "speed"
	KindCameraPosition   ActionKind = "set_camera_position_to"
	KindCameraFollowing  ActionKind = "set_camera_following_to"
	KindTypeText         ActionKind = "type"
	KindWriteText        ActionKind = "write"
	KindAttachHead       ActionKind = "attach_head"
	KindResizeNearby     ActionKind = "resize_nearby_to"
	KindLetGo            ActionKind = "let_go"
	KindStream           ActionKind = "stream"
	KindCallMe           ActionKind = "call_me"
	KindSnapAngles       ActionKind = "set_snap_angles_to"
	KindSetGravity       ActionKind = "set_gravity_to"
	KindTurn             ActionKind = "turn"
	KindTrail            ActionKind = "trail"
	KindProject          ActionKind = "project"
	KindAreaVisibility   ActionKind = "set_area_visibility_to"
	KindPersonAuthority  ActionKind = "set_person_as_authority"
	KindHapticFeedback   ActionKind = "give_haptic_feedback"
	KindConstantRotation ActionKind = "set_constant_rotation_to"
	KindQuest            ActionKind = "set_quest"
	KindSettingToggle    ActionKind = "setting"
	KindAttractRepel     ActionKind = "attract"
	KindCreationPart     ActionKind = "do_creation_part"
)

// Action is the closed tagged union over all action variants. Each
// variant stores only the fields relevant to it, pre-clamped.
type Action interface {
	Kind() ActionKind
}

// Vec3 is a plain three-component vector for speed, gravity and rotation
// arguments. Dispatch hands it to collaborators untouched.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RelativeState addresses a state transition target relative to the
// owning part's current state index.
type RelativeState int

const (
	RelativeNone RelativeState = iota
	RelativeCurrent
	RelativePrevious
	RelativeNext
)

// Tween selects the easing shape of a state transition.
type Tween int

const (
	TweenEaseInOut Tween = iota
	TweenDirect
	TweenSteady
	TweenEaseIn
	TweenEaseOut
)

// Become transitions the owning part to another state.
//
// Target is a zero-based state index, or -1 when Relative addresses the
// target instead. Seconds is floor-clamped: zero is allowed only for the
// untweened (direct) variant. ViaState is -1 unless a "via" clause curves
// the transition through another state.
type Become struct {
	Target   int           `json:"target"`
	Relative RelativeState `json:"relative,omitempty"`
	Seconds  float64       `json:"seconds"`
	Tween    Tween         `json:"tween"`
	ViaState int           `json:"via_state"`
}

func (Become) Kind() ActionKind { return KindBecome }

// TellVia selects the delivery policy of a tell action.
type TellVia int

const (
	TellSelf TellVia = iota
	TellNearby
	TellAny
	TellBody
	TellWeb
	TellAnyWeb
	TellFirstOfAny
	TellInFront
	TellFirstInFront
)

var tellViaNames = map[TellVia]string{
	TellSelf:         "self",
	TellNearby:       "nearby",
	TellAny:          "any",
	TellBody:         "body",
	TellWeb:          "web",
	TellAnyWeb:       "any_web",
	TellFirstOfAny:   "first_of_any",
	TellInFront:      "in_front",
	TellFirstInFront: "first_in_front",
}

func (v TellVia) String() string { return tellViaNames[v] }

// Tell delivers an arbitrary text payload to other objects.
type Tell struct {
	Via  TellVia `json:"via"`
	Data string  `json:"data"`
}

func (Tell) Kind() ActionKind { return KindTell }

// SetVariable stores the right-hand side of an "is" action verbatim. The
// expression is evaluated at fire time, not at parse time, because
// variable values may change between the two.
type SetVariable struct {
	Expr string `json:"expr"`
}

func (SetVariable) Kind() ActionKind { return KindSetVariable }

// ResetTarget selects what a reset action clears.
type ResetTarget int

const (
	ResetArea ResetTarget = iota
	ResetPersons
	ResetPosition
	ResetRotation
	ResetBody
	ResetLegsDefault
	ResetLegsBodyDefault
)

// Reset clears variables or restores placement defaults.
type Reset struct {
	Target ResetTarget `json:"target"`
}

func (Reset) Kind() ActionKind { return KindReset }

// CallMe renames the acting object for the duration of the session.
type CallMe struct {
	Name string `json:"name"`
}

func (CallMe) Kind() ActionKind { return KindCallMe }

// LetGo forces the holder to release the object.
type LetGo struct{}

func (LetGo) Kind() ActionKind { return KindLetGo }

// HapticFeedback pulses the holding controller.
type HapticFeedback struct{}

func (HapticFeedback) Kind() ActionKind { return KindHapticFeedback }
