package rule

// Dialog identifies a named UI dialog a script can open.
type Dialog string

const (
	DialogForum            Dialog = "forum"
	DialogForumThread      Dialog = "forumthread"
	DialogFindAreas        Dialog = "findareas"
	DialogInventory        Dialog = "inventory"
	DialogKeyboard         Dialog = "keyboard"
	DialogVideoControl     Dialog = "videocontrol"
	DialogCameraControl    Dialog = "cameracontrol"
	DialogSlideshowControl Dialog = "slideshowcontrol"
	DialogOwnProfile       Dialog = "ownprofile"
)

// DialogSpaceNames maps the space-separated form authors write to the
// internal space-free dialog token. Applied when parsing told-by-body
// when-clauses, whose dialog names must stay single tokens.
var DialogSpaceNames = map[string]string{
	"forum thread":      "forumthread",
	"find areas":        "findareas",
	"video control":     "videocontrol",
	"camera control":    "cameracontrol",
	"slideshow control": "slideshowcontrol",
	"own profile":       "ownprofile",
}

// ShowDialog opens a named dialog, optionally with payload text.
type ShowDialog struct {
	Dialog Dialog `json:"dialog"`
	Data   string `json:"data,omitempty"`
}

func (ShowDialog) Kind() ActionKind { return KindShowDialog }

// ShowNameTags re-enables name tags for a number of seconds.
type ShowNameTags struct {
	Seconds float64 `json:"seconds"`
}

func (ShowNameTags) Kind() ActionKind { return KindShowNameTags }

// ShowVideo plays a referenced video, with optional relative volume.
type ShowVideo struct {
	VideoID string  `json:"video_id"`
	Volume  float64 `json:"volume,omitempty"`
}

func (ShowVideo) Kind() ActionKind { return KindShowVideo }

// ShowWeb opens a browser surface. The URL keeps its original casing.
type ShowWeb struct {
	URL            string  `json:"url"`
	ZoomPercent    float64 `json:"zoom_percent,omitempty"`
	AllowNavigate  bool    `json:"allow_navigate"`
	AllowCursor    bool    `json:"allow_cursor"`
	UseJoystick    bool    `json:"use_joystick,omitempty"`
	SyncURLChanges bool    `json:"sync_url_changes"`
}

func (ShowWeb) Kind() ActionKind { return KindShowWeb }

// InventoryPage jumps the inventory dialog to a page in [1, MaxInventoryPages].
type InventoryPage struct {
	Page int `json:"page"`
}

func (InventoryPage) Kind() ActionKind { return KindInventoryPage }

// MaxInventoryPages bounds InventoryPage.
const MaxInventoryPages = 100

// LightParam selects which light property a light directive sets.
type LightParam int

const (
	LightIntensity LightParam = iota
	LightRange
	LightConeSize
)

// Light sets a light property. Only honored on starts-triggered rules.
type Light struct {
	Param LightParam `json:"param"`
	Value float64    `json:"value"`
}

func (Light) Kind() ActionKind { return KindLight }

// MovementParam selects which locomotion property a movement directive sets.
type MovementParam int

const (
	MovementRunSpeed MovementParam = iota
	MovementJumpSpeed
	MovementSlidiness
)

// Movement sets a desktop-mode locomotion property, or restores its
// default.
type Movement struct {
	Param   MovementParam `json:"param"`
	Value   float64       `json:"value"`
	Default bool          `json:"default,omitempty"`
}

func (Movement) Kind() ActionKind { return KindMovement }

// CameraPosition names a follower-camera placement preset.
type CameraPosition string

const (
	CameraInHeadVR         CameraPosition = "in_head_vr"
	CameraInHeadOptimized  CameraPosition = "in_head_optimized"
	CameraBehindUp         CameraPosition = "behind_up"
	CameraFurtherBehindUp  CameraPosition = "further_behind_up"
	CameraBirdsEye         CameraPosition = "birds_eye"
	CameraLooksAtMe        CameraPosition = "looks_at_me"
	CameraAtLeftHand       CameraPosition = "at_left_hand"
	CameraAtRightHand      CameraPosition = "at_right_hand"
)

// SetCameraPosition moves the follower camera to a preset.
type SetCameraPosition struct {
	Position CameraPosition `json:"position"`
}

func (SetCameraPosition) Kind() ActionKind { return KindCameraPosition }

// SetCameraFollowing changes how tightly the follower camera tracks.
type SetCameraFollowing struct {
	Lerp float64 `json:"lerp"`
}

func (SetCameraFollowing) Kind() ActionKind { return KindCameraFollowing }

// TypeText feeds text into the chat keyboard as if typed.
type TypeText struct {
	Text string `json:"text"`
}

func (TypeText) Kind() ActionKind { return KindTypeText }

// WriteText renders text on the part. All-lowercase input is upcased.
type WriteText struct {
	Text string `json:"text"`
}

func (WriteText) Kind() ActionKind { return KindWriteText }

// AttachHead attaches a referenced object as the wearer's head.
type AttachHead struct {
	ThingID        string `json:"thing_id"`
	MultiplePeople bool   `json:"multiple_people,omitempty"`
}

func (AttachHead) Kind() ActionKind { return KindAttachHead }

// Stream starts or stops streaming the person's camera view to a named
// target.
type Stream struct {
	Start      bool   `json:"start"`
	TargetName string `json:"target_name,omitempty"`
}

func (Stream) Kind() ActionKind { return KindStream }

// SnapAngles overrides build-mode snap angles, 0 meaning default.
type SnapAngles struct {
	Degrees float64 `json:"degrees"`
}

func (SnapAngles) Kind() ActionKind { return KindSnapAngles }

// TurnScope selects what a turn directive applies to.
type TurnScope int

const (
	TurnPart TurnScope = iota
	TurnThing
	TurnSubThing
)

// Turn toggles visibility or collidability. Mode is one of the closed
// turn command words (on, off, visible, invisible, collidable,
// uncollidable).
type Turn struct {
	Scope   TurnScope `json:"scope"`
	Mode    string    `json:"mode"`
	SubName string    `json:"sub_name,omitempty"`
}

func (Turn) Kind() ActionKind { return KindTurn }

// TurnModes is the closed vocabulary for Turn.Mode.
var TurnModes = []string{"on", "off", "visible", "invisible", "collidable", "uncollidable"}

// AreaVisibility limits how far the area renders, -1 meaning default.
type AreaVisibility struct {
	Meters float64 `json:"meters"`
}

func (AreaVisibility) Kind() ActionKind { return KindAreaVisibility }

// PersonAuthority promotes the relevant person to simulation authority.
type PersonAuthority struct{}

func (PersonAuthority) Kind() ActionKind { return KindPersonAuthority }

// Right names a per-area permission a script can grant or revoke.
type Right string

const (
	RightEmittedClimbing     Right = "emitted_climbing"
	RightEmittedTransporting Right = "emitted_transporting"
	RightInvisibility        Right = "invisibility"
	RightAnyPersonSize       Right = "any_person_size"
	RightHighlighting        Right = "highlighting"
	RightAmplifiedSpeech     Right = "amplified_speech"
	RightAnyDestruction      Right = "any_destruction"
	RightWebBrowsing         Right = "web_browsing"
	RightUntargetedAttract   Right = "untargeted_attract_and_repel"
	RightBuildAnimations     Right = "build_animations"
)

// Rights grants or revokes one area permission.
type Rights struct {
	Right Right `json:"right"`
	Allow bool  `json:"allow"`
}

func (Rights) Kind() ActionKind { return KindRights }

// QuestOp selects what a quest directive does.
type QuestOp int

const (
	QuestAchieve QuestOp = iota
	QuestUnachieve
	QuestRemove
)

// Quest marks a named quest achieved, unachieved or removed.
type Quest struct {
	Name string  `json:"name"`
	Op   QuestOp `json:"op"`
}

func (Quest) Kind() ActionKind { return KindQuest }

// SettingToggle enables or disables a named user setting.
type SettingToggle struct {
	Setting string `json:"setting"`
	Enable  bool   `json:"enable"`
}

func (SettingToggle) Kind() ActionKind { return KindSettingToggle }

// CreationPart re-runs a creation-part directive on the part, or on all
// parts.
type CreationPart struct {
	Mode   string    `json:"mode"`
	Values []float64 `json:"values,omitempty"`
	ForAll bool      `json:"for_all,omitempty"`
	Local  bool      `json:"local,omitempty"`
	Random bool      `json:"random,omitempty"`
}

func (CreationPart) Kind() ActionKind { return KindCreationPart }
