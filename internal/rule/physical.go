package rule

// Emit spawns a copy of another object from the part, pushed forward with
// a velocity percentage in [0, 100].
type Emit struct {
	ThingID         string  `json:"thing_id"`
	VelocityPercent float64 `json:"velocity_percent"`
	GravityFree     bool    `json:"gravity_free,omitempty"`
}

func (Emit) Kind() ActionKind { return KindEmit }

// PropelForward pushes the object along its forward vector. Percent is
// clamped to [-100, 100]; the bare keyword defaults to 10.
type PropelForward struct {
	Percent float64 `json:"percent"`
}

func (PropelForward) Kind() ActionKind { return KindPropelForward }

// RotateForward spins the object. Same range and default as propel.
type RotateForward struct {
	Percent float64 `json:"percent"`
}

func (RotateForward) Kind() ActionKind { return KindRotateForward }

// Destruction describes how an object breaks apart.
type Destruction struct {
	Burst             bool    `json:"burst,omitempty"`
	BurstVelocity     float64 `json:"burst_velocity,omitempty"`
	MaxParts          int     `json:"max_parts,omitempty"`
	Gravity           bool    `json:"gravity"`
	Bouncy            bool    `json:"bouncy,omitempty"`
	Slidy             bool    `json:"slidy,omitempty"`
	Collides          bool    `json:"collides"`
	CollidesSiblings  bool    `json:"collides_siblings"`
	HidePartsSeconds  float64 `json:"hide_parts_seconds,omitempty"`
	Growth            float64 `json:"growth,omitempty"`
	RestoreInSeconds  float64 `json:"restore_in_seconds,omitempty"`
}

// OtherDestruction extends Destruction with the search bounds used when
// destroying nearby objects rather than the acting one.
type OtherDestruction struct {
	Destruction  Destruction `json:"destruction"`
	Radius       float64     `json:"radius"`
	MaxThingSize float64     `json:"max_thing_size"`
}

// DestroySelf destroys the object the part belongs to.
type DestroySelf struct {
	Destruction Destruction `json:"destruction"`
}

func (DestroySelf) Kind() ActionKind { return KindDestroySelf }

// DestroyNearby destroys other objects within a radius.
type DestroyNearby struct {
	Destruction OtherDestruction `json:"destruction"`
}

func (DestroyNearby) Kind() ActionKind { return KindDestroyNearby }

// SpeedOp selects how a speed change combines with current velocity.
type SpeedOp int

const (
	SpeedSet SpeedOp = iota
	SpeedAdd
	SpeedMultiply
)

// SpeedChange sets, adds to, or multiplies the object's velocity.
// Set/add components are clamped to [-1000, 1000], multipliers to
// [0, 1000].
type SpeedChange struct {
	Op  SpeedOp `json:"op"`
	Vec Vec3    `json:"vec"`
}

func (SpeedChange) Kind() ActionKind { return KindSpeedChange }

// ConstantRotation spins the part continuously, components clamped to
// [-10000, 10000]. Objects saved before format version 7 store the value
// in tenths and are scaled up at parse time.
type ConstantRotation struct {
	Vec Vec3 `json:"vec"`
}

func (ConstantRotation) Kind() ActionKind { return KindConstantRotation }

// SetGravity overrides area gravity, or restores the default.
type SetGravity struct {
	Vec     Vec3 `json:"vec"`
	Default bool `json:"default,omitempty"`
}

func (SetGravity) Kind() ActionKind { return KindSetGravity }

// AttractRepel pulls (positive strength) or pushes (negative strength)
// nearby objects, optionally filtered by name.
type AttractRepel struct {
	Strength    float64 `json:"strength"`
	ForwardOnly bool    `json:"forward_only,omitempty"`
	NameFilter  string  `json:"name_filter,omitempty"`
}

func (AttractRepel) Kind() ActionKind { return KindAttractRepel }

// ResizeNearby rescales nearby people by a factor. Factors so close to 1
// that the change would only confuse are dropped at parse time.
type ResizeNearby struct {
	Factor float64 `json:"factor"`
}

func (ResizeNearby) Kind() ActionKind { return KindResizeNearby }

// Crumbles adds a crumble particle effect to the part, or to all parts.
type Crumbles struct {
	AllParts bool `json:"all_parts,omitempty"`
}

func (Crumbles) Kind() ActionKind { return KindCrumbles }

// Trail starts or ends a movement trail on the part.
type Trail struct {
	Start           bool    `json:"start"`
	ThickStart      bool    `json:"thick_start,omitempty"`
	ThickEnd        bool    `json:"thick_end,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

func (Trail) Kind() ActionKind { return KindTrail }

// ProjectAlign selects surface alignment for a projected part.
type ProjectAlign int

const (
	ProjectAlignNone ProjectAlign = iota
	ProjectAlignTowardsSurface
	ProjectAlignAwayFromSurface
)

// Project extends the part towards whatever surface it points at.
type Project struct {
	RelativeReach   float64      `json:"relative_reach,omitempty"`
	DefaultDistance float64      `json:"default_distance,omitempty"`
	MaxDistance     float64      `json:"max_distance,omitempty"`
	Align           ProjectAlign `json:"align,omitempty"`
}

func (Project) Kind() ActionKind { return KindProject }

// ShowLine renders a line from the part, with start and end widths.
type ShowLine struct {
	StartWidth float64 `json:"start_width"`
	EndWidth   float64 `json:"end_width"`
}

func (ShowLine) Kind() ActionKind { return KindShowLine }

// MaxLineWidth bounds ShowLine widths.
const MaxLineWidth = 10.0

// FaceTarget identifies what the all-parts-face family points at.
type FaceTarget int

const (
	FaceClosestPerson FaceTarget = iota
	FaceSecondClosestPerson
	FaceUp
	FaceClosestEmptyHand
	FaceClosestEmptyHandWhileHeld
	FaceClosestThingOfName
	FaceMainCamera
)

// Face starts or stops rotating all parts towards a target.
type Face struct {
	Target FaceTarget `json:"target"`
	Stop   bool       `json:"stop,omitempty"`
	// ThingName filters FaceClosestThingOfName.
	ThingName string `json:"thing_name,omitempty"`
}

func (Face) Kind() ActionKind { return KindFace }
