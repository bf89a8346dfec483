package rule

// Transit clamp bounds for the optional "via" leg of a send action.
const (
	MinTransitSeconds = 1.0
	MaxTransitSeconds = 150.0
)

// Send transports people to another area, onto a named object, or both.
//
// ToArea and OntoThing may each be empty; RotationAfter is the facing in
// degrees applied on arrival (360 normalizes to 0 at parse time). When
// ViaArea is set the transport makes a timed stop there first.
type Send struct {
	ToArea         string  `json:"to_area,omitempty"`
	OntoThing      string  `json:"onto_thing,omitempty"`
	ViaArea        string  `json:"via_area,omitempty"`
	ViaSeconds     float64 `json:"via_seconds,omitempty"`
	RotationAfter  float64 `json:"rotation_after"`
	NearbyOnly     bool    `json:"nearby_only"`
	MultiplePeople bool    `json:"multiple_people"`
}

func (Send) Kind() ActionKind { return KindSend }
