package rule

// Sound carries a named sound with its playback modifiers, all clamped at
// parse time.
type Sound struct {
	Name          string  `json:"name"`
	Pitch         float64 `json:"pitch,omitempty"`
	PitchVariance float64 `json:"pitch_variance,omitempty"`
	Echo          bool    `json:"echo,omitempty"`
	LowPass       bool    `json:"low_pass,omitempty"`
	HighPass      bool    `json:"high_pass,omitempty"`
	Stretch       bool    `json:"stretch,omitempty"`
	Reverse       bool    `json:"reverse,omitempty"`
	Surround      bool    `json:"surround,omitempty"`
	RepeatCount   int     `json:"repeat_count,omitempty"`
	SecondsDelay  float64 `json:"seconds_delay,omitempty"`
	SecondsToSkip float64 `json:"seconds_to_skip,omitempty"`
	SecondsLength float64 `json:"seconds_length,omitempty"`
	Volume        float64 `json:"volume"`
}

// PlaySound plays a one-shot sound.
type PlaySound struct {
	Sound Sound `json:"sound"`
}

func (PlaySound) Kind() ActionKind { return KindPlaySound }

// LoopSound starts a looping sound on the part. SpatialBlend 1 is fully
// positional, 0 is surround.
type LoopSound struct {
	Name         string  `json:"name"`
	Volume       float64 `json:"volume"`
	SpatialBlend float64 `json:"spatial_blend"`
}

func (LoopSound) Kind() ActionKind { return KindLoopSound }

// EndLoop stops the part's looping sound.
type EndLoop struct{}

func (EndLoop) Kind() ActionKind { return KindEndLoop }

// PlayTrack starts a named music track.
type PlayTrack struct {
	Data string `json:"data"`
}

func (PlayTrack) Kind() ActionKind { return KindPlayTrack }

// Voice carries synthesized speech parameters.
type Voice struct {
	Gender string `json:"gender,omitempty"` // "male" or "female"
	Pitch  int    `json:"pitch,omitempty"`  // [-10, 10]
	Speed  int    `json:"speed,omitempty"`  // [-10, 10]
	Volume int    `json:"volume"`           // [0, 200]
}

// Say speaks the text through the voice synthesizer.
type Say struct {
	Text string `json:"text"`
}

func (Say) Kind() ActionKind { return KindSay }

// SetVoice changes the part's voice parameters for later Say actions.
type SetVoice struct {
	Voice Voice `json:"voice"`
}

func (SetVoice) Kind() ActionKind { return KindSetVoice }
