package parse

import (
	"math"
	"strconv"
	"strings"

	"github.com/tmaxa/partscript/internal/rule"
)

// semitoneRatio is the pitch multiplier of one equal-temperament semitone.
const semitoneRatio = 1.05946

// adjustPitchInOctaves converts an octave offset to a pitch multiplier.
func adjustPitchInOctaves(octaves float64) float64 {
	return math.Pow(semitoneRatio, octaves*12)
}

// parseSound reads "name" or "name with prop prop ...". Flag properties
// stand alone; numeric properties are written before their unit word
// ("3 repeats", "0.5s delay", "80%" for volume).
func parseSound(data string) rule.Sound {
	sound := rule.Sound{Pitch: 1, Volume: 1}

	name, propText, found := strings.Cut(data, " with ")
	if !found {
		sound.Name = data
		return sound
	}
	sound.Name = name

	properties := strings.Fields(propText)
	for i, property := range properties {
		switch property {
		case "very-low-pitch":
			sound.Pitch = 0.5
		case "low-pitch":
			sound.Pitch = 0.75
		case "high-pitch":
			sound.Pitch = 1.5
		case "very-high-pitch":
			sound.Pitch = 2
		case "varied-pitch":
			sound.PitchVariance = 0.1
		case "very-varied-pitch":
			sound.PitchVariance = 0.3
		case "echo":
			sound.Echo = true
		case "low-pass":
			sound.LowPass = true
		case "high-pass":
			sound.HighPass = true
		case "stretch":
			sound.Stretch = true
		case "reversal":
			sound.Reverse = true
		case "surround":
			sound.Surround = true
		default:
			next := ""
			if i < len(properties)-1 {
				next = properties[i+1]
			}
			switch next {
			case "repeat", "repeats":
				if count, err := strconv.Atoi(property); err == nil {
					sound.RepeatCount = clampInt(count, 0, 50)
				}
			case "octave", "octaves":
				if octaves, err := strconv.ParseFloat(property, 64); err == nil {
					sound.Pitch = clamp(adjustPitchInOctaves(octaves), 0.00001, 100)
				}
			case "delay":
				if seconds, err := strconv.ParseFloat(strings.ReplaceAll(property, "s", ""), 64); err == nil {
					sound.SecondsDelay = clamp(seconds, 0.001, 30)
				}
			case "skip":
				if seconds, err := strconv.ParseFloat(strings.ReplaceAll(property, "s", ""), 64); err == nil {
					sound.SecondsToSkip = clamp(seconds, 0.001, 30)
				}
			case "duration":
				if seconds, err := strconv.ParseFloat(strings.ReplaceAll(property, "s", ""), 64); err == nil {
					sound.SecondsLength = clamp(seconds, 0.001, 60)
				}
			default:
				if relative, err := strconv.ParseFloat(strings.ReplaceAll(property, "%", ""), 64); err == nil {
					sound.Volume *= clamp(relative/100, rule.MinRelativeSoundVolume, rule.MaxRelativeSoundVolume)
				}
			}
		}
	}
	return sound
}

// parseVoice reads speech properties: "male"/"female", "N pitch",
// "N speed", and a bare percentage for volume.
func parseVoice(data string) rule.Voice {
	voice := rule.Voice{Volume: 100}

	properties := strings.Fields(data)
	for i, property := range properties {
		next := ""
		if i < len(properties)-1 {
			next = properties[i+1]
		}
		switch {
		case property == "male", property == "female":
			voice.Gender = property
		case next == "pitch":
			if value, err := strconv.ParseFloat(property, 64); err == nil {
				voice.Pitch = int(clamp(value, -10, 10))
			}
		case next == "speed":
			if value, err := strconv.ParseFloat(property, 64); err == nil {
				voice.Speed = int(clamp(value, -10, 10))
			}
		default:
			if value, err := strconv.ParseFloat(strings.ReplaceAll(property, "%", ""), 64); err == nil {
				voice.Volume = int(clamp(value, 0, 200))
			}
		}
	}
	return voice
}
