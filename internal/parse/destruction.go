package parse

import (
	"strconv"
	"strings"

	"github.com/tmaxa/partscript/internal/rule"
)

// parseDestruction reads the "with ..." modifiers of destroy actions.
// Numeric modifiers are written before their unit word ("500 force",
// "20 parts", "3s restore").
func parseDestruction(words []string) rule.Destruction {
	d := rule.Destruction{Gravity: true, Collides: true, CollidesSiblings: true}

	if len(words) < 3 || words[1] != "with" {
		return d
	}
	for i := 2; i < len(words); i++ {
		previous := words[i-1]
		switch words[i] {
		case "burst":
			d.Burst = true
		case "force":
			d.Burst = true
			if force, err := strconv.ParseFloat(previous, 64); err == nil {
				d.BurstVelocity = clamp(force, 0, 1000)
			}
		case "parts":
			d.Burst = true
			if parts, err := strconv.Atoi(previous); err == nil {
				d.MaxParts = clampInt(parts, 1, 250)
			}
		case "gravity-free":
			d.Burst = true
			d.Gravity = false
		case "bouncy":
			d.Burst = true
			d.Bouncy = true
		case "slidy":
			d.Burst = true
			d.Slidy = true
		case "uncollidable":
			d.Burst = true
			d.Collides = false
		case "self-uncollidable":
			d.Burst = true
			d.CollidesSiblings = false
		case "disappear":
			if seconds, err := strconv.ParseFloat(previous, 64); err == nil {
				d.Burst = true
				d.HidePartsSeconds = clamp(seconds, 0.1, 60)
			}
		case "grow", "shrink":
			if speed, err := strconv.ParseFloat(previous, 64); err == nil {
				speed = clamp(speed, 0.01, 100)
				if words[i] == "shrink" {
					speed = -speed
				}
				d.Burst = true
				d.Growth = speed
			}
		case "restore":
			seconds := strings.ReplaceAll(previous, "s", "")
			if restore, err := strconv.ParseFloat(seconds, 64); err == nil {
				d.RestoreInSeconds = clamp(restore, 0.01, 86400)
			}
		}
	}
	return d
}

// parseOtherDestruction extends parseDestruction with the search bounds
// of destroy_nearby ("5m radius", "2m max-size").
func parseOtherDestruction(words []string) rule.OtherDestruction {
	d := rule.OtherDestruction{
		Destruction:  parseDestruction(words),
		Radius:       5,
		MaxThingSize: 10000,
	}

	if len(words) < 3 || words[1] != "with" {
		return d
	}
	for i := 2; i < len(words); i++ {
		previous := strings.ReplaceAll(words[i-1], "m", "")
		switch words[i] {
		case "radius":
			if radius, err := strconv.ParseFloat(previous, 64); err == nil {
				d.Radius = clamp(radius, 0.001, 10000)
			}
		case "max-size":
			if size, err := strconv.ParseFloat(previous, 64); err == nil {
				d.MaxThingSize = clamp(size, 0.001, 10000)
			}
		}
	}
	return d
}
