// Package config carries the engine's runtime tunables: per-tick
// quotas, the calculation cooldown, and the fan-out radii.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Runtime is the engine configuration. Zero values are invalid; start
// from Default and override.
type Runtime struct {
	// TickSeconds is the logical tick length used by run loops.
	TickSeconds float64 `yaml:"tick_seconds"`

	// MaxCalcsPerTick caps variable calculations per tick.
	MaxCalcsPerTick int `yaml:"max_calcs_per_tick"`

	// MaxTellsPerTick caps tell deliveries per tick.
	MaxTellsPerTick int `yaml:"max_tells_per_tick"`

	// CalcCooldownSeconds is how long after a tick starts the engine
	// waits before clearing accumulated limit hits.
	CalcCooldownSeconds float64 `yaml:"calc_cooldown_seconds"`

	// MaxLimitHits is how many times the calculation cap may be hit
	// before further calculations are refused until cooldown.
	MaxLimitHits int `yaml:"max_limit_hits"`

	NearbyRadius   float64 `yaml:"nearby_radius"`
	NearedRadius   float64 `yaml:"neared_radius"`
	WalkIntoRadius float64 `yaml:"walk_into_radius"`
	VicinityRadius float64 `yaml:"vicinity_radius"`
	HearsRadius    float64 `yaml:"hears_radius"`
}

// Default returns the stock runtime configuration.
func Default() Runtime {
	return Runtime{
		TickSeconds:         0.1,
		MaxCalcsPerTick:     50,
		MaxTellsPerTick:     250,
		CalcCooldownSeconds: 2.5,
		MaxLimitHits:        2,
		NearbyRadius:        7.5,
		NearedRadius:        3,
		WalkIntoRadius:      2,
		VicinityRadius:      7.5,
		HearsRadius:         7.5,
	}
}

// TickDuration returns the tick length as a duration.
func (r Runtime) TickDuration() time.Duration {
	return time.Duration(r.TickSeconds * float64(time.Second))
}

// CalcCooldown returns the calculation cooldown as a duration.
func (r Runtime) CalcCooldown() time.Duration {
	return time.Duration(r.CalcCooldownSeconds * float64(time.Second))
}

// Validate rejects configurations the engine cannot run with.
func (r Runtime) Validate() error {
	if r.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %v", r.TickSeconds)
	}
	if r.MaxCalcsPerTick < 1 {
		return fmt.Errorf("max_calcs_per_tick must be at least 1, got %d", r.MaxCalcsPerTick)
	}
	if r.MaxTellsPerTick < 1 {
		return fmt.Errorf("max_tells_per_tick must be at least 1, got %d", r.MaxTellsPerTick)
	}
	if r.CalcCooldownSeconds < 0 {
		return fmt.Errorf("calc_cooldown_seconds must not be negative, got %v", r.CalcCooldownSeconds)
	}
	if r.MaxLimitHits < 0 {
		return fmt.Errorf("max_limit_hits must not be negative, got %d", r.MaxLimitHits)
	}
	for _, radius := range []struct {
		name  string
		value float64
	}{
		{"nearby_radius", r.NearbyRadius},
		{"neared_radius", r.NearedRadius},
		{"walk_into_radius", r.WalkIntoRadius},
		{"vicinity_radius", r.VicinityRadius},
		{"hears_radius", r.HearsRadius},
	} {
		if radius.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", radius.name, radius.value)
		}
	}
	return nil
}

// Load reads a YAML runtime configuration. Fields absent from the file
// keep their defaults.
func Load(path string) (Runtime, error) {
	r := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("config %s: %w", path, err)
	}
	return r, nil
}
