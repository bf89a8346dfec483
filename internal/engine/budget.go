package engine

// TickBudget enforces the per-tick spend limits that keep scripts from
// locking up a tick: a cap on variable calculations and a cap on tell
// deliveries.
//
// The calculation cap escalates. Hitting it counts a limit hit; while
// the accumulated hits stay within the allowance, the next tick starts
// fresh. Past the allowance every calculation is refused until the
// cooldown passes, at which point the engine plays an abuse cue and
// clears the hits. This catches both a single runaway tick and a script
// that saturates tick after tick.
type TickBudget struct {
	maxCalcs     int
	maxTells     int
	maxLimitHits int
	cooldown     float64

	calcCount int
	tellCount int
	limitHits int

	// clearHitsAt is the engine time after which accumulated limit
	// hits are forgiven.
	clearHitsAt float64
}

// NewTickBudget returns a budget with the given per-tick caps.
func NewTickBudget(maxCalcs, maxTells, maxLimitHits int, cooldownSeconds float64) *TickBudget {
	return &TickBudget{
		maxCalcs:     maxCalcs,
		maxTells:     maxTells,
		maxLimitHits: maxLimitHits,
		cooldown:     cooldownSeconds,
	}
}

// BeginTick resets the per-tick counters and, once the cooldown has
// passed, forgives accumulated limit hits. It reports whether the
// forgiveness should be announced with an abuse cue.
func (b *TickBudget) BeginTick(now float64) (playAbuseCue bool) {
	b.calcCount = 0
	b.tellCount = 0

	if now >= b.clearHitsAt && b.limitHits > 0 {
		b.limitHits = 0
		return true
	}
	return false
}

// AllowCalculation reports whether another variable calculation may run
// this tick, and counts it. The final allowed calculation of a tick
// registers a limit hit and pushes the cooldown out.
func (b *TickBudget) AllowCalculation(now float64) bool {
	if b.calcCount >= b.maxCalcs || b.limitHits > b.maxLimitHits {
		return false
	}
	b.calcCount++
	if b.calcCount == b.maxCalcs {
		b.limitHits++
		b.clearHitsAt = now + b.cooldown
	}
	return true
}

// AllowTell reports whether another tell may be delivered this tick,
// and counts it.
func (b *TickBudget) AllowTell() bool {
	if b.tellCount >= b.maxTells {
		return false
	}
	b.tellCount++
	return true
}

// LimitHits returns the accumulated calculation limit hits.
func (b *TickBudget) LimitHits() int { return b.limitHits }

// CalcCount returns the calculations spent this tick.
func (b *TickBudget) CalcCount() int { return b.calcCount }

// TellCount returns the tells spent this tick.
func (b *TickBudget) TellCount() int { return b.tellCount }
