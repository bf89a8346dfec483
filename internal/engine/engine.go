package engine

import (
	"log/slog"

	"github.com/tmaxa/partscript/internal/config"
	"github.com/tmaxa/partscript/internal/rule"
	"github.com/tmaxa/partscript/internal/world"
)

// Effects receives every action the engine does not handle itself.
// Implementations bridge to whatever renders the world: a game client,
// a recording harness, or nothing at all.
type Effects interface {
	// Apply performs one action on behalf of a part. Actions arrive
	// pre-clamped and in script order.
	Apply(part *world.ThingPart, act rule.Action)

	// AbuseCue signals that scripts were throttled long enough to tell
	// the user about it.
	AbuseCue()
}

// NopEffects discards everything. Useful as a default and in tests that
// only observe variables and states.
type NopEffects struct{}

func (NopEffects) Apply(*world.ThingPart, rule.Action) {}
func (NopEffects) AbuseCue()                           {}

// Tracer records rule firings. The zero engine traces nowhere.
type Tracer interface {
	Record(f Firing)
}

// Firing is one matched rule execution.
type Firing struct {
	Seq       int64  `json:"seq"`
	Tick      int64  `json:"tick"`
	ThingID   string `json:"thing_id"`
	ThingName string `json:"thing_name"`
	PartID    string `json:"part_id"`
	State     int    `json:"state"`
	Event     string `json:"event"`
	Arg       string `json:"arg,omitempty"`
	Actions   int    `json:"actions"`
}

// Engine runs dispatch over one world.
type Engine struct {
	world   *world.World
	cfg     config.Runtime
	effects Effects
	tracer  Tracer
	log     *slog.Logger

	budget *TickBudget
	clock  *Clock
	tick   int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithEffects sets the action sink.
func WithEffects(effects Effects) Option {
	return func(e *Engine) { e.effects = effects }
}

// WithTracer sets the firing recorder.
func WithTracer(tracer Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New returns an engine over a world with the given runtime limits.
func New(w *world.World, cfg config.Runtime, opts ...Option) *Engine {
	e := &Engine{
		world:   w,
		cfg:     cfg,
		effects: NopEffects{},
		log:     slog.Default(),
		budget:  NewTickBudget(cfg.MaxCalcsPerTick, cfg.MaxTellsPerTick, cfg.MaxLimitHits, cfg.CalcCooldownSeconds),
		clock:   NewClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// World returns the world the engine dispatches over.
func (e *Engine) World() *world.World { return e.world }

// Tick returns the current tick index.
func (e *Engine) Tick() int64 { return e.tick }

// now is the engine's logical time in seconds.
func (e *Engine) now() float64 {
	return float64(e.tick) * e.cfg.TickSeconds
}

// BeginTick advances to the next tick, resets the spend budget, and
// fires position-based triggers.
func (e *Engine) BeginTick() {
	e.tick++
	if e.budget.BeginTick(e.now()) {
		e.log.Debug("calculation limit cleared, playing abuse cue")
		e.effects.AbuseCue()
	}
	e.triggerPositionEvents()
}

// Start fires the when-starts rules of every part's current state, the
// way loading an area does.
func (e *Engine) Start() {
	for _, thing := range e.world.AllThings() {
		for _, part := range thing.Parts {
			e.Deliver(part, Event{Kind: rule.OnStarts})
		}
	}
}

func (e *Engine) record(part *world.ThingPart, state int, ev Event, actions int) {
	if e.tracer == nil {
		return
	}
	thing := part.Owner()
	e.tracer.Record(Firing{
		Seq:       e.clock.Next(),
		Tick:      e.tick,
		ThingID:   thing.ID,
		ThingName: thing.Name,
		PartID:    part.ID,
		State:     state,
		Event:     ev.Kind.String(),
		Arg:       ev.Arg,
		Actions:   actions,
	})
}
