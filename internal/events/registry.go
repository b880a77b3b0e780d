package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// activationChance is the per-event probability used by chaos mode.
const activationChance = 0.10

// Registry holds the registered events and fans hooks out to the active
// ones, concatenating their effect batches in registration order.
type Registry struct {
	roller  dice.Roller
	entries []*entry
}

type entry struct {
	event  Event
	active bool
}

// RegistryConfig holds dependencies for the registry
type RegistryConfig struct {
	// Roller drives chaos-mode activation
	Roller dice.Roller
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg *RegistryConfig) *Registry {
	return &Registry{roller: cfg.Roller}
}

// Register adds an event, inactive by default.
func (r *Registry) Register(event Event) {
	r.entries = append(r.entries, &entry{event: event})
}

// Activate marks the named event active. Returns false when no such event
// is registered.
func (r *Registry) Activate(name string) bool {
	for _, e := range r.entries {
		if e.event.Name() == name {
			e.active = true
			return true
		}
	}
	return false
}

// ActivateChaos rolls every inactive event for activation and returns the
// ones that came up.
func (r *Registry) ActivateChaos() []Event {
	var activated []Event
	for _, e := range r.entries {
		if !e.active && r.roller.Chance(activationChance) {
			e.active = true
			activated = append(activated, e.event)
		}
	}
	return activated
}

// Active returns the active events in registration order.
func (r *Registry) Active() []Event {
	var out []Event
	for _, e := range r.entries {
		if e.active {
			out = append(out, e.event)
		}
	}
	return out
}

// Setup fans out game setup to every active event.
func (r *Registry) Setup(g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, e := range r.Active() {
		effects = append(effects, e.Setup(g)...)
	}
	return effects
}

// OnNightStart fans out the night-start hook.
func (r *Registry) OnNightStart(ctx context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, e := range r.Active() {
		effects = append(effects, e.OnNightStart(ctx, g)...)
	}
	return effects
}

// OnNightEnd fans out the night-end hook.
func (r *Registry) OnNightEnd(ctx context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, e := range r.Active() {
		effects = append(effects, e.OnNightEnd(ctx, g)...)
	}
	return effects
}

// OnDayStart fans out the day-start hook.
func (r *Registry) OnDayStart(ctx context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, e := range r.Active() {
		effects = append(effects, e.OnDayStart(ctx, g)...)
	}
	return effects
}

// OnPlayerEliminated fans out one death to every active event.
func (r *Registry) OnPlayerEliminated(ctx context.Context, g *game.State, player *models.Player, cause string) []*models.Effect {
	var effects []*models.Effect
	for _, e := range r.Active() {
		effects = append(effects, e.OnPlayerEliminated(ctx, g, player, cause)...)
	}
	return effects
}
