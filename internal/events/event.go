// Package events holds the optional game twists: each event observes the
// game through lifecycle hooks and answers with effect batches. Hooks never
// mutate state; the orchestrator applies whatever they return through the
// effect engine.
package events

import (
	"context"

	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Event is one optional game twist. Every hook returns the effects the event
// wants applied; returning nil means the event has nothing to do.
type Event interface {
	// Name is the human-readable event name
	Name() string

	// Description is the one-line flavor text announced at game start
	Description() string

	// Setup runs once before the first night, typically assigning the
	// event's modifier to an eligible player
	Setup(g *game.State) []*models.Effect

	// OnNightStart runs at the start of every night
	OnNightStart(ctx context.Context, g *game.State) []*models.Effect

	// OnNightEnd runs after night resolution
	OnNightEnd(ctx context.Context, g *game.State) []*models.Effect

	// OnDayStart runs after the day number increments and expired
	// modifiers are swept
	OnDayStart(ctx context.Context, g *game.State) []*models.Effect

	// OnPlayerEliminated runs once per death, after the kill applied
	OnPlayerEliminated(ctx context.Context, g *game.State, player *models.Player, cause string) []*models.Effect
}

// base provides no-op hooks for events to embed.
type base struct{}

func (base) Setup(*game.State) []*models.Effect { return nil }

func (base) OnNightStart(context.Context, *game.State) []*models.Effect { return nil }

func (base) OnNightEnd(context.Context, *game.State) []*models.Effect { return nil }

func (base) OnDayStart(context.Context, *game.State) []*models.Effect { return nil }

func (base) OnPlayerEliminated(context.Context, *game.State, *models.Player, string) []*models.Effect {
	return nil
}

// eventModifiers are the modifier types events hand out during setup. A
// villager already carrying one is ineligible for another, so twists spread
// across the roster instead of piling onto one unlucky player.
var eventModifiers = []models.ModifierType{
	models.ModifierSuicidal,
	models.ModifierSleepwalker,
	models.ModifierInsomniac,
	models.ModifierArmed,
	models.ModifierDrunk,
	models.ModifierJester,
	models.ModifierPriest,
	models.ModifierBodyguard,
	models.ModifierInfected,
	models.ModifierLover,
}

// eligibleVillagers returns the living village players not yet claimed by
// another event, in roster order.
func eligibleVillagers(g *game.State) []*models.Player {
	var out []*models.Player
	for _, p := range g.AliveByTeam(models.TeamVillage) {
		claimed := false
		for _, mt := range eventModifiers {
			if g.Ledger.Has(p.Name, mt) {
				claimed = true
				break
			}
		}
		if !claimed {
			out = append(out, p)
		}
	}
	return out
}

// names extracts player names in order.
func names(players []*models.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
