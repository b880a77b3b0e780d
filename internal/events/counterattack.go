package events

import (
	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// CounterAttack arms one villager. An attack against them rebounds: the
// attacker dies instead of the target. Night resolution performs the
// redirect; this event only hands out the modifier.
type CounterAttack struct {
	base
}

// NewCounterAttack creates the counter-attack event.
func NewCounterAttack() *CounterAttack {
	return &CounterAttack{}
}

func (e *CounterAttack) Name() string { return "Gun Nut Mode" }

func (e *CounterAttack) Description() string { return "Someone is armed and dangerous..." }

// Setup assigns the modifier to a random eligible villager.
func (e *CounterAttack) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierArmed,
			Source: "event:counter_attack",
		}),
	}
}
