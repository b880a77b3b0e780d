package events

import (
	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Drunk marks one villager whose lynch vote goes to a random candidate
// instead of their intended target. The redirect itself happens during vote
// collection; this event only hands out the modifier.
type Drunk struct {
	base
}

// NewDrunk creates the drunk event.
func NewDrunk() *Drunk {
	return &Drunk{}
}

func (e *Drunk) Name() string { return "Drunk Mode" }

func (e *Drunk) Description() string { return "Someone's had too much to drink..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Drunk) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierDrunk,
			Source: "event:drunk",
		}),
	}
}
