package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Jester marks one villager whose secret goal is to get lynched. A lynched
// jester wins alone and the game ends immediately.
type Jester struct {
	base
}

// NewJester creates the jester event.
func NewJester() *Jester {
	return &Jester{}
}

func (e *Jester) Name() string { return "Jester Mode" }

func (e *Jester) Description() string { return "Someone wants to be executed..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Jester) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierJester,
			Source: "event:jester",
		}),
	}
}

// OnPlayerEliminated ends the game in the jester's favor when they were
// lynched. Any other death leaves the jester's goal unfulfilled.
func (e *Jester) OnPlayerEliminated(_ context.Context, g *game.State, player *models.Player, cause string) []*models.Effect {
	if cause != models.CauseLynch || !g.Ledger.Has(player.Name, models.ModifierJester) {
		return nil
	}
	return []*models.Effect{
		models.RevealInfoEffect(&models.Information{
			Category:   models.InfoGeneral,
			Content:    player.Name + " was the Jester and has won by being lynched! Everyone else loses.",
			Source:     "event:jester",
			Visibility: models.VisibleToAll(),
		}),
		models.EndGameEffect(player.Name, "event:jester"),
	}
}
