package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

const suicideChance = 0.20

// Suicidal marks one villager who has a nightly chance of taking their own
// life. The death looks like any other mysterious night death.
type Suicidal struct {
	base
}

// NewSuicidal creates the suicidal event.
func NewSuicidal() *Suicidal {
	return &Suicidal{}
}

func (e *Suicidal) Name() string { return "Suicidal Mode" }

func (e *Suicidal) Description() string { return "Someone struggles with dark thoughts..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Suicidal) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierSuicidal,
			Source: "event:suicidal",
		}),
	}
}

// OnNightEnd rolls the nightly chance for each suicidal player.
func (e *Suicidal) OnNightEnd(_ context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, p := range g.AliveWithModifier(models.ModifierSuicidal) {
		if !g.Roller.Chance(suicideChance) {
			continue
		}
		effects = append(effects,
			models.KillEffect(p.Name, "event:suicidal", "", models.CauseSuicide),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoDeath,
				Content:    p.Name + " was found dead.",
				Source:     "event:suicidal",
				Visibility: models.VisibleToAll(),
			}),
		)
	}
	return effects
}
