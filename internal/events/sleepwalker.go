package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Sleepwalker marks one villager who wanders at night. They do nothing, but
// their movement is observed and muddies the insomniac's reports.
type Sleepwalker struct {
	base
}

// NewSleepwalker creates the sleepwalker event.
func NewSleepwalker() *Sleepwalker {
	return &Sleepwalker{}
}

func (e *Sleepwalker) Name() string { return "Sleepwalker Mode" }

func (e *Sleepwalker) Description() string { return "Someone wanders at night..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Sleepwalker) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierSleepwalker,
			Source: "event:sleepwalker",
		}),
	}
}

// OnNightStart notes the wandering for the transcript. Only the sleepwalker
// learns of it directly; others see them through the insomniac.
func (e *Sleepwalker) OnNightStart(_ context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, p := range g.AliveWithModifier(models.ModifierSleepwalker) {
		effects = append(effects, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoObservation,
			Content:    "You wake up somewhere you don't remember going. You were sleepwalking again.",
			Source:     "event:sleepwalker",
			Visibility: models.VisibleToPlayer(p.Name),
		}))
	}
	return effects
}
