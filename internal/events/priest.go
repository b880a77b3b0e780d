package events

import (
	"context"
	"fmt"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/prompt"
)

const saveThePower = "Save the power for later"

// Priest grants one villager a single resurrection, usable during a day
// phase. Using it reveals the priest to everyone.
type Priest struct {
	base
	decider llm.Decider
}

// PriestConfig holds dependencies for the priest event
type PriestConfig struct {
	// Decider lets the priest choose whether and whom to resurrect
	Decider llm.Decider
}

// NewPriest creates the priest event.
func NewPriest(cfg *PriestConfig) *Priest {
	return &Priest{decider: cfg.Decider}
}

func (e *Priest) Name() string { return "Priest Mode" }

func (e *Priest) Description() string { return "Someone has the power to bring back the dead..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Priest) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierPriest,
			Source: "event:priest",
			Data:   models.PriestData{ResurrectionsAvailable: 1},
		}),
	}
}

// OnDayStart offers each living priest with power remaining the choice to
// resurrect one of the dead. A failed decider call saves the power.
func (e *Priest) OnDayStart(ctx context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, priest := range g.AliveWithModifier(models.ModifierPriest) {
		mod := g.Ledger.Get(priest.Name, models.ModifierPriest)
		data, ok := mod.Data.(models.PriestData)
		if !ok || data.ResurrectionsAvailable == 0 {
			continue
		}

		var dead []string
		for _, p := range g.Players {
			// Risen corpses are beyond saving.
			if !p.Alive && !g.Ledger.Has(p.Name, models.ModifierZombie) {
				dead = append(dead, p.Name)
			}
		}
		if len(dead) == 0 {
			continue
		}

		choices := append(append([]string(nil), dead...), saveThePower)
		out, err := e.decider.Choose(ctx, &llm.ChooseInput{
			PlayerName:    priest.Name,
			SystemContext: prompt.SystemContext(priest, g.Ledger.ActiveFor(priest.Name)),
			Prompt:        prompt.Resurrection(priest.Name, "", dead, choices),
			Options:       choices,
		})
		if err != nil || out.Choice == saveThePower {
			continue
		}

		effects = append(effects,
			models.AddModifierEffect(priest.Name, &models.Modifier{
				Type:   models.ModifierPriest,
				Source: "event:priest",
				Data:   models.PriestData{ResurrectionsAvailable: 0},
			}),
			models.ReviveEffect(out.Choice, "event:priest"),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoGeneral,
				Content:    fmt.Sprintf("%s reveals themselves as the Priest and has resurrected %s from the dead!", priest.Name, out.Choice),
				Source:     "event:priest",
				Visibility: models.VisibleToAll(),
			}),
		)
	}
	return effects
}
