package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/prompt"
)

// Bodyguard marks one villager who watches over someone each night. If the
// ward is attacked, the bodyguard dies in their place. Night resolution
// performs the sacrifice; this event hands out the modifiers.
type Bodyguard struct {
	base
	decider llm.Decider
}

// BodyguardConfig holds dependencies for the bodyguard event
type BodyguardConfig struct {
	// Decider lets the bodyguard choose their ward
	Decider llm.Decider
}

// NewBodyguard creates the bodyguard event.
func NewBodyguard(cfg *BodyguardConfig) *Bodyguard {
	return &Bodyguard{decider: cfg.Decider}
}

func (e *Bodyguard) Name() string { return "Bodyguard Mode" }

func (e *Bodyguard) Description() string { return "Someone is willing to die for others..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Bodyguard) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierBodyguard,
			Source: "event:bodyguard",
		}),
	}
}

// OnNightStart asks each living bodyguard for tonight's ward. The guard
// lasts through the coming day. A failed decider call means no one is
// watched tonight.
func (e *Bodyguard) OnNightStart(ctx context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, bodyguard := range g.AliveWithModifier(models.ModifierBodyguard) {
		var targets []string
		for _, p := range g.AlivePlayers() {
			if p.Name != bodyguard.Name {
				targets = append(targets, p.Name)
			}
		}
		if len(targets) == 0 {
			continue
		}

		out, err := e.decider.Choose(ctx, &llm.ChooseInput{
			PlayerName:    bodyguard.Name,
			SystemContext: prompt.SystemContext(bodyguard, g.Ledger.ActiveFor(bodyguard.Name)),
			Prompt:        prompt.BodyguardWatch(bodyguard.Name, "", targets),
			Options:       targets,
		})
		if err != nil {
			continue
		}

		expires := g.DayNumber + 1
		effects = append(effects, models.AddModifierEffect(out.Choice, &models.Modifier{
			Type:      models.ModifierGuarded,
			Source:    "event:bodyguard",
			Data:      models.GuardData{Guardian: bodyguard.Name},
			ExpiresOn: &expires,
		}))
	}
	return effects
}
