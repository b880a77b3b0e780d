package events

import (
	"context"
	"fmt"

	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/prompt"
)

const ghostChance = 0.10

// Ghost gives every death a small chance of leaving a lingering spirit. The
// ghost chooses a living player to haunt; the haunted player feels the
// presence and hears the ghost's whispers during discussion.
type Ghost struct {
	base
	decider llm.Decider
}

// GhostConfig holds dependencies for the ghost event
type GhostConfig struct {
	// Decider lets the dead player choose who to haunt
	Decider llm.Decider
}

// NewGhost creates the ghost event.
func NewGhost(cfg *GhostConfig) *Ghost {
	return &Ghost{decider: cfg.Decider}
}

func (e *Ghost) Name() string { return "Ghost Mode" }

func (e *Ghost) Description() string { return "The dead may linger..." }

// OnPlayerEliminated rolls for a lingering spirit. A failed decider call
// means the spirit passes on quietly.
func (e *Ghost) OnPlayerEliminated(ctx context.Context, g *game.State, player *models.Player, cause string) []*models.Effect {
	if !g.Roller.Chance(ghostChance) {
		return nil
	}

	alive := g.AlivePlayers()
	if len(alive) == 0 {
		return nil
	}

	targets := names(alive)
	out, err := e.decider.Choose(ctx, &llm.ChooseInput{
		PlayerName:    player.Name,
		SystemContext: prompt.SystemContext(player, g.Ledger.ActiveFor(player.Name)),
		Prompt:        prompt.Haunt(player.Name, "You died: "+cause+".", targets),
		Options:       targets,
	})
	if err != nil {
		return nil
	}

	return []*models.Effect{
		models.AddModifierEffect(player.Name, &models.Modifier{
			Type:   models.ModifierGhost,
			Source: "event:ghost",
			Data:   models.HauntData{Target: out.Choice},
		}),
		models.RevealInfoEffect(&models.Information{
			Category:   models.InfoObservation,
			Content:    "A cold presence follows you. Something supernatural is happening around you.",
			Source:     "event:ghost",
			Visibility: models.VisibleToPlayer(out.Choice),
		}),
		models.RevealInfoEffect(&models.Information{
			Category:   models.InfoGeneral,
			Content:    fmt.Sprintf("Your spirit lingers. You are haunting %s.", out.Choice),
			Source:     "event:ghost",
			Visibility: models.VisibleToPlayer(player.Name),
		}),
	}
}
