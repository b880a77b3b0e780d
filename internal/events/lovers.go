package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Lovers links two random players of any role. When one dies, the survivor
// dies of heartbreak - delayed to the end of the following night, so one
// full day passes before the second body drops.
type Lovers struct {
	base
	pendingHeartbreak string
	heartbreakReady   bool
}

// NewLovers creates the lovers event.
func NewLovers() *Lovers {
	return &Lovers{}
}

func (e *Lovers) Name() string { return "Lovers Mode" }

func (e *Lovers) Description() string { return "Two souls are bound together..." }

// Setup links two random players. Unlike the villager-only twists, lovers
// can fall on any role, assassins included.
func (e *Lovers) Setup(g *game.State) []*models.Effect {
	if len(g.Players) < 2 {
		return nil
	}

	shuffled := dice.Shuffle(g.Roller, g.Players)
	first, second := shuffled[0], shuffled[1]

	return []*models.Effect{
		models.AddModifierEffect(first.Name, &models.Modifier{
			Type:   models.ModifierLover,
			Source: "event:lovers",
			Data:   models.LoverData{Partner: second.Name},
		}),
		models.AddModifierEffect(second.Name, &models.Modifier{
			Type:   models.ModifierLover,
			Source: "event:lovers",
			Data:   models.LoverData{Partner: first.Name},
		}),
	}
}

// OnPlayerEliminated marks the surviving partner for heartbreak when a
// lover dies.
func (e *Lovers) OnPlayerEliminated(_ context.Context, g *game.State, player *models.Player, cause string) []*models.Effect {
	mod := g.Ledger.Get(player.Name, models.ModifierLover)
	if mod == nil {
		return nil
	}
	data, ok := mod.Data.(models.LoverData)
	if !ok {
		return nil
	}

	partner := g.PlayerByName(data.Partner)
	if partner == nil || !partner.Alive {
		return nil
	}

	e.pendingHeartbreak = partner.Name
	return []*models.Effect{
		models.RevealInfoEffect(&models.Information{
			Category:   models.InfoGeneral,
			Content:    player.Name + ", your beloved, has died. The grief is unbearable.",
			Source:     "event:lovers",
			Visibility: models.VisibleToPlayer(partner.Name),
		}),
	}
}

// OnNightStart arms a pending heartbreak, so the survivor gets one last day
// before it strikes.
func (e *Lovers) OnNightStart(_ context.Context, _ *game.State) []*models.Effect {
	if e.pendingHeartbreak != "" {
		e.heartbreakReady = true
	}
	return nil
}

// OnNightEnd kills the grieving partner once the delay has run.
func (e *Lovers) OnNightEnd(_ context.Context, g *game.State) []*models.Effect {
	if e.pendingHeartbreak == "" || !e.heartbreakReady {
		return nil
	}

	name := e.pendingHeartbreak
	e.pendingHeartbreak = ""
	e.heartbreakReady = false

	partner := g.PlayerByName(name)
	if partner == nil || !partner.Alive {
		return nil
	}

	return []*models.Effect{
		models.KillEffect(name, "event:lovers", "", models.CauseHeartbreak),
		models.RevealInfoEffect(&models.Information{
			Category:   models.InfoDeath,
			Content:    name + " died of a broken heart after losing their beloved!",
			Source:     "event:lovers",
			Visibility: models.VisibleToAll(),
		}),
	}
}
