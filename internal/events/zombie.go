package events

import (
	"context"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Zombie seeds one player with an infection. An infected player rises from
// the dead the night after dying, and each risen zombie attacks a living
// player every night, infecting them in turn. Left unchecked the outbreak
// spreads exponentially.
type Zombie struct {
	base
}

// NewZombie creates the zombie event.
func NewZombie() *Zombie {
	return &Zombie{}
}

func (e *Zombie) Name() string { return "Zombie Mode" }

func (e *Zombie) Description() string { return "Dead zombies will rise again..." }

// Setup infects a random eligible villager. They feel a little off but have
// no idea what is coming.
func (e *Zombie) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierInfected,
			Source: "event:zombie",
			Data:   models.InfectionData{Infector: "event:zombie"},
		}),
	}
}

// OnPlayerEliminated queues an infected corpse to rise next night.
func (e *Zombie) OnPlayerEliminated(_ context.Context, g *game.State, player *models.Player, cause string) []*models.Effect {
	if !g.Ledger.Has(player.Name, models.ModifierInfected) {
		return nil
	}
	return []*models.Effect{
		models.AddModifierEffect(player.Name, &models.Modifier{
			Type:   models.ModifierPendingRise,
			Source: "event:zombie",
		}),
	}
}

// OnNightStart raises every pending corpse.
func (e *Zombie) OnNightStart(_ context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, p := range g.DeadWithModifier(models.ModifierPendingRise) {
		effects = append(effects,
			models.RemoveModifierEffect(p.Name, models.ModifierPendingRise, "event:zombie"),
			models.AddModifierEffect(p.Name, &models.Modifier{
				Type:   models.ModifierZombie,
				Source: "event:zombie",
			}),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoObservation,
				Content:    p.Name + "'s grave lies disturbed, the earth freshly turned from below.",
				Source:     "event:zombie",
				Visibility: models.VisibleToAll(),
			}),
		)
	}
	return effects
}

// OnNightEnd lets every risen zombie attack a random living non-infected
// player, killing and infecting them.
func (e *Zombie) OnNightEnd(_ context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, zombie := range g.DeadWithModifier(models.ModifierZombie) {
		var victims []*models.Player
		for _, p := range g.AlivePlayers() {
			if !g.Ledger.Has(p.Name, models.ModifierInfected) {
				victims = append(victims, p)
			}
		}
		if len(victims) == 0 {
			continue
		}

		victim := dice.Pick(g.Roller, victims)
		effects = append(effects,
			models.AddModifierEffect(victim.Name, &models.Modifier{
				Type:   models.ModifierInfected,
				Source: "event:zombie",
				Data:   models.InfectionData{Infector: zombie.Name},
			}),
			models.KillEffect(victim.Name, "event:zombie", zombie.Name, models.CauseZombie),
			models.RevealInfoEffect(&models.Information{
				Category:   models.InfoDeath,
				Content:    victim.Name + " was found dead, their body savaged by something inhuman.",
				Source:     "event:zombie",
				Visibility: models.VisibleToAll(),
			}),
		)
	}
	return effects
}
