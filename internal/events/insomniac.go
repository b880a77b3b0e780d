package events

import (
	"context"
	"fmt"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Insomniac marks one villager who stays awake and glimpses someone moving
// at night, without learning what they were doing. The sighting is private
// overnight; at night's end the insomniac's report goes public. Seeing a
// risen zombie makes for an alarming report.
type Insomniac struct {
	base
	sightings []sighting
}

type sighting struct {
	insomniac string
	seen      string
	wasDead   bool
}

// NewInsomniac creates the insomniac event.
func NewInsomniac() *Insomniac {
	return &Insomniac{}
}

func (e *Insomniac) Name() string { return "Insomniac Mode" }

func (e *Insomniac) Description() string { return "Someone can't sleep and watches..." }

// Setup assigns the modifier to a random eligible villager.
func (e *Insomniac) Setup(g *game.State) []*models.Effect {
	candidates := eligibleVillagers(g)
	if len(candidates) == 0 {
		return nil
	}
	chosen := dice.Pick(g.Roller, candidates)
	return []*models.Effect{
		models.AddModifierEffect(chosen.Name, &models.Modifier{
			Type:   models.ModifierInsomniac,
			Source: "event:insomniac",
		}),
	}
}

// OnNightStart picks what each insomniac sees tonight: someone who actually
// moves at night, which includes the risen dead.
func (e *Insomniac) OnNightStart(_ context.Context, g *game.State) []*models.Effect {
	e.sightings = nil

	var effects []*models.Effect
	for _, insomniac := range g.AliveWithModifier(models.ModifierInsomniac) {
		movers := e.nightMovers(g, insomniac)
		if len(movers) == 0 {
			continue
		}

		seen := dice.Pick(g.Roller, movers)
		e.sightings = append(e.sightings, sighting{
			insomniac: insomniac.Name,
			seen:      seen.Name,
			wasDead:   !seen.Alive,
		})

		status := ""
		if !seen.Alive {
			status = " (supposedly dead)"
		}
		effects = append(effects, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoObservation,
			Content:    fmt.Sprintf("You saw %s%s moving around tonight, but you don't know what they were doing.", seen.Name, status),
			Source:     "event:insomniac",
			Visibility: models.VisibleToPlayer(insomniac.Name),
		}))
	}
	return effects
}

// OnNightEnd publishes the reports and clears the night's sightings.
func (e *Insomniac) OnNightEnd(_ context.Context, g *game.State) []*models.Effect {
	var effects []*models.Effect
	for _, s := range e.sightings {
		content := fmt.Sprintf("%s reported seeing %s moving at night.", s.insomniac, s.seen)
		if s.wasDead {
			content = fmt.Sprintf("%s reported seeing %s moving at night, despite %s being dead!", s.insomniac, s.seen, s.seen)
		}
		effects = append(effects, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoObservation,
			Content:    content,
			Source:     "event:insomniac",
			Visibility: models.VisibleToAll(),
		}))
	}
	e.sightings = nil
	return effects
}

// nightMovers returns the players an insomniac could spot: living players
// whose role or condition moves them at night, plus dead risen zombies.
func (e *Insomniac) nightMovers(g *game.State, insomniac *models.Player) []*models.Player {
	var movers []*models.Player
	for _, p := range g.AlivePlayers() {
		if p.Name == insomniac.Name {
			continue
		}
		switch {
		case p.Role == models.RoleAssassin, p.Role == models.RoleDoctor, p.Role == models.RoleDetective:
			movers = append(movers, p)
		case g.Ledger.Has(p.Name, models.ModifierSleepwalker):
			movers = append(movers, p)
		}
	}
	movers = append(movers, g.DeadWithModifier(models.ModifierZombie)...)
	return movers
}
