// Package engine drives the day/night cycle. The orchestrator is the only
// component that advances phases, collects decisions and hands effect
// batches to the effect engine; everything else reacts.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/greygale/moonvale/internal/events"
	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/llm"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/effect"
	"github.com/greygale/moonvale/internal/services/prompt"
)

const (
	defaultMaxDays          = 10
	defaultDiscussionRounds = 2

	// cascadeLimit bounds elimination chains. A game of a dozen players
	// cannot legitimately cascade deeper than its roster.
	cascadeLimit = 32
)

// Config holds dependencies for the orchestrator
type Config struct {
	// State is the game state being driven
	State *game.State

	// Effects applies effect batches
	Effects *effect.Engine

	// Events is the active event registry
	Events *events.Registry

	// Decider produces every player decision
	Decider llm.Decider

	// Logger receives structured progress logs
	Logger *slog.Logger

	// Notifier receives the spectator stream
	Notifier Notifier

	// MaxDays caps the game length; zero means the default
	MaxDays int

	// DiscussionRounds is how many discussion rounds each day has; zero
	// means the default
	DiscussionRounds int
}

// Orchestrator runs a game from setup to its final outcome.
type Orchestrator struct {
	state    *game.State
	effects  *effect.Engine
	events   *events.Registry
	decider  llm.Decider
	logger   *slog.Logger
	notifier Notifier

	maxDays          int
	discussionRounds int

	// lastWard remembers each doctor's previous protection target, since
	// protecting the same player twice in a row is not allowed
	lastWard map[string]string

	// blackboard holds tonight's anonymous postings until the next day
	// starts
	blackboard []string
}

// Outcome is the result of a finished game
type Outcome struct {
	// Winner is the winning team or player; empty when the day cap ended
	// the game unresolved
	Winner string

	// Days is the final day number
	Days int
}

// New creates an orchestrator.
func New(cfg *Config) *Orchestrator {
	o := &Orchestrator{
		state:            cfg.State,
		effects:          cfg.Effects,
		events:           cfg.Events,
		decider:          cfg.Decider,
		logger:           cfg.Logger,
		notifier:         cfg.Notifier,
		maxDays:          cfg.MaxDays,
		discussionRounds: cfg.DiscussionRounds,
		lastWard:         make(map[string]string),
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.notifier == nil {
		o.notifier = nopNotifier{}
	}
	if o.maxDays == 0 {
		o.maxDays = defaultMaxDays
	}
	if o.discussionRounds == 0 {
		o.discussionRounds = defaultDiscussionRounds
	}
	return o
}

// Setup deals out role briefings, introduces the assassins to each other and
// runs event setup. Must run once before Run.
func (o *Orchestrator) Setup(ctx context.Context) error {
	var batch []*models.Effect

	for _, p := range o.state.Players {
		info, _ := models.GetRoleInfo(p.Role)
		batch = append(batch, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoRole,
			Content:    info.Description,
			Source:     "game",
			Visibility: models.VisibleToPlayer(p.Name),
		}))
	}

	assassins := o.state.AliveByRole(models.RoleAssassin)
	if len(assassins) > 1 {
		roster := make([]string, len(assassins))
		for i, a := range assassins {
			roster[i] = a.Name
		}
		batch = append(batch, models.RevealInfoEffect(&models.Information{
			Category:   models.InfoRole,
			Content:    "The Assassins are: " + strings.Join(roster, ", "),
			Source:     "game",
			Visibility: models.VisibleToTeam(models.TeamAssassins),
		}))
	}

	for _, ev := range o.events.Active() {
		o.logger.Info("event active", "event", ev.Name())
		o.notify(&Notification{Kind: KindNarration, Content: ev.Description()})
	}
	batch = append(batch, o.events.Setup(o.state)...)

	return o.applyAndResolve(ctx, batch)
}

// Run drives the night/day cycle until a win condition is met or the day
// cap is reached.
func (o *Orchestrator) Run(ctx context.Context) (*Outcome, error) {
	for !o.state.Over && o.state.DayNumber < o.maxDays {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := o.runNight(ctx); err != nil {
			return nil, err
		}
		if o.state.Over {
			break
		}

		if err := o.runDay(ctx); err != nil {
			return nil, err
		}
	}

	if o.state.Over {
		o.notify(&Notification{
			Kind:    KindGameOver,
			Content: fmt.Sprintf("Game over! Winner: %s", o.state.Winner),
		})
	} else {
		o.notify(&Notification{
			Kind:    KindNarration,
			Content: "The sun sets on an unresolved village. The game ends with no winner.",
		})
	}
	o.logger.Info("game finished", "winner", o.state.Winner, "days", o.state.DayNumber)

	return &Outcome{Winner: o.state.Winner, Days: o.state.DayNumber}, nil
}

// applyAndResolve applies an effect batch, then fans each resulting death
// out to the event registry and applies whatever the events answer with,
// repeating until the cascade settles. Team win conditions are checked once
// the cascade is quiet, so a death effect queued by an event (a jester
// victory, a heartbreak) lands before the standing conditions are read.
func (o *Orchestrator) applyAndResolve(ctx context.Context, batch []*models.Effect) error {
	for depth := 0; len(batch) > 0; depth++ {
		if depth >= cascadeLimit {
			return fmt.Errorf("elimination cascade exceeded %d rounds", cascadeLimit)
		}

		o.narratePublicReveals(batch)

		aliveBefore := make(map[string]bool)
		for _, p := range o.state.AlivePlayers() {
			aliveBefore[p.Name] = true
		}

		if err := o.effects.ApplyBatch(o.state, batch); err != nil {
			return fmt.Errorf("applying effect batch: %w", err)
		}

		var next []*models.Effect
		for _, p := range o.state.Players {
			if p.Alive || !aliveBefore[p.Name] {
				continue
			}
			cause := o.deathCause(p.Name)
			o.logger.Info("player eliminated", "player", p.Name, "cause", cause, "day", o.state.DayNumber)
			o.notify(&Notification{Kind: KindDeath, Player: p.Name, Content: p.Name + " has died."})
			next = append(next, o.events.OnPlayerEliminated(ctx, o.state, p, cause)...)
		}
		batch = next
	}

	o.state.CheckTeamWin()
	return nil
}

// narratePublicReveals mirrors the batch's public information onto the
// spectator stream before it lands in the store.
func (o *Orchestrator) narratePublicReveals(batch []*models.Effect) {
	for _, eff := range batch {
		if eff.Type == models.EffectRevealInfo && eff.Info.Visibility.Scope == models.VisibilityAll {
			o.notify(&Notification{Kind: KindNarration, Content: eff.Info.Content})
		}
	}
}

func (o *Orchestrator) deathCause(player string) string {
	if mod := o.state.Ledger.Get(player, models.ModifierDead); mod != nil {
		if data, ok := mod.Data.(models.DeathData); ok {
			return data.Cause
		}
	}
	return "unknown"
}

func (o *Orchestrator) setPhase(phase game.Phase) {
	if o.state.Over {
		return
	}
	o.state.Phase = phase
	o.logger.Debug("phase transition", "phase", phase, "day", o.state.DayNumber)
	o.notify(&Notification{Kind: KindPhase, Content: string(phase)})
}

func (o *Orchestrator) notify(n *Notification) {
	n.Day = o.state.DayNumber
	if n.Phase == "" {
		n.Phase = o.state.Phase
	}
	o.notifier.Notify(n)
}

// systemContext frames a player for their decider.
func (o *Orchestrator) systemContext(p *models.Player) string {
	return prompt.SystemContext(p, o.state.Ledger.ActiveFor(p.Name))
}
