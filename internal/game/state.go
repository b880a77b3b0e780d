// Package game holds the aggregate state every other component reads and
// the effect engine writes. There is exactly one State per game; it is the
// single source of truth.
package game

import (
	"strings"

	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/models"
	"github.com/greygale/moonvale/internal/services/conversation"
	"github.com/greygale/moonvale/internal/services/information"
	"github.com/greygale/moonvale/internal/services/status"
	"github.com/greygale/moonvale/internal/services/vote"
)

// Phase is a named stage of the day/night cycle
type Phase string

const (
	PhaseNightStart      Phase = "night_start"
	PhaseNightActions    Phase = "night_actions"
	PhaseNightResolution Phase = "night_resolution"
	PhaseNightEnd        Phase = "night_end"
	PhaseDayStart        Phase = "day_start"
	PhaseDiscussion      Phase = "discussion"
	PhaseVoting          Phase = "voting"
	PhaseLynchResolution Phase = "lynch_resolution"
	PhaseDayEnd          Phase = "day_end"
	PhaseGameOver        Phase = "game_over"
)

// Config holds the pieces a State aggregates
type Config struct {
	Players      []*models.Player
	Ledger       *status.Ledger
	Info         *information.Store
	Conversation *conversation.Log
	Votes        *vote.Tally
	Roller       dice.Roller
}

// State aggregates the roster, the stores and the cycle position. The day
// number starts at 0 and increments exactly once per night-to-day
// transition, so "Night 1" runs with DayNumber 0 and "Day 1" with 1.
type State struct {
	// Players is the full roster in configuration order; players are never
	// removed, only marked dead
	Players []*models.Player

	// DayNumber is the monotonic day counter
	DayNumber int

	// Phase is the current stage of the cycle
	Phase Phase

	// Over is true once a win condition has been met
	Over bool

	// Winner names the winning team or player once Over is true
	Winner string

	// Ledger tracks player modifiers
	Ledger *status.Ledger

	// Info is the append-only information store
	Info *information.Store

	// Conversation is the append-only discussion log
	Conversation *conversation.Log

	// Votes is the append-only vote tally
	Votes *vote.Tally

	// Roller is the game's randomness source
	Roller dice.Roller

	byName map[string]*models.Player
}

// New creates a game state over the given roster.
func New(cfg *Config) *State {
	s := &State{
		Players:      cfg.Players,
		Phase:        PhaseNightStart,
		Ledger:       cfg.Ledger,
		Info:         cfg.Info,
		Conversation: cfg.Conversation,
		Votes:        cfg.Votes,
		Roller:       cfg.Roller,
		byName:       make(map[string]*models.Player, len(cfg.Players)),
	}
	for _, p := range cfg.Players {
		s.byName[p.Name] = p
	}
	return s
}

// PlayerByName finds a player by name, case-insensitively. Returns nil when
// no such player exists.
func (s *State) PlayerByName(name string) *models.Player {
	if p, ok := s.byName[name]; ok {
		return p
	}
	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// AlivePlayers returns the living players in roster order.
func (s *State) AlivePlayers() []*models.Player {
	var alive []*models.Player
	for _, p := range s.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveByTeam returns the living players on a team.
func (s *State) AliveByTeam(team models.Team) []*models.Player {
	var out []*models.Player
	for _, p := range s.AlivePlayers() {
		if p.Team() == team {
			out = append(out, p)
		}
	}
	return out
}

// AliveByRole returns the living players with a role.
func (s *State) AliveByRole(role models.Role) []*models.Player {
	var out []*models.Player
	for _, p := range s.AlivePlayers() {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// AliveWithModifier returns the living players holding an active modifier
// of the given type, in roster order.
func (s *State) AliveWithModifier(modifierType models.ModifierType) []*models.Player {
	var out []*models.Player
	for _, p := range s.AlivePlayers() {
		if s.Ledger.Has(p.Name, modifierType) {
			out = append(out, p)
		}
	}
	return out
}

// DeadWithModifier returns the dead players holding an active modifier of
// the given type, in roster order.
func (s *State) DeadWithModifier(modifierType models.ModifierType) []*models.Player {
	var out []*models.Player
	for _, p := range s.Players {
		if !p.Alive && s.Ledger.Has(p.Name, modifierType) {
			out = append(out, p)
		}
	}
	return out
}

// EndGame marks the game over with the given winner. Further calls are
// no-ops; the first win sticks.
func (s *State) EndGame(winner string) {
	if s.Over {
		return
	}
	s.Over = true
	s.Winner = winner
	s.Phase = PhaseGameOver
}

// CheckTeamWin evaluates the standing team win conditions and ends the game
// when one is met: the village wins when every assassin is dead, the
// assassins win when they equal or outnumber the living village. Returns
// true when the game is (already or newly) over.
func (s *State) CheckTeamWin() bool {
	if s.Over {
		return true
	}

	assassins := len(s.AliveByTeam(models.TeamAssassins))
	village := len(s.AliveByTeam(models.TeamVillage))

	if assassins == 0 {
		s.EndGame(string(models.TeamVillage))
		return true
	}
	if assassins >= village {
		s.EndGame(string(models.TeamAssassins))
		return true
	}
	return false
}
