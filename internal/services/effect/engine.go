// Package effect applies declarative state-change intents to the game
// state. The engine is the sole mutation gateway: nothing else writes the
// roster, the status ledger or the information store.
package effect

import (
	"errors"
	"fmt"

	"github.com/greygale/moonvale/internal/game"
	"github.com/greygale/moonvale/internal/models"
)

// Define errors
var (
	// ErrInvalidTarget means an effect in a batch named an unknown player
	// or carried a malformed payload; the whole batch is rejected
	ErrInvalidTarget = errors.New("invalid effect target")

	// ErrUnknownEffectType means a batch carried an effect type the engine
	// does not recognize
	ErrUnknownEffectType = errors.New("unknown effect type")
)

// Engine applies effect batches to a game state.
type Engine struct{}

// NewEngine creates an effect engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ApplyBatch applies all effects as a single unit, in order. The batch is
// validated up front: if any effect is malformed, the engine returns an
// error and no effect is applied. Ordering within a batch is the caller's
// responsibility - the engine applies, it does not resolve conflicts.
func (e *Engine) ApplyBatch(state *game.State, effects []*models.Effect) error {
	for _, eff := range effects {
		if err := e.validate(state, eff); err != nil {
			return err
		}
	}
	for _, eff := range effects {
		e.apply(state, eff)
	}
	return nil
}

func (e *Engine) validate(state *game.State, eff *models.Effect) error {
	switch eff.Type {
	case models.EffectKillPlayer, models.EffectRevivePlayer:
		if state.PlayerByName(eff.Target) == nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidTarget, eff.Type, eff.Target)
		}
	case models.EffectChangeRole:
		if state.PlayerByName(eff.Target) == nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidTarget, eff.Type, eff.Target)
		}
		if _, ok := models.GetRoleInfo(eff.NewRole); !ok {
			return fmt.Errorf("%w: change_role to unknown role %q", ErrInvalidTarget, eff.NewRole)
		}
	case models.EffectAddModifier:
		if state.PlayerByName(eff.Target) == nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidTarget, eff.Type, eff.Target)
		}
		if eff.Modifier == nil {
			return fmt.Errorf("%w: add_modifier without a modifier", ErrInvalidTarget)
		}
	case models.EffectRemoveModifier:
		if state.PlayerByName(eff.Target) == nil {
			return fmt.Errorf("%w: %s %q", ErrInvalidTarget, eff.Type, eff.Target)
		}
		if eff.ModifierType == "" {
			return fmt.Errorf("%w: remove_modifier without a type", ErrInvalidTarget)
		}
	case models.EffectRevealInfo:
		if eff.Info == nil {
			return fmt.Errorf("%w: reveal_info without an item", ErrInvalidTarget)
		}
	case models.EffectEndGame:
		if eff.Winner == "" {
			return fmt.Errorf("%w: end_game without a winner", ErrInvalidTarget)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEffectType, eff.Type)
	}
	return nil
}

func (e *Engine) apply(state *game.State, eff *models.Effect) {
	switch eff.Type {
	case models.EffectKillPlayer:
		player := state.PlayerByName(eff.Target)
		// Killing the dead is a no-op, not an error.
		if !player.Alive {
			return
		}
		player.Alive = false
		state.Ledger.Add(player.Name, &models.Modifier{
			Type:      models.ModifierDead,
			Source:    eff.Source,
			Data:      models.DeathData{Cause: eff.Cause},
			AppliedOn: state.DayNumber,
		})

	case models.EffectRevivePlayer:
		player := state.PlayerByName(eff.Target)
		if player.Alive {
			return
		}
		player.Alive = true
		state.Ledger.Remove(player.Name, models.ModifierDead)

	case models.EffectChangeRole:
		// Team affiliation is derived from the role, so it follows.
		state.PlayerByName(eff.Target).Role = eff.NewRole

	case models.EffectAddModifier:
		mod := eff.Modifier
		if mod.AppliedOn == 0 {
			mod.AppliedOn = state.DayNumber
		}
		state.Ledger.Add(eff.Target, mod)

	case models.EffectRemoveModifier:
		state.Ledger.Remove(eff.Target, eff.ModifierType)

	case models.EffectRevealInfo:
		info := eff.Info
		if info.Day == 0 {
			info.Day = state.DayNumber
		}
		if info.Phase == "" {
			info.Phase = string(state.Phase)
		}
		state.Info.Reveal(info)

	case models.EffectEndGame:
		state.EndGame(eff.Winner)
	}
}
