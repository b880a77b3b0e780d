package models

// EffectType identifies the kind of state change an effect intends
type EffectType string

const (
	// EffectKillPlayer marks the target dead
	EffectKillPlayer EffectType = "kill_player"

	// EffectRevivePlayer marks the target alive again
	EffectRevivePlayer EffectType = "revive_player"

	// EffectChangeRole replaces the target's role; team affiliation follows
	EffectChangeRole EffectType = "change_role"

	// EffectAddModifier attaches a modifier to the target
	EffectAddModifier EffectType = "add_modifier"

	// EffectRemoveModifier deactivates the target's modifier of a type
	EffectRemoveModifier EffectType = "remove_modifier"

	// EffectRevealInfo appends an item to the information store
	EffectRevealInfo EffectType = "reveal_info"

	// EffectEndGame terminates the game with a winner
	EffectEndGame EffectType = "end_game"
)

// Effect is a declarative intent to change game state. Constructing an
// effect changes nothing; only the effect engine's apply step mutates state.
type Effect struct {
	// Type is the kind of state change intended
	Type EffectType

	// Target is the player the effect applies to; empty for game-level
	// effects (reveal_info, end_game)
	Target string

	// Source identifies what created the effect, for the audit trail and
	// for counter-attack redirection (kill effects carry their attacker)
	Source string

	// Attacker is the player behind a kill effect, when one exists; used by
	// counter-attack resolution
	Attacker string

	// Cause is the private description attached to a kill
	Cause string

	// Modifier is the payload for add_modifier
	Modifier *Modifier

	// ModifierType is the payload for remove_modifier
	ModifierType ModifierType

	// NewRole is the payload for change_role
	NewRole Role

	// Info is the payload for reveal_info
	Info *Information

	// Winner is the payload for end_game
	Winner string
}

// KillEffect builds a kill intent against target.
func KillEffect(target, source, attacker, cause string) *Effect {
	return &Effect{
		Type:     EffectKillPlayer,
		Target:   target,
		Source:   source,
		Attacker: attacker,
		Cause:    cause,
	}
}

// ReviveEffect builds a revive intent for target.
func ReviveEffect(target, source string) *Effect {
	return &Effect{Type: EffectRevivePlayer, Target: target, Source: source}
}

// AddModifierEffect builds an add-modifier intent for target.
func AddModifierEffect(target string, modifier *Modifier) *Effect {
	return &Effect{
		Type:     EffectAddModifier,
		Target:   target,
		Source:   modifier.Source,
		Modifier: modifier,
	}
}

// RemoveModifierEffect builds a remove-modifier intent for target.
func RemoveModifierEffect(target string, modifierType ModifierType, source string) *Effect {
	return &Effect{
		Type:         EffectRemoveModifier,
		Target:       target,
		Source:       source,
		ModifierType: modifierType,
	}
}

// RevealInfoEffect builds an information reveal intent.
func RevealInfoEffect(info *Information) *Effect {
	return &Effect{Type: EffectRevealInfo, Source: info.Source, Info: info}
}

// EndGameEffect builds a game-termination intent.
func EndGameEffect(winner, source string) *Effect {
	return &Effect{Type: EffectEndGame, Source: source, Winner: winner}
}
