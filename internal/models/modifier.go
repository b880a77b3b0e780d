package models

// ModifierType identifies a status condition attached to a player
type ModifierType string

const (
	// ModifierProtected marks a player saved from elimination tonight
	ModifierProtected ModifierType = "protected"

	// ModifierGuarded marks a player watched by the bodyguard tonight
	ModifierGuarded ModifierType = "guarded"

	// ModifierArmed marks a player who redirects attacks onto the attacker
	ModifierArmed ModifierType = "armed"

	// ModifierDrunk redirects the player's lynch vote to a random target
	ModifierDrunk ModifierType = "drunk"

	// ModifierInfected marks a player who will rise as a zombie after death
	ModifierInfected ModifierType = "infected"

	// ModifierZombie marks a dead player who has risen and attacks at night
	ModifierZombie ModifierType = "zombie"

	// ModifierPendingRise marks a dead infected player who rises next night
	ModifierPendingRise ModifierType = "pending_rise"

	// ModifierGhost lets a dead player whisper to the player they haunt
	ModifierGhost ModifierType = "ghost"

	// ModifierJester makes the player win if they are lynched
	ModifierJester ModifierType = "jester"

	// ModifierPriest grants a one-time resurrection during a day phase
	ModifierPriest ModifierType = "priest"

	// ModifierLover links the player to a partner who dies of heartbreak
	ModifierLover ModifierType = "lover"

	// ModifierBodyguard lets the player die in their ward's place
	ModifierBodyguard ModifierType = "bodyguard"

	// ModifierSleepwalker makes the player wander at night
	ModifierSleepwalker ModifierType = "sleepwalker"

	// ModifierInsomniac lets the player witness night activity
	ModifierInsomniac ModifierType = "insomniac"

	// ModifierSuicidal gives the player a nightly chance of taking their own life
	ModifierSuicidal ModifierType = "suicidal"

	// ModifierVigilanteUsed records that the vigilante's one shot is spent
	ModifierVigilanteUsed ModifierType = "vigilante_used"

	// ModifierDead records a death with its cause, for the audit trail
	ModifierDead ModifierType = "dead"
)

// ModifierData is the typed payload carried by a modifier. Each modifier
// type that needs data has its own variant, so payload shapes are statically
// known instead of hiding in an untyped map.
type ModifierData interface {
	modifierData()
}

// LoverData links a lover to their partner
type LoverData struct {
	// Partner is the name of the linked player
	Partner string
}

func (LoverData) modifierData() {}

// HauntData records who a ghost haunts
type HauntData struct {
	// Target is the living player who hears the ghost
	Target string
}

func (HauntData) modifierData() {}

// PriestData tracks the priest's remaining resurrections
type PriestData struct {
	// ResurrectionsAvailable is how many resurrections remain
	ResurrectionsAvailable int
}

func (PriestData) modifierData() {}

// GuardData records who the bodyguard is watching
type GuardData struct {
	// Guardian is the bodyguard's name
	Guardian string
}

func (GuardData) modifierData() {}

// InfectionData records who spread an infection
type InfectionData struct {
	// Infector is the name of the player or event that caused the infection
	Infector string
}

func (InfectionData) modifierData() {}

// DeathData records the cause of a death
type DeathData struct {
	// Cause is the private description of how the player died
	Cause string
}

func (DeathData) modifierData() {}

// Modifier is a named status condition attached to a player, temporary or
// permanent. At most one active modifier of a given type exists per player;
// re-adding replaces the previous entry.
type Modifier struct {
	// Type identifies the condition
	Type ModifierType

	// Source identifies what created the modifier (e.g. "doctor",
	// "event:zombie"), for the audit trail
	Source string

	// Active is false once the modifier has expired or been removed
	Active bool

	// Data is the optional typed payload for this modifier type
	Data ModifierData

	// ExpiresOn is the day number on which the modifier expires; nil means
	// the modifier is permanent
	ExpiresOn *int

	// AppliedOn is the day number on which the modifier was applied
	AppliedOn int
}

// Expired reports whether the modifier should be inactive on the given day.
func (m *Modifier) Expired(currentDay int) bool {
	if m.ExpiresOn == nil {
		return false
	}
	return *m.ExpiresOn <= currentDay
}
