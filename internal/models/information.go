package models

import "time"

// InfoCategory classifies a piece of information
type InfoCategory string

const (
	// InfoDeath announces a player's death
	InfoDeath InfoCategory = "death"

	// InfoRole reveals a player's role
	InfoRole InfoCategory = "role"

	// InfoInvestigation is a detective's investigation result
	InfoInvestigation InfoCategory = "investigation"

	// InfoObservation is something witnessed at night
	InfoObservation InfoCategory = "observation"

	// InfoAction is feedback about a player's own action
	InfoAction InfoCategory = "action"

	// InfoGeneral is any other game fact
	InfoGeneral InfoCategory = "general"
)

// VisibilityScope determines which rule decides who can see an item
type VisibilityScope string

const (
	// VisibilityAll makes an item visible to every player
	VisibilityAll VisibilityScope = "all"

	// VisibilityPlayer restricts an item to named players
	VisibilityPlayer VisibilityScope = "player"

	// VisibilityTeam restricts an item to members of named teams
	VisibilityTeam VisibilityScope = "team"
)

// Visibility is the rule determining which players may observe an item
type Visibility struct {
	// Scope selects the visibility rule
	Scope VisibilityScope

	// Targets holds player names for player scope, or team names for team
	// scope; unused for all scope
	Targets []string
}

// VisibleToAll returns a visibility every player passes.
func VisibleToAll() Visibility {
	return Visibility{Scope: VisibilityAll}
}

// VisibleToPlayer returns a visibility only the named players pass.
func VisibleToPlayer(names ...string) Visibility {
	return Visibility{Scope: VisibilityPlayer, Targets: names}
}

// VisibleToTeam returns a visibility only members of the team pass.
func VisibleToTeam(team Team) Visibility {
	return Visibility{Scope: VisibilityTeam, Targets: []string{string(team)}}
}

// IsVisibleTo reports whether a player with the given name and team passes
// this visibility rule. Dead players keep their visibility; death never
// revokes knowledge.
func (v Visibility) IsVisibleTo(playerName string, playerTeam Team) bool {
	switch v.Scope {
	case VisibilityAll:
		return true
	case VisibilityPlayer:
		for _, t := range v.Targets {
			if t == playerName {
				return true
			}
		}
		return false
	case VisibilityTeam:
		for _, t := range v.Targets {
			if t == string(playerTeam) {
				return true
			}
		}
		return false
	}
	return false
}

// Information is one fact in the append-only information store. Items are
// never mutated or deleted after creation.
type Information struct {
	// ID is the unique identifier for the item
	ID string

	// Category classifies the item
	Category InfoCategory

	// Content is the fact text shown in player context
	Content string

	// Source identifies who or what generated the item (player name,
	// "game", "event:zombie")
	Source string

	// Visibility is the rule determining who may observe the item
	Visibility Visibility

	// Day is the day number the item was created on
	Day int

	// Phase is the phase tag the item was created in
	Phase string

	// Timestamp is when the item was created
	Timestamp time.Time
}
