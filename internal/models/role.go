package models

// Team represents the win-condition grouping a role belongs to
type Team string

const (
	// TeamVillage is the village team, which wins when all assassins are dead
	TeamVillage Team = "village"

	// TeamAssassins is the assassin team, which wins when it equals or
	// outnumbers the village
	TeamAssassins Team = "assassins"
)

// Role represents a player's role in the game
type Role string

const (
	// RoleAssassin eliminates one villager each night with their teammates
	RoleAssassin Role = "Assassin"

	// RoleDoctor protects one player from elimination each night
	RoleDoctor Role = "Doctor"

	// RoleDetective investigates one player each night
	RoleDetective Role = "Detective"

	// RoleVigilante may eliminate one player, once per game
	RoleVigilante Role = "Vigilante"

	// RoleVillager has no night action
	RoleVillager Role = "Villager"
)

// RoleInfo holds the static descriptor for a role
type RoleInfo struct {
	// Name is the display name of the role
	Name string

	// Team is the win-condition grouping for the role
	Team Team

	// Description is the role briefing shown to the player
	Description string

	// NightAction indicates whether the role acts at night
	NightAction bool
}

var roleInfos = map[Role]RoleInfo{
	RoleAssassin: {
		Name:        "Assassin",
		Team:        TeamAssassins,
		Description: "You are one of the Assassins. Work with your fellow Assassins to eliminate villagers at night. Win by outnumbering the villagers.",
		NightAction: true,
	},
	RoleDoctor: {
		Name:        "Doctor",
		Team:        TeamVillage,
		Description: "You are the Doctor. Each night, you can protect one person from being eliminated by the Assassins.",
		NightAction: true,
	},
	RoleDetective: {
		Name:        "Detective",
		Team:        TeamVillage,
		Description: "You are the Detective. Each night, you can investigate one person to learn if they are an Assassin or not.",
		NightAction: true,
	},
	RoleVigilante: {
		Name:        "Vigilante",
		Team:        TeamVillage,
		Description: "You are the Vigilante. ONCE per game, you can choose to eliminate one person at night. You only get ONE shot - use it wisely!",
		NightAction: true,
	},
	RoleVillager: {
		Name:        "Villager",
		Team:        TeamVillage,
		Description: "You are a Villager. You have no special powers, but use your voice during the day to help identify the Assassins.",
		NightAction: false,
	},
}

// GetRoleInfo returns the static descriptor for a role. The second return
// value is false for unknown roles.
func GetRoleInfo(role Role) (RoleInfo, bool) {
	info, ok := roleInfos[role]
	return info, ok
}

// DisplayName returns the role name with its indefinite article, for death
// announcements ("an Assassin", "a Doctor").
func (r Role) DisplayName() string {
	if r == RoleAssassin {
		return "an Assassin"
	}
	return "a " + string(r)
}

// ValidRoles returns the set of known roles.
func ValidRoles() []Role {
	return []Role{RoleAssassin, RoleDoctor, RoleDetective, RoleVigilante, RoleVillager}
}
