package models

// Player represents a participant in the game. Players live for the whole
// game and are only ever marked dead, never deleted. Role and Alive are
// mutated exclusively by the effect engine.
type Player struct {
	// Name uniquely identifies the player
	Name string

	// Role is the player's current role
	Role Role

	// Personality is the free-form character sketch fed to the decider
	Personality string

	// Alive indicates whether the player is still in the game
	Alive bool
}

// Team returns the team affiliation derived from the player's current role.
func (p *Player) Team() Team {
	info, ok := GetRoleInfo(p.Role)
	if !ok {
		return TeamVillage
	}
	return info.Team
}

// HasNightAction reports whether the player's role acts at night.
func (p *Player) HasNightAction() bool {
	info, ok := GetRoleInfo(p.Role)
	return ok && info.NightAction
}
