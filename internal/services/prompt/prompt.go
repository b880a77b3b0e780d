// Package prompt builds the text handed to a player's decider: the system
// context framing who they are, and the per-decision prompts. Every function
// is pure; the orchestrator supplies the pieces.
package prompt

import (
	"fmt"
	"strings"

	"github.com/greygale/moonvale/internal/models"
)

// statusLines maps modifier types to the framing a player carries in their
// system context. Only the modifiers the player should know about appear
// here; protected, guarded and armed stay invisible to their holder.
var statusLines = map[models.ModifierType]string{
	models.ModifierSuicidal:      "You have been struggling with dark thoughts and feel an overwhelming despair.",
	models.ModifierInfected:      "You're not feeling well - you were bitten on the ankle by a rather ugly passerby a few days ago, and the wound has been bothering you. Probably nothing serious.",
	models.ModifierZombie:        "You are a ZOMBIE - you have risen from the dead with an insatiable hunger for brains!",
	models.ModifierSleepwalker:   "You are a sleepwalker - you wander around at night and might be seen by others.",
	models.ModifierInsomniac:     "You have insomnia - you stay awake and sometimes see people moving around at night.",
	models.ModifierDrunk:         "You've had too much to drink - you're feeling a bit confused and disoriented.",
	models.ModifierVigilanteUsed: "You already used your ONE vigilante shot - you cannot kill again.",
	models.ModifierJester:        "You are secretly a Jester - your goal is to GET YOURSELF LYNCHED to win!",
	models.ModifierPriest:        "You have the power to resurrect ONE dead player - this is your only resurrection!",
	models.ModifierBodyguard:     "You are a Bodyguard - you can die protecting others from Assassin attacks.",
}

// SystemContext frames a player for their decider: identity, personality,
// role briefing and any statuses they are aware of.
func SystemContext(player *models.Player, modifiers []*models.Modifier) string {
	info, _ := models.GetRoleInfo(player.Role)

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n", player.Name)
	fmt.Fprintf(&b, "Your personality: %s\n", player.Personality)
	fmt.Fprintf(&b, "Your role: %s\n", info.Description)
	b.WriteString(`
IMPORTANT - Use these exact role names:
- Assassins (not Mafia, killers, etc.)
- Doctor (not Healer, medic, etc.)
- Detective (not Investigator, cop, etc.)
- Vigilante (not Hunter, killer, etc.)
- Villager (not Townsfolk, citizen, etc.)
`)

	for _, m := range modifiers {
		if !m.Active {
			continue
		}
		switch m.Type {
		case models.ModifierGhost:
			if data, ok := m.Data.(models.HauntData); ok {
				fmt.Fprintf(&b, "\nYou are a GHOST haunting %s. You cannot speak or act, only observe.\n", data.Target)
			}
		case models.ModifierLover:
			if data, ok := m.Data.(models.LoverData); ok {
				fmt.Fprintf(&b, "\nYou are in love with %s - if they die, you will die of heartbreak.\n", data.Partner)
			}
		default:
			if line, ok := statusLines[m.Type]; ok {
				b.WriteString("\n" + line + "\n")
			}
		}
	}

	return b.String()
}

// NightKill prompts an assassin for their elimination target.
func NightKill(playerName, teamInfo, recentEvents string, targets []string) string {
	return fmt.Sprintf(`You are %s, an Assassin. Choose who to eliminate tonight.

%s

%s

Available targets: %s`, playerName, teamInfo, recentEvents, strings.Join(targets, ", "))
}

// Protection prompts the doctor for their ward.
func Protection(playerName, recentEvents string, targets []string) string {
	return fmt.Sprintf(`You are %s, the Doctor. Choose who to protect tonight.
Note: You cannot protect the same person two nights in a row.

%s

Available targets: %s`, playerName, recentEvents, strings.Join(targets, ", "))
}

// Investigation prompts the detective for their subject.
func Investigation(playerName, recentEvents string, targets []string) string {
	return fmt.Sprintf(`You are %s, the Detective. Choose who to investigate tonight.

%s

Available targets: %s`, playerName, recentEvents, strings.Join(targets, ", "))
}

// VigilanteAction prompts the vigilante; the choices include skipping.
func VigilanteAction(playerName, recentEvents string, choices []string) string {
	return fmt.Sprintf(`You are %s, the Vigilante. You have ONE shot to eliminate someone you suspect is an Assassin.
WARNING: If you kill a villager, you will die from guilt!

%s

Available choices: %s`, playerName, recentEvents, strings.Join(choices, ", "))
}

// BodyguardWatch prompts a bodyguard for who to watch tonight.
func BodyguardWatch(playerName, recentEvents string, targets []string) string {
	return fmt.Sprintf(`You are %s, a Bodyguard. Choose someone to protect tonight.
If they are attacked by Assassins, you will die in their place.

%s

Available targets: %s`, playerName, recentEvents, strings.Join(targets, ", "))
}

// Resurrection prompts a priest for who to bring back; the choices include
// saving the power for later.
func Resurrection(playerName, recentEvents string, deadPlayers, choices []string) string {
	return fmt.Sprintf(`You are %s, a Priest with the power to resurrect ONE dead player.
This is your only resurrection - use it wisely!

%s

Dead players: %s

Available choices: %s`, playerName, recentEvents, strings.Join(deadPlayers, ", "), strings.Join(choices, ", "))
}

// Haunt prompts a freshly-dead ghost for who to haunt.
func Haunt(playerName, deathInfo string, targets []string) string {
	return fmt.Sprintf(`You are %s, and you have died! You linger as a ghost.

%s

Choose who to haunt (they will know something supernatural is happening):

Available targets: %s`, playerName, deathInfo, strings.Join(targets, ", "))
}

// BlackboardPost prompts a player for an anonymous night posting. Replying
// SKIP posts nothing.
func BlackboardPost(recentEvents string) string {
	return fmt.Sprintf(`It's nighttime. You can post an ANONYMOUS message to the town blackboard that everyone will see tomorrow.

Strategic uses:
- Share suspicions without revealing who you are
- Mislead the village if you're an Assassin
- Drop hints about your investigation results
- Build trust or sow discord

Your message will be completely anonymous. Reply "SKIP" to post nothing, or write a brief message (1-2 sentences).

%s

What do you want to post?`, recentEvents)
}

// Discussion prompts a player to speak. Round one has no prior statements;
// later rounds include what was already said.
func Discussion(round int, recentStatements, context string) string {
	if recentStatements == "" {
		return fmt.Sprintf(`It's time for discussion. Share your thoughts, suspicions, or information.

%s

What do you say?`, context)
	}
	return fmt.Sprintf(`Discussion round %d. Other players have been speaking:

%s

%s

What do you say?`, round, recentStatements, context)
}

// Vote prompts a player for their lynch vote, with guidance against
// voting on silence instead of evidence.
func Vote(discussionSummary, context string) string {
	return fmt.Sprintf(`It's time to vote for who to eliminate today.

CRITICAL VOTING GUIDANCE:
- DO NOT vote for someone just because they're "quiet" or "haven't spoken yet"
- Look for CONCRETE EVIDENCE: contradictions, suspicious voting patterns, defensive behavior
- Consider: Who has claimed roles? Do their claims match observed events?
- Think strategically: Who benefits from recent deaths and votes?
- Remember: Eliminating innocent villagers helps the Assassins win!

WHAT MAKES SOMEONE SUSPICIOUS:
- Contradicting known facts or previous statements
- Coordinated voting patterns with others
- Overly defensive or deflecting when questioned
- Role claims that don't match observed events

WHAT DOES NOT MAKE SOMEONE SUSPICIOUS:
- Being quiet (they may not have had a turn to speak yet!)
- Asking questions or being confused
- Not having a power role to claim

%s

%s

Who do you vote to eliminate? Base your decision on EVIDENCE, not assumptions.`, discussionSummary, context)
}

// TeamInfo renders the assassin roster line shared among teammates.
func TeamInfo(teammates []string) string {
	if len(teammates) == 0 {
		return "You are the last Assassin standing."
	}
	return "Your fellow Assassins: " + strings.Join(teammates, ", ")
}
