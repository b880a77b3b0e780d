// Package conversation is the append-only record of discussion statements,
// grouped by round, day and phase.
package conversation

import (
	"strings"

	"github.com/greygale/moonvale/internal/common/clock"
	"github.com/greygale/moonvale/internal/common/uuid"
	"github.com/greygale/moonvale/internal/dice"
	"github.com/greygale/moonvale/internal/models"
)

// Config holds dependencies for the conversation log
type Config struct {
	// Clock stamps statements as they are recorded
	Clock clock.Clock

	// UUIDGenerator assigns statement IDs
	UUIDGenerator uuid.UUID

	// Roller randomizes the speaking-order base score
	Roller dice.Roller
}

// Log is the append-only conversation record.
type Log struct {
	clock      clock.Clock
	uuid       uuid.UUID
	roller     dice.Roller
	statements []*models.Statement
}

// NewLog creates an empty conversation log.
func NewLog(cfg *Config) *Log {
	return &Log{
		clock:  cfg.Clock,
		uuid:   cfg.UUIDGenerator,
		roller: cfg.Roller,
	}
}

// Record appends a statement and returns its assigned ID.
func (l *Log) Record(stmt *models.Statement) string {
	if stmt.ID == "" {
		stmt.ID = l.uuid.NewUUID()
	}
	if stmt.Timestamp.IsZero() {
		stmt.Timestamp = l.clock.Now()
	}
	l.statements = append(l.statements, stmt)
	return stmt.ID
}

// Recent returns the last count statements by the player, oldest first.
func (l *Log) Recent(player string, count int) []*models.Statement {
	var byPlayer []*models.Statement
	for _, s := range l.statements {
		if s.Speaker == player {
			byPlayer = append(byPlayer, s)
		}
	}
	if len(byPlayer) > count {
		byPlayer = byPlayer[len(byPlayer)-count:]
	}
	return byPlayer
}

// ByPhase returns the statements made in a phase, in order. A non-nil day
// restricts the result to that day.
func (l *Log) ByPhase(phase string, day *int) []*models.Statement {
	var out []*models.Statement
	for _, s := range l.statements {
		if s.Phase != phase {
			continue
		}
		if day != nil && s.Day != *day {
			continue
		}
		out = append(out, s)
	}
	return out
}

// VisibleTo returns the statements in a phase the player may see, excluding
// the player's own. A non-nil day restricts the result to that day.
func (l *Log) VisibleTo(player string, team models.Team, phase string, day *int) []*models.Statement {
	var out []*models.Statement
	for _, s := range l.ByPhase(phase, day) {
		if s.Speaker == player {
			continue
		}
		if s.Visibility.IsVisibleTo(player, team) {
			out = append(out, s)
		}
	}
	return out
}

// FormatContext renders statements as discussion context for a prompt.
func FormatContext(statements []*models.Statement) string {
	var lines []string
	for _, s := range statements {
		lines = append(lines, s.Speaker+": "+s.Content)
	}
	return strings.Join(lines, "\n")
}

var assertiveKeywords = []string{
	"aggressive", "bold", "charismatic", "cunning", "manipulative",
	"assertive", "confident", "dominant", "outspoken", "brash",
	"fearless", "daring", "provocative", "confrontational",
}

var reservedKeywords = []string{
	"quiet", "timid", "cautious", "nervous", "anxious",
	"reserved", "shy", "hesitant", "withdrawn", "meek",
	"passive", "introverted", "subtle", "humble",
}

// SpeakingOrder returns the players sorted by a personality-weighted
// initiative score: assertive personalities tend to speak earlier, reserved
// ones later, with randomization so the order varies between rounds.
func (l *Log) SpeakingOrder(players []*models.Player) []*models.Player {
	type scored struct {
		player *models.Player
		score  float64
	}

	scoredPlayers := make([]scored, 0, len(players))
	for _, p := range players {
		personality := strings.ToLower(p.Personality)
		score := l.roller.Float64()
		for _, kw := range assertiveKeywords {
			if strings.Contains(personality, kw) {
				score += 0.3
				break
			}
		}
		for _, kw := range reservedKeywords {
			if strings.Contains(personality, kw) {
				score -= 0.3
				break
			}
		}
		scoredPlayers = append(scoredPlayers, scored{player: p, score: score})
	}

	// Insertion sort keeps equal scores in input order.
	for i := 1; i < len(scoredPlayers); i++ {
		for j := i; j > 0 && scoredPlayers[j].score > scoredPlayers[j-1].score; j-- {
			scoredPlayers[j], scoredPlayers[j-1] = scoredPlayers[j-1], scoredPlayers[j]
		}
	}

	ordered := make([]*models.Player, len(scoredPlayers))
	for i, sp := range scoredPlayers {
		ordered[i] = sp.player
	}
	return ordered
}
