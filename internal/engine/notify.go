package engine

import "github.com/greygale/moonvale/internal/game"

// NotificationKind classifies what a notification reports
type NotificationKind string

const (
	// KindPhase announces a phase transition
	KindPhase NotificationKind = "phase"

	// KindNarration is game-master text every spectator sees
	KindNarration NotificationKind = "narration"

	// KindStatement is one player's discussion statement
	KindStatement NotificationKind = "statement"

	// KindVote is one player's lynch vote
	KindVote NotificationKind = "vote"

	// KindDeath announces a death
	KindDeath NotificationKind = "death"

	// KindGameOver announces the final result
	KindGameOver NotificationKind = "game_over"
)

// Notification is one item in the spectator stream. The stream is the
// game-master view: it includes private thinking and whispers that players
// in the game never see.
type Notification struct {
	// Kind classifies the notification
	Kind NotificationKind

	// Day is the day number at emission
	Day int

	// Phase is the phase at emission
	Phase game.Phase

	// Player is the acting player, when one exists
	Player string

	// Content is the visible text
	Content string

	// Thinking is the player's private deliberation, for statements and votes
	Thinking string
}

// Notifier receives the spectator stream. Implementations render it;
// dropping notifications on the floor is a valid implementation.
type Notifier interface {
	Notify(n *Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(*Notification) {}
